package roster

// Session is the client's credential state. The zero value is anonymous.
// It lives only for the run of the process and is owned by the Controller,
// which hands copies to the ApiClient and the projector.
type Session struct {
	Token    string
	Username string
}

func (s Session) Authenticated() bool {
	return s.Token != ""
}
