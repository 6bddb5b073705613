package roster

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ErrorKind classifies what went wrong with an API call.
type ErrorKind int

const (
	// ErrNetwork covers transport faults: DNS, refused connections,
	// timeouts. No HTTP response was received.
	ErrNetwork ErrorKind = iota
	// ErrRejected is a non-2xx HTTP response.
	ErrRejected
	// ErrParse is a malformed body on the success path.
	ErrParse
)

// APIError is the value form every Client failure takes. Detail carries the
// server-supplied message from a `{detail}` body when there is one.
type APIError struct {
	Kind   ErrorKind
	Detail string
	Status int
	Err    error
}

func (e *APIError) Error() string {
	switch e.Kind {
	case ErrNetwork:
		return fmt.Sprintf("network error: %v", e.Err)
	case ErrParse:
		return fmt.Sprintf("malformed response: %v", e.Err)
	default:
		if e.Detail != "" {
			return fmt.Sprintf("request rejected (%d): %s", e.Status, e.Detail)
		}
		return fmt.Sprintf("request rejected (%d)", e.Status)
	}
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// LoginResult is the success body of POST /login.
type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Client issues the four roster API calls. It is a thin transport: no
// retries, no local authorization checks, one attempt per call.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchRoster grabs the full activity snapshot.
func (c *Client) FetchRoster() (Roster, *APIError) {
	resp, err := c.HTTP.Get(c.BaseURL + "/activities")
	if err != nil {
		return Roster{}, &APIError{Kind: ErrNetwork, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Roster{}, rejection(resp)
	}

	roster, err := ParseRoster(resp.Body)
	if err != nil {
		return Roster{}, &APIError{Kind: ErrParse, Err: err}
	}
	return roster, nil
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(username, password string) (LoginResult, *APIError) {
	payload, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return LoginResult{}, &APIError{Kind: ErrParse, Err: err}
	}

	resp, err := c.HTTP.Post(c.BaseURL+"/login", "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return LoginResult{}, &APIError{Kind: ErrNetwork, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return LoginResult{}, rejection(resp)
	}

	var result LoginResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return LoginResult{}, &APIError{Kind: ErrParse, Err: err}
	}
	return result, nil
}

// Enroll signs an email up for an activity. The session token rides along
// when present; the server decides whether anonymous enrollment is allowed.
func (c *Client) Enroll(activity, email string, session Session) (string, *APIError) {
	target := fmt.Sprintf("%s/activities/%s/signup?email=%s",
		c.BaseURL, url.PathEscape(activity), url.QueryEscape(email))
	return c.mutate(http.MethodPost, target, session)
}

// Unenroll removes an email from an activity. Authorization is enforced
// server-side; the client only attaches credentials it has.
func (c *Client) Unenroll(activity, email string, session Session) (string, *APIError) {
	target := fmt.Sprintf("%s/activities/%s/unregister?email=%s",
		c.BaseURL, url.PathEscape(activity), url.QueryEscape(email))
	return c.mutate(http.MethodDelete, target, session)
}

func (c *Client) mutate(method, target string, session Session) (string, *APIError) {
	req, err := http.NewRequest(method, target, nil)
	if err != nil {
		return "", &APIError{Kind: ErrNetwork, Err: err}
	}
	if session.Authenticated() {
		req.Header.Set("Authorization", "Bearer "+session.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", &APIError{Kind: ErrNetwork, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", rejection(resp)
	}

	var result struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &APIError{Kind: ErrParse, Err: err}
	}
	return result.Message, nil
}

// rejection reads a non-2xx response into an APIError, keeping the server
// detail text when the body carries one.
func rejection(resp *http.Response) *APIError {
	var body struct {
		Detail string `json:"detail"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return &APIError{Kind: ErrRejected, Status: resp.StatusCode, Detail: body.Detail}
}
