package types

type TeacherData struct {
	ID       int
	UUID     string
	Username string
	Password string
}

type ActivityData struct {
	ID              int
	UUID            string
	Name            string
	Description     string
	Schedule        string
	MaxParticipants int
	Position        int
}

// ActivityDetails is the wire shape of one activity in GET /activities.
type ActivityDetails struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	Role     string `json:"role"`
	Username string `json:"username"`
}
