package entities

// Role is the caller's role as carried by its access token.
type Role string

const (
	RoleAdmin       Role = "ADMIN"
	RoleParticipant Role = "PARTICIPANT"
)

// User is the external identity attached to a call. It is not stored here.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Role  Role   `json:"role,omitempty"`
}

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// DisplayName is what a ticket prints for the participant.
func (u User) DisplayName() string {
	if u.Email != "" {
		return u.Email
	}
	return "Participant"
}
