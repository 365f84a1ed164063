package models

import "time"

// Role is the authorization level of a user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Profile is the user record returned by the API. Only Role is interpreted
// by the client.
type Profile struct {
	ID        ID        `json:"id"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email,omitempty"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsAdmin reports whether the role is exactly "admin".
func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// AuthResponse is returned by login and register.
type AuthResponse struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}

// UserInput is the body of admin user create/update calls. An empty
// Password on update keeps the current one.
type UserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Role     Role   `json:"role"`
}

// MessageResponse is the body of delete calls.
type MessageResponse struct {
	Message string `json:"message"`
}
