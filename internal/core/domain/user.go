package domain

import "time"

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

// User models an authenticated actor in the system.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	Name         string    `json:"name,omitempty"`
	Provider     string    `json:"provider"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// IsAdmin reports whether u may act on other users' records.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// ProviderProfile is the identity returned by an external sign-in provider.
type ProviderProfile struct {
	Provider string
	Subject  string
	Email    string
	Name     string
}
