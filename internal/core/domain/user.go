package domain

import "time"

// User models a registered account.
type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	PasswordHash   string    `json:"-"`
	Role           Role      `json:"role"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone"`
	Specialization string    `json:"specialization"`
	LicenseNumber  string    `json:"licenseNumber"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Identity is the verified subject of a bearer token.
type Identity struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

// Identity returns the token identity for u.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Role: u.Role}
}
