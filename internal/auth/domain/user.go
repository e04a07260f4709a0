package domain

import "time"

// User is the identity record persisted by the store. PasswordHash is the
// bcrypt-encoded credential and must never leave the service; use View for
// anything that gets serialized.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt encoded
	FullName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserView is the public representation of a User. It deliberately has no
// password field so the hash can't leak through an encoder.
type UserView struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

// View strips the sensitive fields from a User.
func (u User) View() UserView {
	return UserView{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.FullName,
	}
}
