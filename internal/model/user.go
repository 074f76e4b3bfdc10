package model

import "time"

type User struct {
	ID           string    `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"-" db:"role"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// SessionUser is the public view returned to clients.
type SessionUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func (u *User) Session() SessionUser {
	return SessionUser{ID: u.ID, Username: u.Username}
}
