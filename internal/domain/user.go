package domain

import "time"

// User is the domain entity for a user account.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// Session binds an opaque token to the user that logged in with it.
// A user may hold any number of sessions at once.
type Session struct {
	ID        int64
	UserID    int64
	Token     string
	CreatedAt time.Time
}
