package entity

import (
	"time"
)

// User is the only aggregate of the accounts domain.
// UserID is chosen by the user at registration and never changes.
// Password holds a bcrypt hash, never plain text.
type User struct {
	UserID    string
	UserName  string
	Password  string
	Email     string
	Phone     string
	CreatedAt time.Time
}
