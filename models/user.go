package models

import "time"

// User represents a registered account.
// The stored credential digest never leaves the server: PasswordHash is
// excluded from JSON serialization, so any User written to a response body
// is already the public view.
type User struct {
	// UserID is the unique, server-assigned identifier (UUIDv7).
	UserID string `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Email is the unique login identifier of the user.
	Email string `json:"email"`

	// PasswordHash stores the Argon2id PHC digest of the user's password.
	// It is used only for credential comparison.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp of the last profile update.
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Profile is the view returned by GET /protected/me: the user together with
// the posts they authored.
type Profile struct {
	User

	Posts []Post `json:"posts"`
}
