package models

import "time"

// Post is a piece of content owned by exactly one user.
// Only the owner (AuthorID) may update or delete it.
type Post struct {
	// ID is the unique, server-assigned identifier (UUIDv7).
	ID string `json:"id"`

	// Title is the post headline.
	Title string `json:"title"`

	// Content is the post body. May be empty.
	Content string `json:"content"`

	// AuthorID references the owning User.
	AuthorID string `json:"author_id"`

	// Author is populated only by listing queries that join users.
	Author *User `json:"author,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Post model.
func (p Post) TableName() string {
	return "posts"
}
