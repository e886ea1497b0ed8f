package store

import (
	"context"

	"github.com/MKhiriev/post-board/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists registered accounts.
//
// Emails are unique: CreateUser and UpdateUser return
// [ErrEmailAlreadyExists] when another account already holds the email.
// Lookups of a missing account return [ErrUserNotFound].
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByID(ctx context.Context, userID string) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	UpdateUser(ctx context.Context, user models.User) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

// PostRepository persists posts. Missing posts are reported as
// [ErrPostNotFound].
type PostRepository interface {
	CreatePost(ctx context.Context, post models.Post) (models.Post, error)
	FindPostByID(ctx context.Context, postID string) (models.Post, error)

	// ListPosts returns every post with its Author populated.
	ListPosts(ctx context.Context) ([]models.Post, error)

	// ListPostsByAuthor returns the posts of one user, Author left nil.
	ListPostsByAuthor(ctx context.Context, authorID string) ([]models.Post, error)

	UpdatePost(ctx context.Context, post models.Post) (models.Post, error)
	DeletePost(ctx context.Context, postID string) error
}

// Pinger reports whether the storage backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
