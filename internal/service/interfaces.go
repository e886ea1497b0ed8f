package service

import (
	"context"

	"github.com/MKhiriev/post-board/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService registers accounts, verifies credentials and manages the
// lifecycle of bearer tokens.
type AuthService interface {
	RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// UserService serves the authenticated user's own profile and the user
// directory.
type UserService interface {
	GetProfile(ctx context.Context, userID string) (models.Profile, error)
	UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

// PostService manages posts. Only the author of a post may update or
// delete it.
type PostService interface {
	ListPosts(ctx context.Context) ([]models.Post, error)
	CreatePost(ctx context.Context, authorID string, req models.CreatePostRequest) (models.Post, error)
	UpdatePost(ctx context.Context, userID string, req models.UpdatePostRequest) (models.Post, error)
	DeletePost(ctx context.Context, userID string, postID string) error
}

// ServiceWrapper defines middleware composition for services.
// Implementations wrap an existing service to add behavior such as
// logging or validating.
type ServiceWrapper[T any] interface {
	Wrap(T) T // returns a decorated service applying additional behavior
}
