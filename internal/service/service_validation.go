package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/post-board/internal/validators"
	"github.com/MKhiriev/post-board/models"
)

// AuthValidationService rejects malformed registration and login requests
// before they reach the wrapped AuthService.
type AuthValidationService struct {
	inner     AuthService
	validator validators.Validator
}

func NewAuthValidationService() ServiceWrapper[AuthService] {
	return &AuthValidationService{
		validator: validators.NewRequestValidator(),
	}
}

func (v *AuthValidationService) Wrap(inner AuthService) AuthService {
	v.inner = inner
	return v
}

func (v *AuthValidationService) RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.User{}, invalid(err)
	}

	return v.inner.RegisterUser(ctx, req)
}

func (v *AuthValidationService) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.User{}, invalid(err)
	}

	return v.inner.Login(ctx, req)
}

func (v *AuthValidationService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return v.inner.CreateToken(ctx, user)
}

func (v *AuthValidationService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return v.inner.ParseToken(ctx, tokenString)
}

// UserValidationService validates profile updates.
type UserValidationService struct {
	inner     UserService
	validator validators.Validator
}

func NewUserValidationService() ServiceWrapper[UserService] {
	return &UserValidationService{
		validator: validators.NewRequestValidator(),
	}
}

func (v *UserValidationService) Wrap(inner UserService) UserService {
	v.inner = inner
	return v
}

func (v *UserValidationService) GetProfile(ctx context.Context, userID string) (models.Profile, error) {
	return v.inner.GetProfile(ctx, userID)
}

func (v *UserValidationService) UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (models.User, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.User{}, invalid(err)
	}

	return v.inner.UpdateProfile(ctx, userID, req)
}

func (v *UserValidationService) ListUsers(ctx context.Context) ([]models.User, error) {
	return v.inner.ListUsers(ctx)
}

// PostValidationService validates post requests.
type PostValidationService struct {
	inner     PostService
	validator validators.Validator
}

func NewPostValidationService() ServiceWrapper[PostService] {
	return &PostValidationService{
		validator: validators.NewRequestValidator(),
	}
}

func (v *PostValidationService) Wrap(inner PostService) PostService {
	v.inner = inner
	return v
}

func (v *PostValidationService) ListPosts(ctx context.Context) ([]models.Post, error) {
	return v.inner.ListPosts(ctx)
}

func (v *PostValidationService) CreatePost(ctx context.Context, authorID string, req models.CreatePostRequest) (models.Post, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.Post{}, invalid(err)
	}

	return v.inner.CreatePost(ctx, authorID, req)
}

func (v *PostValidationService) UpdatePost(ctx context.Context, userID string, req models.UpdatePostRequest) (models.Post, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.Post{}, invalid(err)
	}

	return v.inner.UpdatePost(ctx, userID, req)
}

func (v *PostValidationService) DeletePost(ctx context.Context, userID string, postID string) error {
	if err := v.validator.Validate(ctx, models.DeletePostRequest{ID: postID}); err != nil {
		return invalid(err)
	}

	return v.inner.DeletePost(ctx, userID, postID)
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
}
