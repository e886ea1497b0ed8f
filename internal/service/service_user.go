package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/post-board/internal/logger"
	"github.com/MKhiriev/post-board/internal/store"
	"github.com/MKhiriev/post-board/models"
)

type userService struct {
	userRepository store.UserRepository
	postRepository store.PostRepository

	now    func() time.Time
	logger *logger.Logger
}

// NewUserService constructs a UserService on top of the user and post
// repositories.
func NewUserService(userRepository store.UserRepository, postRepository store.PostRepository, logger *logger.Logger, opts ...Option) UserService {
	o := newOptions(opts)

	return &userService{
		userRepository: userRepository,
		postRepository: postRepository,
		now:            o.now,
		logger:         logger,
	}
}

// GetProfile returns the user together with the posts they authored.
// A token whose subject no longer resolves yields a wrapped
// store.ErrUserNotFound.
func (u *userService) GetProfile(ctx context.Context, userID string) (models.Profile, error) {
	log := logger.FromContext(ctx)

	user, err := u.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Str("id", userID).Msg("profile lookup failed")
		return models.Profile{}, fmt.Errorf("profile lookup failed: %w", err)
	}

	posts, err := u.postRepository.ListPostsByAuthor(ctx, userID)
	if err != nil {
		log.Err(err).Str("id", userID).Msg("listing profile posts failed")
		return models.Profile{}, fmt.Errorf("listing profile posts failed: %w", err)
	}

	user.PasswordHash = ""

	return models.Profile{User: user, Posts: posts}, nil
}

// UpdateProfile changes the name and/or email of userID. Nil fields in req
// are left as they are.
func (u *userService) UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if req.Name == nil && req.Email == nil {
		return models.User{}, ErrInvalidDataProvided
	}

	user, err := u.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Str("id", userID).Msg("user lookup before update failed")
		return models.User{}, fmt.Errorf("user lookup before update failed: %w", err)
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		user.Email = normalizeEmail(*req.Email)
	}
	if user.Name == "" || user.Email == "" {
		return models.User{}, ErrInvalidDataProvided
	}
	user.UpdatedAt = u.now().UTC()

	updated, err := u.userRepository.UpdateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("id", userID).Msg("user update failed")
		return models.User{}, fmt.Errorf("user update failed: %w", err)
	}

	updated.PasswordHash = ""

	return updated, nil
}

// ListUsers returns every registered user, oldest first.
func (u *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := u.userRepository.ListUsers(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("listing users failed")
		return nil, fmt.Errorf("listing users failed: %w", err)
	}

	for i := range users {
		users[i].PasswordHash = ""
	}

	return users, nil
}
