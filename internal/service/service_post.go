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

type postService struct {
	postRepository store.PostRepository

	now    func() time.Time
	ids    IDGenerator
	logger *logger.Logger
}

// NewPostService constructs a PostService on top of the post repository.
func NewPostService(postRepository store.PostRepository, logger *logger.Logger, opts ...Option) PostService {
	o := newOptions(opts)

	return &postService{
		postRepository: postRepository,
		now:            o.now,
		ids:            o.ids,
		logger:         logger,
	}
}

// ListPosts returns all posts, each with its author.
func (p *postService) ListPosts(ctx context.Context) ([]models.Post, error) {
	posts, err := p.postRepository.ListPosts(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("listing posts failed")
		return nil, fmt.Errorf("listing posts failed: %w", err)
	}

	return posts, nil
}

// CreatePost stores a new post owned by authorID.
func (p *postService) CreatePost(ctx context.Context, authorID string, req models.CreatePostRequest) (models.Post, error) {
	log := logger.FromContext(ctx)

	title := strings.TrimSpace(req.Title)
	if authorID == "" || title == "" {
		return models.Post{}, ErrInvalidDataProvided
	}

	now := p.now().UTC()
	post := models.Post{
		ID:        p.ids.Generate(),
		Title:     title,
		Content:   req.Content,
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := p.postRepository.CreatePost(ctx, post)
	if err != nil {
		log.Err(err).Str("author_id", authorID).Msg("post creation failed")
		return models.Post{}, fmt.Errorf("post creation failed: %w", err)
	}

	return created, nil
}

// UpdatePost changes the title and/or content of a post owned by userID.
// Nil fields in req are left as they are.
func (p *postService) UpdatePost(ctx context.Context, userID string, req models.UpdatePostRequest) (models.Post, error) {
	log := logger.FromContext(ctx)

	post, err := p.authorize(ctx, userID, req.ID, ErrEditForbidden)
	if err != nil {
		return models.Post{}, err
	}

	if req.Title != nil {
		post.Title = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if post.Title == "" {
		return models.Post{}, ErrInvalidDataProvided
	}
	post.UpdatedAt = p.now().UTC()

	updated, err := p.postRepository.UpdatePost(ctx, post)
	if err != nil {
		log.Err(err).Str("id", post.ID).Msg("post update failed")
		return models.Post{}, fmt.Errorf("post update failed: %w", err)
	}

	return updated, nil
}

// DeletePost removes a post owned by userID.
func (p *postService) DeletePost(ctx context.Context, userID string, postID string) error {
	if _, err := p.authorize(ctx, userID, postID, ErrDeleteForbidden); err != nil {
		return err
	}

	if err := p.postRepository.DeletePost(ctx, postID); err != nil {
		logger.FromContext(ctx).Err(err).Str("id", postID).Msg("post deletion failed")
		return fmt.Errorf("post deletion failed: %w", err)
	}

	return nil
}

// authorize loads postID and checks that userID authored it, returning
// denied otherwise. Nothing is written when it fails.
func (p *postService) authorize(ctx context.Context, userID string, postID string, denied error) (models.Post, error) {
	log := logger.FromContext(ctx)

	if userID == "" || postID == "" {
		return models.Post{}, ErrInvalidDataProvided
	}

	post, err := p.postRepository.FindPostByID(ctx, postID)
	if err != nil {
		log.Err(err).Str("id", postID).Msg("post lookup failed")
		return models.Post{}, fmt.Errorf("post lookup failed: %w", err)
	}

	if post.AuthorID != userID {
		log.Warn().Str("id", postID).Str("user_id", userID).Msg("user is not the author of the post")
		return models.Post{}, denied
	}

	return post, nil
}
