package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/post-board/internal/logger"
	"github.com/MKhiriev/post-board/models"
)

// errNothingAffected signals an UPDATE or DELETE that matched no row.
var errNothingAffected = errors.New("no rows affected")

// postRepository is the SQL implementation of [PostRepository].
type postRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewPostRepository constructs a [PostRepository] backed by db.
func NewPostRepository(db *DB, logger *logger.Logger) PostRepository {
	logger.Debug().Msg("creating post repository")
	return &postRepository{
		db:     db,
		logger: logger,
	}
}

func (r *postRepository) CreatePost(ctx context.Context, post models.Post) (models.Post, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertPostQuery(r.db.builder, post)
	if err != nil {
		return models.Post{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		if isForeignKeyViolation(err) {
			return models.Post{}, ErrUnknownAuthor
		}

		log.Err(err).Str("func", "*postRepository.CreatePost").Msg("error inserting post")
		return models.Post{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return post, nil
}

func (r *postRepository) FindPostByID(ctx context.Context, postID string) (models.Post, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectPostQuery(r.db.builder, postID)
	if err != nil {
		return models.Post{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var post models.Post
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&post.ID, &post.Title, &post.Content, &post.AuthorID, &post.CreatedAt, &post.UpdatedAt,
	)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Post{}, ErrPostNotFound
	case err != nil:
		log.Err(err).Str("func", "*postRepository.FindPostByID").Msg("error scanning post")
		return models.Post{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return post, nil
}

func (r *postRepository) ListPosts(ctx context.Context) ([]models.Post, error) {
	query, args, err := buildSelectPostsWithAuthorsQuery(r.db.builder)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryPosts(ctx, query, args, func(rows *sql.Rows, post *models.Post) error {
		author := &models.User{}
		err := rows.Scan(
			&post.ID, &post.Title, &post.Content, &post.AuthorID, &post.CreatedAt, &post.UpdatedAt,
			&author.UserID, &author.Name, &author.Email, &author.CreatedAt, &author.UpdatedAt,
		)
		post.Author = author
		return err
	})
}

func (r *postRepository) ListPostsByAuthor(ctx context.Context, authorID string) ([]models.Post, error) {
	query, args, err := buildSelectPostsByAuthorQuery(r.db.builder, authorID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryPosts(ctx, query, args, func(rows *sql.Rows, post *models.Post) error {
		return rows.Scan(&post.ID, &post.Title, &post.Content, &post.AuthorID, &post.CreatedAt, &post.UpdatedAt)
	})
}

func (r *postRepository) queryPosts(ctx context.Context, query string, args []any, scan func(*sql.Rows, *models.Post) error) ([]models.Post, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*postRepository.queryPosts").Msg("error querying posts")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	posts := make([]models.Post, 0)
	for rows.Next() {
		var post models.Post
		if err = scan(rows, &post); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		posts = append(posts, post)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return posts, nil
}

// UpdatePost writes Title, Content and UpdatedAt of post.
func (r *postRepository) UpdatePost(ctx context.Context, post models.Post) (models.Post, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdatePostQuery(r.db.builder, post)
	if err != nil {
		return models.Post{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*postRepository.UpdatePost").Msg("error updating post")
		return models.Post{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err = expectAffected(result); err != nil {
		if errors.Is(err, errNothingAffected) {
			return models.Post{}, ErrPostNotFound
		}
		return models.Post{}, err
	}

	return r.FindPostByID(ctx, post.ID)
}

func (r *postRepository) DeletePost(ctx context.Context, postID string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeletePostQuery(r.db.builder, postID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*postRepository.DeletePost").Msg("error deleting post")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err = expectAffected(result); err != nil {
		if errors.Is(err, errNothingAffected) {
			return ErrPostNotFound
		}
		return err
	}

	return nil
}

func expectAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return errNothingAffected
	}

	return nil
}
