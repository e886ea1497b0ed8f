package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/post-board/internal/logger"
	"github.com/MKhiriev/post-board/models"
)

var postRowColumns = []string{"id", "title", "content", "author_id", "created_at", "updated_at"}

func testPost(now time.Time) models.Post {
	return models.Post{
		ID:        "p-1",
		Title:     "Hello",
		Content:   "World",
		AuthorID:  "u-1",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCreatePost_Success(t *testing.T) {
	db, mock := newTestDB(t, DialectPostgres)
	repo := NewPostRepository(db, logger.Nop())
	post := testPost(time.Now())

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO posts (id,title,content,author_id,created_at,updated_at) VALUES ($1,$2,$3,$4,$5,$6)")).
		WithArgs(post.ID, post.Title, post.Content, post.AuthorID, post.CreatedAt, post.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	created, err := repo.CreatePost(context.Background(), post)
	require.NoError(t, err)
	assert.Equal(t, post, created)
}

func TestCreatePost_UnknownAuthor(t *testing.T) {
	db, mock := newTestDB(t, DialectPostgres)
	repo := NewPostRepository(db, logger.Nop())

	mock.ExpectExec("INSERT INTO posts").WillReturnError(pgError(pgerrcode.ForeignKeyViolation))

	_, err := repo.CreatePost(context.Background(), testPost(time.Now()))
	assert.ErrorIs(t, err, ErrUnknownAuthor)
}

func TestFindPostByID(t *testing.T) {
	db, mock := newTestDB(t, DialectPostgres)
	repo := NewPostRepository(db, logger.Nop())
	post := testPost(time.Now().UTC())

	mock.ExpectQuery(regexp.QuoteMeta("FROM posts WHERE id = $1")).
		WithArgs(post.ID).
		WillReturnRows(sqlmock.NewRows(postRowColumns).
			AddRow(post.ID, post.Title, post.Content, post.AuthorID, post.CreatedAt, post.UpdatedAt))

	found, err := repo.FindPostByID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, post, found)
}

func TestFindPostByID_NotFound(t *testing.T) {
	db, mock := newTestDB(t, DialectPostgres)
	repo := NewPostRepository(db, logger.Nop())

	mock.ExpectQuery("FROM posts").WillReturnError(sql.ErrNoRows)

	_, err := repo.FindPostByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestListPosts_WithAuthors(t *testing.T) {
	db, mock := newTestDB(t, DialectPostgres)
	repo := NewPostRepository(db, logger.Nop())
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM posts p JOIN users u ON u.id = p.author_id ORDER BY p.created_at, p.id")).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "title", "content", "author_id", "created_at", "updated_at",
			"id", "name", "email", "created_at", "updated_at",
		}).AddRow("p-1", "Hello", "World", "u-1", now, now, "u-1", "Alice", "alice@example.com", now, now))

	posts, err := repo.ListPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.NotNil(t, posts[0].Author)
	assert.Equal(t, "Alice", posts[0].Author.Name)
	assert.Empty(t, posts[0].Author.PasswordHash)
}

func TestListPostsByAuthor(t *testing.T) {
	db, mock := newTestDB(t, DialectSQLite)
	repo := NewPostRepository(db, logger.Nop())
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM posts WHERE author_id = ?")).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows(postRowColumns).
			AddRow("p-1", "Hello", "World", "u-1", now, now))

	posts, err := repo.ListPostsByAuthor(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Nil(t, posts[0].Author)
}

func TestListPosts_ScanError(t *testing.T) {
	db, mock := newTestDB(t, DialectPostgres)
	repo := NewPostRepository(db, logger.Nop())

	mock.ExpectQuery("FROM posts").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("p-1"))

	_, err := repo.ListPosts(context.Background())
	assert.ErrorIs(t, err, ErrScanningRows)
}

func TestUpdatePost(t *testing.T) {
	db, mock := newTestDB(t, DialectPostgres)
	repo := NewPostRepository(db, logger.Nop())
	post := testPost(time.Now().UTC())
	post.Title = "Changed"

	mock.ExpectExec(regexp.QuoteMeta("UPDATE posts SET content = $1, title = $2, updated_at = $3 WHERE id = $4")).
		WithArgs(post.Content, post.Title, post.UpdatedAt, post.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM posts WHERE id").
		WithArgs(post.ID).
		WillReturnRows(sqlmock.NewRows(postRowColumns).
			AddRow(post.ID, post.Title, post.Content, post.AuthorID, post.CreatedAt, post.UpdatedAt))

	updated, err := repo.UpdatePost(context.Background(), post)
	require.NoError(t, err)
	assert.Equal(t, "Changed", updated.Title)
}

func TestUpdatePost_NotFound(t *testing.T) {
	db, mock := newTestDB(t, DialectPostgres)
	repo := NewPostRepository(db, logger.Nop())

	mock.ExpectExec("UPDATE posts").WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.UpdatePost(context.Background(), testPost(time.Now()))
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestDeletePost(t *testing.T) {
	db, mock := newTestDB(t, DialectPostgres)
	repo := NewPostRepository(db, logger.Nop())

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM posts WHERE id = $1")).
		WithArgs("p-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.DeletePost(context.Background(), "p-1"))
}

func TestDeletePost_Errors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		db, mock := newTestDB(t, DialectPostgres)
		repo := NewPostRepository(db, logger.Nop())

		mock.ExpectExec("DELETE FROM posts").WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.DeletePost(context.Background(), "p-1"), ErrPostNotFound)
	})

	t.Run("driver error", func(t *testing.T) {
		db, mock := newTestDB(t, DialectPostgres)
		repo := NewPostRepository(db, logger.Nop())

		mock.ExpectExec("DELETE FROM posts").WillReturnError(errors.New("broken pipe"))

		assert.ErrorIs(t, repo.DeletePost(context.Background(), "p-1"), ErrExecutingStatement)
	})

	t.Run("rows affected error", func(t *testing.T) {
		db, mock := newTestDB(t, DialectPostgres)
		repo := NewPostRepository(db, logger.Nop())

		mock.ExpectExec("DELETE FROM posts").WillReturnResult(sqlmock.NewErrorResult(errors.New("unsupported")))

		assert.ErrorIs(t, repo.DeletePost(context.Background(), "p-1"), ErrExecutingStatement)
	})
}
