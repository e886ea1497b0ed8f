package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/post-board/models"
)

func seedUser(t *testing.T, m *MemoryStorage, id, email string, createdAt time.Time) models.User {
	t.Helper()
	user, err := m.CreateUser(context.Background(), models.User{
		UserID: id, Name: id, Email: email, PasswordHash: "digest-" + id,
		CreatedAt: createdAt, UpdatedAt: createdAt,
	})
	require.NoError(t, err)
	return user
}

func TestMemoryStorage_Users(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStorage()
	now := time.Now()

	alice := seedUser(t, m, "u-1", "alice@example.com", now)
	seedUser(t, m, "u-2", "bob@example.com", now.Add(time.Second))

	_, err := m.CreateUser(ctx, models.User{UserID: "u-3", Email: "ALICE@example.com"})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)

	found, err := m.FindUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, alice, found)

	_, err = m.FindUserByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = m.FindUserByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)

	users, err := m.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "u-1", users[0].UserID)
	assert.Equal(t, "u-2", users[1].UserID)
}

func TestMemoryStorage_UpdateUser(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStorage()
	now := time.Now()

	seedUser(t, m, "u-1", "alice@example.com", now)
	seedUser(t, m, "u-2", "bob@example.com", now)

	_, err := m.UpdateUser(ctx, models.User{UserID: "u-1", Name: "Alice", Email: "bob@example.com"})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)

	updated, err := m.UpdateUser(ctx, models.User{UserID: "u-1", Name: "Alice", Email: "alice@new.example.com", UpdatedAt: now.Add(time.Minute)})
	require.NoError(t, err)
	assert.Equal(t, "Alice", updated.Name)
	assert.Equal(t, "digest-u-1", updated.PasswordHash)

	// the old email is free again
	_, err = m.FindUserByEmail(ctx, "alice@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
	seedUser(t, m, "u-3", "alice@example.com", now)

	_, err = m.UpdateUser(ctx, models.User{UserID: "missing", Email: "x@example.com"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestMemoryStorage_Posts(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStorage()
	now := time.Now()

	seedUser(t, m, "u-1", "alice@example.com", now)
	seedUser(t, m, "u-2", "bob@example.com", now)

	_, err := m.CreatePost(ctx, models.Post{ID: "p-0", AuthorID: "ghost"})
	assert.ErrorIs(t, err, ErrUnknownAuthor)

	for i, author := range []string{"u-1", "u-2", "u-1"} {
		_, err = m.CreatePost(ctx, models.Post{
			ID: fmt.Sprintf("p-%d", i+1), Title: "t", AuthorID: author, CreatedAt: now.Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
	}

	posts, err := m.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, []string{"p-1", "p-2", "p-3"}, []string{posts[0].ID, posts[1].ID, posts[2].ID})
	for _, post := range posts {
		require.NotNil(t, post.Author)
		assert.Equal(t, post.AuthorID, post.Author.UserID)
		assert.Empty(t, post.Author.PasswordHash)
	}

	mine, err := m.ListPostsByAuthor(ctx, "u-1")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	updated, err := m.UpdatePost(ctx, models.Post{ID: "p-1", Title: "new", Content: "body"})
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Title)
	assert.Equal(t, "u-1", updated.AuthorID)

	_, err = m.UpdatePost(ctx, models.Post{ID: "missing"})
	assert.ErrorIs(t, err, ErrPostNotFound)

	require.NoError(t, m.DeletePost(ctx, "p-1"))
	assert.ErrorIs(t, m.DeletePost(ctx, "p-1"), ErrPostNotFound)

	_, err = m.FindPostByID(ctx, "p-1")
	assert.ErrorIs(t, err, ErrPostNotFound)

	assert.NoError(t, m.Ping(ctx))
}

func TestMemoryStorage_ConcurrentRegistration(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStorage()

	var wg sync.WaitGroup
	var mu sync.Mutex
	created := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := m.CreateUser(ctx, models.User{UserID: fmt.Sprintf("u-%d", i), Email: "same@example.com"})
			if err == nil {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, created)
}
