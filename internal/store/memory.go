package store

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/MKhiriev/post-board/models"
)

// MemoryStorage keeps users and posts in process memory. It implements both
// [UserRepository] and [PostRepository] and is meant for development and
// tests. Everything is lost on restart.
type MemoryStorage struct {
	mu      sync.RWMutex
	users   map[string]models.User
	byEmail map[string]string
	posts   map[string]models.Post
}

var (
	_ UserRepository = (*MemoryStorage)(nil)
	_ PostRepository = (*MemoryStorage)(nil)
	_ Pinger         = (*MemoryStorage)(nil)
)

// NewMemoryStorage returns an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		users:   make(map[string]models.User),
		byEmail: make(map[string]string),
		posts:   make(map[string]models.Post),
	}
}

func emailKey(email string) string {
	return strings.ToLower(email)
}

func (m *MemoryStorage) CreateUser(_ context.Context, user models.User) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.byEmail[emailKey(user.Email)]; taken {
		return models.User{}, ErrEmailAlreadyExists
	}

	m.users[user.UserID] = user
	m.byEmail[emailKey(user.Email)] = user.UserID

	return user, nil
}

func (m *MemoryStorage) FindUserByID(_ context.Context, userID string) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[userID]
	if !ok {
		return models.User{}, ErrUserNotFound
	}

	return user, nil
}

func (m *MemoryStorage) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	userID, ok := m.byEmail[emailKey(email)]
	if !ok {
		return models.User{}, ErrUserNotFound
	}

	return m.users[userID], nil
}

func (m *MemoryStorage) UpdateUser(_ context.Context, user models.User) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.users[user.UserID]
	if !ok {
		return models.User{}, ErrUserNotFound
	}

	if owner, taken := m.byEmail[emailKey(user.Email)]; taken && owner != user.UserID {
		return models.User{}, ErrEmailAlreadyExists
	}

	delete(m.byEmail, emailKey(stored.Email))
	stored.Name = user.Name
	stored.Email = user.Email
	stored.UpdatedAt = user.UpdatedAt

	m.users[stored.UserID] = stored
	m.byEmail[emailKey(stored.Email)] = stored.UserID

	return stored, nil
}

func (m *MemoryStorage) ListUsers(_ context.Context) ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]models.User, 0, len(m.users))
	for _, user := range m.users {
		users = append(users, user)
	}
	slices.SortFunc(users, func(a, b models.User) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.UserID, b.UserID)
	})

	return users, nil
}

func (m *MemoryStorage) CreatePost(_ context.Context, post models.Post) (models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[post.AuthorID]; !ok {
		return models.Post{}, ErrUnknownAuthor
	}

	post.Author = nil
	m.posts[post.ID] = post

	return post, nil
}

func (m *MemoryStorage) FindPostByID(_ context.Context, postID string) (models.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	post, ok := m.posts[postID]
	if !ok {
		return models.Post{}, ErrPostNotFound
	}

	return post, nil
}

func (m *MemoryStorage) ListPosts(_ context.Context) ([]models.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	posts := m.collectPosts(func(models.Post) bool { return true })
	for i := range posts {
		author := m.users[posts[i].AuthorID]
		author.PasswordHash = ""
		posts[i].Author = &author
	}

	return posts, nil
}

func (m *MemoryStorage) ListPostsByAuthor(_ context.Context, authorID string) ([]models.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.collectPosts(func(post models.Post) bool { return post.AuthorID == authorID }), nil
}

// collectPosts must be called with m.mu held.
func (m *MemoryStorage) collectPosts(keep func(models.Post) bool) []models.Post {
	posts := make([]models.Post, 0)
	for _, post := range m.posts {
		if keep(post) {
			posts = append(posts, post)
		}
	}
	slices.SortFunc(posts, func(a, b models.Post) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})

	return posts
}

func (m *MemoryStorage) UpdatePost(_ context.Context, post models.Post) (models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.posts[post.ID]
	if !ok {
		return models.Post{}, ErrPostNotFound
	}

	stored.Title = post.Title
	stored.Content = post.Content
	stored.UpdatedAt = post.UpdatedAt
	m.posts[stored.ID] = stored

	return stored, nil
}

func (m *MemoryStorage) DeletePost(_ context.Context, postID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.posts[postID]; !ok {
		return ErrPostNotFound
	}
	delete(m.posts, postID)

	return nil
}

// Ping implements [Pinger]. The in-memory backend is always reachable.
func (m *MemoryStorage) Ping(context.Context) error {
	return nil
}
