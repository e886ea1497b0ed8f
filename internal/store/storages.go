package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/post-board/internal/config"
	"github.com/MKhiriev/post-board/internal/logger"
)

// Storages groups the repositories of one backend.
type Storages struct {
	UserRepository UserRepository
	PostRepository PostRepository
	Health         Pinger

	db *DB
}

// NewStorages opens the backend selected by cfg.DB.DSN and returns its
// repositories. SQL backends are migrated before use.
//
//   - "postgres://", "postgresql://" → PostgreSQL through pgx;
//   - "file:", "*.db", "*.sqlite" → SQLite;
//   - "memory://" → [MemoryStorage].
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	switch backendOf(cfg.DB.DSN) {
	case "memory":
		log.Info().Msg("using in-memory storage")
		memory := NewMemoryStorage()
		return &Storages{UserRepository: memory, PostRepository: memory, Health: memory}, nil
	case DialectPostgres:
		db, err := NewConnectPostgres(ctx, cfg.DB, log)
		if err != nil {
			return nil, err
		}
		return newSQLStorages(ctx, db, log)
	case DialectSQLite:
		db, err := NewConnectSQLite(ctx, cfg.DB, log)
		if err != nil {
			return nil, err
		}
		return newSQLStorages(ctx, db, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDSN, cfg.DB.DSN)
	}
}

func newSQLStorages(ctx context.Context, db *DB, log *logger.Logger) (*Storages, error) {
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error migrating database: %w", err)
	}

	return &Storages{
		UserRepository: NewUserRepository(db, log),
		PostRepository: NewPostRepository(db, log),
		Health:         db,
		db:             db,
	}, nil
}

// Close releases the database pool, if any.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}

	return s.db.Close()
}

func backendOf(dsn string) Dialect {
	lower := strings.ToLower(dsn)
	switch {
	case strings.HasPrefix(lower, "memory://"):
		return "memory"
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return DialectPostgres
	case strings.HasPrefix(lower, "file:"),
		strings.HasSuffix(lower, ".db"),
		strings.HasSuffix(lower, ".sqlite"),
		strings.HasSuffix(lower, ".sqlite3"):
		return DialectSQLite
	default:
		return ""
	}
}
