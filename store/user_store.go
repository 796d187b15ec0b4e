package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"bizinteltz/api/models"
)

var ErrUserNotFound = errors.New("user not found")

// UserStore is a Postgres-backed admin account table.
type UserStore struct {
	db  *sql.DB
	log *zap.Logger
}

func NewUserStore(db *sql.DB, log *zap.Logger) *UserStore {
	return &UserStore{db: db, log: log.Named("users")}
}

// EnsureSchema creates the admin_users table when it is missing.
func (s *UserStore) EnsureSchema(ctx context.Context) error {
	const query = `
		CREATE TABLE IF NOT EXISTS admin_users (
			id SERIAL PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			hashed_password BYTEA NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create admin_users table: %w", err)
	}
	return nil
}

// EnsureUser inserts the account if no user with that name exists yet. An
// existing password is never overwritten.
func (s *UserStore) EnsureUser(ctx context.Context, username string, hashedPassword []byte) error {
	const query = `
		INSERT INTO admin_users (username, hashed_password)
		VALUES ($1, $2)
		ON CONFLICT (username) DO NOTHING;
	`
	res, err := s.db.ExecContext(ctx, query, username, hashedPassword)
	if err != nil {
		return fmt.Errorf("failed to ensure user %q: %w", username, err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		s.log.Info("admin user created", zap.String("username", username))
	}
	return nil
}

func (s *UserStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{}
	const query = `
		SELECT id, username, hashed_password, created_at, updated_at
		FROM admin_users
		WHERE username = $1;
	`
	err := s.db.QueryRowContext(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.HashedPassword,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %q: %w", username, ErrUserNotFound)
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return user, nil
}

// MemoryUserStore holds the single configured administrator.
type MemoryUserStore struct {
	user models.User
}

// NewMemoryUserStore hashes the configured password once at startup.
func NewMemoryUserStore(username, password string) (*MemoryUserStore, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}
	now := time.Now().UTC()
	return &MemoryUserStore{user: models.User{
		ID:             1,
		Username:       username,
		HashedPassword: hashed,
		CreatedAt:      now,
		UpdatedAt:      now,
	}}, nil
}

func (m *MemoryUserStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	if username != m.user.Username {
		return nil, fmt.Errorf("user %q: %w", username, ErrUserNotFound)
	}
	u := m.user
	return &u, nil
}
