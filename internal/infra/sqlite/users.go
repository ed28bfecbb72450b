package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hourbook-app/hourbook/internal/domain"
)

// ─── User Operations ────────────────────────────────────────────────────────

// CreateUser inserts a new principal. Returns domain.ErrNameTaken when the
// name is already registered.
func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO users (name, displayname, password_hash)
		VALUES (?, ?, ?)
	`, u.Name, u.DisplayName, u.PasswordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrNameTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("user id: %w", err)
	}
	u.ID = id
	return nil
}

// UserByName looks a principal up by login name.
func (s *Store) UserByName(ctx context.Context, name string) (*domain.User, error) {
	var u domain.User
	err := s.db.GetContext(ctx, &u, `
		SELECT id, name, displayname, password_hash, created_at
		FROM users WHERE name = ?
	`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select user: %w", err)
	}
	return &u, nil
}

// UserByID looks a principal up by id.
func (s *Store) UserByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	err := s.db.GetContext(ctx, &u, `
		SELECT id, name, displayname, password_hash, created_at
		FROM users WHERE id = ?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select user: %w", err)
	}
	return &u, nil
}
