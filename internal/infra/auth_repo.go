package infra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Vovarama1992/memo_coach/internal/ports"
)

// AuthRepo keeps the single parent password in parent_auth (one row, id = 1).
type AuthRepo struct {
	db *sql.DB
}

var _ ports.AuthRepo = (*AuthRepo)(nil)

func NewAuthRepo(db *sql.DB) *AuthRepo {
	return &AuthRepo{db: db}
}

// Init creates the table and seeds the password when none is stored yet.
// A password changed in the database is never overwritten.
func (r *AuthRepo) Init(ctx context.Context, initial string) error {
	if _, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS parent_auth (
			id       INTEGER PRIMARY KEY DEFAULT 1 CHECK (id = 1),
			password TEXT NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("init parent_auth: %w", err)
	}

	initial = strings.TrimSpace(initial)
	if initial == "" {
		return nil
	}
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO parent_auth (id, password) VALUES (1, $1) ON CONFLICT (id) DO NOTHING`,
		initial,
	); err != nil {
		return fmt.Errorf("seed parent_auth: %w", err)
	}
	return nil
}

// GetPassword returns "" when no password is set, which disables login.
func (r *AuthRepo) GetPassword(ctx context.Context) (string, error) {
	var password string
	err := r.db.QueryRowContext(ctx,
		`SELECT password FROM parent_auth WHERE id = 1`,
	).Scan(&password)

	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("parent password: %w", err)
	}
	return strings.TrimSpace(password), nil
}
