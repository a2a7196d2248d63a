package repository

import (
	"context"
	"database/sql"

	"github.com/club-roster-api/internal/database"
	"github.com/club-roster-api/internal/models"
)

// userRepo is the concrete implementation of UserRepository
type userRepo struct {
	db *database.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *database.DB) UserRepository {
	return &userRepo{db: db}
}

// GetByUsername retrieves an administrator account by username
func (r *userRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash FROM users WHERE username = $1`,
		username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// EnsureUser creates the account if it does not exist yet. Used to
// bootstrap the admin user from configuration on startup.
func (r *userRepo) EnsureUser(ctx context.Context, username, passwordHash string) error {
	query := `
		INSERT INTO users (username, password_hash) VALUES ($1, $2)
		ON CONFLICT (username) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, username, passwordHash)
	return err
}
