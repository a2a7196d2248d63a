package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/club-roster-api/internal/database"
	"github.com/club-roster-api/internal/models"
)

// groupRepo is the concrete implementation of GroupRepository
type groupRepo struct {
	db *database.DB
}

// NewGroupRepo creates a new group repository
func NewGroupRepo(db *database.DB) GroupRepository {
	return &groupRepo{db: db}
}

// List returns all groups ordered by identifier
func (r *groupRepo) List(ctx context.Context) ([]*models.Group, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, trainer FROM groups ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.Trainer); err != nil {
			return nil, err
		}
		groups = append(groups, &g)
	}

	return groups, rows.Err()
}

// GetByLetter retrieves a group matching the identifier case-insensitively.
// Pre-existing rows may carry lowercase identifiers; callers should use
// the returned canonical identifier, not the one they looked up with.
func (r *groupRepo) GetByLetter(ctx context.Context, letter string) (*models.Group, error) {
	var g models.Group
	err := r.db.QueryRowContext(ctx,
		`SELECT id, trainer FROM groups WHERE UPPER(id) = $1`,
		strings.ToUpper(letter),
	).Scan(&g.ID, &g.Trainer)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// Create inserts a new group
func (r *groupRepo) Create(ctx context.Context, group *models.Group) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO groups (id, trainer) VALUES ($1, $2)`,
		group.ID, group.Trainer,
	)
	return err
}

// Update changes the trainer of a group
func (r *groupRepo) Update(ctx context.Context, group *models.Group) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE groups SET trainer = $1 WHERE id = $2`,
		group.Trainer, group.ID,
	)
	return err
}

// Delete removes a group
func (r *groupRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM groups WHERE id = $1`, id)
	return err
}
