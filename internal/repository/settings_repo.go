package repository

import (
	"context"

	"github.com/club-roster-api/internal/database"
	"github.com/club-roster-api/internal/models"
)

// settingsRepo is the concrete implementation of SettingsRepository
type settingsRepo struct {
	db *database.DB
}

// NewSettingsRepo creates a new settings repository
func NewSettingsRepo(db *database.DB) SettingsRepository {
	return &settingsRepo{db: db}
}

// GetAll returns the full settings map
func (r *settingsRepo) GetAll(ctx context.Context) (models.Settings, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings := make(models.Settings)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		settings[key] = value
	}

	return settings, rows.Err()
}

// SetAll upserts every given key in a single transaction
func (r *settingsRepo) SetAll(ctx context.Context, settings models.Settings) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`
	for key, value := range settings {
		if _, err := tx.ExecContext(ctx, query, key, value); err != nil {
			return err
		}
	}

	return tx.Commit()
}
