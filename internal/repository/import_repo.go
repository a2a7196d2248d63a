package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/club-roster-api/internal/database"
	"github.com/club-roster-api/internal/models"
)

// importRepo is the concrete implementation of ImportRepository
type importRepo struct {
	db *database.DB
}

// NewImportRepo creates a new import repository
func NewImportRepo(db *database.DB) ImportRepository {
	return &importRepo{db: db}
}

// Create inserts a new import job and assigns its identifier
func (r *importRepo) Create(ctx context.Context, job *models.ImportJob) error {
	query := `
		INSERT INTO imports (filename, status, original_file_path, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.db.QueryRowContext(ctx, query,
		job.Filename, job.Status, nullString(job.FilePath), job.CreatedAt,
	).Scan(&job.ID)
}

// GetByID retrieves an import job by identifier
func (r *importRepo) GetByID(ctx context.Context, id int64) (*models.ImportJob, error) {
	query := `SELECT id, filename, status, original_file_path, created_at FROM imports WHERE id = $1`

	var job models.ImportJob
	var filePath sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&job.ID, &job.Filename, &job.Status, &filePath, &job.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	job.FilePath = filePath.String
	return &job, nil
}

// ListRecent retrieves the newest import jobs, newest first
func (r *importRepo) ListRecent(ctx context.Context, limit int) ([]*models.ImportJob, error) {
	query := `
		SELECT id, filename, status, original_file_path, created_at
		FROM imports ORDER BY id DESC LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []*models.ImportJob
	for rows.Next() {
		var job models.ImportJob
		var filePath sql.NullString
		if err := rows.Scan(&job.ID, &job.Filename, &job.Status, &filePath, &job.CreatedAt); err != nil {
			return nil, err
		}
		job.FilePath = filePath.String
		jobs = append(jobs, &job)
	}

	return jobs, rows.Err()
}

// UpdateStatus transitions the job to the given status
func (r *importRepo) UpdateStatus(ctx context.Context, id int64, status models.ImportStatus) error {
	_, err := r.db.ExecContext(ctx, `UPDATE imports SET status = $1 WHERE id = $2`, status, id)
	return err
}

// AppendLog records one row disposition for the job
func (r *importRepo) AppendLog(ctx context.Context, id int64, rowNumber int, level models.LogLevel, message string) error {
	query := `
		INSERT INTO import_logs (import_id, row_number, level, message, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query, id, rowNumber, level, message, time.Now())
	return err
}

// GetLogs retrieves the job's logs in insertion order
func (r *importRepo) GetLogs(ctx context.Context, id int64) ([]models.ImportLog, error) {
	query := `
		SELECT id, import_id, row_number, level, message, created_at
		FROM import_logs WHERE import_id = $1 ORDER BY id ASC
	`
	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.ImportLog
	for rows.Next() {
		var l models.ImportLog
		if err := rows.Scan(&l.ID, &l.ImportID, &l.RowNumber, &l.Level, &l.Message, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}

	return logs, rows.Err()
}
