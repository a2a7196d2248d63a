package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/club-roster-api/internal/models"
	"github.com/club-roster-api/internal/repository"
	"github.com/club-roster-api/internal/spreadsheet"
	"github.com/rs/zerolog"
)

// recentImportLimit bounds the job list read model.
const recentImportLimit = 10

// RowSource yields the ordered data rows of an uploaded workbook.
type RowSource func(path string) ([]spreadsheet.Row, error)

// RowHandler processes a single spreadsheet row. Implementations record
// their own row logs; a returned error means the failure was not handled
// and the engine logs it against the row before moving on.
type RowHandler interface {
	ProcessRow(ctx context.Context, row spreadsheet.Row, rowNumber int) error
}

// RowHandlerFunc adapts a function to the RowHandler interface.
type RowHandlerFunc func(ctx context.Context, row spreadsheet.Row, rowNumber int) error

// ProcessRow calls f.
func (f RowHandlerFunc) ProcessRow(ctx context.Context, row spreadsheet.Row, rowNumber int) error {
	return f(ctx, row, rowNumber)
}

// HandlerFactory builds the row handler for one job run.
type HandlerFactory func(jobID int64) RowHandler

// importService is the concrete implementation of ImportService. It is
// generic orchestration: job lifecycle, ordered row iteration, per-row
// failure isolation and log funneling. What a row means is entirely the
// handler's business.
type importService struct {
	imports    repository.ImportRepository
	rows       RowSource
	handlerFor HandlerFactory
	log        zerolog.Logger
	wg         sync.WaitGroup
}

// NewImportService creates a new ImportService driving the given row
// source and handler factory.
func NewImportService(imports repository.ImportRepository, rows RowSource, handlerFor HandlerFactory, log zerolog.Logger) ImportService {
	return &importService{
		imports:    imports,
		rows:       rows,
		handlerFor: handlerFor,
		log:        log.With().Str("service", "import").Logger(),
	}
}

// CreateJob records a new pending import job for an uploaded file
func (s *importService) CreateJob(ctx context.Context, filename, filePath string) (*models.ImportJob, error) {
	job := &models.ImportJob{
		Filename:  filename,
		Status:    models.ImportStatusPending,
		FilePath:  filePath,
		CreatedAt: time.Now(),
	}

	if err := s.imports.Create(ctx, job); err != nil {
		return nil, err
	}

	s.log.Info().
		Int64("import_id", job.ID).
		Str("file", filename).
		Msg("Import job created")

	return job, nil
}

// Start launches the job run in its own goroutine. The triggering
// request returns immediately; nothing from the run propagates back.
func (s *importService) Start(job *models.ImportJob) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(context.Background(), job)
	}()
}

// Wait blocks until all started runs have finished
func (s *importService) Wait() {
	s.wg.Wait()
}

// run executes one import job to completion. It never lets a failure
// escape: anything unexpected becomes a row-0 error log and a failed
// status.
func (s *importService) run(ctx context.Context, job *models.ImportJob) {
	log := s.log.With().Int64("import_id", job.ID).Logger()

	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Import run panicked - recovered")
			s.failJob(ctx, job.ID, fmt.Sprintf("Import failed: %v", r))
		}
	}()

	if err := s.imports.UpdateStatus(ctx, job.ID, models.ImportStatusProcessing); err != nil {
		log.Error().Err(err).Msg("Failed to mark import processing")
	}

	rows, err := s.rows(job.FilePath)
	if err != nil {
		log.Error().Err(err).Str("file", job.FilePath).Msg("Failed to read workbook")
		s.failJob(ctx, job.ID, "Import failed: "+err.Error())
		return
	}

	handler := s.handlerFor(job.ID)

	for i, row := range rows {
		// Header occupies spreadsheet row 1, so the first data row is 2.
		// Log row numbers must match what the operator sees in the sheet.
		rowNumber := i + 2
		if err := s.processRow(ctx, handler, row, rowNumber); err != nil {
			log.Error().Err(err).Int("row", rowNumber).Msg("Row processing failed")
			s.appendLog(ctx, job.ID, rowNumber, models.LogLevelError, "Critical error: "+err.Error())
		}
	}

	if err := s.imports.UpdateStatus(ctx, job.ID, models.ImportStatusCompleted); err != nil {
		log.Error().Err(err).Msg("Failed to mark import completed")
	}

	log.Info().Int("rows", len(rows)).Msg("Import completed")
}

// processRow isolates one row: a panic inside the handler becomes an
// error for the caller to log, and the batch moves on to the next row.
func (s *importService) processRow(ctx context.Context, handler RowHandler, row spreadsheet.Row, rowNumber int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return handler.ProcessRow(ctx, row, rowNumber)
}

// failJob writes the job-level error log and transitions to failed
func (s *importService) failJob(ctx context.Context, jobID int64, message string) {
	s.appendLog(ctx, jobID, 0, models.LogLevelError, message)
	if err := s.imports.UpdateStatus(ctx, jobID, models.ImportStatusFailed); err != nil {
		s.log.Error().Err(err).Int64("import_id", jobID).Msg("Failed to mark import failed")
	}
}

func (s *importService) appendLog(ctx context.Context, jobID int64, rowNumber int, level models.LogLevel, message string) {
	if err := s.imports.AppendLog(ctx, jobID, rowNumber, level, message); err != nil {
		s.log.Error().Err(err).Int64("import_id", jobID).Int("row", rowNumber).Msg("Failed to write import log")
	}
}

// GetJob retrieves a job with its logs in processing order
func (s *importService) GetJob(ctx context.Context, id int64) (*models.ImportDetail, error) {
	job, err := s.imports.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, nil
	}

	logs, err := s.imports.GetLogs(ctx, id)
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []models.ImportLog{}
	}

	return &models.ImportDetail{ImportJob: *job, Logs: logs}, nil
}

// ListJobs retrieves the most recent jobs, newest first
func (s *importService) ListJobs(ctx context.Context) ([]*models.ImportJob, error) {
	return s.imports.ListRecent(ctx, recentImportLimit)
}
