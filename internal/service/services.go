package service

import (
	"context"
	"errors"

	"github.com/club-roster-api/internal/config"
	"github.com/club-roster-api/internal/models"
	"github.com/club-roster-api/internal/repository"
	"github.com/club-roster-api/internal/spreadsheet"
	"github.com/rs/zerolog"
)

// Sentinel errors mapped to HTTP responses by the handlers.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrFutureDateOfBirth  = errors.New("date of birth cannot be in the future")
	ErrGroupHasMembers    = errors.New("cannot delete group with assigned members")
)

// ImportService defines the interface for the member import pipeline
type ImportService interface {
	CreateJob(ctx context.Context, filename, filePath string) (*models.ImportJob, error)
	// Start launches the job's run in the background. The caller must
	// not wait for it; all outcomes surface through job status and logs.
	Start(job *models.ImportJob)
	// Wait blocks until every started run has finished. Used on shutdown.
	Wait()
	GetJob(ctx context.Context, id int64) (*models.ImportDetail, error)
	ListJobs(ctx context.Context) ([]*models.ImportJob, error)
}

// RosterService defines the interface for member, group and settings
// administration
type RosterService interface {
	ListMembers(ctx context.Context) ([]*models.Member, error)
	CreateMember(ctx context.Context, member *models.Member) error
	UpdateMember(ctx context.Context, member *models.Member) error
	DeleteMember(ctx context.Context, id int) error

	ListGroups(ctx context.Context) ([]*models.Group, error)
	CreateGroup(ctx context.Context, group *models.Group) error
	UpdateGroup(ctx context.Context, group *models.Group) error
	DeleteGroup(ctx context.Context, id string) error

	GetSettings(ctx context.Context) (models.Settings, error)
	UpdateSettings(ctx context.Context, settings models.Settings) error
}

// AuthService defines the interface for administrator authentication
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, error)
	VerifyToken(token string) (string, error)
}

// EmailService defines the interface for outbound email
type EmailService interface {
	SendWelcome(ctx context.Context, email WelcomeEmail) error
}

// Services holds all service interfaces
type Services struct {
	Import ImportService
	Roster RosterService
	Auth   AuthService
	Email  EmailService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *Services {
	importSvc := NewImportService(
		repos.Import,
		spreadsheet.Read,
		func(jobID int64) RowHandler { return NewMemberRowHandler(repos, jobID) },
		log,
	)

	return &Services{
		Import: importSvc,
		Roster: NewRosterService(repos, log),
		Auth:   NewAuthService(repos.User, &cfg.Auth, log),
		Email:  NewEmailService(repos.Settings, cfg.SMTP, log),
	}
}
