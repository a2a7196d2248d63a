package repository

import (
	"context"

	"github.com/club-roster-api/internal/database"
	"github.com/club-roster-api/internal/models"
)

// MemberRepository defines the interface for member roster operations
type MemberRepository interface {
	List(ctx context.Context) ([]*models.Member, error)
	GetByID(ctx context.Context, id int) (*models.Member, error)
	GetByEmail(ctx context.Context, email string) (*models.Member, error)
	Create(ctx context.Context, member *models.Member) error
	Update(ctx context.Context, member *models.Member) error
	Delete(ctx context.Context, id int) error
	CountByGroup(ctx context.Context, groupID string) (int, error)
}

// GroupRepository defines the interface for training group operations
type GroupRepository interface {
	List(ctx context.Context) ([]*models.Group, error)
	// GetByLetter matches the group identifier case-insensitively.
	GetByLetter(ctx context.Context, letter string) (*models.Group, error)
	Create(ctx context.Context, group *models.Group) error
	Update(ctx context.Context, group *models.Group) error
	Delete(ctx context.Context, id string) error
}

// ImportRepository defines the interface for import jobs and their
// append-only row logs
type ImportRepository interface {
	Create(ctx context.Context, job *models.ImportJob) error
	GetByID(ctx context.Context, id int64) (*models.ImportJob, error)
	ListRecent(ctx context.Context, limit int) ([]*models.ImportJob, error)
	UpdateStatus(ctx context.Context, id int64, status models.ImportStatus) error
	AppendLog(ctx context.Context, id int64, rowNumber int, level models.LogLevel, message string) error
	GetLogs(ctx context.Context, id int64) ([]models.ImportLog, error)
}

// SettingsRepository defines the interface for the key-value settings store
type SettingsRepository interface {
	GetAll(ctx context.Context) (models.Settings, error)
	SetAll(ctx context.Context, settings models.Settings) error
}

// UserRepository defines the interface for administrator accounts
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	EnsureUser(ctx context.Context, username, passwordHash string) error
}

// Repositories holds all repository interfaces
type Repositories struct {
	Member   MemberRepository
	Group    GroupRepository
	Import   ImportRepository
	Settings SettingsRepository
	User     UserRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Member:   NewMemberRepo(db),
		Group:    NewGroupRepo(db),
		Import:   NewImportRepo(db),
		Settings: NewSettingsRepo(db),
		User:     NewUserRepo(db),
	}
}
