package service

import (
	"context"
	"time"

	"github.com/club-roster-api/internal/models"
	"github.com/club-roster-api/internal/repository"
	"github.com/rs/zerolog"
)

// rosterService is the concrete implementation of RosterService
type rosterService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

// NewRosterService creates a new RosterService
func NewRosterService(repos *repository.Repositories, log zerolog.Logger) RosterService {
	return &rosterService{
		repos: repos,
		log:   log.With().Str("service", "roster").Logger(),
	}
}

// ListMembers returns all members with their group trainer
func (s *rosterService) ListMembers(ctx context.Context) ([]*models.Member, error) {
	return s.repos.Member.List(ctx)
}

// CreateMember adds a member to the roster
func (s *rosterService) CreateMember(ctx context.Context, member *models.Member) error {
	if err := rejectFutureDateOfBirth(member.DateOfBirth); err != nil {
		return err
	}
	if member.Status == "" {
		member.Status = models.MemberStatusActive
	}
	return s.repos.Member.Create(ctx, member)
}

// UpdateMember overwrites a member's fields
func (s *rosterService) UpdateMember(ctx context.Context, member *models.Member) error {
	if err := rejectFutureDateOfBirth(member.DateOfBirth); err != nil {
		return err
	}
	return s.repos.Member.Update(ctx, member)
}

// DeleteMember removes a member from the roster
func (s *rosterService) DeleteMember(ctx context.Context, id int) error {
	return s.repos.Member.Delete(ctx, id)
}

// ListGroups returns all training groups
func (s *rosterService) ListGroups(ctx context.Context) ([]*models.Group, error) {
	return s.repos.Group.List(ctx)
}

// CreateGroup adds a training group
func (s *rosterService) CreateGroup(ctx context.Context, group *models.Group) error {
	return s.repos.Group.Create(ctx, group)
}

// UpdateGroup changes a group's trainer
func (s *rosterService) UpdateGroup(ctx context.Context, group *models.Group) error {
	return s.repos.Group.Update(ctx, group)
}

// DeleteGroup removes a group, refusing while members still reference it
func (s *rosterService) DeleteGroup(ctx context.Context, id string) error {
	count, err := s.repos.Member.CountByGroup(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrGroupHasMembers
	}
	return s.repos.Group.Delete(ctx, id)
}

// GetSettings returns the full settings map
func (s *rosterService) GetSettings(ctx context.Context) (models.Settings, error) {
	settings, err := s.repos.Settings.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = models.Settings{}
	}
	return settings, nil
}

// UpdateSettings upserts the given settings keys
func (s *rosterService) UpdateSettings(ctx context.Context, settings models.Settings) error {
	return s.repos.Settings.SetAll(ctx, settings)
}

// rejectFutureDateOfBirth refuses ISO dates later than today. Values
// that do not parse are left to the storage layer.
func rejectFutureDateOfBirth(dob string) error {
	if dob == "" {
		return nil
	}
	if parsed, err := time.Parse("2006-01-02", dob); err == nil && parsed.After(time.Now()) {
		return ErrFutureDateOfBirth
	}
	return nil
}
