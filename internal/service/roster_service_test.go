package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/club-roster-api/internal/mocks"
	"github.com/club-roster-api/internal/models"
	"github.com/club-roster-api/internal/repository"
	"github.com/club-roster-api/internal/service"
	"github.com/rs/zerolog"
)

func newRoster() (service.RosterService, *reconcilerMocks, *mocks.MockSettingsRepository) {
	m := &reconcilerMocks{
		members: mocks.NewMockMemberRepository(),
		groups:  mocks.NewMockGroupRepository(),
		imports: mocks.NewMockImportRepository(),
	}
	settings := mocks.NewMockSettingsRepository()
	repos := &repository.Repositories{
		Member:   m.members,
		Group:    m.groups,
		Import:   m.imports,
		Settings: settings,
	}
	return service.NewRosterService(repos, zerolog.Nop()), m, settings
}

func TestCreateMember_DefaultsToActive(t *testing.T) {
	svc, m, _ := newRoster()

	member := &models.Member{Name: "Jane", Email: "jane@example.com", GroupID: "A"}
	if err := svc.CreateMember(context.Background(), member); err != nil {
		t.Fatalf("CreateMember failed: %v", err)
	}

	stored := m.members.Members[member.ID]
	if stored.Status != models.MemberStatusActive {
		t.Errorf("Expected default Active status, got %s", stored.Status)
	}
}

func TestCreateMember_RejectsFutureDateOfBirth(t *testing.T) {
	svc, m, _ := newRoster()

	member := &models.Member{Name: "Jane", Email: "jane@example.com", DateOfBirth: "2999-01-01"}
	err := svc.CreateMember(context.Background(), member)
	if !errors.Is(err, service.ErrFutureDateOfBirth) {
		t.Fatalf("Expected ErrFutureDateOfBirth, got %v", err)
	}
	if m.members.CreatedCount != 0 {
		t.Errorf("Expected no member created, got %d", m.members.CreatedCount)
	}
}

func TestDeleteGroup_RefusesWhileMembersAssigned(t *testing.T) {
	svc, m, _ := newRoster()
	m.groups.Groups["A"] = &models.Group{ID: "A", Trainer: "Jane Doe"}
	m.members.Members[1000] = &models.Member{ID: 1000, GroupID: "A"}

	err := svc.DeleteGroup(context.Background(), "A")
	if !errors.Is(err, service.ErrGroupHasMembers) {
		t.Fatalf("Expected ErrGroupHasMembers, got %v", err)
	}
	if _, ok := m.groups.Groups["A"]; !ok {
		t.Error("Group should not have been deleted")
	}

	delete(m.members.Members, 1000)
	if err := svc.DeleteGroup(context.Background(), "A"); err != nil {
		t.Fatalf("DeleteGroup failed once empty: %v", err)
	}
	if _, ok := m.groups.Groups["A"]; ok {
		t.Error("Group should have been deleted")
	}
}

func TestSettings_RoundTrip(t *testing.T) {
	svc, _, settingsRepo := newRoster()

	if err := svc.UpdateSettings(context.Background(), models.Settings{"smtp_host": "mail.example.com"}); err != nil {
		t.Fatalf("UpdateSettings failed: %v", err)
	}

	got, err := svc.GetSettings(context.Background())
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if got.Get("smtp_host") != "mail.example.com" {
		t.Errorf("Expected stored setting, got %q", got.Get("smtp_host"))
	}

	// Upserts merge: existing keys survive a partial update.
	if err := svc.UpdateSettings(context.Background(), models.Settings{"email_cc": "office@example.com"}); err != nil {
		t.Fatalf("UpdateSettings failed: %v", err)
	}
	if settingsRepo.Settings.Get("smtp_host") != "mail.example.com" {
		t.Error("Partial update should not drop existing keys")
	}
}
