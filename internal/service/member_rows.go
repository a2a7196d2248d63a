package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/club-roster-api/internal/address"
	"github.com/club-roster-api/internal/models"
	"github.com/club-roster-api/internal/repository"
	"github.com/club-roster-api/internal/spreadsheet"
)

// memberRowHandler reconciles one spreadsheet row against the roster:
// validation, normalization, group auto-provisioning and upsert by
// member identifier. Every terminating path below writes a row log.
type memberRowHandler struct {
	members repository.MemberRepository
	groups  repository.GroupRepository
	imports repository.ImportRepository
	jobID   int64
}

// NewMemberRowHandler creates the member reconciler for one import job
func NewMemberRowHandler(repos *repository.Repositories, jobID int64) RowHandler {
	return &memberRowHandler{
		members: repos.Member,
		groups:  repos.Group,
		imports: repos.Import,
		jobID:   jobID,
	}
}

func (h *memberRowHandler) ProcessRow(ctx context.Context, row spreadsheet.Row, rowNumber int) error {
	// Validation: each check fails fast with an error log and skips the
	// row. Identifiers up to 999 are reserved for system-seeded records.
	id, err := strconv.Atoi(row.ID)
	if err != nil || id <= 999 {
		return h.logRow(ctx, rowNumber, models.LogLevelError,
			fmt.Sprintf("ID must be a number > 999. Got: %s", row.ID))
	}

	name := strings.TrimSpace(row.Name)
	if name == "" {
		return h.logRow(ctx, rowNumber, models.LogLevelError, "Name cannot be empty.")
	}

	if row.Email == "" {
		return h.logRow(ctx, rowNumber, models.LogLevelError, "Email is required.")
	}

	groupID := strings.ToUpper(strings.TrimSpace(row.Group))
	if utf8.RuneCountInString(groupID) != 1 {
		return h.logRow(ctx, rowNumber, models.LogLevelError,
			"Group identifier must be exactly one letter. Ignoring record.")
	}

	// First token is the first name, the rest is the surname.
	fields := strings.Fields(name)
	firstName := fields[0]
	surname := strings.Join(fields[1:], " ")

	// Anything but the exact literal "Active" means canceled.
	status := models.MemberStatusCanceled
	if row.Active == "Active" {
		status = models.MemberStatusActive
	}

	phone := row.Phone
	if phone != "" && !strings.HasPrefix(phone, "+") {
		phone = "+" + phone
	}

	addr := address.Extract(row.Address)
	if row.Address != "" && addr.ZipCode == "" {
		err := h.logRow(ctx, rowNumber, models.LogLevelWarning,
			fmt.Sprintf("Address extraction partially failed for: %q. Saved as raw where possible.", row.Address))
		if err != nil {
			return err
		}
	}

	dob := normalizeDate(row.DateOfBirth)
	if dob != "" {
		if parsed, err := time.Parse("2006-01-02", dob); err == nil && parsed.After(time.Now()) {
			return h.logRow(ctx, rowNumber, models.LogLevelError,
				fmt.Sprintf("Date of Birth %s is in the future. Skipping record.", dob))
		}
	}

	// Group resolution. A group created here is committed before this
	// row's upsert and before the next row starts, so later rows with
	// the same letter reuse it.
	existingGroup, err := h.groups.GetByLetter(ctx, groupID)
	if err != nil {
		return fmt.Errorf("group lookup: %w", err)
	}
	if existingGroup == nil {
		group := &models.Group{ID: groupID, Trainer: models.DefaultImportedTrainer}
		if err := h.groups.Create(ctx, group); err != nil {
			return fmt.Errorf("group create: %w", err)
		}
		if err := h.logRow(ctx, rowNumber, models.LogLevelWarning, "Created new group: "+groupID); err != nil {
			return err
		}
	} else {
		// Tolerate pre-existing lowercase identifiers.
		groupID = existingGroup.ID
	}

	member := &models.Member{
		ID:           id,
		Name:         firstName,
		Surname:      surname,
		Email:        row.Email,
		GroupID:      groupID,
		Status:       status,
		Phone:        phone,
		Street:       addr.Street,
		StreetNumber: addr.StreetNumber,
		ZipCode:      addr.ZipCode,
		City:         addr.City,
		DateOfBirth:  dob,
	}

	return h.upsert(ctx, rowNumber, member)
}

// upsert writes the reconciled member. An email owned by a different
// identifier is a hard conflict: two distinct people must never be
// merged by an email collision. Storage failures are logged against
// the row and do not abort the batch.
func (h *memberRowHandler) upsert(ctx context.Context, rowNumber int, member *models.Member) error {
	existing, err := h.members.GetByID(ctx, member.ID)
	if err != nil {
		return h.logRow(ctx, rowNumber, models.LogLevelError, "Database error: "+err.Error())
	}

	byEmail, err := h.members.GetByEmail(ctx, member.Email)
	if err != nil {
		return h.logRow(ctx, rowNumber, models.LogLevelError, "Database error: "+err.Error())
	}

	if byEmail != nil && byEmail.ID != member.ID {
		return h.logRow(ctx, rowNumber, models.LogLevelError,
			fmt.Sprintf("Conflict: Email %s is already used by member ID %d.", member.Email, byEmail.ID))
	}

	if existing != nil {
		// GDPR state and language are not part of the sheet; keep them.
		member.GDPRConsent = existing.GDPRConsent
		member.GDPRToken = existing.GDPRToken
		member.Language = existing.Language

		if err := h.members.Update(ctx, member); err != nil {
			return h.logRow(ctx, rowNumber, models.LogLevelError, "Database error: "+err.Error())
		}
		return h.logRow(ctx, rowNumber, models.LogLevelSuccess, fmt.Sprintf("Updated member %d", member.ID))
	}

	if err := h.members.Create(ctx, member); err != nil {
		return h.logRow(ctx, rowNumber, models.LogLevelError, "Database error: "+err.Error())
	}
	return h.logRow(ctx, rowNumber, models.LogLevelSuccess, fmt.Sprintf("Inserted new member %d", member.ID))
}

func (h *memberRowHandler) logRow(ctx context.Context, rowNumber int, level models.LogLevel, message string) error {
	return h.imports.AppendLog(ctx, h.jobID, rowNumber, level, message)
}

// normalizeDate converts D.M.YYYY dates to YYYY-MM-DD. Anything else is
// passed through unchanged; the upsert stores it as raw text.
func normalizeDate(val string) string {
	s := strings.TrimSpace(val)
	parts := strings.Split(s, ".")
	if len(parts) == 3 && len(parts[2]) == 4 {
		return parts[2] + "-" + padTwo(parts[1]) + "-" + padTwo(parts[0])
	}
	return s
}

func padTwo(s string) string {
	for len(s) < 2 {
		s = "0" + s
	}
	return s
}
