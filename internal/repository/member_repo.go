package repository

import (
	"context"
	"database/sql"

	"github.com/club-roster-api/internal/database"
	"github.com/club-roster-api/internal/models"
)

// memberRepo is the concrete implementation of MemberRepository
type memberRepo struct {
	db *database.DB
}

// NewMemberRepo creates a new member repository
func NewMemberRepo(db *database.DB) MemberRepository {
	return &memberRepo{db: db}
}

const memberColumns = `id, name, surname, email, group_id, status, phone, street,
	street_number, zip_code, city, date_of_birth, gdpr_consent, gdpr_token, language`

// List returns all members newest first, with the trainer of their group
func (r *memberRepo) List(ctx context.Context) ([]*models.Member, error) {
	query := `
		SELECT m.id, m.name, m.surname, m.email, m.group_id, m.status, m.phone, m.street,
			m.street_number, m.zip_code, m.city, m.date_of_birth, m.gdpr_consent,
			m.gdpr_token, m.language, g.trainer
		FROM members m
		LEFT JOIN groups g ON m.group_id = g.id
		ORDER BY m.id DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*models.Member
	for rows.Next() {
		var m models.Member
		var phone, street, streetNumber, zipCode, city, dob, gdprToken, trainer sql.NullString
		err := rows.Scan(
			&m.ID, &m.Name, &m.Surname, &m.Email, &m.GroupID, &m.Status,
			&phone, &street, &streetNumber, &zipCode, &city, &dob,
			&m.GDPRConsent, &gdprToken, &m.Language, &trainer,
		)
		if err != nil {
			return nil, err
		}
		m.Phone = phone.String
		m.Street = street.String
		m.StreetNumber = streetNumber.String
		m.ZipCode = zipCode.String
		m.City = city.String
		m.DateOfBirth = dob.String
		m.GDPRToken = gdprToken.String
		m.GroupTrainer = trainer.String
		members = append(members, &m)
	}

	return members, rows.Err()
}

// GetByID retrieves a member by identifier
func (r *memberRepo) GetByID(ctx context.Context, id int) (*models.Member, error) {
	return r.getOne(ctx, `SELECT `+memberColumns+` FROM members WHERE id = $1`, id)
}

// GetByEmail retrieves a member by email
func (r *memberRepo) GetByEmail(ctx context.Context, email string) (*models.Member, error) {
	return r.getOne(ctx, `SELECT `+memberColumns+` FROM members WHERE email = $1`, email)
}

func (r *memberRepo) getOne(ctx context.Context, query string, arg interface{}) (*models.Member, error) {
	var m models.Member
	var phone, street, streetNumber, zipCode, city, dob, gdprToken sql.NullString

	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&m.ID, &m.Name, &m.Surname, &m.Email, &m.GroupID, &m.Status,
		&phone, &street, &streetNumber, &zipCode, &city, &dob,
		&m.GDPRConsent, &gdprToken, &m.Language,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	m.Phone = phone.String
	m.Street = street.String
	m.StreetNumber = streetNumber.String
	m.ZipCode = zipCode.String
	m.City = city.String
	m.DateOfBirth = dob.String
	m.GDPRToken = gdprToken.String

	return &m, nil
}

// Create inserts a new member. A zero identifier lets the database
// assign one; imports always supply their own.
func (r *memberRepo) Create(ctx context.Context, member *models.Member) error {
	if member.ID == 0 {
		query := `
			INSERT INTO members (name, surname, email, group_id, status, phone, street,
				street_number, zip_code, city, date_of_birth, gdpr_consent, gdpr_token, language)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			RETURNING id
		`
		return r.db.QueryRowContext(ctx, query,
			member.Name, member.Surname, member.Email, member.GroupID, member.Status,
			nullString(member.Phone), nullString(member.Street), nullString(member.StreetNumber),
			nullString(member.ZipCode), nullString(member.City), nullString(member.DateOfBirth),
			member.GDPRConsent, nullString(member.GDPRToken), defaultLanguage(member.Language),
		).Scan(&member.ID)
	}

	query := `
		INSERT INTO members (id, name, surname, email, group_id, status, phone, street,
			street_number, zip_code, city, date_of_birth, gdpr_consent, gdpr_token, language)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := r.db.ExecContext(ctx, query,
		member.ID, member.Name, member.Surname, member.Email, member.GroupID, member.Status,
		nullString(member.Phone), nullString(member.Street), nullString(member.StreetNumber),
		nullString(member.ZipCode), nullString(member.City), nullString(member.DateOfBirth),
		member.GDPRConsent, nullString(member.GDPRToken), defaultLanguage(member.Language),
	)
	return err
}

// Update overwrites all fields of the member with the given identifier
func (r *memberRepo) Update(ctx context.Context, member *models.Member) error {
	query := `
		UPDATE members SET
			name = $1, surname = $2, email = $3, group_id = $4, status = $5, phone = $6,
			street = $7, street_number = $8, zip_code = $9, city = $10, date_of_birth = $11,
			gdpr_consent = $12, gdpr_token = $13, language = $14
		WHERE id = $15
	`
	_, err := r.db.ExecContext(ctx, query,
		member.Name, member.Surname, member.Email, member.GroupID, member.Status,
		nullString(member.Phone), nullString(member.Street), nullString(member.StreetNumber),
		nullString(member.ZipCode), nullString(member.City), nullString(member.DateOfBirth),
		member.GDPRConsent, nullString(member.GDPRToken), defaultLanguage(member.Language),
		member.ID,
	)
	return err
}

// Delete removes a member
func (r *memberRepo) Delete(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM members WHERE id = $1`, id)
	return err
}

// CountByGroup returns how many members reference the given group
func (r *memberRepo) CountByGroup(ctx context.Context, groupID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(id) FROM members WHERE group_id = $1`, groupID,
	).Scan(&count)
	return count, err
}

// helper to convert empty string to NULL
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func defaultLanguage(lang string) string {
	if lang == "" {
		return "English"
	}
	return lang
}
