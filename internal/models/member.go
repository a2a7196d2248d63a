package models

// MemberStatus represents a member's standing in the club
type MemberStatus string

const (
	MemberStatusActive   MemberStatus = "Active"
	MemberStatusCanceled MemberStatus = "Canceled"
)

// Member represents a club member. Optional text fields use the empty
// string for absent values; the repository maps those to NULL.
type Member struct {
	ID           int          `json:"id" db:"id"`
	Name         string       `json:"name" db:"name"`
	Surname      string       `json:"surname" db:"surname"`
	Email        string       `json:"email" db:"email"`
	GroupID      string       `json:"group_id" db:"group_id"`
	Status       MemberStatus `json:"status" db:"status"`
	Phone        string       `json:"phone,omitempty" db:"phone"`
	Street       string       `json:"street,omitempty" db:"street"`
	StreetNumber string       `json:"street_number,omitempty" db:"street_number"`
	ZipCode      string       `json:"zip_code,omitempty" db:"zip_code"`
	City         string       `json:"city,omitempty" db:"city"`
	DateOfBirth  string       `json:"date_of_birth,omitempty" db:"date_of_birth"`
	GDPRConsent  bool         `json:"gdpr_consent" db:"gdpr_consent"`
	GDPRToken    string       `json:"gdpr_token,omitempty" db:"gdpr_token"`
	Language     string       `json:"language" db:"language"`

	// GroupTrainer is populated on list reads via the groups join.
	GroupTrainer string `json:"group_trainer,omitempty" db:"-"`
}
