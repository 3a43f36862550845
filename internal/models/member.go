package models

import (
	"strings"
	"time"
)

// Membership types and their default durations in months.
const (
	MembershipBasic   = "basic"
	MembershipPremium = "premium"
	MembershipVIP     = "vip"
	MembershipStudent = "student"
)

// MembershipDurations maps a membership type to its length in months.
var MembershipDurations = map[string]int{
	MembershipBasic:   1,
	MembershipPremium: 6,
	MembershipVIP:     12,
	MembershipStudent: 3,
}

// Member statuses.
const (
	MemberStatusActive   = "active"
	MemberStatusInactive = "inactive"
	MemberStatusExpired  = "expired"
)

// Member represents a gym member.
type Member struct {
	ID                    string    `db:"id" json:"id"`
	FirstName             string    `db:"first_name" json:"first_name"`
	LastName              string    `db:"last_name" json:"last_name"`
	Email                 string    `db:"email" json:"email"`
	Phone                 *string   `db:"phone" json:"phone,omitempty"`
	DateOfBirth           *Date     `db:"date_of_birth" json:"date_of_birth,omitempty"`
	MembershipType        string    `db:"membership_type" json:"membership_type"`
	MembershipStartDate   *Date     `db:"membership_start_date" json:"membership_start_date,omitempty"`
	MembershipEndDate     *Date     `db:"membership_end_date" json:"membership_end_date,omitempty"`
	Status                string    `db:"status" json:"status"`
	EmergencyContactName  *string   `db:"emergency_contact_name" json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone *string   `db:"emergency_contact_phone" json:"emergency_contact_phone,omitempty"`
	MedicalConditions     *string   `db:"medical_conditions" json:"medical_conditions,omitempty"`
	ProfilePhoto          *string   `db:"profile_photo" json:"profile_photo,omitempty"`
	CreatedAt             time.Time `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time `db:"updated_at" json:"updated_at"`
}

// FullName joins first and last name.
func (m Member) FullName() string {
	return strings.TrimSpace(m.FirstName + " " + m.LastName)
}

// MemberFilter captures filtering options for listing members.
type MemberFilter struct {
	Search         string
	Status         string
	MembershipType string
	ListOptions
}
