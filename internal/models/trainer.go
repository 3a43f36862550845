package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/lib/pq"
)

// DefaultSpecialization is used when a trainer has no usable specialization.
const DefaultSpecialization = "General Training"

// Trainer statuses.
const (
	TrainerStatusActive   = "active"
	TrainerStatusInactive = "inactive"
	TrainerStatusOnLeave  = "on_leave"
)

// DefaultAvailability is assigned to new trainers without an explicit availability.
const DefaultAvailability = "Full Day"

// Trainer represents a gym trainer. Specializations is the single canonical list;
// the legacy singular field is derived from its first element when serialised.
type Trainer struct {
	ID               string         `db:"id" json:"id"`
	FirstName        string         `db:"first_name" json:"first_name"`
	LastName         string         `db:"last_name" json:"last_name"`
	Email            string         `db:"email" json:"email"`
	Phone            *string        `db:"phone" json:"phone,omitempty"`
	Specializations  pq.StringArray `db:"specializations" json:"specializations"`
	Certifications   CommaList      `db:"certifications" json:"certifications"`
	CertificateFiles pq.StringArray `db:"certificate_files" json:"certificate_files"`
	HireDate         *Date          `db:"hire_date" json:"hire_date,omitempty"`
	HourlyRate       *float64       `db:"hourly_rate" json:"hourly_rate,omitempty"`
	Bio              *string        `db:"bio" json:"bio,omitempty"`
	Status           string         `db:"status" json:"status"`
	Availability     string         `db:"availability" json:"availability"`
	ProfilePhoto     *string        `db:"profile_photo" json:"profile_photo,omitempty"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at" json:"updated_at"`
}

// Specialization returns the primary specialization.
func (t Trainer) Specialization() string {
	if len(t.Specializations) == 0 {
		return ""
	}
	return t.Specializations[0]
}

// FullName joins first and last name.
func (t Trainer) FullName() string {
	return strings.TrimSpace(t.FirstName + " " + t.LastName)
}

// MarshalJSON adds the derived "specialization" key and renders empty lists as [].
func (t Trainer) MarshalJSON() ([]byte, error) {
	type plain Trainer
	out := plain(t)
	if out.Specializations == nil {
		out.Specializations = pq.StringArray{}
	}
	if out.CertificateFiles == nil {
		out.CertificateFiles = pq.StringArray{}
	}
	return json.Marshal(struct {
		plain
		Specialization string `json:"specialization"`
	}{plain: out, Specialization: t.Specialization()})
}

// TrainerFilter captures filtering options for listing trainers.
type TrainerFilter struct {
	Search         string
	Status         string
	Specialization string
	ListOptions
}
