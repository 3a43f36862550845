package dto

import "github.com/noah-isme/gym-management-api/internal/models"

// TrainerPayload is the body of trainer create, replace and patch requests.
// Pointer fields distinguish "absent or null" (nil, keep stored value) from
// an explicit value.
type TrainerPayload struct {
	FirstName        *string           `json:"first_name"`
	LastName         *string           `json:"last_name"`
	Email            *string           `json:"email"`
	Phone            *string           `json:"phone"`
	Specialization   *string           `json:"specialization"`
	Specializations  []string          `json:"specializations"`
	Certifications   *models.CommaList `json:"certifications"`
	CertificateFiles *[]string         `json:"certificate_files"`
	HireDate         *models.Date      `json:"hire_date"`
	HourlyRate       *float64          `json:"hourly_rate"`
	Bio              *string           `json:"bio"`
	Status           *string           `json:"status"`
	Availability     *string           `json:"availability"`
	ProfilePhoto     *string           `json:"profile_photo"`
}
