package dto

import "github.com/noah-isme/gym-management-api/internal/models"

// MemberPayload is the body of member create and update requests.
type MemberPayload struct {
	FirstName             *string      `json:"first_name"`
	LastName              *string      `json:"last_name"`
	Email                 *string      `json:"email"`
	Phone                 *string      `json:"phone"`
	DateOfBirth           *models.Date `json:"date_of_birth"`
	MembershipType        *string      `json:"membership_type"`
	MembershipStartDate   *models.Date `json:"membership_start_date"`
	MembershipEndDate     *models.Date `json:"membership_end_date"`
	Status                *string      `json:"status"`
	EmergencyContactName  *string      `json:"emergency_contact_name"`
	EmergencyContactPhone *string      `json:"emergency_contact_phone"`
	MedicalConditions     *string      `json:"medical_conditions"`
	ProfilePhoto          *string      `json:"profile_photo"`
}
