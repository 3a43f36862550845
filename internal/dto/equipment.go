package dto

import "github.com/noah-isme/gym-management-api/internal/models"

// EquipmentPayload is the body of equipment create and update requests, sent
// either as JSON or as multipart form fields next to an "image" file.
type EquipmentPayload struct {
	Name                *string      `json:"name" form:"name"`
	Category            *string      `json:"category" form:"category"`
	Brand               *string      `json:"brand" form:"brand"`
	Model               *string      `json:"model" form:"model"`
	SerialNumber        *string      `json:"serial_number" form:"serial_number"`
	PurchaseDate        *models.Date `json:"purchase_date" form:"purchase_date"`
	PurchasePrice       *Number      `json:"purchase_price" form:"purchase_price"`
	WarrantyEndDate     *models.Date `json:"warranty_end_date" form:"warranty_end_date"`
	Location            *string      `json:"location" form:"location"`
	Condition           *string      `json:"condition" form:"condition"`
	Status              *string      `json:"status" form:"status"`
	LastMaintenanceDate *models.Date `json:"last_maintenance_date" form:"last_maintenance_date"`
	NextMaintenanceDate *models.Date `json:"next_maintenance_date" form:"next_maintenance_date"`
	MaintenanceNotes    *string      `json:"maintenance_notes" form:"maintenance_notes"`
	Description         *string      `json:"description" form:"description"`
	Quantity            *Number      `json:"quantity" form:"quantity"`
	ImagePath           *string      `json:"image_path" form:"image_path"`
}
