package models

import "time"

// Equipment categories.
const (
	CategoryCardio      = "cardio"
	CategoryStrength    = "strength"
	CategoryFreeWeights = "free_weights"
	CategoryFunctional  = "functional"
	CategoryAccessories = "accessories"
)

// Equipment conditions.
const (
	ConditionNew         = "new"
	ConditionGood        = "good"
	ConditionNeedsRepair = "needs_repair"
	ConditionBroken      = "broken"
)

// Equipment statuses.
const (
	EquipmentOperational = "operational"
	EquipmentMaintenance = "maintenance"
	EquipmentBroken      = "broken"
	EquipmentRetired     = "retired"
)

// Equipment represents an inventory item.
type Equipment struct {
	ID                  string    `db:"id" json:"id"`
	Name                string    `db:"name" json:"name"`
	Category            string    `db:"category" json:"category"`
	Brand               *string   `db:"brand" json:"brand,omitempty"`
	Model               *string   `db:"model" json:"model,omitempty"`
	SerialNumber        *string   `db:"serial_number" json:"serial_number,omitempty"`
	PurchaseDate        *Date     `db:"purchase_date" json:"purchase_date,omitempty"`
	PurchasePrice       *float64  `db:"purchase_price" json:"purchase_price,omitempty"`
	WarrantyEndDate     *Date     `db:"warranty_end_date" json:"warranty_end_date,omitempty"`
	Location            *string   `db:"location" json:"location,omitempty"`
	Condition           string    `db:"condition" json:"condition"`
	Status              string    `db:"status" json:"status"`
	LastMaintenanceDate *Date     `db:"last_maintenance_date" json:"last_maintenance_date,omitempty"`
	NextMaintenanceDate *Date     `db:"next_maintenance_date" json:"next_maintenance_date,omitempty"`
	MaintenanceNotes    *string   `db:"maintenance_notes" json:"maintenance_notes,omitempty"`
	Description         *string   `db:"description" json:"description,omitempty"`
	Quantity            int       `db:"quantity" json:"quantity"`
	ImagePath           *string   `db:"image_path" json:"image_path,omitempty"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time `db:"updated_at" json:"updated_at"`
}

// EquipmentFilter captures filtering options for listing equipment.
type EquipmentFilter struct {
	Category  string
	Status    string
	Condition string
	Search    string
	OrderBy   string
	ListOptions
}
