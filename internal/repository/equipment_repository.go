package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/gym-management-api/internal/models"
)

const equipmentColumns = `id, name, category, brand, model, serial_number, purchase_date, purchase_price, warranty_end_date, location, condition, status, last_maintenance_date, next_maintenance_date, maintenance_notes, description, quantity, image_path, created_at, updated_at`

var equipmentSorts = map[string]string{
	"name":                  "name",
	"category":              "category",
	"status":                "status",
	"condition":             "condition",
	"quantity":              "quantity",
	"purchase_date":         "purchase_date",
	"next_maintenance_date": "next_maintenance_date",
	"created_at":            "created_at",
	"updated_at":            "updated_at",
}

// EquipmentRepository manages persistence for gym equipment.
type EquipmentRepository struct {
	db *sqlx.DB
}

// NewEquipmentRepository constructs an EquipmentRepository.
func NewEquipmentRepository(db *sqlx.DB) *EquipmentRepository {
	return &EquipmentRepository{db: db}
}

// List returns equipment matching filters along with the total count.
func (r *EquipmentRepository) List(ctx context.Context, filter models.EquipmentFilter) ([]models.Equipment, int, error) {
	base := "FROM equipment WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)+1))
		args = append(args, filter.Category)
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	if filter.Condition != "" {
		conditions = append(conditions, fmt.Sprintf("condition = $%d", len(args)+1))
		args = append(args, filter.Condition)
	}
	if filter.Search != "" {
		search := "%" + strings.ToLower(filter.Search) + "%"
		conditions = append(conditions, fmt.Sprintf("(LOWER(name) LIKE $%d OR LOWER(COALESCE(brand, '')) LIKE $%d OR LOWER(COALESCE(model, '')) LIKE $%d OR LOWER(COALESCE(serial_number, '')) LIKE $%d)", len(args)+1, len(args)+1, len(args)+1, len(args)+1))
		args = append(args, search)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	column, order := equipmentOrder(filter.OrderBy)
	query := paginate(fmt.Sprintf("SELECT %s %s ORDER BY %s %s, id", equipmentColumns, base, column, order), filter.ListOptions)
	var items []models.Equipment
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list equipment: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) "+base, args...); err != nil {
		return nil, 0, fmt.Errorf("count equipment: %w", err)
	}

	return items, total, nil
}

// equipmentOrder maps "name" or "-name" style sort keys to a column and direction.
func equipmentOrder(raw string) (string, string) {
	raw = strings.TrimSpace(raw)
	order := "ASC"
	if strings.HasPrefix(raw, "-") {
		order = "DESC"
		raw = strings.TrimPrefix(raw, "-")
	}
	column, ok := equipmentSorts[raw]
	if !ok {
		return "created_at", "DESC"
	}
	return column, order
}

// MaintenanceDue lists active equipment whose next maintenance falls on or before the given day.
func (r *EquipmentRepository) MaintenanceDue(ctx context.Context, before time.Time) ([]models.Equipment, error) {
	query := fmt.Sprintf(`SELECT %s FROM equipment WHERE next_maintenance_date IS NOT NULL AND next_maintenance_date <= $1 AND status <> $2 ORDER BY next_maintenance_date ASC, name ASC`, equipmentColumns)
	var items []models.Equipment
	if err := r.db.SelectContext(ctx, &items, query, models.NewDate(before), models.EquipmentRetired); err != nil {
		return nil, fmt.Errorf("list maintenance due: %w", err)
	}
	return items, nil
}

// FindByID fetches an equipment item by ID.
func (r *EquipmentRepository) FindByID(ctx context.Context, id string) (*models.Equipment, error) {
	query := fmt.Sprintf("SELECT %s FROM equipment WHERE id = $1", equipmentColumns)
	var item models.Equipment
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		return nil, err
	}
	return &item, nil
}

// ExistsBySerial checks if another item carries the same serial number.
func (r *EquipmentRepository) ExistsBySerial(ctx context.Context, serial string, excludeID string) (bool, error) {
	if strings.TrimSpace(serial) == "" {
		return false, nil
	}
	query := "SELECT 1 FROM equipment WHERE serial_number = $1"
	args := []interface{}{serial}
	if excludeID != "" {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check equipment serial: %w", err)
	}
	return true, nil
}

// Create inserts a new equipment record.
func (r *EquipmentRepository) Create(ctx context.Context, item *models.Equipment) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	now := time.Now().UTC().Truncate(time.Microsecond)
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	const query = `INSERT INTO equipment (id, name, category, brand, model, serial_number, purchase_date, purchase_price, warranty_end_date, location, condition, status, last_maintenance_date, next_maintenance_date, maintenance_notes, description, quantity, image_path, created_at, updated_at)
		VALUES (:id, :name, :category, :brand, :model, :serial_number, :purchase_date, :purchase_price, :warranty_end_date, :location, :condition, :status, :last_maintenance_date, :next_maintenance_date, :maintenance_notes, :description, :quantity, :image_path, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("create equipment: %w", err)
	}
	return nil
}

// Update modifies an existing equipment record.
func (r *EquipmentRepository) Update(ctx context.Context, item *models.Equipment) error {
	item.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)
	const query = `UPDATE equipment SET name = :name, category = :category, brand = :brand, model = :model,
		serial_number = :serial_number, purchase_date = :purchase_date, purchase_price = :purchase_price,
		warranty_end_date = :warranty_end_date, location = :location, condition = :condition, status = :status,
		last_maintenance_date = :last_maintenance_date, next_maintenance_date = :next_maintenance_date,
		maintenance_notes = :maintenance_notes, description = :description, quantity = :quantity,
		image_path = :image_path, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, item)
	if err != nil {
		return fmt.Errorf("update equipment: %w", err)
	}
	return requireAffected(res)
}

// Delete removes an equipment item permanently.
func (r *EquipmentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM equipment WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete equipment: %w", err)
	}
	return requireAffected(res)
}
