package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/gym-management-api/internal/dto"
	"github.com/noah-isme/gym-management-api/internal/models"
	appErrors "github.com/noah-isme/gym-management-api/pkg/errors"
)

type equipmentRepository interface {
	List(ctx context.Context, filter models.EquipmentFilter) ([]models.Equipment, int, error)
	MaintenanceDue(ctx context.Context, before time.Time) ([]models.Equipment, error)
	FindByID(ctx context.Context, id string) (*models.Equipment, error)
	ExistsBySerial(ctx context.Context, serial, excludeID string) (bool, error)
	Create(ctx context.Context, item *models.Equipment) error
	Update(ctx context.Context, item *models.Equipment) error
	Delete(ctx context.Context, id string) error
}

type imageStorer interface {
	Store(ctx context.Context, kind UploadKind, upload Upload) (dto.UploadedFile, error)
}

// DefaultMaintenanceWindowDays is the look-ahead of the maintenance-due listing.
const DefaultMaintenanceWindowDays = 30

var errDuplicateSerial = appErrors.WithDetails(appErrors.ErrConflict, "serial number already exists")

// EquipmentService orchestrates equipment operations.
type EquipmentService struct {
	repo      equipmentRepository
	images    imageStorer
	validator *validator.Validate
	deps      ServiceDeps
	logger    *zap.Logger
	now       func() time.Time
}

// NewEquipmentService constructs an EquipmentService. images may be nil when
// multipart image uploads are not wired.
func NewEquipmentService(repo equipmentRepository, images imageStorer, validate *validator.Validate, deps ServiceDeps, logger *zap.Logger) *EquipmentService {
	if validate == nil {
		validate = NewValidator()
	} else {
		registerRules(validate)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EquipmentService{repo: repo, images: images, validator: validate, deps: deps, logger: logger, now: time.Now}
}

// List returns equipment in the requested order plus the unpaginated total.
func (s *EquipmentService) List(ctx context.Context, filter models.EquipmentFilter) ([]models.Equipment, int, error) {
	filter.ListOptions = filter.ListOptions.Normalize()
	return cachedList(ctx, s.deps.Cache, ListKey(ResourceEquipment, filter), func() ([]models.Equipment, int, error) {
		items, total, err := s.repo.List(ctx, filter)
		if err != nil {
			return nil, 0, internalError(err, "failed to list equipment")
		}
		return items, total, nil
	})
}

// MaintenanceDue lists items due for maintenance within days from today.
func (s *EquipmentService) MaintenanceDue(ctx context.Context, days int) ([]models.Equipment, error) {
	if days < 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "days must not be negative")
	}
	before := s.now().UTC().AddDate(0, 0, days)
	items, err := s.repo.MaintenanceDue(ctx, before)
	if err != nil {
		return nil, internalError(err, "failed to list maintenance due equipment")
	}
	if items == nil {
		items = []models.Equipment{}
	}
	return items, nil
}

// Get returns an equipment item by id.
func (s *EquipmentService) Get(ctx context.Context, id string) (*models.Equipment, error) {
	key := DetailKey(ResourceEquipment, id)
	var cached models.Equipment
	if s.deps.Cache.Get(ctx, key, &cached) {
		return &cached, nil
	}
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if nf := notFound(err, "Equipment not found"); nf != nil {
			return nil, nf
		}
		return nil, internalError(err, "failed to load equipment")
	}
	s.deps.Cache.Set(ctx, key, item)
	return item, nil
}

// Create validates and stores a new item. An optional image is stored first
// and its URL saved as image_path.
func (s *EquipmentService) Create(ctx context.Context, p dto.EquipmentPayload, image *Upload) (*models.Equipment, error) {
	if err := ValidateEquipment(s.validator, p, ModeCreate); err != nil {
		return nil, err
	}

	item := applyEquipment(models.Equipment{
		Condition: models.ConditionGood,
		Status:    models.EquipmentOperational,
		Quantity:  1,
	}, p)
	if err := s.ensureUniqueSerial(ctx, item.SerialNumber, ""); err != nil {
		return nil, err
	}

	stored, err := s.storeImage(ctx, image)
	if err != nil {
		return nil, err
	}
	if stored != "" {
		item.ImagePath = &stored
	}

	if err := s.repo.Create(ctx, &item); err != nil {
		s.deps.schedule(stored)
		return nil, writeError(err, errDuplicateSerial, "Equipment not found", "failed to create equipment")
	}
	s.afterWrite(ctx, "create")
	s.logger.Info("equipment created", zap.String("equipment_id", item.ID))
	return &item, nil
}

// Update validates the payload, merges present fields and replaces the image
// when a new one is supplied.
func (s *EquipmentService) Update(ctx context.Context, id string, p dto.EquipmentPayload, image *Upload) (*models.Equipment, error) {
	if err := ValidateEquipment(s.validator, p, ModeReplace); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if nf := notFound(err, "Equipment not found"); nf != nil {
			return nil, nf
		}
		return nil, internalError(err, "failed to load equipment")
	}

	merged := applyEquipment(*existing, p)
	if !sameString(merged.SerialNumber, existing.SerialNumber) {
		if err := s.ensureUniqueSerial(ctx, merged.SerialNumber, id); err != nil {
			return nil, err
		}
	}

	stored, err := s.storeImage(ctx, image)
	if err != nil {
		return nil, err
	}
	if stored != "" {
		merged.ImagePath = &stored
	}

	if err := s.repo.Update(ctx, &merged); err != nil {
		s.deps.schedule(stored)
		return nil, writeError(err, errDuplicateSerial, "Equipment not found", "failed to update equipment")
	}
	if existing.ImagePath != nil && !sameString(existing.ImagePath, merged.ImagePath) {
		s.deps.schedule(*existing.ImagePath)
	}
	s.afterWrite(ctx, "update")
	return &merged, nil
}

// Delete removes an item and queues its image for deletion.
func (s *EquipmentService) Delete(ctx context.Context, id string) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if nf := notFound(err, "Equipment not found"); nf != nil {
			return nf
		}
		return internalError(err, "failed to load equipment")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return writeError(err, appErrors.ErrConflict, "Equipment not found", "failed to delete equipment")
	}
	if existing.ImagePath != nil {
		s.deps.schedule(*existing.ImagePath)
	}
	s.afterWrite(ctx, "delete")
	s.logger.Info("equipment deleted", zap.String("equipment_id", id))
	return nil
}

func (s *EquipmentService) storeImage(ctx context.Context, image *Upload) (string, error) {
	if image == nil {
		return "", nil
	}
	if s.images == nil {
		return "", appErrors.Clone(appErrors.ErrValidation, "image uploads are not enabled")
	}
	file, err := s.images.Store(ctx, KindEquipmentImage, *image)
	if err != nil {
		return "", err
	}
	return file.URL, nil
}

// applyEquipment merges present payload fields into e. Numeric fields are
// assumed valid; ValidateEquipment runs first.
func applyEquipment(e models.Equipment, p dto.EquipmentPayload) models.Equipment {
	mergeRequired(&e.Name, p.Name)
	if p.Category != nil && strings.TrimSpace(*p.Category) != "" {
		e.Category = strings.ToLower(strings.TrimSpace(*p.Category))
	}
	mergeOptional(&e.Brand, p.Brand)
	mergeOptional(&e.Model, p.Model)
	mergeOptional(&e.SerialNumber, p.SerialNumber)
	if p.PurchaseDate != nil {
		e.PurchaseDate = mergeDate(p.PurchaseDate)
	}
	if p.PurchasePrice != nil {
		if price, ok := p.PurchasePrice.Float(); ok {
			e.PurchasePrice = &price
		} else if p.PurchasePrice.Empty() {
			e.PurchasePrice = nil
		}
	}
	if p.WarrantyEndDate != nil {
		e.WarrantyEndDate = mergeDate(p.WarrantyEndDate)
	}
	mergeOptional(&e.Location, p.Location)
	mergeRequired(&e.Condition, p.Condition)
	mergeRequired(&e.Status, p.Status)
	if p.LastMaintenanceDate != nil {
		e.LastMaintenanceDate = mergeDate(p.LastMaintenanceDate)
	}
	if p.NextMaintenanceDate != nil {
		e.NextMaintenanceDate = mergeDate(p.NextMaintenanceDate)
	}
	mergeOptional(&e.MaintenanceNotes, p.MaintenanceNotes)
	mergeOptional(&e.Description, p.Description)
	if p.Quantity != nil {
		if q, ok := p.Quantity.Int(); ok && q >= 1 {
			e.Quantity = q
		}
	}
	mergeOptional(&e.ImagePath, p.ImagePath)
	return e
}

func (s *EquipmentService) ensureUniqueSerial(ctx context.Context, serial *string, excludeID string) error {
	if serial == nil {
		return nil
	}
	exists, err := s.repo.ExistsBySerial(ctx, *serial, excludeID)
	if err != nil {
		return internalError(err, "failed to validate serial number")
	}
	if exists {
		return errDuplicateSerial
	}
	return nil
}

func sameString(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (s *EquipmentService) afterWrite(ctx context.Context, op string) {
	s.deps.Cache.InvalidateResource(ctx, ResourceEquipment)
	s.deps.Metrics.RecordWrite(ResourceEquipment, op)
}
