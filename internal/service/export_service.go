package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/gym-management-api/internal/models"
	appErrors "github.com/noah-isme/gym-management-api/pkg/errors"
	"github.com/noah-isme/gym-management-api/pkg/export"
)

type trainerLister interface {
	List(ctx context.Context, filter models.TrainerFilter) ([]models.Trainer, int, error)
}

type memberLister interface {
	List(ctx context.Context, filter models.MemberFilter) ([]models.Member, int, error)
}

type equipmentLister interface {
	List(ctx context.Context, filter models.EquipmentFilter) ([]models.Equipment, int, error)
}

// ExportFile is a rendered export ready to be streamed.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders resource rosters as CSV or PDF.
type ExportService struct {
	trainers  trainerLister
	members   memberLister
	equipment equipmentLister
	logger    *zap.Logger
	now       func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(trainers trainerLister, members memberLister, equipment equipmentLister, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{trainers: trainers, members: members, equipment: equipment, logger: logger, now: time.Now}
}

// Export renders every record of resource in the requested format.
func (s *ExportService) Export(ctx context.Context, resource, rawFormat string) (*ExportFile, error) {
	format, err := export.ParseFormat(rawFormat)
	if err != nil {
		return nil, appErrors.WithDetails(appErrors.ErrValidation, "format must be one of: csv, pdf")
	}

	var dataset export.Dataset
	switch resource {
	case ResourceTrainers:
		dataset, err = s.trainerDataset(ctx)
	case ResourceMembers:
		dataset, err = s.memberDataset(ctx)
	case ResourceEquipment:
		dataset, err = s.equipmentDataset(ctx)
	default:
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("unknown export resource %q", resource))
	}
	if err != nil {
		return nil, internalError(err, "failed to load export data")
	}

	payload, err := export.Render(format, dataset)
	if err != nil {
		return nil, internalError(err, "failed to render export")
	}
	s.logger.Info("export rendered",
		zap.String("resource", resource),
		zap.String("format", string(format)),
		zap.Int("rows", len(dataset.Rows)),
	)

	return &ExportFile{
		Filename:    fmt.Sprintf("%s_%s.%s", resource, s.now().UTC().Format("20060102_150405"), format),
		ContentType: format.ContentType(),
		Data:        payload,
	}, nil
}

func (s *ExportService) trainerDataset(ctx context.Context) (export.Dataset, error) {
	trainers, _, err := s.trainers.List(ctx, models.TrainerFilter{})
	if err != nil {
		return export.Dataset{}, err
	}
	data := export.Dataset{
		Title:   "Trainers",
		Headers: []string{"Name", "Email", "Phone", "Specializations", "Status", "Availability", "Hire Date", "Hourly Rate"},
	}
	for _, t := range trainers {
		data.Rows = append(data.Rows, map[string]string{
			"Name":            t.FullName(),
			"Email":           t.Email,
			"Phone":           deref(t.Phone),
			"Specializations": strings.Join(t.Specializations, ", "),
			"Status":          t.Status,
			"Availability":    t.Availability,
			"Hire Date":       formatDate(t.HireDate),
			"Hourly Rate":     formatAmount(t.HourlyRate),
		})
	}
	return data, nil
}

func (s *ExportService) memberDataset(ctx context.Context) (export.Dataset, error) {
	members, _, err := s.members.List(ctx, models.MemberFilter{})
	if err != nil {
		return export.Dataset{}, err
	}
	data := export.Dataset{
		Title:   "Members",
		Headers: []string{"Name", "Email", "Phone", "Membership", "Start", "End", "Status"},
	}
	for _, m := range members {
		data.Rows = append(data.Rows, map[string]string{
			"Name":       m.FullName(),
			"Email":      m.Email,
			"Phone":      deref(m.Phone),
			"Membership": m.MembershipType,
			"Start":      formatDate(m.MembershipStartDate),
			"End":        formatDate(m.MembershipEndDate),
			"Status":     m.Status,
		})
	}
	return data, nil
}

func (s *ExportService) equipmentDataset(ctx context.Context) (export.Dataset, error) {
	items, _, err := s.equipment.List(ctx, models.EquipmentFilter{OrderBy: "name"})
	if err != nil {
		return export.Dataset{}, err
	}
	data := export.Dataset{
		Title:   "Equipment",
		Headers: []string{"Name", "Category", "Serial", "Location", "Condition", "Status", "Quantity", "Next Maintenance"},
	}
	for _, e := range items {
		data.Rows = append(data.Rows, map[string]string{
			"Name":             e.Name,
			"Category":         e.Category,
			"Serial":           deref(e.SerialNumber),
			"Location":         deref(e.Location),
			"Condition":        e.Condition,
			"Status":           e.Status,
			"Quantity":         strconv.Itoa(e.Quantity),
			"Next Maintenance": formatDate(e.NextMaintenanceDate),
		})
	}
	return data, nil
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func formatDate(d *models.Date) string {
	if d == nil || d.IsZero() {
		return ""
	}
	return d.String()
}

func formatAmount(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}
