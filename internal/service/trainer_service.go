package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/gym-management-api/internal/dto"
	"github.com/noah-isme/gym-management-api/internal/models"
	appErrors "github.com/noah-isme/gym-management-api/pkg/errors"
)

type trainerRepository interface {
	List(ctx context.Context, filter models.TrainerFilter) ([]models.Trainer, int, error)
	FindByID(ctx context.Context, id string) (*models.Trainer, error)
	ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error)
	Create(ctx context.Context, trainer *models.Trainer) error
	Update(ctx context.Context, trainer *models.Trainer, expected *time.Time) error
	AppendCertificateFiles(ctx context.Context, id string, files []string) (*models.Trainer, error)
	Delete(ctx context.Context, id string) error
}

var errDuplicateTrainerEmail = appErrors.WithDetails(appErrors.ErrDuplicateEmail, "Email already exists")

// TrainerService orchestrates trainer operations.
type TrainerService struct {
	repo      trainerRepository
	validator *validator.Validate
	deps      ServiceDeps
	logger    *zap.Logger
}

// NewTrainerService constructs a TrainerService.
func NewTrainerService(repo trainerRepository, validate *validator.Validate, deps ServiceDeps, logger *zap.Logger) *TrainerService {
	if validate == nil {
		validate = NewValidator()
	} else {
		registerRules(validate)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TrainerService{repo: repo, validator: validate, deps: deps, logger: logger}
}

// List returns trainers newest first plus the unpaginated total.
func (s *TrainerService) List(ctx context.Context, filter models.TrainerFilter) ([]models.Trainer, int, error) {
	filter.ListOptions = filter.ListOptions.Normalize()
	return cachedList(ctx, s.deps.Cache, ListKey(ResourceTrainers, filter), func() ([]models.Trainer, int, error) {
		trainers, total, err := s.repo.List(ctx, filter)
		if err != nil {
			return nil, 0, internalError(err, "failed to list trainers")
		}
		return trainers, total, nil
	})
}

// Get returns a trainer by id.
func (s *TrainerService) Get(ctx context.Context, id string) (*models.Trainer, error) {
	key := DetailKey(ResourceTrainers, id)
	var cached models.Trainer
	if s.deps.Cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	trainer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if nf := notFound(err, "Trainer not found"); nf != nil {
			return nil, nf
		}
		return nil, internalError(err, "failed to load trainer")
	}
	s.deps.Cache.Set(ctx, key, trainer)
	return trainer, nil
}

// Create validates and stores a new trainer.
func (s *TrainerService) Create(ctx context.Context, p dto.TrainerPayload) (*models.Trainer, error) {
	if err := ValidateTrainer(s.validator, p, ModeCreate); err != nil {
		return nil, err
	}

	trainer := ReconcileTrainer(models.Trainer{
		Status:       models.TrainerStatusActive,
		Availability: models.DefaultAvailability,
	}, p)
	if err := s.ensureUniqueEmail(ctx, trainer.Email, ""); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, &trainer); err != nil {
		return nil, writeError(err, errDuplicateTrainerEmail, "Trainer not found", "failed to create trainer")
	}

	s.afterWrite(ctx, "create", trainer.ID)
	s.logger.Info("trainer created", zap.String("trainer_id", trainer.ID))
	return &trainer, nil
}

// Update applies a PUT (ModeReplace) or PATCH (ModePatch) payload. A non-empty
// ifMatch must equal the stored ETag, otherwise nothing is written.
func (s *TrainerService) Update(ctx context.Context, id string, p dto.TrainerPayload, mode ValidationMode, ifMatch string) (*models.Trainer, error) {
	if err := ValidateTrainer(s.validator, p, mode); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if nf := notFound(err, "Trainer not found"); nf != nil {
			return nil, nf
		}
		return nil, internalError(err, "failed to load trainer")
	}

	var expected *time.Time
	if ifMatch != "" {
		if !ETagMatches(ifMatch, ETag(existing.UpdatedAt)) {
			return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "Trainer was modified by another request")
		}
		stamp := existing.UpdatedAt
		expected = &stamp
	}

	merged := ReconcileTrainer(*existing, p)
	if merged.Email != existing.Email {
		if err := s.ensureUniqueEmail(ctx, merged.Email, id); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, &merged, expected); err != nil {
		if expected != nil && errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "Trainer was modified by another request")
		}
		return nil, writeError(err, errDuplicateTrainerEmail, "Trainer not found", "failed to update trainer")
	}

	orphans := removedFiles(existing.CertificateFiles, merged.CertificateFiles)
	if existing.ProfilePhoto != nil && (merged.ProfilePhoto == nil || *merged.ProfilePhoto != *existing.ProfilePhoto) {
		orphans = append(orphans, *existing.ProfilePhoto)
	}
	s.deps.schedule(orphans...)

	s.afterWrite(ctx, "update", id)
	return &merged, nil
}

// AddCertificates appends stored certificate URLs to a trainer.
func (s *TrainerService) AddCertificates(ctx context.Context, id string, urls []string) (*models.Trainer, error) {
	trainer, err := s.repo.AppendCertificateFiles(ctx, id, urls)
	if err != nil {
		s.deps.schedule(urls...)
		if nf := notFound(err, "Trainer not found"); nf != nil {
			return nil, nf
		}
		return nil, internalError(err, "failed to attach certificates")
	}
	s.afterWrite(ctx, "update", id)
	return trainer, nil
}

// Delete removes a trainer and queues its stored files for deletion.
func (s *TrainerService) Delete(ctx context.Context, id string) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if nf := notFound(err, "Trainer not found"); nf != nil {
			return nf
		}
		return internalError(err, "failed to load trainer")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return writeError(err, appErrors.ErrConflict, "Trainer not found", "failed to delete trainer")
	}

	files := append([]string{}, existing.CertificateFiles...)
	if existing.ProfilePhoto != nil {
		files = append(files, *existing.ProfilePhoto)
	}
	s.deps.schedule(files...)

	s.afterWrite(ctx, "delete", id)
	s.logger.Info("trainer deleted", zap.String("trainer_id", id))
	return nil
}

func (s *TrainerService) ensureUniqueEmail(ctx context.Context, email, excludeID string) error {
	exists, err := s.repo.ExistsByEmail(ctx, email, excludeID)
	if err != nil {
		return internalError(err, "failed to validate trainer email")
	}
	if exists {
		return errDuplicateTrainerEmail
	}
	return nil
}

func (s *TrainerService) afterWrite(ctx context.Context, op, id string) {
	s.deps.Cache.InvalidateResource(ctx, ResourceTrainers)
	s.deps.Metrics.RecordWrite(ResourceTrainers, op)
	s.logger.Debug("trainer written", zap.String("op", op), zap.String("trainer_id", id))
}
