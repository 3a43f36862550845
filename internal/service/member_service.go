package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/gym-management-api/internal/dto"
	"github.com/noah-isme/gym-management-api/internal/models"
	appErrors "github.com/noah-isme/gym-management-api/pkg/errors"
)

type memberRepository interface {
	List(ctx context.Context, filter models.MemberFilter) ([]models.Member, int, error)
	FindByID(ctx context.Context, id string) (*models.Member, error)
	ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error)
	Create(ctx context.Context, member *models.Member) error
	Update(ctx context.Context, member *models.Member) error
	Delete(ctx context.Context, id string) error
}

var errDuplicateMember = appErrors.WithDetails(appErrors.ErrConflict, "email already exists")

// MemberService orchestrates member operations.
type MemberService struct {
	repo      memberRepository
	validator *validator.Validate
	deps      ServiceDeps
	logger    *zap.Logger
}

// NewMemberService constructs a MemberService.
func NewMemberService(repo memberRepository, validate *validator.Validate, deps ServiceDeps, logger *zap.Logger) *MemberService {
	if validate == nil {
		validate = NewValidator()
	} else {
		registerRules(validate)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MemberService{repo: repo, validator: validate, deps: deps, logger: logger}
}

// List returns members newest first plus the unpaginated total.
func (s *MemberService) List(ctx context.Context, filter models.MemberFilter) ([]models.Member, int, error) {
	filter.ListOptions = filter.ListOptions.Normalize()
	return cachedList(ctx, s.deps.Cache, ListKey(ResourceMembers, filter), func() ([]models.Member, int, error) {
		members, total, err := s.repo.List(ctx, filter)
		if err != nil {
			return nil, 0, internalError(err, "failed to list members")
		}
		return members, total, nil
	})
}

// Get returns a member by id.
func (s *MemberService) Get(ctx context.Context, id string) (*models.Member, error) {
	key := DetailKey(ResourceMembers, id)
	var cached models.Member
	if s.deps.Cache.Get(ctx, key, &cached) {
		return &cached, nil
	}
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if nf := notFound(err, "Member not found"); nf != nil {
			return nil, nf
		}
		return nil, internalError(err, "failed to load member")
	}
	s.deps.Cache.Set(ctx, key, member)
	return member, nil
}

// Create validates and stores a new member.
func (s *MemberService) Create(ctx context.Context, p dto.MemberPayload) (*models.Member, error) {
	if err := ValidateMember(s.validator, p, ModeCreate); err != nil {
		return nil, err
	}

	member := applyMember(models.Member{Status: models.MemberStatusActive}, p)
	if err := checkMembershipDates(member); err != nil {
		return nil, err
	}
	if err := s.ensureUniqueEmail(ctx, member.Email, ""); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, &member); err != nil {
		return nil, writeError(err, errDuplicateMember, "Member not found", "failed to create member")
	}
	s.afterWrite(ctx, "create")
	s.logger.Info("member created", zap.String("member_id", member.ID))
	return &member, nil
}

// Update validates the full payload and merges the fields that are present.
func (s *MemberService) Update(ctx context.Context, id string, p dto.MemberPayload) (*models.Member, error) {
	if err := ValidateMember(s.validator, p, ModeReplace); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if nf := notFound(err, "Member not found"); nf != nil {
			return nil, nf
		}
		return nil, internalError(err, "failed to load member")
	}

	merged := applyMember(*existing, p)
	if err := checkMembershipDates(merged); err != nil {
		return nil, err
	}
	if merged.Email != existing.Email {
		if err := s.ensureUniqueEmail(ctx, merged.Email, id); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, &merged); err != nil {
		return nil, writeError(err, errDuplicateMember, "Member not found", "failed to update member")
	}
	if existing.ProfilePhoto != nil && (merged.ProfilePhoto == nil || *merged.ProfilePhoto != *existing.ProfilePhoto) {
		s.deps.schedule(*existing.ProfilePhoto)
	}
	s.afterWrite(ctx, "update")
	return &merged, nil
}

// Delete removes a member.
func (s *MemberService) Delete(ctx context.Context, id string) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if nf := notFound(err, "Member not found"); nf != nil {
			return nf
		}
		return internalError(err, "failed to load member")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return writeError(err, appErrors.ErrConflict, "Member not found", "failed to delete member")
	}
	if existing.ProfilePhoto != nil {
		s.deps.schedule(*existing.ProfilePhoto)
	}
	s.afterWrite(ctx, "delete")
	s.logger.Info("member deleted", zap.String("member_id", id))
	return nil
}

// applyMember merges present payload fields into m. When the stored start or
// type takes a new value without an explicit end date, or no end date is
// stored, the end date is derived from the membership duration.
func applyMember(m models.Member, p dto.MemberPayload) models.Member {
	prevStart, prevType := m.MembershipStartDate, m.MembershipType
	mergeRequired(&m.FirstName, p.FirstName)
	mergeRequired(&m.LastName, p.LastName)
	if p.Email != nil && strings.TrimSpace(*p.Email) != "" {
		m.Email = normalizeEmail(*p.Email)
	}
	mergeOptional(&m.Phone, p.Phone)
	if p.DateOfBirth != nil {
		m.DateOfBirth = mergeDate(p.DateOfBirth)
	}
	if p.MembershipType != nil && strings.TrimSpace(*p.MembershipType) != "" {
		m.MembershipType = strings.ToLower(strings.TrimSpace(*p.MembershipType))
	}
	if p.MembershipStartDate != nil {
		m.MembershipStartDate = mergeDate(p.MembershipStartDate)
	}
	if p.MembershipEndDate != nil {
		m.MembershipEndDate = mergeDate(p.MembershipEndDate)
	}
	mergeRequired(&m.Status, p.Status)
	mergeOptional(&m.EmergencyContactName, p.EmergencyContactName)
	mergeOptional(&m.EmergencyContactPhone, p.EmergencyContactPhone)
	mergeOptional(&m.MedicalConditions, p.MedicalConditions)
	mergeOptional(&m.ProfilePhoto, p.ProfilePhoto)

	startChanged := m.MembershipType != prevType || !sameDate(m.MembershipStartDate, prevStart)
	if m.MembershipStartDate != nil && p.MembershipEndDate == nil && (m.MembershipEndDate == nil || startChanged) {
		m.MembershipEndDate = MembershipEndDate(*m.MembershipStartDate, m.MembershipType)
	}
	return m
}

func sameDate(a, b *models.Date) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(b.Time)
}

// MembershipEndDate derives the end of a membership from its start and type.
// Unknown types yield nil.
func MembershipEndDate(start models.Date, membershipType string) *models.Date {
	months, ok := models.MembershipDurations[membershipType]
	if !ok {
		return nil
	}
	end := models.NewDate(start.AddDate(0, months, 0))
	return &end
}

func checkMembershipDates(m models.Member) error {
	if m.MembershipStartDate == nil || m.MembershipEndDate == nil {
		return nil
	}
	if !m.MembershipEndDate.After(m.MembershipStartDate.Time) {
		return appErrors.Validation([]string{"End date must be after start date"})
	}
	return nil
}

func (s *MemberService) ensureUniqueEmail(ctx context.Context, email, excludeID string) error {
	exists, err := s.repo.ExistsByEmail(ctx, email, excludeID)
	if err != nil {
		return internalError(err, "failed to validate member email")
	}
	if exists {
		return errDuplicateMember
	}
	return nil
}

func (s *MemberService) afterWrite(ctx context.Context, op string) {
	s.deps.Cache.InvalidateResource(ctx, ResourceMembers)
	s.deps.Metrics.RecordWrite(ResourceMembers, op)
}
