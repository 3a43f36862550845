package service

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/gym-management-api/internal/dto"
	"github.com/noah-isme/gym-management-api/internal/models"
	appErrors "github.com/noah-isme/gym-management-api/pkg/errors"
)

// ValidationMode selects which rules apply to a payload.
type ValidationMode int

const (
	// ModeCreate requires every mandatory field.
	ModeCreate ValidationMode = iota
	// ModeReplace requires identity fields but leaves the rest optional (PUT).
	ModeReplace
	// ModePatch only checks the fields that are present.
	ModePatch
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[\d\s()+\-]+$`)
)

const minPhoneDigits = 10

// NewValidator returns a validator with the gym specific tags registered.
func NewValidator() *validator.Validate {
	v := validator.New()
	registerRules(v)
	return v
}

func registerRules(v *validator.Validate) {
	_ = v.RegisterValidation("gymemail", func(fl validator.FieldLevel) bool {
		return IsValidEmail(fl.Field().String())
	})
	_ = v.RegisterValidation("gymphone", func(fl validator.FieldLevel) bool {
		return IsValidPhone(fl.Field().String())
	})
	_ = v.RegisterValidation("quantity", func(fl validator.FieldLevel) bool {
		n, ok := dto.Number(fl.Field().String()).Int()
		return ok && n >= 1
	})
	_ = v.RegisterValidation("price", func(fl validator.FieldLevel) bool {
		f, ok := dto.Number(fl.Field().String()).Float()
		return ok && f >= 0
	})
}

// IsValidEmail checks the local@domain.tld shape.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// IsValidPhone accepts digits, spaces, parentheses, plus and hyphen with at least ten digits.
func IsValidPhone(phone string) bool {
	if !phonePattern.MatchString(phone) {
		return false
	}
	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= minPhoneDigits
}

type ruleSet struct {
	v    *validator.Validate
	mode ValidationMode
	errs []string
}

func newRuleSet(v *validator.Validate, mode ValidationMode) *ruleSet {
	return &ruleSet{v: v, mode: mode}
}

func (r *ruleSet) check(value interface{}, tag, message string) {
	if err := r.v.Var(value, tag); err != nil {
		r.fail(message)
	}
}

func (r *ruleSet) fail(message string) {
	for _, existing := range r.errs {
		if existing == message {
			return
		}
	}
	r.errs = append(r.errs, message)
}

// required enforces a non-blank string unless the payload is a patch that omits it.
func (r *ruleSet) required(value *string, message string) {
	if value == nil {
		if r.mode != ModePatch {
			r.fail(message)
		}
		return
	}
	r.check(strings.TrimSpace(*value), "required", message)
}

func (r *ruleSet) email(value *string) {
	const message = "Valid email is required"
	if value == nil {
		if r.mode != ModePatch {
			r.fail(message)
		}
		return
	}
	r.check(strings.TrimSpace(*value), "required,gymemail", message)
}

func (r *ruleSet) phone(value *string, message string) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return
	}
	r.check(strings.TrimSpace(*value), "gymphone", message)
}

func (r *ruleSet) oneOf(value *string, allowed []string, message string) {
	if value == nil {
		return
	}
	r.check(strings.TrimSpace(*value), "oneof="+strings.Join(allowed, " "), message)
}

func (r *ruleSet) err() error {
	if len(r.errs) == 0 {
		return nil
	}
	return appErrors.Validation(r.errs)
}

var (
	trainerStatuses   = []string{models.TrainerStatusActive, models.TrainerStatusInactive, models.TrainerStatusOnLeave}
	memberStatuses    = []string{models.MemberStatusActive, models.MemberStatusInactive, models.MemberStatusExpired}
	membershipTypes   = []string{models.MembershipBasic, models.MembershipPremium, models.MembershipVIP, models.MembershipStudent}
	equipmentCategory = []string{models.CategoryCardio, models.CategoryStrength, models.CategoryFreeWeights, models.CategoryFunctional, models.CategoryAccessories}
	equipmentCond     = []string{models.ConditionNew, models.ConditionGood, models.ConditionNeedsRepair, models.ConditionBroken}
	equipmentStatuses = []string{models.EquipmentOperational, models.EquipmentMaintenance, models.EquipmentBroken, models.EquipmentRetired}
)

// ValidateTrainer checks a trainer payload. A specialization is only required on create.
func ValidateTrainer(v *validator.Validate, p dto.TrainerPayload, mode ValidationMode) error {
	r := newRuleSet(v, mode)
	r.required(p.FirstName, "First name is required")
	r.required(p.LastName, "Last name is required")
	r.email(p.Email)
	r.phone(p.Phone, "Invalid phone number")

	if mode == ModeCreate && !hasSpecialization(p) {
		r.fail("At least one specialization is required")
	}

	r.oneOf(p.Status, trainerStatuses, "Status must be one of: "+strings.Join(trainerStatuses, ", "))
	if p.HourlyRate != nil {
		r.check(*p.HourlyRate, "gte=0", "Hourly rate must not be negative")
	}
	return r.err()
}

func hasSpecialization(p dto.TrainerPayload) bool {
	if p.Specialization != nil && strings.TrimSpace(*p.Specialization) != "" {
		return true
	}
	for _, s := range p.Specializations {
		if strings.TrimSpace(s) != "" {
			return true
		}
	}
	return false
}

// ValidateMember checks a member payload.
func ValidateMember(v *validator.Validate, p dto.MemberPayload, mode ValidationMode) error {
	r := newRuleSet(v, mode)
	r.required(p.FirstName, "First name is required")
	r.required(p.LastName, "Last name is required")
	r.email(p.Email)
	r.phone(p.Phone, "Invalid phone number")
	r.required(p.MembershipType, "Membership type is required")
	if p.MembershipType != nil && strings.TrimSpace(*p.MembershipType) != "" {
		r.oneOf(p.MembershipType, membershipTypes, "Membership type must be one of: "+strings.Join(membershipTypes, ", "))
	}
	r.oneOf(p.Status, memberStatuses, "Status must be one of: "+strings.Join(memberStatuses, ", "))
	r.phone(p.EmergencyContactPhone, "Invalid emergency contact phone number")
	return r.err()
}

// ValidateEquipment checks an equipment payload.
func ValidateEquipment(v *validator.Validate, p dto.EquipmentPayload, mode ValidationMode) error {
	r := newRuleSet(v, mode)
	r.required(p.Name, "Equipment name is required")
	r.required(p.Category, "Category is required")
	if p.Category != nil && strings.TrimSpace(*p.Category) != "" {
		r.oneOf(p.Category, equipmentCategory, "Category must be one of: "+strings.Join(equipmentCategory, ", "))
	}

	const quantityMessage = "Valid quantity is required"
	switch {
	case p.Quantity != nil:
		r.check(string(*p.Quantity), "quantity", quantityMessage)
	case mode != ModePatch:
		r.fail(quantityMessage)
	}

	if p.PurchasePrice != nil && !p.PurchasePrice.Empty() {
		r.check(string(*p.PurchasePrice), "price", "Purchase price must be a non-negative number")
	}
	r.oneOf(p.Condition, equipmentCond, "Condition must be one of: "+strings.Join(equipmentCond, ", "))
	r.oneOf(p.Status, equipmentStatuses, "Status must be one of: "+strings.Join(equipmentStatuses, ", "))
	return r.err()
}
