package service

import (
	"strings"

	"github.com/lib/pq"

	"github.com/noah-isme/gym-management-api/internal/dto"
	"github.com/noah-isme/gym-management-api/internal/models"
)

// ReconcileTrainer merges a partial payload into the stored trainer and
// returns the record to persist. Nil payload fields keep the stored value,
// blank optional text clears it, and the specialization list always ends up
// with at least one entry. The input record is not modified.
func ReconcileTrainer(existing models.Trainer, p dto.TrainerPayload) models.Trainer {
	out := existing
	out.Specializations = append(pq.StringArray(nil), existing.Specializations...)
	out.CertificateFiles = append(pq.StringArray(nil), existing.CertificateFiles...)
	out.Certifications = append(models.CommaList(nil), existing.Certifications...)

	mergeRequired(&out.FirstName, p.FirstName)
	mergeRequired(&out.LastName, p.LastName)
	if p.Email != nil && strings.TrimSpace(*p.Email) != "" {
		out.Email = normalizeEmail(*p.Email)
	}
	mergeOptional(&out.Phone, p.Phone)
	mergeOptional(&out.Bio, p.Bio)
	mergeOptional(&out.ProfilePhoto, p.ProfilePhoto)
	mergeRequired(&out.Status, p.Status)
	mergeRequired(&out.Availability, p.Availability)

	if p.Certifications != nil {
		out.Certifications = models.CommaList(normalizeList(*p.Certifications))
	}
	if p.CertificateFiles != nil {
		out.CertificateFiles = pq.StringArray(normalizeFiles(*p.CertificateFiles))
	}
	if p.HireDate != nil {
		out.HireDate = mergeDate(p.HireDate)
	}
	if p.HourlyRate != nil {
		rate := *p.HourlyRate
		out.HourlyRate = &rate
	}

	out.Specializations = resolveSpecializations(existing.Specializations, p.Specialization, p.Specializations)
	return out
}

// resolveSpecializations folds the singular and plural payload fields into the
// canonical list: a non-empty payload list replaces the stored one, a non-empty
// singular value becomes the primary entry, and an empty result falls back to
// the default.
func resolveSpecializations(stored []string, single *string, list []string) pq.StringArray {
	result := normalizeList(list)
	if len(result) == 0 {
		result = normalizeList(stored)
	}
	if single != nil {
		if primary := strings.TrimSpace(*single); primary != "" {
			result = promote(result, primary)
		}
	}
	if len(result) == 0 {
		result = []string{models.DefaultSpecialization}
	}
	return pq.StringArray(result)
}

// promote moves value to the front, matching case-insensitively.
func promote(list []string, value string) []string {
	out := make([]string, 0, len(list)+1)
	out = append(out, value)
	for _, item := range list {
		if !strings.EqualFold(item, value) {
			out = append(out, item)
		}
	}
	return out
}

// normalizeList trims entries, drops blanks and removes case-insensitive
// duplicates keeping the first occurrence.
func normalizeList(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}

// normalizeFiles trims and de-duplicates file references exactly.
func normalizeFiles(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// removedFiles lists entries of before that are missing from after.
func removedFiles(before, after []string) []string {
	keep := make(map[string]struct{}, len(after))
	for _, f := range after {
		keep[f] = struct{}{}
	}
	var removed []string
	for _, f := range before {
		if _, ok := keep[f]; !ok {
			removed = append(removed, f)
		}
	}
	return removed
}

func mergeRequired(dst *string, src *string) {
	if src == nil {
		return
	}
	if v := strings.TrimSpace(*src); v != "" {
		*dst = v
	}
}

func mergeOptional(dst **string, src *string) {
	if src == nil {
		return
	}
	*dst = normalizeOptional(src)
}

func mergeDate(src *models.Date) *models.Date {
	if src == nil || src.IsZero() {
		return nil
	}
	d := *src
	return &d
}

func normalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
