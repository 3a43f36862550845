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

const memberColumns = `id, first_name, last_name, email, phone, date_of_birth, membership_type, membership_start_date, membership_end_date, status, emergency_contact_name, emergency_contact_phone, medical_conditions, profile_photo, created_at, updated_at`

// MemberRepository manages persistence for members.
type MemberRepository struct {
	db *sqlx.DB
}

// NewMemberRepository constructs a MemberRepository.
func NewMemberRepository(db *sqlx.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// List returns members matching filters, newest first, along with the total count.
func (r *MemberRepository) List(ctx context.Context, filter models.MemberFilter) ([]models.Member, int, error) {
	base := "FROM members WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	if filter.MembershipType != "" {
		conditions = append(conditions, fmt.Sprintf("membership_type = $%d", len(args)+1))
		args = append(args, filter.MembershipType)
	}
	if filter.Search != "" {
		search := "%" + strings.ToLower(filter.Search) + "%"
		conditions = append(conditions, fmt.Sprintf("(LOWER(first_name) LIKE $%d OR LOWER(last_name) LIKE $%d OR LOWER(email) LIKE $%d)", len(args)+1, len(args)+1, len(args)+1))
		args = append(args, search)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	query := paginate(fmt.Sprintf("SELECT %s %s ORDER BY created_at DESC", memberColumns, base), filter.ListOptions)
	var members []models.Member
	if err := r.db.SelectContext(ctx, &members, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list members: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) "+base, args...); err != nil {
		return nil, 0, fmt.Errorf("count members: %w", err)
	}

	return members, total, nil
}

// FindByID fetches a member by ID.
func (r *MemberRepository) FindByID(ctx context.Context, id string) (*models.Member, error) {
	query := fmt.Sprintf("SELECT %s FROM members WHERE id = $1", memberColumns)
	var member models.Member
	if err := r.db.GetContext(ctx, &member, query, id); err != nil {
		return nil, err
	}
	return &member, nil
}

// ExistsByEmail checks if another member uses the same email.
func (r *MemberRepository) ExistsByEmail(ctx context.Context, email string, excludeID string) (bool, error) {
	query := "SELECT 1 FROM members WHERE LOWER(email) = LOWER($1)"
	args := []interface{}{email}
	if excludeID != "" {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check member email: %w", err)
	}
	return true, nil
}

// Create inserts a new member record.
func (r *MemberRepository) Create(ctx context.Context, member *models.Member) error {
	if member.ID == "" {
		member.ID = uuid.NewString()
	}
	now := time.Now().UTC().Truncate(time.Microsecond)
	if member.CreatedAt.IsZero() {
		member.CreatedAt = now
	}
	member.UpdatedAt = now

	const query = `INSERT INTO members (id, first_name, last_name, email, phone, date_of_birth, membership_type, membership_start_date, membership_end_date, status, emergency_contact_name, emergency_contact_phone, medical_conditions, profile_photo, created_at, updated_at)
		VALUES (:id, :first_name, :last_name, :email, :phone, :date_of_birth, :membership_type, :membership_start_date, :membership_end_date, :status, :emergency_contact_name, :emergency_contact_phone, :medical_conditions, :profile_photo, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, member); err != nil {
		return fmt.Errorf("create member: %w", err)
	}
	return nil
}

// Update modifies an existing member record.
func (r *MemberRepository) Update(ctx context.Context, member *models.Member) error {
	member.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)
	const query = `UPDATE members SET first_name = :first_name, last_name = :last_name, email = :email, phone = :phone,
		date_of_birth = :date_of_birth, membership_type = :membership_type, membership_start_date = :membership_start_date,
		membership_end_date = :membership_end_date, status = :status, emergency_contact_name = :emergency_contact_name,
		emergency_contact_phone = :emergency_contact_phone, medical_conditions = :medical_conditions,
		profile_photo = :profile_photo, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, member)
	if err != nil {
		return fmt.Errorf("update member: %w", err)
	}
	return requireAffected(res)
}

// Delete removes a member permanently.
func (r *MemberRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	return requireAffected(res)
}
