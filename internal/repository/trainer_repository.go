package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/gym-management-api/internal/models"
)

const trainerColumns = `id, first_name, last_name, email, phone, specializations, certifications, certificate_files, hire_date, hourly_rate, bio, status, availability, profile_photo, created_at, updated_at`

// TrainerRepository manages persistence for trainers.
type TrainerRepository struct {
	db *sqlx.DB
}

// NewTrainerRepository constructs a TrainerRepository.
func NewTrainerRepository(db *sqlx.DB) *TrainerRepository {
	return &TrainerRepository{db: db}
}

// List returns trainers matching filters, newest first, along with the total count.
func (r *TrainerRepository) List(ctx context.Context, filter models.TrainerFilter) ([]models.Trainer, int, error) {
	base := "FROM trainers WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	if filter.Specialization != "" {
		conditions = append(conditions, fmt.Sprintf("EXISTS (SELECT 1 FROM unnest(specializations) s WHERE LOWER(s) = LOWER($%d))", len(args)+1))
		args = append(args, filter.Specialization)
	}
	if filter.Search != "" {
		search := "%" + strings.ToLower(filter.Search) + "%"
		conditions = append(conditions, fmt.Sprintf("(LOWER(first_name) LIKE $%d OR LOWER(last_name) LIKE $%d OR LOWER(email) LIKE $%d)", len(args)+1, len(args)+1, len(args)+1))
		args = append(args, search)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	query := paginate(fmt.Sprintf("SELECT %s %s ORDER BY created_at DESC", trainerColumns, base), filter.ListOptions)
	var trainers []models.Trainer
	if err := r.db.SelectContext(ctx, &trainers, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list trainers: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count trainers: %w", err)
	}

	return trainers, total, nil
}

// FindByID fetches a trainer by ID.
func (r *TrainerRepository) FindByID(ctx context.Context, id string) (*models.Trainer, error) {
	query := fmt.Sprintf("SELECT %s FROM trainers WHERE id = $1", trainerColumns)
	var trainer models.Trainer
	if err := r.db.GetContext(ctx, &trainer, query, id); err != nil {
		return nil, err
	}
	return &trainer, nil
}

// ExistsByEmail checks if another trainer uses the same email.
func (r *TrainerRepository) ExistsByEmail(ctx context.Context, email string, excludeID string) (bool, error) {
	query := "SELECT 1 FROM trainers WHERE LOWER(email) = LOWER($1)"
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
		return false, fmt.Errorf("check trainer email: %w", err)
	}
	return true, nil
}

// Create inserts a new trainer record.
func (r *TrainerRepository) Create(ctx context.Context, trainer *models.Trainer) error {
	if trainer.ID == "" {
		trainer.ID = uuid.NewString()
	}
	now := time.Now().UTC().Truncate(time.Microsecond)
	if trainer.CreatedAt.IsZero() {
		trainer.CreatedAt = now
	}
	trainer.UpdatedAt = now
	if trainer.CertificateFiles == nil {
		trainer.CertificateFiles = pq.StringArray{}
	}

	const query = `INSERT INTO trainers (id, first_name, last_name, email, phone, specializations, certifications, certificate_files, hire_date, hourly_rate, bio, status, availability, profile_photo, created_at, updated_at)
		VALUES (:id, :first_name, :last_name, :email, :phone, :specializations, :certifications, :certificate_files, :hire_date, :hourly_rate, :bio, :status, :availability, :profile_photo, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, trainer); err != nil {
		return fmt.Errorf("create trainer: %w", err)
	}
	return nil
}

type trainerUpdate struct {
	*models.Trainer
	ExpectedUpdatedAt *time.Time `db:"expected_updated_at"`
}

// Update writes every mutable column. When expected is set the write only
// applies if the stored updated_at still matches; sql.ErrNoRows is returned
// when no row was touched.
func (r *TrainerRepository) Update(ctx context.Context, trainer *models.Trainer, expected *time.Time) error {
	trainer.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)
	if trainer.CertificateFiles == nil {
		trainer.CertificateFiles = pq.StringArray{}
	}

	query := `UPDATE trainers SET first_name = :first_name, last_name = :last_name, email = :email, phone = :phone,
		specializations = :specializations, certifications = :certifications, certificate_files = :certificate_files,
		hire_date = :hire_date, hourly_rate = :hourly_rate, bio = :bio, status = :status, availability = :availability,
		profile_photo = :profile_photo, updated_at = :updated_at WHERE id = :id`
	if expected != nil {
		query += " AND updated_at = :expected_updated_at"
	}

	res, err := r.db.NamedExecContext(ctx, query, trainerUpdate{Trainer: trainer, ExpectedUpdatedAt: expected})
	if err != nil {
		return fmt.Errorf("update trainer: %w", err)
	}
	return requireAffected(res)
}

// AppendCertificateFiles adds stored file references to a trainer in one statement.
func (r *TrainerRepository) AppendCertificateFiles(ctx context.Context, id string, files []string) (*models.Trainer, error) {
	query := fmt.Sprintf(`UPDATE trainers SET certificate_files = certificate_files || $2, updated_at = $3 WHERE id = $1 RETURNING %s`, trainerColumns)
	var trainer models.Trainer
	if err := r.db.GetContext(ctx, &trainer, query, id, pq.StringArray(files), time.Now().UTC().Truncate(time.Microsecond)); err != nil {
		return nil, err
	}
	return &trainer, nil
}

// Delete removes a trainer permanently.
func (r *TrainerRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM trainers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete trainer: %w", err)
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
