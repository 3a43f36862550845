package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/gym-management-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

var trainerRowColumns = []string{"id", "first_name", "last_name", "email", "phone", "specializations", "certifications", "certificate_files", "hire_date", "hourly_rate", "bio", "status", "availability", "profile_photo", "created_at", "updated_at"}

func trainerRow(rows *sqlmock.Rows, id string) *sqlmock.Rows {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return rows.AddRow(id, "Jane", "Doe", "jane@gym.test", "555 123 4567", "{Yoga,Pilates}", "CPR, NASM", "{/uploads/certificates/a.pdf}",
		time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC), 45.5, nil, "active", "Full Day", nil, now, now)
}

func TestTrainerRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTrainerRepository(db)

	rows := trainerRow(sqlmock.NewRows(trainerRowColumns), "t1")
	mock.ExpectQuery(regexp.QuoteMeta(fmt.Sprintf("SELECT %s FROM trainers WHERE 1=1 ORDER BY created_at DESC", trainerColumns))).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM trainers WHERE 1=1")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	list, total, err := repo.List(context.Background(), models.TrainerFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 1, total)

	trainer := list[0]
	assert.Equal(t, pq.StringArray{"Yoga", "Pilates"}, trainer.Specializations)
	assert.Equal(t, models.CommaList{"CPR", "NASM"}, trainer.Certifications)
	assert.Equal(t, pq.StringArray{"/uploads/certificates/a.pdf"}, trainer.CertificateFiles)
	require.NotNil(t, trainer.HireDate)
	assert.Equal(t, "2023-01-15", trainer.HireDate.String())
	require.NotNil(t, trainer.HourlyRate)
	assert.InDelta(t, 45.5, *trainer.HourlyRate, 0.001)
	assert.Nil(t, trainer.Bio)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTrainerRepositoryListWithFilters(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTrainerRepository(db)

	where := "FROM trainers WHERE 1=1 AND status = $1 AND EXISTS (SELECT 1 FROM unnest(specializations) s WHERE LOWER(s) = LOWER($2)) AND (LOWER(first_name) LIKE $3 OR LOWER(last_name) LIKE $3 OR LOWER(email) LIKE $3)"
	mock.ExpectQuery(regexp.QuoteMeta(fmt.Sprintf("SELECT %s %s ORDER BY created_at DESC LIMIT 10 OFFSET 20", trainerColumns, where))).
		WithArgs("active", "Yoga", "%jane%").
		WillReturnRows(sqlmock.NewRows(trainerRowColumns))
	mock.ExpectQuery(regexp.QuoteMeta(fmt.Sprintf("SELECT COUNT(*) %s", where))).
		WithArgs("active", "Yoga", "%jane%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	list, total, err := repo.List(context.Background(), models.TrainerFilter{
		Status:         "active",
		Specialization: "Yoga",
		Search:         "Jane",
		ListOptions:    models.ListOptions{Limit: 10, Offset: 20},
	})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Zero(t, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTrainerRepositoryFindByIDNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTrainerRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM trainers WHERE id = $1")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTrainerRepositoryExistsByEmail(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTrainerRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM trainers WHERE LOWER(email) = LOWER($1) AND id <> $2 LIMIT 1")).
		WithArgs("jane@gym.test", "t1").
		WillReturnError(sql.ErrNoRows)

	exists, err := repo.ExistsByEmail(context.Background(), "jane@gym.test", "t1")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTrainerRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTrainerRepository(db)

	mock.ExpectExec("INSERT INTO trainers").
		WillReturnResult(sqlmock.NewResult(1, 1))

	trainer := &models.Trainer{FirstName: "Jane", LastName: "Doe", Email: "jane@gym.test", Specializations: pq.StringArray{"Yoga"}, Status: models.TrainerStatusActive}
	require.NoError(t, repo.Create(context.Background(), trainer))
	assert.NotEmpty(t, trainer.ID)
	assert.False(t, trainer.CreatedAt.IsZero())
	assert.Equal(t, trainer.CreatedAt, trainer.UpdatedAt)
	assert.NotNil(t, trainer.CertificateFiles)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTrainerRepositoryCreateUniqueViolation(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTrainerRepository(db)

	mock.ExpectExec("INSERT INTO trainers").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "trainers_email_key"})

	err := repo.Create(context.Background(), &models.Trainer{Email: "jane@gym.test", Specializations: pq.StringArray{"Yoga"}})
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
	assert.Equal(t, "trainers_email_key", ConstraintName(err))
}

func TestTrainerRepositoryUpdateStale(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTrainerRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE trainers SET")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	expected := time.Now().UTC()
	err := repo.Update(context.Background(), &models.Trainer{ID: "t1", Specializations: pq.StringArray{"Yoga"}}, &expected)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTrainerRepositoryUpdate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTrainerRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE trainers SET")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	trainer := &models.Trainer{ID: "t1", Specializations: pq.StringArray{"Yoga"}}
	require.NoError(t, repo.Update(context.Background(), trainer, nil))
	assert.False(t, trainer.UpdatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTrainerRepositoryAppendCertificateFiles(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTrainerRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE trainers SET certificate_files = certificate_files || $2")).
		WithArgs("t1", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(trainerRow(sqlmock.NewRows(trainerRowColumns), "t1"))

	trainer, err := repo.AppendCertificateFiles(context.Background(), "t1", []string{"/uploads/certificates/a.pdf"})
	require.NoError(t, err)
	assert.Equal(t, "t1", trainer.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTrainerRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTrainerRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM trainers WHERE id = $1")).
		WithArgs("t1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM trainers WHERE id = $1")).
		WithArgs("t2").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), "t1"))
	err := repo.Delete(context.Background(), "t2")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}
