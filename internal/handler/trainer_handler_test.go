package handler

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/gym-management-api/internal/dto"
	"github.com/noah-isme/gym-management-api/internal/models"
	"github.com/noah-isme/gym-management-api/internal/service"
	appErrors "github.com/noah-isme/gym-management-api/pkg/errors"
)

var trainerUpdatedAt = time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)

type fakeTrainerService struct {
	listFilter  models.TrainerFilter
	getErr      error
	updateErr   error
	lastPayload dto.TrainerPayload
	lastMode    service.ValidationMode
	lastIfMatch string
	certURLs    []string
	deletedID   string
}

func (f *fakeTrainerService) trainer(id string) *models.Trainer {
	return &models.Trainer{ID: id, FirstName: "Ana", LastName: "Lee", Email: "ana@example.com",
		Specializations: []string{"Yoga"}, Status: "active", Availability: "available", UpdatedAt: trainerUpdatedAt}
}

func (f *fakeTrainerService) List(ctx context.Context, filter models.TrainerFilter) ([]models.Trainer, int, error) {
	f.listFilter = filter
	return []models.Trainer{*f.trainer(testID)}, 7, nil
}

func (f *fakeTrainerService) Get(ctx context.Context, id string) (*models.Trainer, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.trainer(id), nil
}

func (f *fakeTrainerService) Create(ctx context.Context, p dto.TrainerPayload) (*models.Trainer, error) {
	f.lastPayload = p
	return f.trainer(testID), nil
}

func (f *fakeTrainerService) Update(ctx context.Context, id string, p dto.TrainerPayload, mode service.ValidationMode, ifMatch string) (*models.Trainer, error) {
	f.lastPayload, f.lastMode, f.lastIfMatch = p, mode, ifMatch
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.trainer(id), nil
}

func (f *fakeTrainerService) AddCertificates(ctx context.Context, id string, urls []string) (*models.Trainer, error) {
	f.certURLs = urls
	return f.trainer(id), nil
}

func (f *fakeTrainerService) Delete(ctx context.Context, id string) error {
	f.deletedID = id
	return nil
}

type fakeUploads struct {
	kind  service.UploadKind
	names []string
	err   error
}

func (f *fakeUploads) Store(ctx context.Context, kind service.UploadKind, upload service.Upload) (dto.UploadedFile, error) {
	files, err := f.StoreMany(ctx, kind, []service.Upload{upload})
	if err != nil {
		return dto.UploadedFile{}, err
	}
	return files[0], nil
}

func (f *fakeUploads) StoreMany(ctx context.Context, kind service.UploadKind, uploads []service.Upload) ([]dto.UploadedFile, error) {
	f.kind = kind
	if f.err != nil {
		return nil, f.err
	}
	files := make([]dto.UploadedFile, 0, len(uploads))
	for _, u := range uploads {
		f.names = append(f.names, u.Filename)
		url := "/uploads/" + string(kind) + "/" + u.Filename
		files = append(files, dto.UploadedFile{URL: url, Filename: u.Filename, Size: u.Size})
	}
	return files, nil
}

func trainerRouter(svc *fakeTrainerService, uploads *fakeUploads) http.Handler {
	h := NewTrainerHandler(svc, uploads)
	r := testRouter()
	r.GET("/trainers", h.List)
	r.POST("/trainers", h.Create)
	r.GET("/trainers/:id", h.Get)
	r.PUT("/trainers/:id", h.Replace)
	r.PATCH("/trainers/:id", h.Patch)
	r.DELETE("/trainers/:id", h.Delete)
	r.POST("/trainers/:id/certificates", h.UploadCertificates)
	return r
}

func TestTrainerHandlerList(t *testing.T) {
	svc := &fakeTrainerService{}
	rec := perform(trainerRouter(svc, nil), http.MethodGet, "/trainers?status=active&specialization=Yoga&limit=5&offset=10", nil, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "7", rec.Header().Get("X-Total-Count"))
	assert.Equal(t, "active", svc.listFilter.Status)
	assert.Equal(t, "Yoga", svc.listFilter.Specialization)
	assert.Equal(t, 5, svc.listFilter.Limit)
	assert.Equal(t, 10, svc.listFilter.Offset)
	assert.Contains(t, rec.Body.String(), `"specialization":"Yoga"`)
}

func TestTrainerHandlerGet(t *testing.T) {
	svc := &fakeTrainerService{}
	router := trainerRouter(svc, nil)

	rec := perform(router, http.MethodGet, "/trainers/"+testID, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.ETag(trainerUpdatedAt), rec.Header().Get("ETag"))

	rec = perform(router, http.MethodGet, "/trainers/not-a-uuid", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid ID format", decodeError(t, rec).Error)

	svc.getErr = appErrors.Clone(appErrors.ErrNotFound, "Trainer not found")
	rec = perform(router, http.MethodGet, "/trainers/"+testID, nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Trainer not found", decodeError(t, rec).Error)
}

func TestTrainerHandlerCreate(t *testing.T) {
	svc := &fakeTrainerService{}
	router := trainerRouter(svc, nil)

	rec := perform(router, http.MethodPost, "/trainers", strings.NewReader(`{"first_name":"Ana","specializations":["Yoga"]}`), nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.lastPayload.FirstName)
	assert.Equal(t, "Ana", *svc.lastPayload.FirstName)
	assert.Equal(t, []string{"Yoga"}, svc.lastPayload.Specializations)

	rec = perform(router, http.MethodPost, "/trainers", strings.NewReader(`{"first_name":`), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request payload", decodeError(t, rec).Error)
}

func TestTrainerHandlerUpdateModes(t *testing.T) {
	svc := &fakeTrainerService{}
	router := trainerRouter(svc, nil)
	etag := service.ETag(trainerUpdatedAt)

	rec := perform(router, http.MethodPut, "/trainers/"+testID, strings.NewReader(`{"phone":null}`), map[string]string{"If-Match": etag})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.ModeReplace, svc.lastMode)
	assert.Equal(t, etag, svc.lastIfMatch)
	assert.Nil(t, svc.lastPayload.Phone)

	rec = perform(router, http.MethodPatch, "/trainers/"+testID, strings.NewReader(`{"bio":"Coach"}`), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.ModePatch, svc.lastMode)
	assert.Empty(t, svc.lastIfMatch)

	svc.updateErr = appErrors.Clone(appErrors.ErrPreconditionFailed, "Trainer was modified by another request")
	rec = perform(router, http.MethodPut, "/trainers/"+testID, strings.NewReader(`{}`), map[string]string{"If-Match": `W/"1"`})
	assert.Equal(t, http.StatusPreconditionFailed, rec.Code)
}

func TestTrainerHandlerUploadCertificates(t *testing.T) {
	svc := &fakeTrainerService{}
	uploads := &fakeUploads{}
	router := trainerRouter(svc, uploads)

	body, contentType := multipartBody(t, nil,
		formFile{field: "files", name: "cpr.pdf", data: []byte("%PDF-1.4")},
		formFile{field: "files", name: "first-aid.pdf", data: []byte("%PDF-1.4")},
	)
	rec := perform(router, http.MethodPost, "/trainers/"+testID+"/certificates", body, map[string]string{"Content-Type": contentType})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.KindCertificate, uploads.kind)
	assert.Equal(t, []string{"/uploads/certificates/cpr.pdf", "/uploads/certificates/first-aid.pdf"}, svc.certURLs)
}

func TestTrainerHandlerDelete(t *testing.T) {
	svc := &fakeTrainerService{}
	rec := perform(trainerRouter(svc, nil), http.MethodDelete, "/trainers/"+testID, nil, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Trainer deleted successfully"}`, rec.Body.String())
	assert.Equal(t, testID, svc.deletedID)
}
