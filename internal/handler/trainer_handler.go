package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/gym-management-api/internal/dto"
	"github.com/noah-isme/gym-management-api/internal/models"
	"github.com/noah-isme/gym-management-api/internal/service"
	"github.com/noah-isme/gym-management-api/pkg/response"
)

type trainerService interface {
	List(ctx context.Context, filter models.TrainerFilter) ([]models.Trainer, int, error)
	Get(ctx context.Context, id string) (*models.Trainer, error)
	Create(ctx context.Context, p dto.TrainerPayload) (*models.Trainer, error)
	Update(ctx context.Context, id string, p dto.TrainerPayload, mode service.ValidationMode, ifMatch string) (*models.Trainer, error)
	AddCertificates(ctx context.Context, id string, urls []string) (*models.Trainer, error)
	Delete(ctx context.Context, id string) error
}

type batchUploader interface {
	StoreMany(ctx context.Context, kind service.UploadKind, uploads []service.Upload) ([]dto.UploadedFile, error)
}

// TrainerHandler wires trainer services to HTTP routes.
type TrainerHandler struct {
	trainers trainerService
	uploads  batchUploader
}

// NewTrainerHandler constructs a new TrainerHandler.
func NewTrainerHandler(trainers trainerService, uploads batchUploader) *TrainerHandler {
	return &TrainerHandler{trainers: trainers, uploads: uploads}
}

// List godoc
// @Summary List trainers
// @Tags Trainers
// @Produce json
// @Param status query string false "Filter by status"
// @Param specialization query string false "Filter by specialization"
// @Param search query string false "Search by name/email"
// @Param limit query int false "Page size"
// @Param offset query int false "Rows to skip"
// @Success 200 {array} models.Trainer
// @Router /trainers [get]
func (h *TrainerHandler) List(c *gin.Context) {
	filter := models.TrainerFilter{
		Search:         strings.TrimSpace(c.Query("search")),
		Status:         strings.TrimSpace(c.Query("status")),
		Specialization: strings.TrimSpace(c.Query("specialization")),
		ListOptions:    listOptions(c),
	}
	trainers, total, err := h.trainers.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header(totalCountHeader, strconv.Itoa(total))
	response.JSON(c, http.StatusOK, trainers)
}

// Get godoc
// @Summary Get trainer detail
// @Tags Trainers
// @Produce json
// @Param id path string true "Trainer ID"
// @Success 200 {object} models.Trainer
// @Failure 404 {object} response.ErrorBody
// @Router /trainers/{id} [get]
func (h *TrainerHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	trainer, err := h.trainers.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("ETag", service.ETag(trainer.UpdatedAt))
	response.JSON(c, http.StatusOK, trainer)
}

// Create godoc
// @Summary Create trainer
// @Tags Trainers
// @Accept json
// @Produce json
// @Param payload body dto.TrainerPayload true "Trainer payload"
// @Success 201 {object} models.Trainer
// @Failure 400 {object} response.ErrorBody
// @Router /trainers [post]
func (h *TrainerHandler) Create(c *gin.Context) {
	var payload dto.TrainerPayload
	if !bindJSON(c, &payload) {
		return
	}
	trainer, err := h.trainers.Create(c.Request.Context(), payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("ETag", service.ETag(trainer.UpdatedAt))
	response.Created(c, trainer)
}

// Replace godoc
// @Summary Update trainer
// @Description Names and email are required; null or missing fields keep their stored values.
// @Tags Trainers
// @Accept json
// @Produce json
// @Param id path string true "Trainer ID"
// @Param If-Match header string false "ETag from a previous read"
// @Param payload body dto.TrainerPayload true "Trainer payload"
// @Success 200 {object} models.Trainer
// @Failure 412 {object} response.ErrorBody
// @Router /trainers/{id} [put]
func (h *TrainerHandler) Replace(c *gin.Context) {
	h.update(c, service.ModeReplace)
}

// Patch godoc
// @Summary Partially update trainer
// @Tags Trainers
// @Accept json
// @Produce json
// @Param id path string true "Trainer ID"
// @Param If-Match header string false "ETag from a previous read"
// @Param payload body dto.TrainerPayload true "Fields to change"
// @Success 200 {object} models.Trainer
// @Router /trainers/{id} [patch]
func (h *TrainerHandler) Patch(c *gin.Context) {
	h.update(c, service.ModePatch)
}

func (h *TrainerHandler) update(c *gin.Context, mode service.ValidationMode) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var payload dto.TrainerPayload
	if !bindJSON(c, &payload) {
		return
	}
	trainer, err := h.trainers.Update(c.Request.Context(), id, payload, mode, c.GetHeader("If-Match"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("ETag", service.ETag(trainer.UpdatedAt))
	response.JSON(c, http.StatusOK, trainer)
}

// UploadCertificates godoc
// @Summary Attach certificate files to a trainer
// @Tags Trainers
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Trainer ID"
// @Param files formData file true "Certificate files"
// @Success 200 {object} models.Trainer
// @Router /trainers/{id}/certificates [post]
func (h *TrainerHandler) UploadCertificates(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, payloadError(err))
		return
	}
	uploads := make([]service.Upload, 0, len(form.File["files"]))
	for _, fh := range form.File["files"] {
		uploads = append(uploads, formUpload(fh))
	}
	files, err := h.uploads.StoreMany(c.Request.Context(), service.KindCertificate, uploads)
	if err != nil {
		response.Error(c, err)
		return
	}
	urls := make([]string, 0, len(files))
	for _, f := range files {
		urls = append(urls, f.URL)
	}
	trainer, err := h.trainers.AddCertificates(c.Request.Context(), id, urls)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("ETag", service.ETag(trainer.UpdatedAt))
	response.JSON(c, http.StatusOK, trainer)
}

// Delete godoc
// @Summary Delete trainer
// @Tags Trainers
// @Produce json
// @Param id path string true "Trainer ID"
// @Success 200 {object} response.MessageBody
// @Router /trainers/{id} [delete]
func (h *TrainerHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.trainers.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Trainer deleted successfully")
}
