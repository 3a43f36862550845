package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/noah-isme/gym-management-api/internal/dto"
	"github.com/noah-isme/gym-management-api/internal/models"
	"github.com/noah-isme/gym-management-api/internal/service"
	appErrors "github.com/noah-isme/gym-management-api/pkg/errors"
	"github.com/noah-isme/gym-management-api/pkg/response"
)

type equipmentService interface {
	List(ctx context.Context, filter models.EquipmentFilter) ([]models.Equipment, int, error)
	MaintenanceDue(ctx context.Context, days int) ([]models.Equipment, error)
	Get(ctx context.Context, id string) (*models.Equipment, error)
	Create(ctx context.Context, p dto.EquipmentPayload, image *service.Upload) (*models.Equipment, error)
	Update(ctx context.Context, id string, p dto.EquipmentPayload, image *service.Upload) (*models.Equipment, error)
	Delete(ctx context.Context, id string) error
}

// EquipmentHandler exposes inventory endpoints.
type EquipmentHandler struct {
	equipment equipmentService
}

// NewEquipmentHandler constructs an EquipmentHandler.
func NewEquipmentHandler(equipment equipmentService) *EquipmentHandler {
	return &EquipmentHandler{equipment: equipment}
}

// List godoc
// @Summary List equipment
// @Tags Equipment
// @Produce json
// @Param category query string false "Filter by category"
// @Param status query string false "Filter by status"
// @Param condition query string false "Filter by condition"
// @Param search query string false "Search name, brand, model or serial"
// @Param orderBy query string false "Sort column, prefix with - for descending"
// @Param limit query int false "Page size"
// @Param offset query int false "Rows to skip"
// @Success 200 {array} models.Equipment
// @Router /equipment [get]
func (h *EquipmentHandler) List(c *gin.Context) {
	filter := models.EquipmentFilter{
		Category:    strings.TrimSpace(c.Query("category")),
		Status:      strings.TrimSpace(c.Query("status")),
		Condition:   strings.TrimSpace(c.Query("condition")),
		Search:      strings.TrimSpace(c.Query("search")),
		OrderBy:     strings.TrimSpace(c.Query("orderBy")),
		ListOptions: listOptions(c),
	}
	items, total, err := h.equipment.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header(totalCountHeader, strconv.Itoa(total))
	response.JSON(c, http.StatusOK, items)
}

// MaintenanceDue godoc
// @Summary Equipment due for maintenance
// @Tags Equipment
// @Produce json
// @Param days query int false "Look-ahead window in days" default(30)
// @Success 200 {array} models.Equipment
// @Router /equipment/maintenance-due [get]
func (h *EquipmentHandler) MaintenanceDue(c *gin.Context) {
	days := service.DefaultMaintenanceWindowDays
	if raw := strings.TrimSpace(c.Query("days")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			response.Error(c, appErrors.WithDetails(appErrors.ErrValidation, "days must be a non-negative integer"))
			return
		}
		days = parsed
	}
	items, err := h.equipment.MaintenanceDue(c.Request.Context(), days)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items)
}

// Get godoc
// @Summary Get equipment detail
// @Tags Equipment
// @Produce json
// @Param id path string true "Equipment ID"
// @Success 200 {object} models.Equipment
// @Router /equipment/{id} [get]
func (h *EquipmentHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := h.equipment.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item)
}

// Create godoc
// @Summary Create equipment
// @Tags Equipment
// @Accept json,mpfd
// @Produce json
// @Param payload body dto.EquipmentPayload true "Equipment payload"
// @Param image formData file false "Equipment image"
// @Success 201 {object} models.Equipment
// @Router /equipment [post]
func (h *EquipmentHandler) Create(c *gin.Context) {
	payload, image, ok := h.bind(c)
	if !ok {
		return
	}
	item, err := h.equipment.Create(c.Request.Context(), payload, image)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Update godoc
// @Summary Update equipment
// @Tags Equipment
// @Accept json,mpfd
// @Produce json
// @Param id path string true "Equipment ID"
// @Param payload body dto.EquipmentPayload true "Equipment payload"
// @Param image formData file false "Replacement image"
// @Success 200 {object} models.Equipment
// @Router /equipment/{id} [put]
func (h *EquipmentHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	payload, image, ok := h.bind(c)
	if !ok {
		return
	}
	item, err := h.equipment.Update(c.Request.Context(), id, payload, image)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item)
}

// Delete godoc
// @Summary Delete equipment
// @Tags Equipment
// @Produce json
// @Param id path string true "Equipment ID"
// @Success 200 {object} response.MessageBody
// @Router /equipment/{id} [delete]
func (h *EquipmentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.equipment.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Equipment deleted successfully")
}

// bind reads the payload from JSON or from multipart fields plus an optional image.
func (h *EquipmentHandler) bind(c *gin.Context) (dto.EquipmentPayload, *service.Upload, bool) {
	var payload dto.EquipmentPayload
	if !isMultipart(c) {
		return payload, nil, bindJSON(c, &payload)
	}
	if err := c.ShouldBindWith(&payload, binding.FormMultipart); err != nil {
		response.Error(c, payloadError(err))
		return payload, nil, false
	}
	image, err := optionalFormFile(c, "image")
	if err != nil {
		response.Error(c, err)
		return payload, nil, false
	}
	return payload, image, true
}
