package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/gym-management-api/internal/dto"
	"github.com/noah-isme/gym-management-api/internal/models"
	"github.com/noah-isme/gym-management-api/pkg/response"
)

type memberService interface {
	List(ctx context.Context, filter models.MemberFilter) ([]models.Member, int, error)
	Get(ctx context.Context, id string) (*models.Member, error)
	Create(ctx context.Context, p dto.MemberPayload) (*models.Member, error)
	Update(ctx context.Context, id string, p dto.MemberPayload) (*models.Member, error)
	Delete(ctx context.Context, id string) error
}

// MemberHandler exposes member CRUD endpoints.
type MemberHandler struct {
	members memberService
}

// NewMemberHandler constructs a MemberHandler.
func NewMemberHandler(members memberService) *MemberHandler {
	return &MemberHandler{members: members}
}

// List godoc
// @Summary List members
// @Tags Members
// @Produce json
// @Param status query string false "Filter by status"
// @Param membership_type query string false "Filter by membership type"
// @Param search query string false "Search by name/email"
// @Param limit query int false "Page size"
// @Param offset query int false "Rows to skip"
// @Success 200 {array} models.Member
// @Router /members [get]
func (h *MemberHandler) List(c *gin.Context) {
	filter := models.MemberFilter{
		Search:         strings.TrimSpace(c.Query("search")),
		Status:         strings.TrimSpace(c.Query("status")),
		MembershipType: strings.TrimSpace(c.Query("membership_type")),
		ListOptions:    listOptions(c),
	}
	members, total, err := h.members.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header(totalCountHeader, strconv.Itoa(total))
	response.JSON(c, http.StatusOK, members)
}

// Get godoc
// @Summary Get member detail
// @Tags Members
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} models.Member
// @Router /members/{id} [get]
func (h *MemberHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	member, err := h.members.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, member)
}

// Create godoc
// @Summary Create member
// @Tags Members
// @Accept json
// @Produce json
// @Param payload body dto.MemberPayload true "Member payload"
// @Success 201 {object} models.Member
// @Failure 409 {object} response.ErrorBody
// @Router /members [post]
func (h *MemberHandler) Create(c *gin.Context) {
	var payload dto.MemberPayload
	if !bindJSON(c, &payload) {
		return
	}
	member, err := h.members.Create(c.Request.Context(), payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, member)
}

// Update godoc
// @Summary Update member
// @Tags Members
// @Accept json
// @Produce json
// @Param id path string true "Member ID"
// @Param payload body dto.MemberPayload true "Member payload"
// @Success 200 {object} models.Member
// @Router /members/{id} [put]
func (h *MemberHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var payload dto.MemberPayload
	if !bindJSON(c, &payload) {
		return
	}
	member, err := h.members.Update(c.Request.Context(), id, payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, member)
}

// Delete godoc
// @Summary Delete member
// @Tags Members
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} response.MessageBody
// @Router /members/{id} [delete]
func (h *MemberHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.members.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Member deleted successfully")
}
