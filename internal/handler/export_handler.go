package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/gym-management-api/internal/service"
	"github.com/noah-isme/gym-management-api/pkg/response"
)

type exporter interface {
	Export(ctx context.Context, resource, format string) (*service.ExportFile, error)
}

// ExportHandler streams CSV or PDF rosters.
type ExportHandler struct {
	exports exporter
}

// NewExportHandler constructs an ExportHandler.
func NewExportHandler(exports exporter) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// For returns a handler exporting the given resource.
// @Summary Export a resource roster
// @Tags Export
// @Produce text/csv,application/pdf
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Router /trainers/export [get]
// @Router /members/export [get]
// @Router /equipment/export [get]
func (h *ExportHandler) For(resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := h.exports.Export(c.Request.Context(), resource, c.Query("format"))
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
		c.Header("Cache-Control", "no-store")
		c.Data(http.StatusOK, file.ContentType, file.Data)
	}
}
