package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/gym-management-api/internal/dto"
	"github.com/noah-isme/gym-management-api/internal/service"
	appErrors "github.com/noah-isme/gym-management-api/pkg/errors"
	"github.com/noah-isme/gym-management-api/pkg/response"
)

type uploadService interface {
	Store(ctx context.Context, kind service.UploadKind, upload service.Upload) (dto.UploadedFile, error)
	StoreMany(ctx context.Context, kind service.UploadKind, uploads []service.Upload) ([]dto.UploadedFile, error)
}

// UploadHandler accepts standalone file uploads.
type UploadHandler struct {
	uploads uploadService
}

// NewUploadHandler constructs an UploadHandler.
func NewUploadHandler(uploads uploadService) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

// ProfilePhoto godoc
// @Summary Upload a profile photo
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image (jpeg, png, webp, gif)"
// @Success 200 {object} dto.UploadedFile
// @Failure 413 {object} response.ErrorBody
// @Failure 415 {object} response.ErrorBody
// @Router /upload/profile-photo [post]
func (h *UploadHandler) ProfilePhoto(c *gin.Context) {
	h.single(c, "file", service.KindProfilePhoto)
}

// EquipmentImage godoc
// @Summary Upload an equipment image
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Image (jpeg, png, webp, gif)"
// @Success 200 {object} dto.UploadedFile
// @Router /upload/equipment-image [post]
func (h *UploadHandler) EquipmentImage(c *gin.Context) {
	h.single(c, "image", service.KindEquipmentImage)
}

// Certificates godoc
// @Summary Upload certificate files
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Images or PDF documents"
// @Success 200 {object} dto.CertificateUploadResponse
// @Router /upload/certificates [post]
func (h *UploadHandler) Certificates(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, payloadError(err))
		return
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "No files uploaded"))
		return
	}
	uploads := make([]service.Upload, 0, len(headers))
	for _, fh := range headers {
		uploads = append(uploads, formUpload(fh))
	}
	files, err := h.uploads.StoreMany(c.Request.Context(), service.KindCertificate, uploads)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.CertificateUploadResponse{Files: files})
}

func (h *UploadHandler) single(c *gin.Context, field string, kind service.UploadKind) {
	fh, err := c.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "No file uploaded"))
			return
		}
		response.Error(c, payloadError(err))
		return
	}
	file, err := h.uploads.Store(c.Request.Context(), kind, formUpload(fh))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, file)
}
