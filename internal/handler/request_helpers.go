package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/noah-isme/gym-management-api/internal/middleware"
	"github.com/noah-isme/gym-management-api/internal/models"
	"github.com/noah-isme/gym-management-api/internal/service"
	appErrors "github.com/noah-isme/gym-management-api/pkg/errors"
	"github.com/noah-isme/gym-management-api/pkg/response"
)

const totalCountHeader = "X-Total-Count"

// pathID returns the :id parameter, rejecting values that are not UUIDs.
func pathID(c *gin.Context) (string, bool) {
	id := strings.TrimSpace(c.Param("id"))
	if _, err := uuid.Parse(id); err != nil {
		response.Error(c, appErrors.ErrInvalidID)
		return "", false
	}
	return id, true
}

func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, payloadError(err))
		return false
	}
	return true
}

func payloadError(err error) error {
	if middleware.IsBodyTooLarge(err) {
		return appErrors.Wrap(err, appErrors.ErrPayloadTooLarge.Code, http.StatusRequestEntityTooLarge, "request body too large")
	}
	return appErrors.Wrap(err, appErrors.ErrInvalidPayload.Code, appErrors.ErrInvalidPayload.Status, appErrors.ErrInvalidPayload.Message)
}

func listOptions(c *gin.Context) models.ListOptions {
	var opts models.ListOptions
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		opts.Limit = limit
	}
	if offset, err := strconv.Atoi(c.Query("offset")); err == nil {
		opts.Offset = offset
	}
	return opts.Normalize()
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// formUpload adapts a multipart file header to the service upload type.
func formUpload(fh *multipart.FileHeader) service.Upload {
	return service.Upload{
		Filename: fh.Filename,
		Size:     fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

// optionalFormFile returns the named file when the multipart form carries one.
func optionalFormFile(c *gin.Context, field string) (*service.Upload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil
		}
		return nil, payloadError(err)
	}
	upload := formUpload(fh)
	return &upload, nil
}
