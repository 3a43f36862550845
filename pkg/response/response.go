package response

import (
	"net/http"
	"sync/atomic"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/gym-management-api/pkg/errors"
)

// ErrorBody is the JSON contract for every failed request.
type ErrorBody struct {
	Error  string   `json:"error"`
	Errors []string `json:"errors,omitempty"`
	Code   string   `json:"code,omitempty"`
	Detail string   `json:"detail,omitempty"`
	Stack  string   `json:"stack,omitempty"`
}

// MessageBody carries a plain confirmation message.
type MessageBody struct {
	Message string `json:"message"`
}

var verbose atomic.Bool

// SetVerbose toggles exposure of internal error details on 5xx responses.
func SetVerbose(enabled bool) {
	verbose.Store(enabled)
}

// JSON sends a bare JSON success payload.
func JSON(c *gin.Context, status int, data interface{}) {
	noStore(c)
	c.JSON(status, data)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// Message responds with {"message": msg}.
func Message(c *gin.Context, status int, msg string) {
	JSON(c, status, MessageBody{Message: msg})
}

// Error sends an error response converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	body := ErrorBody{Error: appErr.Message, Errors: appErr.Details, Code: appErr.Code}
	if appErr.Status >= http.StatusInternalServerError && verbose.Load() && appErr.Err != nil {
		body.Detail = appErr.Err.Error()
	}
	noStore(c)
	c.JSON(appErr.Status, body)
}

// Panic renders a recovered panic as a 500, attaching the stack trace in verbose mode.
func Panic(c *gin.Context, recovered interface{}, stack []byte) {
	body := ErrorBody{Error: appErrors.ErrInternal.Message, Code: appErrors.ErrInternal.Code}
	if verbose.Load() {
		if e, ok := recovered.(error); ok {
			body.Detail = e.Error()
		} else if s, ok := recovered.(string); ok {
			body.Detail = s
		}
		body.Stack = string(stack)
	}
	noStore(c)
	c.AbortWithStatusJSON(http.StatusInternalServerError, body)
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func noStore(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
}
