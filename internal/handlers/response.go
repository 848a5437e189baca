package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/seabloom/tidewed-backend/internal/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondServiceError maps a service error onto the wire using its taxonomy
// code; untyped errors become a generic storage_unavailable so raw backend
// text never decides the status.
func RespondServiceError(c *gin.Context, err error) {
	code := apierr.CodeOf(err)
	if code == "" {
		code = apierr.CodeStorageUnavailable
	}
	RespondError(c, apierr.StatusOf(err), code, err)
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
