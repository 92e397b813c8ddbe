package httputil

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/medboard/hospital-api/pkg/errors"
)

// Response wraps all API responses
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

// Error represents API error
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// StatusOf maps an application error code to an HTTP status
func StatusOf(code errors.ErrorCode) int {
	switch code {
	case errors.ErrNotFound, errors.ErrUnrouted:
		return http.StatusNotFound
	case errors.ErrInvalidInput:
		return http.StatusBadRequest
	case errors.ErrConflict:
		return http.StatusConflict
	case errors.ErrUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// RespondWithSuccess sends a success response
func RespondWithSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Response{
		Success: true,
		Data:    data,
	})
}

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, err error) {
	code := errors.Code(err)
	status := StatusOf(code)

	message := "internal server error"
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		message = appErr.Message
	}

	c.JSON(status, Response{
		Success: false,
		Error: &Error{
			Code:    int(code),
			Message: message,
		},
	})
}
