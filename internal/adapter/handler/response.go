package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/simaogato/poolledger-backend/internal/domain"
)

type apiResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Ok writes the unified success envelope
func Ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, apiResponse{
		Code:    0,
		Message: "ok",
		Data:    data,
	})
}

// Error writes the unified error envelope
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, apiResponse{
		Code:    status,
		Message: message,
	})
}

// fail maps engine errors onto HTTP statuses: validation errors are client
// errors, anything else is internal
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrNegativeAmount),
		errors.Is(err, domain.ErrEmptyDescription):
		Error(c, http.StatusBadRequest, err.Error())
	default:
		Error(c, http.StatusInternalServerError, err.Error())
	}
}
