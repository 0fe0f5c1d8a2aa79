// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rickshawgo/internal/modules/location"
	"rickshawgo/internal/modules/pricing"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pricing.ErrInvalidCoordinate),
		errors.Is(err, pricing.ErrInvalidWaitingTime),
		errors.Is(err, pricing.ErrInvalidDistance),
		errors.Is(err, location.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, location.ErrPlaceNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	default:
		_ = c.Error(err)
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
