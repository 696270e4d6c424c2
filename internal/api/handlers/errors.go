package handlers

import (
	"errors"
	"net/http"

	"github.com/campus-connect/campus-backend/internal/services"
	"github.com/campus-connect/campus-backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// respondError maps the service error taxonomy onto HTTP statuses. Anything
// outside the taxonomy is a 500.
func respondError(c *gin.Context, message string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, services.ErrUnauthenticated):
		status = http.StatusUnauthorized
	}
	utils.SendError(c, status, message, err)
}
