package handlers

import (
	"errors"
	"github.com/gin-gonic/gin"
	"net/http"
	"storefront/services"
)

// respondError writes {"error": msg} with the status matching err's kind. err is
// attached to the context so the request logger reports it.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrDuplicateKey):
		status = http.StatusConflict
	}

	_ = c.Error(err)
	c.JSON(status, gin.H{"error": err.Error()})
}

func respondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
}

func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
