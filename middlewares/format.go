package middlewares

import (
	"ClinicCare/repositories"
	"ClinicCare/services"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RespondJSON writes a JSON response to the client.
func RespondJSON(c *gin.Context, data interface{}, status int) {
	c.JSON(status, data)
}

// HttpError logs an error and writes an HTTP error response to the client.
func HttpError(c *gin.Context, message string, status int, err error) {
	log.Printf("HTTP %d - %s: %v", status, message, err)
	c.JSON(status, gin.H{"error": message})
}

// RespondError maps a service error onto its HTTP status: validation 400,
// conflicts 409, policy violations 403, missing records 404. Anything
// unrecognized is a 500 with the detail kept out of the response body.
func RespondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrUsernameTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repositories.ErrSlotTaken),
		errors.Is(err, services.ErrSlotNotOffered),
		errors.Is(err, services.ErrAvailabilityOverlap),
		errors.Is(err, services.ErrAlreadyCancelled),
		errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrRescheduleLimit),
		errors.Is(err, services.ErrNotOwner),
		errors.Is(err, services.ErrAccountBlocked),
		errors.Is(err, services.ErrTreatmentUnavailable):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		log.Printf("HTTP 500 - unexpected error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
