package handlers

import (
	"errors"
	"net/http"

	"zela/models"
	"zela/services/booking"

	"github.com/gin-gonic/gin"
)

// respondError maps the service error taxonomy onto HTTP statuses:
// field validation and incomplete sessions are 422, unknown sessions
// 404, scheduling conflicts 409, declined payments 402, configuration
// problems 400, everything else 500.
func respondError(c *gin.Context, err error) {
	var verrs models.ValidationErrors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "validation failed",
			"fields": verrs,
		})
		return
	}

	var incomplete *models.IncompleteSessionError
	if errors.As(err, &incomplete) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":         "booking session is incomplete",
			"missing_steps": incomplete.MissingSteps,
		})
		return
	}

	if errors.Is(err, booking.ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking session not found"})
		return
	}

	if errors.Is(err, booking.ErrInvalidTransition) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	var conflict *models.ConflictError
	if errors.As(err, &conflict) {
		c.JSON(http.StatusConflict, gin.H{
			"error":     conflict.Error(),
			"worker_id": conflict.WorkerID,
		})
		return
	}

	var payErr *models.PaymentError
	if errors.As(err, &payErr) {
		c.JSON(http.StatusPaymentRequired, gin.H{
			"error":  "payment failed",
			"reason": payErr.Reason,
		})
		return
	}

	var cfgErr *models.ConfigurationError
	if errors.As(err, &cfgErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": cfgErr.Message})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
