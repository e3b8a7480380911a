package booking

import (
	"errors"
	"fmt"

	"zela/models"
)

// ErrInvalidTransition marks a disallowed booking status change.
var ErrInvalidTransition = errors.New("invalid booking status transition")

// statusTransitions is the booking lifecycle. Completed and cancelled
// are terminal; every non-terminal state can be cancelled.
var statusTransitions = map[models.BookingStatus][]models.BookingStatus{
	models.StatusPendingConfirmation: {
		models.StatusAccepted,
		models.StatusCancelled,
		models.StatusPaymentFailed,
	},
	models.StatusAccepted: {
		models.StatusInProgress,
		models.StatusCancelled,
	},
	models.StatusInProgress: {
		models.StatusCompleted,
		models.StatusCancelled,
	},
	models.StatusPaymentFailed: {
		models.StatusCancelled,
	},
	models.StatusCompleted: nil,
	models.StatusCancelled: nil,
}

// CanTransition reports whether the status change is allowed.
func CanTransition(from, to models.BookingStatus) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ValidateTransition returns a descriptive error for a disallowed
// status change.
func ValidateTransition(from, to models.BookingStatus) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, from, to)
	}
	return nil
}
