package booking

import (
	"testing"

	"zela/models"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from    models.BookingStatus
		to      models.BookingStatus
		allowed bool
	}{
		{models.StatusPendingConfirmation, models.StatusAccepted, true},
		{models.StatusPendingConfirmation, models.StatusCancelled, true},
		{models.StatusPendingConfirmation, models.StatusPaymentFailed, true},
		{models.StatusPendingConfirmation, models.StatusCompleted, false},
		{models.StatusPendingConfirmation, models.StatusInProgress, false},
		{models.StatusAccepted, models.StatusInProgress, true},
		{models.StatusAccepted, models.StatusCancelled, true},
		{models.StatusAccepted, models.StatusCompleted, false},
		{models.StatusInProgress, models.StatusCompleted, true},
		{models.StatusInProgress, models.StatusCancelled, true},
		{models.StatusInProgress, models.StatusAccepted, false},
		{models.StatusPaymentFailed, models.StatusCancelled, true},
		{models.StatusPaymentFailed, models.StatusAccepted, false},
		{models.StatusCompleted, models.StatusCancelled, false},
		{models.StatusCancelled, models.StatusAccepted, false},
		{models.StatusCancelled, models.StatusPendingConfirmation, false},
	}

	for _, tc := range cases {
		got := CanTransition(tc.from, tc.to)
		assert.Equal(t, tc.allowed, got, "%s to %s", tc.from, tc.to)
	}
}

func TestValidateTransitionError(t *testing.T) {
	assert.NoError(t, ValidateTransition(models.StatusAccepted, models.StatusInProgress))

	err := ValidateTransition(models.StatusCompleted, models.StatusCancelled)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Contains(t, err.Error(), string(models.StatusCompleted))
}
