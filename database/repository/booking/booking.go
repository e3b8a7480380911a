package bookingRepo

import (
	"context"

	"zela/models"
)

// BookingRepository defines the data access methods for durable
// bookings. Bookings are never deleted, only status-transitioned.
type BookingRepository interface {
	// CreateBooking persists a new booking record.
	CreateBooking(ctx context.Context, booking *models.Booking) error
	// GetByID retrieves a booking by its unique ID.
	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	// UpdateStatus sets the booking's status.
	UpdateStatus(ctx context.Context, bookingID string, status models.BookingStatus) error
	// SetPaymentReference records the gateway transaction reference.
	SetPaymentReference(ctx context.Context, bookingID, paymentRef string) error
	// FindOverlapping returns the worker's schedule-occupying bookings
	// whose [startAt, endAt) window intersects the given one.
	FindOverlapping(ctx context.Context, workerID string, window models.TimeWindow) ([]models.Booking, error)
	// ListForCustomer returns the customer's bookings, newest first.
	ListForCustomer(ctx context.Context, customerID string) ([]models.Booking, error)
	// CommitBooking re-checks the worker's availability and inserts the
	// booking inside one transaction, returning a ConflictError when the
	// window was taken between the optimistic check and the commit.
	CommitBooking(ctx context.Context, booking *models.Booking) error
}
