package notification

import (
	"context"

	"zela/models"
	"zela/utils"

	"go.uber.org/zap"
)

// Dispatcher delivers booking lifecycle notifications. Delivery is
// fail-soft: the committer never rolls back a booking because a
// notification could not be sent.
type Dispatcher interface {
	BookingConfirmed(ctx context.Context, booking *models.Booking) error
	BookingCancelled(ctx context.Context, booking *models.Booking) error
	WorkerAssigned(ctx context.Context, booking *models.Booking) error
}

// LogDispatcher records notifications to the service log. It stands in
// for the email/push channels in development and tests.
type LogDispatcher struct{}

func NewLogDispatcher() *LogDispatcher {
	return &LogDispatcher{}
}

func (d *LogDispatcher) BookingConfirmed(ctx context.Context, booking *models.Booking) error {
	utils.GetLogger().Info("Notification: booking confirmed",
		zap.String("bookingId", booking.ID),
		zap.String("customerId", booking.CustomerID),
		zap.String("serviceSlug", booking.ServiceSlug))
	return nil
}

func (d *LogDispatcher) BookingCancelled(ctx context.Context, booking *models.Booking) error {
	utils.GetLogger().Info("Notification: booking cancelled",
		zap.String("bookingId", booking.ID),
		zap.String("customerId", booking.CustomerID))
	return nil
}

func (d *LogDispatcher) WorkerAssigned(ctx context.Context, booking *models.Booking) error {
	utils.GetLogger().Info("Notification: worker assigned",
		zap.String("bookingId", booking.ID),
		zap.String("workerId", booking.WorkerID))
	return nil
}
