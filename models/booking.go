package models

import "time"

// BookingStatus is the persisted state of a Booking. Bookings are never
// deleted, only transitioned until a terminal state.
type BookingStatus string

const (
	StatusPendingConfirmation BookingStatus = "pending_confirmation"
	StatusAccepted            BookingStatus = "accepted"
	StatusInProgress          BookingStatus = "in_progress"
	StatusCompleted           BookingStatus = "completed"
	StatusCancelled           BookingStatus = "cancelled"
	StatusPaymentFailed       BookingStatus = "payment_failed"
)

// ActiveStatuses are the states that occupy a worker's schedule and
// therefore count in conflict checks.
var ActiveStatuses = []BookingStatus{
	StatusPendingConfirmation, StatusAccepted, StatusInProgress,
}

// TimeWindow is a half-open interval [Start, End).
type TimeWindow struct {
	Start time.Time `json:"start" bson:"start"`
	End   time.Time `json:"end" bson:"end"`
}

// Overlaps reports half-open interval intersection, so back-to-back
// windows do not collide.
func (w TimeWindow) Overlaps(o TimeWindow) bool {
	return w.Start.Before(o.End) && o.Start.Before(w.End)
}

// Booking is the durable record created by a successful commit.
type Booking struct {
	ID            string        `json:"id" bson:"id"`
	CustomerID    string        `json:"customerId" bson:"customerId"`
	WorkerID      string        `json:"workerId,omitempty" bson:"workerId,omitempty"`
	ServiceSlug   string        `json:"serviceSlug" bson:"serviceSlug"`
	StartAt       time.Time     `json:"startAt" bson:"startAt"`
	EndAt         time.Time     `json:"endAt" bson:"endAt"`
	Address       string        `json:"address" bson:"address"`
	Notes         string        `json:"notes,omitempty" bson:"notes,omitempty"`
	Status        BookingStatus `json:"status" bson:"status"`
	TotalPrice    int64         `json:"totalPrice" bson:"totalPrice"`
	PaymentMethod string        `json:"paymentMethod,omitempty" bson:"paymentMethod,omitempty"`
	PaymentRef    string        `json:"paymentRef,omitempty" bson:"paymentRef,omitempty"`
	UsedPackageID string        `json:"usedPackageId,omitempty" bson:"usedPackageId,omitempty"`
	CreatedAt     time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// Window returns the booking's scheduled interval.
func (b *Booking) Window() TimeWindow {
	return TimeWindow{Start: b.StartAt, End: b.EndAt}
}

// DurationHours returns the scheduled duration in hours.
func (b *Booking) DurationHours() float64 {
	return b.EndAt.Sub(b.StartAt).Hours()
}
