package bookingRepo

import (
	"context"
	"errors"
	"fmt"

	"zela/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// CommitBooking closes the read-then-write race on the optimistic
// availability check: inside one transaction it re-counts conflicting
// bookings for the worker's window and inserts the new record only when
// the count is still zero.
func (repo *MongoBookingRepo) CommitBooking(ctx context.Context, booking *models.Booking) error {
	client := repo.bookingColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		count, err := repo.bookingColl.CountDocuments(sc, overlapFilter(booking.WorkerID, booking.Window()))
		if err != nil {
			return fmt.Errorf("conflict re-check failed: %w", err)
		}
		if count > 0 {
			return &models.ConflictError{WorkerID: booking.WorkerID}
		}
		if _, err := repo.bookingColl.InsertOne(sc, booking); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		var conflict *models.ConflictError
		if errors.As(err, &conflict) {
			return conflict
		}
		return fmt.Errorf("booking transaction failed: %w", err)
	}

	return nil
}
