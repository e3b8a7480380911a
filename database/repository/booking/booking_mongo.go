package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"zela/database"
	"zela/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	bookingColl *mongo.Collection
}

// NewMongoBookingRepo constructs a new instance of MongoBookingRepo.
func NewMongoBookingRepo() BookingRepository {
	return &MongoBookingRepo{
		bookingColl: database.DB().Collection("bookings"),
	}
}

func (repo *MongoBookingRepo) CreateBooking(ctx context.Context, booking *models.Booking) error {
	if _, err := repo.bookingColl.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("insert booking failed: %w", err)
	}
	return nil
}

func (repo *MongoBookingRepo) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	var booking models.Booking
	filter := bson.M{"id": bookingID}
	if err := repo.bookingColl.FindOne(ctx, filter).Decode(&booking); err != nil {
		return nil, fmt.Errorf("error fetching booking with id %s: %w", bookingID, err)
	}
	return &booking, nil
}

func (repo *MongoBookingRepo) UpdateStatus(ctx context.Context, bookingID string, status models.BookingStatus) error {
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}}
	res, err := repo.bookingColl.UpdateOne(ctx, bson.M{"id": bookingID}, update)
	if err != nil {
		return fmt.Errorf("update booking status failed: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("booking %s not found", bookingID)
	}
	return nil
}

func (repo *MongoBookingRepo) SetPaymentReference(ctx context.Context, bookingID, paymentRef string) error {
	update := bson.M{"$set": bson.M{"paymentRef": paymentRef, "updatedAt": time.Now().UTC()}}
	if _, err := repo.bookingColl.UpdateOne(ctx, bson.M{"id": bookingID}, update); err != nil {
		return fmt.Errorf("set payment reference failed: %w", err)
	}
	return nil
}

func (repo *MongoBookingRepo) FindOverlapping(ctx context.Context, workerID string, window models.TimeWindow) ([]models.Booking, error) {
	cursor, err := repo.bookingColl.Find(ctx, overlapFilter(workerID, window))
	if err != nil {
		return nil, fmt.Errorf("error finding overlapping bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}

func (repo *MongoBookingRepo) ListForCustomer(ctx context.Context, customerID string) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := repo.bookingColl.Find(ctx, bson.M{"customerId": customerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing bookings for customer %s: %w", customerID, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}

// overlapFilter matches schedule-occupying bookings whose half-open
// [startAt, endAt) window intersects the given one.
func overlapFilter(workerID string, window models.TimeWindow) bson.M {
	return bson.M{
		"workerId": workerID,
		"status":   bson.M{"$in": models.ActiveStatuses},
		"startAt":  bson.M{"$lt": window.End},
		"endAt":    bson.M{"$gt": window.Start},
	}
}
