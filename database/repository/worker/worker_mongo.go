package workerRepo

import (
	"context"
	"fmt"

	"zela/database"
	"zela/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoWorkerRepo implements WorkerRepository using MongoDB.
type MongoWorkerRepo struct {
	workerColl *mongo.Collection
}

// NewMongoWorkerRepo constructs a new instance of MongoWorkerRepo.
func NewMongoWorkerRepo() WorkerRepository {
	return &MongoWorkerRepo{
		workerColl: database.DB().Collection("workers"),
	}
}

func (repo *MongoWorkerRepo) GetByID(ctx context.Context, workerID string) (*models.Worker, error) {
	var worker models.Worker
	filter := bson.M{"id": workerID}
	if err := repo.workerColl.FindOne(ctx, filter).Decode(&worker); err != nil {
		return nil, fmt.Errorf("error fetching worker with id %s: %w", workerID, err)
	}
	return &worker, nil
}

func (repo *MongoWorkerRepo) ListByCapability(ctx context.Context, serviceSlug string) ([]models.Worker, error) {
	filter := bson.M{
		"active":       true,
		"capabilities": serviceSlug,
	}
	cursor, err := repo.workerColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing workers for service %s: %w", serviceSlug, err)
	}
	defer cursor.Close(ctx)

	var workers []models.Worker
	if err := cursor.All(ctx, &workers); err != nil {
		return nil, fmt.Errorf("error decoding workers: %w", err)
	}
	return workers, nil
}
