package packageRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"zela/database"
	"zela/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNoCredits is returned when a consume races another booking and the
// package has no credits left.
var ErrNoCredits = errors.New("package has no remaining credits")

// MongoPackageRepo implements PackageRepository using MongoDB.
type MongoPackageRepo struct {
	packageColl *mongo.Collection
}

// NewMongoPackageRepo constructs a new instance of MongoPackageRepo.
func NewMongoPackageRepo() PackageRepository {
	return &MongoPackageRepo{
		packageColl: database.DB().Collection("service_packages"),
	}
}

func (repo *MongoPackageRepo) GetPackage(ctx context.Context, packageID string) (*models.ServicePackage, error) {
	var pkg models.ServicePackage
	filter := bson.M{"id": packageID}
	if err := repo.packageColl.FindOne(ctx, filter).Decode(&pkg); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching package with id %s: %w", packageID, err)
	}
	return &pkg, nil
}

func (repo *MongoPackageRepo) FindActivePackage(ctx context.Context, customerID, serviceSlug, workerID string) (*models.ServicePackage, error) {
	filter := bson.M{
		"customerId": customerID,
		"status":     models.PackageActive,
		"$expr":      bson.M{"$lt": bson.A{"$usedCredits", "$totalCredits"}},
	}
	if serviceSlug != "" {
		filter["$or"] = bson.A{
			bson.M{"serviceSlug": serviceSlug},
			bson.M{"serviceSlug": bson.M{"$exists": false}},
			bson.M{"serviceSlug": ""},
		}
	}
	if workerID != "" && workerID != models.WorkerAny {
		filter["$and"] = bson.A{bson.M{"$or": bson.A{
			bson.M{"workerId": workerID},
			bson.M{"workerId": bson.M{"$exists": false}},
			bson.M{"workerId": ""},
		}}}
	}

	opts := options.FindOne().SetSort(bson.D{{Key: "purchasedAt", Value: 1}})
	var pkg models.ServicePackage
	if err := repo.packageColl.FindOne(ctx, filter, opts).Decode(&pkg); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("error finding active package: %w", err)
	}
	return &pkg, nil
}

func (repo *MongoPackageRepo) ListActiveForCustomer(ctx context.Context, customerID string) ([]models.ServicePackage, error) {
	filter := bson.M{"customerId": customerID, "status": models.PackageActive}
	cursor, err := repo.packageColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing packages for customer %s: %w", customerID, err)
	}
	defer cursor.Close(ctx)

	var pkgs []models.ServicePackage
	if err := cursor.All(ctx, &pkgs); err != nil {
		return nil, fmt.Errorf("error decoding packages: %w", err)
	}
	return pkgs, nil
}

func (repo *MongoPackageRepo) CreatePackage(ctx context.Context, pkg *models.ServicePackage) error {
	if _, err := repo.packageColl.InsertOne(ctx, pkg); err != nil {
		return fmt.Errorf("insert package failed: %w", err)
	}
	return nil
}

// ConsumeCredit increments usedCredits only while credits remain, so
// two racing bookings can never overspend the same package.
func (repo *MongoPackageRepo) ConsumeCredit(ctx context.Context, packageID string) error {
	filter := bson.M{
		"id":     packageID,
		"status": models.PackageActive,
		"$expr":  bson.M{"$lt": bson.A{"$usedCredits", "$totalCredits"}},
	}
	update := bson.M{"$inc": bson.M{"usedCredits": 1}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var pkg models.ServicePackage
	if err := repo.packageColl.FindOneAndUpdate(ctx, filter, update, opts).Decode(&pkg); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNoCredits
		}
		return fmt.Errorf("consume credit failed: %w", err)
	}

	if pkg.RemainingCredits() <= 0 {
		depleted := bson.M{"$set": bson.M{"status": models.PackageDepleted, "updatedAt": time.Now().UTC()}}
		if _, err := repo.packageColl.UpdateOne(ctx, bson.M{"id": packageID}, depleted); err != nil {
			return fmt.Errorf("mark package depleted failed: %w", err)
		}
	}
	return nil
}
