package packageRepo

import (
	"context"

	"zela/models"
)

// PackageRepository defines the data access methods for pre-purchased
// session packages.
type PackageRepository interface {
	// GetPackage retrieves a package by its unique ID.
	GetPackage(ctx context.Context, packageID string) (*models.ServicePackage, error)
	// FindActivePackage returns the customer's oldest usable package for
	// the service, preferring one pinned to the given worker. serviceSlug
	// and workerID narrow the search; empty values match any.
	FindActivePackage(ctx context.Context, customerID, serviceSlug, workerID string) (*models.ServicePackage, error)
	// ListActiveForCustomer returns all of the customer's active packages.
	ListActiveForCustomer(ctx context.Context, customerID string) ([]models.ServicePackage, error)
	// CreatePackage persists a newly purchased package.
	CreatePackage(ctx context.Context, pkg *models.ServicePackage) error
	// ConsumeCredit atomically spends one credit, marking the package
	// depleted when the last credit goes. Fails when none remain.
	ConsumeCredit(ctx context.Context, packageID string) error
}
