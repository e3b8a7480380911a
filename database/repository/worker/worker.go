package workerRepo

import (
	"context"

	"zela/models"
)

// WorkerRepository defines the data access methods used by the
// availability matcher and the booking committer.
type WorkerRepository interface {
	// GetByID retrieves a worker by its unique ID.
	GetByID(ctx context.Context, workerID string) (*models.Worker, error)
	// ListByCapability retrieves all active workers able to provide the
	// given service.
	ListByCapability(ctx context.Context, serviceSlug string) ([]models.Worker, error)
}
