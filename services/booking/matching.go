package booking

import (
	"context"
	"fmt"
	"sort"
	"strings"

	bookingRepo "zela/database/repository/booking"
	workerRepo "zela/database/repository/worker"
	"zela/models"
)

// CandidateCache holds recently computed candidate lists so repeated
// probes for the same slot skip the matching pipeline. Entries are
// short-lived; the commit transaction re-checks availability anyway.
type CandidateCache interface {
	GetCandidates(ctx context.Context, key string) ([]models.Worker, bool)
	PutCandidates(ctx context.Context, key string, workers []models.Worker)
}

// Matcher filters and ranks workers for a booking request. Availability
// is always derived from committed bookings at query time, never from a
// stored flag.
type Matcher struct {
	Workers  workerRepo.WorkerRepository
	Bookings bookingRepo.BookingRepository
	Cache    CandidateCache
}

func NewMatcher(workers workerRepo.WorkerRepository, bookings bookingRepo.BookingRepository) *Matcher {
	return &Matcher{Workers: workers, Bookings: bookings}
}

// FindCandidates returns the workers able to serve the request, free
// for the window, ordered best first. The ordering is deterministic:
// rating desc, jobs completed desc, then id asc as the tiebreak.
func (m *Matcher) FindCandidates(ctx context.Context, def *models.ServiceDefinition, address *models.Address, window models.TimeWindow) ([]models.Worker, error) {
	area := requestArea(address)
	key := candidateKey(def.Slug, area, window)
	if m.Cache != nil {
		if cached, ok := m.Cache.GetCandidates(ctx, key); ok {
			return cached, nil
		}
	}

	workers, err := m.Workers.ListByCapability(ctx, def.Slug)
	if err != nil {
		return nil, err
	}

	candidates := make([]models.Worker, 0, len(workers))
	for _, w := range workers {
		if !coversArea(&w, area) {
			continue
		}
		conflict, err := m.CheckConflict(ctx, w.ID, window)
		if err != nil {
			return nil, err
		}
		if conflict {
			continue
		}
		candidates = append(candidates, w)
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.RatingAverage != b.RatingAverage {
			return a.RatingAverage > b.RatingAverage
		}
		if a.JobsCompleted != b.JobsCompleted {
			return a.JobsCompleted > b.JobsCompleted
		}
		return a.ID < b.ID
	})

	if m.Cache != nil {
		m.Cache.PutCandidates(ctx, key, candidates)
	}
	return candidates, nil
}

func candidateKey(serviceSlug, area string, window models.TimeWindow) string {
	return fmt.Sprintf("%s|%s|%d|%d", serviceSlug, strings.ToLower(area), window.Start.Unix(), window.End.Unix())
}

// CheckConflict reports whether the worker already has a
// schedule-occupying booking intersecting the window. The committer
// re-runs the same check inside its transaction.
func (m *Matcher) CheckConflict(ctx context.Context, workerID string, window models.TimeWindow) (bool, error) {
	overlapping, err := m.Bookings.FindOverlapping(ctx, workerID, window)
	if err != nil {
		return false, err
	}
	return len(overlapping) > 0, nil
}

// ResolveWorker turns the "any" sentinel into the best free candidate;
// a concrete choice is verified to exist and be free.
func (m *Matcher) ResolveWorker(ctx context.Context, def *models.ServiceDefinition, address *models.Address, window models.TimeWindow, workerID string) (*models.Worker, error) {
	if workerID == models.WorkerAny || workerID == "" {
		candidates, err := m.FindCandidates(ctx, def, address, window)
		if err != nil {
			return nil, err
		}
		if len(candidates) == 0 {
			return nil, &models.ConflictError{Message: "no workers available for the selected time"}
		}
		return &candidates[0], nil
	}

	worker, err := m.Workers.GetByID(ctx, workerID)
	if err != nil {
		return nil, err
	}
	if !worker.Active || !worker.HasCapability(def.Slug) {
		return nil, &models.ConflictError{WorkerID: workerID, Message: "worker cannot provide this service"}
	}
	conflict, err := m.CheckConflict(ctx, worker.ID, window)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, &models.ConflictError{WorkerID: workerID}
	}
	return worker, nil
}

// requestArea picks the address field used for coverage matching.
func requestArea(address *models.Address) string {
	if address == nil {
		return ""
	}
	if address.Area != "" {
		return address.Area
	}
	return address.District
}

// coversArea matches coverage case-insensitively. A worker with no
// configured areas covers everywhere; an empty request area matches
// every worker.
func coversArea(w *models.Worker, area string) bool {
	if area == "" || len(w.ServiceAreas) == 0 {
		return true
	}
	for _, a := range w.ServiceAreas {
		if a.Enabled && strings.EqualFold(a.Name, area) {
			return true
		}
	}
	return false
}
