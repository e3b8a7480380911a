package booking

import (
	"context"
	"testing"
	"time"

	"zela/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWorkers() []models.Worker {
	areas := []models.ServiceArea{
		{Name: "Maianga", Surcharge: 0, Enabled: true},
		{Name: "Rangel", Surcharge: 10, Enabled: true},
	}
	return []models.Worker{
		{ID: "w-ana", Name: "Ana", Capabilities: []string{"indoor-cleaning"}, ServiceAreas: areas, RatingAverage: 4.9, JobsCompleted: 120, Active: true},
		{ID: "w-bela", Name: "Bela", Capabilities: []string{"indoor-cleaning"}, ServiceAreas: areas, RatingAverage: 4.9, JobsCompleted: 80, Active: true},
		{ID: "w-carlos", Name: "Carlos", Capabilities: []string{"indoor-cleaning", "ac-repair"}, ServiceAreas: areas, RatingAverage: 4.5, JobsCompleted: 200, Active: true},
		{ID: "w-dora", Name: "Dora", Capabilities: []string{"ac-repair"}, ServiceAreas: areas, RatingAverage: 5.0, JobsCompleted: 10, Active: true},
		{ID: "w-inactive", Name: "Elias", Capabilities: []string{"indoor-cleaning"}, ServiceAreas: areas, RatingAverage: 5.0, JobsCompleted: 300, Active: false},
		{ID: "w-viana", Name: "Filipa", Capabilities: []string{"indoor-cleaning"}, ServiceAreas: []models.ServiceArea{{Name: "Viana", Surcharge: 20, Enabled: true}}, RatingAverage: 4.8, JobsCompleted: 50, Active: true},
	}
}

func testWindow(hour int) models.TimeWindow {
	start := time.Date(2026, 9, 7, hour, 0, 0, 0, time.UTC)
	return models.TimeWindow{Start: start, End: start.Add(4 * time.Hour)}
}

func indoorDef() *models.ServiceDefinition {
	return &models.ServiceDefinition{Slug: "indoor-cleaning", Active: true}
}

func maiangaAddress() *models.Address {
	return &models.Address{Street: "Rua da Missão", Number: "12", City: "Luanda", District: "Maianga"}
}

func TestFindCandidatesRanking(t *testing.T) {
	matcher := NewMatcher(&fakeWorkerRepo{workers: testWorkers()}, newFakeBookingRepo())

	candidates, err := matcher.FindCandidates(context.Background(), indoorDef(), maiangaAddress(), testWindow(9))
	require.NoError(t, err)

	// Rating desc, jobs desc, id asc. Inactive and out-of-area workers
	// are excluded.
	ids := make([]string, len(candidates))
	for i, w := range candidates {
		ids[i] = w.ID
	}
	assert.Equal(t, []string{"w-ana", "w-bela", "w-carlos"}, ids)
}

func TestFindCandidatesExcludesConflicting(t *testing.T) {
	bookings := newFakeBookingRepo()
	window := testWindow(9)
	require.NoError(t, bookings.CreateBooking(context.Background(), &models.Booking{
		ID:       "b-1",
		WorkerID: "w-ana",
		StartAt:  window.Start,
		EndAt:    window.End,
		Status:   models.StatusAccepted,
	}))
	matcher := NewMatcher(&fakeWorkerRepo{workers: testWorkers()}, bookings)

	candidates, err := matcher.FindCandidates(context.Background(), indoorDef(), maiangaAddress(), window)
	require.NoError(t, err)
	for _, w := range candidates {
		assert.NotEqual(t, "w-ana", w.ID)
	}
}

func TestBackToBackWindowsDoNotConflict(t *testing.T) {
	bookings := newFakeBookingRepo()
	morning := testWindow(9) // 09:00-13:00
	require.NoError(t, bookings.CreateBooking(context.Background(), &models.Booking{
		ID: "b-1", WorkerID: "w-ana", StartAt: morning.Start, EndAt: morning.End,
		Status: models.StatusAccepted,
	}))
	matcher := NewMatcher(&fakeWorkerRepo{workers: testWorkers()}, bookings)

	afternoon := testWindow(13) // starts exactly when the morning ends
	conflict, err := matcher.CheckConflict(context.Background(), "w-ana", afternoon)
	require.NoError(t, err)
	assert.False(t, conflict)

	overlapping := models.TimeWindow{Start: morning.Start.Add(time.Hour), End: morning.End.Add(time.Hour)}
	conflict, err = matcher.CheckConflict(context.Background(), "w-ana", overlapping)
	require.NoError(t, err)
	assert.True(t, conflict)
}

func TestCompletedBookingsDoNotBlock(t *testing.T) {
	bookings := newFakeBookingRepo()
	window := testWindow(9)
	require.NoError(t, bookings.CreateBooking(context.Background(), &models.Booking{
		ID: "b-old", WorkerID: "w-ana", StartAt: window.Start, EndAt: window.End,
		Status: models.StatusCancelled,
	}))
	matcher := NewMatcher(&fakeWorkerRepo{workers: testWorkers()}, bookings)

	conflict, err := matcher.CheckConflict(context.Background(), "w-ana", window)
	require.NoError(t, err)
	assert.False(t, conflict)
}

func TestResolveWorkerAnyPicksTopCandidate(t *testing.T) {
	matcher := NewMatcher(&fakeWorkerRepo{workers: testWorkers()}, newFakeBookingRepo())

	worker, err := matcher.ResolveWorker(context.Background(), indoorDef(), maiangaAddress(), testWindow(9), models.WorkerAny)
	require.NoError(t, err)
	assert.Equal(t, "w-ana", worker.ID)
}

func TestResolveWorkerAnyNoCandidates(t *testing.T) {
	matcher := NewMatcher(&fakeWorkerRepo{}, newFakeBookingRepo())

	_, err := matcher.ResolveWorker(context.Background(), indoorDef(), maiangaAddress(), testWindow(9), models.WorkerAny)
	var conflict *models.ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestResolveWorkerSpecificChoice(t *testing.T) {
	matcher := NewMatcher(&fakeWorkerRepo{workers: testWorkers()}, newFakeBookingRepo())

	worker, err := matcher.ResolveWorker(context.Background(), indoorDef(), maiangaAddress(), testWindow(9), "w-carlos")
	require.NoError(t, err)
	assert.Equal(t, "w-carlos", worker.ID)

	// A worker without the capability is rejected.
	_, err = matcher.ResolveWorker(context.Background(), indoorDef(), maiangaAddress(), testWindow(9), "w-dora")
	var conflict *models.ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestFindCandidatesCached(t *testing.T) {
	repo := &fakeWorkerRepo{workers: testWorkers()}
	matcher := NewMatcher(repo, newFakeBookingRepo())
	matcher.Cache = newFakeCandidateCache()
	window := testWindow(9)

	first, err := matcher.FindCandidates(context.Background(), indoorDef(), maiangaAddress(), window)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls)

	// A repeated probe for the same slot is served from the cache.
	second, err := matcher.FindCandidates(context.Background(), indoorDef(), maiangaAddress(), window)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls)
	assert.Equal(t, first, second)

	// A different window is a different cache entry.
	_, err = matcher.FindCandidates(context.Background(), indoorDef(), maiangaAddress(), testWindow(14))
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listCalls)
}

func TestAreaMatchingIsCaseInsensitive(t *testing.T) {
	matcher := NewMatcher(&fakeWorkerRepo{workers: testWorkers()}, newFakeBookingRepo())
	addr := &models.Address{Street: "Rua A", Number: "1", City: "Luanda", District: "maianga"}

	candidates, err := matcher.FindCandidates(context.Background(), indoorDef(), addr, testWindow(9))
	require.NoError(t, err)
	assert.NotEmpty(t, candidates)
}
