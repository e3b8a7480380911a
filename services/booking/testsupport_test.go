package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"zela/models"

	"go.uber.org/zap"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

// testNow is the instant all booking tests run at: a Tuesday morning.
var testNow = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

// memStore is an in-memory SessionStore.
type memStore struct {
	mu       sync.Mutex
	sessions map[string]*models.BookingSession
}

func newMemStore() *memStore {
	return &memStore{sessions: make(map[string]*models.BookingSession)}
}

func (s *memStore) Create(ctx context.Context, sess *models.BookingSession) error {
	return s.Save(ctx, sess)
}

func (s *memStore) Save(ctx context.Context, sess *models.BookingSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *sess
	s.sessions[sess.SessionID] = &cp
	return nil
}

func (s *memStore) Get(ctx context.Context, sessionID, customerID string) (*models.BookingSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok || sess.CustomerID != customerID {
		return nil, ErrSessionNotFound
	}
	cp := *sess
	return &cp, nil
}

func (s *memStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

func (s *memStore) has(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[sessionID]
	return ok
}

// fakeWorkerRepo serves a fixed set of workers.
type fakeWorkerRepo struct {
	workers   []models.Worker
	listCalls int
}

func (f *fakeWorkerRepo) GetByID(ctx context.Context, workerID string) (*models.Worker, error) {
	for i := range f.workers {
		if f.workers[i].ID == workerID {
			cp := f.workers[i]
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("worker %s not found", workerID)
}

func (f *fakeWorkerRepo) ListByCapability(ctx context.Context, serviceSlug string) ([]models.Worker, error) {
	f.listCalls++
	var out []models.Worker
	for _, w := range f.workers {
		if w.Active && w.HasCapability(serviceSlug) {
			out = append(out, w)
		}
	}
	return out, nil
}

// fakeCandidateCache is an in-memory CandidateCache.
type fakeCandidateCache struct {
	mu      sync.Mutex
	entries map[string][]models.Worker
}

func newFakeCandidateCache() *fakeCandidateCache {
	return &fakeCandidateCache{entries: make(map[string][]models.Worker)}
}

func (c *fakeCandidateCache) GetCandidates(ctx context.Context, key string) ([]models.Worker, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	workers, ok := c.entries[key]
	return workers, ok
}

func (c *fakeCandidateCache) PutCandidates(ctx context.Context, key string, workers []models.Worker) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = workers
}

// fakeBookingRepo keeps bookings in memory. CommitBooking runs the
// conflict re-check and insert under one lock, mirroring the mongo
// transaction's atomicity.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (f *fakeBookingRepo) CreateBooking(ctx context.Context, booking *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *booking
	f.bookings[booking.ID] = &cp
	return nil
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	bk, ok := f.bookings[bookingID]
	if !ok {
		return nil, fmt.Errorf("booking %s not found", bookingID)
	}
	cp := *bk
	return &cp, nil
}

func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, bookingID string, status models.BookingStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if bk, ok := f.bookings[bookingID]; ok {
		bk.Status = status
	}
	return nil
}

func (f *fakeBookingRepo) SetPaymentReference(ctx context.Context, bookingID, paymentRef string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if bk, ok := f.bookings[bookingID]; ok {
		bk.PaymentRef = paymentRef
	}
	return nil
}

func (f *fakeBookingRepo) FindOverlapping(ctx context.Context, workerID string, window models.TimeWindow) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.overlappingLocked(workerID, window), nil
}

func (f *fakeBookingRepo) ListForCustomer(ctx context.Context, customerID string) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, bk := range f.bookings {
		if bk.CustomerID == customerID {
			out = append(out, *bk)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) CommitBooking(ctx context.Context, booking *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.overlappingLocked(booking.WorkerID, booking.Window())) > 0 {
		return &models.ConflictError{WorkerID: booking.WorkerID}
	}
	cp := *booking
	f.bookings[booking.ID] = &cp
	return nil
}

func (f *fakeBookingRepo) overlappingLocked(workerID string, window models.TimeWindow) []models.Booking {
	var out []models.Booking
	for _, bk := range f.bookings {
		if bk.WorkerID != workerID {
			continue
		}
		active := false
		for _, s := range models.ActiveStatuses {
			if bk.Status == s {
				active = true
				break
			}
		}
		if active && bk.Window().Overlaps(window) {
			out = append(out, *bk)
		}
	}
	return out
}

// fakePackageRepo tracks credit consumption.
type fakePackageRepo struct {
	mu       sync.Mutex
	packages map[string]*models.ServicePackage
	created  []*models.ServicePackage
}

func newFakePackageRepo(pkgs ...*models.ServicePackage) *fakePackageRepo {
	repo := &fakePackageRepo{packages: make(map[string]*models.ServicePackage)}
	for _, p := range pkgs {
		cp := *p
		repo.packages[p.ID] = &cp
	}
	return repo
}

func (f *fakePackageRepo) GetPackage(ctx context.Context, packageID string) (*models.ServicePackage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if pkg, ok := f.packages[packageID]; ok {
		cp := *pkg
		return &cp, nil
	}
	return nil, nil
}

func (f *fakePackageRepo) FindActivePackage(ctx context.Context, customerID, serviceSlug, workerID string) (*models.ServicePackage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, pkg := range f.packages {
		if pkg.CustomerID != customerID || pkg.Status != models.PackageActive {
			continue
		}
		if pkg.RemainingCredits() <= 0 {
			continue
		}
		if serviceSlug != "" && pkg.ServiceSlug != "" && pkg.ServiceSlug != serviceSlug {
			continue
		}
		cp := *pkg
		return &cp, nil
	}
	return nil, nil
}

func (f *fakePackageRepo) ListActiveForCustomer(ctx context.Context, customerID string) ([]models.ServicePackage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ServicePackage
	for _, pkg := range f.packages {
		if pkg.CustomerID == customerID && pkg.Status == models.PackageActive {
			out = append(out, *pkg)
		}
	}
	return out, nil
}

func (f *fakePackageRepo) CreatePackage(ctx context.Context, pkg *models.ServicePackage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *pkg
	f.packages[pkg.ID] = &cp
	f.created = append(f.created, &cp)
	return nil
}

func (f *fakePackageRepo) ConsumeCredit(ctx context.Context, packageID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	pkg, ok := f.packages[packageID]
	if !ok || pkg.Status != models.PackageActive || pkg.RemainingCredits() <= 0 {
		return &models.PaymentError{Reason: "no credits"}
	}
	pkg.UsedCredits++
	if pkg.RemainingCredits() <= 0 {
		pkg.Status = models.PackageDepleted
	}
	return nil
}

// fakeGateway records charges; failNext makes the next charge decline.
type fakeGateway struct {
	mu       sync.Mutex
	failNext bool
	charges  []models.PaymentRequest
	refunds  []string
}

func (g *fakeGateway) ProcessPayment(ctx context.Context, req models.PaymentRequest) (*models.PaymentResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.charges = append(g.charges, req)
	if g.failNext {
		g.failNext = false
		return &models.PaymentResult{Success: false, Status: "failed", Error: "Insufficient funds"}, nil
	}
	return &models.PaymentResult{Success: true, TransactionID: "TXN_TEST", Status: "completed"}, nil
}

func (g *fakeGateway) RefundPayment(ctx context.Context, transactionID string, amount int64) (*models.RefundResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.refunds = append(g.refunds, transactionID)
	return &models.RefundResult{Success: true, RefundID: "REF_TEST", TransactionID: transactionID, Status: "refunded"}, nil
}

// fakeNotifier records dispatched notifications.
type fakeNotifier struct {
	mu        sync.Mutex
	confirmed []string
	cancelled []string
	assigned  []string
}

func (n *fakeNotifier) BookingConfirmed(ctx context.Context, booking *models.Booking) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.confirmed = append(n.confirmed, booking.ID)
	return nil
}

func (n *fakeNotifier) BookingCancelled(ctx context.Context, booking *models.Booking) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cancelled = append(n.cancelled, booking.ID)
	return nil
}

func (n *fakeNotifier) WorkerAssigned(ctx context.Context, booking *models.Booking) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.assigned = append(n.assigned, booking.ID)
	return nil
}

func raw(v interface{}) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
