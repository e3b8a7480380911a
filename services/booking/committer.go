package booking

import (
	"context"
	"fmt"
	"time"

	bookingRepo "zela/database/repository/booking"
	packageRepo "zela/database/repository/servicepackage"
	"zela/models"
	"zela/services/catalog"
	"zela/services/notification"
	"zela/services/payment"
	"zela/services/pricing"
	"zela/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultPaymentTimeout = 30 * time.Second

// Committer turns a completed wizard session into a durable booking:
// it resolves the worker, closes the availability race inside a
// transaction, charges the payment and consumes package credits. A
// booking that fails payment persists in payment_failed for audit.
type Committer struct {
	Catalog        catalog.Catalog
	Pricing        *pricing.Engine
	Matcher        *Matcher
	Bookings       bookingRepo.BookingRepository
	Packages       packageRepo.PackageRepository
	Gateway        payment.Gateway
	Notifier       notification.Dispatcher
	Sessions       SessionStore
	Clock          utils.Clock
	Logger         *zap.Logger
	PaymentTimeout time.Duration
}

func NewCommitter(
	cat catalog.Catalog,
	engine *pricing.Engine,
	matcher *Matcher,
	bookings bookingRepo.BookingRepository,
	packages packageRepo.PackageRepository,
	gateway payment.Gateway,
	notifier notification.Dispatcher,
	sessions SessionStore,
	clock utils.Clock,
	logger *zap.Logger,
) *Committer {
	if clock == nil {
		clock = utils.SystemClock()
	}
	return &Committer{
		Catalog:        cat,
		Pricing:        engine,
		Matcher:        matcher,
		Bookings:       bookings,
		Packages:       packages,
		Gateway:        gateway,
		Notifier:       notifier,
		Sessions:       sessions,
		Clock:          clock,
		Logger:         logger,
		PaymentTimeout: defaultPaymentTimeout,
	}
}

// Commit finalizes the session into a booking. On success the session
// is destroyed; on conflict or payment failure it survives so the
// customer can adjust and retry.
func (c *Committer) Commit(ctx context.Context, sessionID, customerID string) (*models.Booking, error) {
	sess, err := c.Sessions.Get(ctx, sessionID, customerID)
	if err != nil {
		return nil, err
	}
	def, err := c.Catalog.GetDefinition(sess.ServiceSlug)
	if err != nil {
		return nil, err
	}

	if missing := sess.MissingSteps(def.StepSequence); len(missing) > 0 {
		return nil, &models.IncompleteSessionError{MissingSteps: missing}
	}

	quote := sess.Quote
	if !sess.Priced || quote == nil {
		quote, err = c.Pricing.Calculate(ctx, def, pricingContext(sess))
		if err != nil {
			return nil, err
		}
	}
	if quote.RequiresPackageSelection {
		return nil, models.ValidationErrors{{
			Step: models.StepConfig, Field: "service_type", Message: "package selection required",
		}}
	}

	window, err := SessionWindow(def, sess, quote)
	if err != nil {
		return nil, err
	}

	worker, err := c.Matcher.ResolveWorker(ctx, def, sess.Address, window, sess.Worker.WorkerID)
	if err != nil {
		return nil, err
	}

	now := c.Clock.Now().UTC()
	booking := &models.Booking{
		ID:            uuid.New().String(),
		CustomerID:    customerID,
		WorkerID:      worker.ID,
		ServiceSlug:   def.Slug,
		StartAt:       window.Start,
		EndAt:         window.End,
		Address:       formatAddress(sess.Address),
		Status:        models.StatusPendingConfirmation,
		TotalPrice:    quote.Total,
		PaymentMethod: sess.Payment.Method,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if quote.UsesPackage {
		booking.UsedPackageID = quote.PackageID
	}
	if sess.Config != nil {
		booking.Notes = sess.Config.Notes
	}

	if err := c.Bookings.CommitBooking(ctx, booking); err != nil {
		return nil, err
	}

	if err := c.settle(ctx, def, sess, quote, booking); err != nil {
		return nil, err
	}

	if err := c.Sessions.Delete(ctx, sessionID); err != nil {
		c.Logger.Warn("failed to clean up committed session",
			zap.String("sessionId", sessionID), zap.Error(err))
	}
	c.notify(ctx, booking)

	c.Logger.Info("booking committed",
		zap.String("bookingId", booking.ID),
		zap.String("workerId", booking.WorkerID),
		zap.Int64("totalPrice", booking.TotalPrice))
	return booking, nil
}

// settle charges the gateway and spends or creates package credits.
// Cash bookings skip the gateway and settle on site.
func (c *Committer) settle(ctx context.Context, def *models.ServiceDefinition, sess *models.BookingSession, quote *models.PriceQuote, booking *models.Booking) error {
	if sess.Payment.Method != "cash" && booking.TotalPrice > 0 {
		timeout := c.PaymentTimeout
		if timeout <= 0 {
			timeout = defaultPaymentTimeout
		}
		payCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		result, err := c.Gateway.ProcessPayment(payCtx, models.PaymentRequest{
			Amount:    booking.TotalPrice,
			Currency:  quote.Currency,
			BookingID: booking.ID,
			Method:    sess.Payment.Method,
		})
		if err != nil {
			return c.failPayment(ctx, booking, "gateway error", err)
		}
		if !result.Success {
			return c.failPayment(ctx, booking, result.Error, nil)
		}
		booking.PaymentRef = result.TransactionID
		if err := c.Bookings.SetPaymentReference(ctx, booking.ID, result.TransactionID); err != nil {
			c.Logger.Error("failed to record payment reference",
				zap.String("bookingId", booking.ID), zap.Error(err))
		}
	}

	if quote.UsesPackage {
		if err := c.Packages.ConsumeCredit(ctx, quote.PackageID); err != nil {
			return c.failPayment(ctx, booking, "package credits exhausted", err)
		}
		return nil
	}

	// A freshly purchased package has its first session consumed by
	// this booking.
	if def.PricingModel == models.PricingPackage && quote.CreditsToUse == 1 {
		if err := c.createPurchasedPackage(ctx, def, sess, booking); err != nil {
			c.Logger.Error("failed to create purchased package",
				zap.String("bookingId", booking.ID), zap.Error(err))
		}
	}
	return nil
}

func (c *Committer) createPurchasedPackage(ctx context.Context, def *models.ServiceDefinition, sess *models.BookingSession, booking *models.Booking) error {
	var selected *models.PackageOption
	for i, opt := range def.Pricing.Packages {
		if sess.Config != nil && opt.Type == sess.Config.ServiceType {
			selected = &def.Pricing.Packages[i]
			break
		}
	}
	if selected == nil {
		return fmt.Errorf("no package option selected")
	}

	pkg := &models.ServicePackage{
		ID:           uuid.New().String(),
		CustomerID:   booking.CustomerID,
		WorkerID:     booking.WorkerID,
		ServiceSlug:  def.Slug,
		Name:         selected.Name,
		Type:         selected.Type,
		TotalCredits: selected.Sessions,
		UsedCredits:  1,
		AmountPaid:   booking.TotalPrice,
		Status:       models.PackageActive,
		PurchasedAt:  c.Clock.Now().UTC(),
	}
	if pkg.RemainingCredits() <= 0 {
		pkg.Status = models.PackageDepleted
	}
	if err := c.Packages.CreatePackage(ctx, pkg); err != nil {
		return err
	}
	booking.UsedPackageID = pkg.ID
	return nil
}

func (c *Committer) failPayment(ctx context.Context, booking *models.Booking, reason string, cause error) error {
	if err := c.Bookings.UpdateStatus(ctx, booking.ID, models.StatusPaymentFailed); err != nil {
		c.Logger.Error("failed to mark booking payment_failed",
			zap.String("bookingId", booking.ID), zap.Error(err))
	}
	booking.Status = models.StatusPaymentFailed
	return &models.PaymentError{Reason: reason, Err: cause}
}

// Cancel transitions a booking to cancelled, refunding any captured
// electronic payment first.
func (c *Committer) Cancel(ctx context.Context, bookingID, customerID string) (*models.Booking, error) {
	booking, err := c.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.CustomerID != customerID {
		return nil, fmt.Errorf("booking %s not found for customer", bookingID)
	}
	if err := ValidateTransition(booking.Status, models.StatusCancelled); err != nil {
		return nil, err
	}

	if booking.PaymentRef != "" && booking.PaymentMethod != "cash" {
		result, err := c.Gateway.RefundPayment(ctx, booking.PaymentRef, booking.TotalPrice)
		if err != nil || !result.Success {
			c.Logger.Error("refund failed",
				zap.String("bookingId", booking.ID),
				zap.String("transactionId", booking.PaymentRef),
				zap.Error(err))
		}
	}

	if err := c.Bookings.UpdateStatus(ctx, bookingID, models.StatusCancelled); err != nil {
		return nil, err
	}
	booking.Status = models.StatusCancelled

	if err := c.Notifier.BookingCancelled(ctx, booking); err != nil {
		c.Logger.Warn("cancellation notification failed",
			zap.String("bookingId", booking.ID), zap.Error(err))
	}
	return booking, nil
}

// Transition moves a booking along its lifecycle (accept, start,
// complete). Used by the worker-facing status endpoints.
func (c *Committer) Transition(ctx context.Context, bookingID string, to models.BookingStatus) (*models.Booking, error) {
	booking, err := c.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := ValidateTransition(booking.Status, to); err != nil {
		return nil, err
	}
	if err := c.Bookings.UpdateStatus(ctx, bookingID, to); err != nil {
		return nil, err
	}
	booking.Status = to
	return booking, nil
}

// SessionWindow builds the booking's half-open time window from the
// schedule step and the effective duration. quote may be nil when the
// session has not been priced yet.
func SessionWindow(def *models.ServiceDefinition, sess *models.BookingSession, quote *models.PriceQuote) (models.TimeWindow, error) {
	if sess.Schedule == nil {
		return models.TimeWindow{}, models.ValidationErrors{{
			Step: models.StepSchedule, Field: "date", Message: "schedule not captured yet",
		}}
	}
	start, err := time.ParseInLocation(scheduleDateForm+" "+scheduleTimeForm, sess.Schedule.Date+" "+sess.Schedule.Time, time.UTC)
	if err != nil {
		return models.TimeWindow{}, models.ValidationErrors{{
			Step: models.StepSchedule, Field: "date", Message: "invalid date or time format",
		}}
	}

	var hours float64
	if quote != nil {
		hours = quote.Breakdown.Hours
	}
	if hours <= 0 && sess.Duration != nil {
		hours = sess.Duration.Hours
	}
	if hours <= 0 {
		hours = def.Requirements.DefaultHours
	}
	if hours <= 0 {
		hours = 2
	}
	end := start.Add(time.Duration(hours * float64(time.Hour)))
	return models.TimeWindow{Start: start, End: end}, nil
}

func (c *Committer) notify(ctx context.Context, booking *models.Booking) {
	if err := c.Notifier.BookingConfirmed(ctx, booking); err != nil {
		c.Logger.Warn("confirmation notification failed",
			zap.String("bookingId", booking.ID), zap.Error(err))
	}
	if err := c.Notifier.WorkerAssigned(ctx, booking); err != nil {
		c.Logger.Warn("worker notification failed",
			zap.String("bookingId", booking.ID), zap.Error(err))
	}
}

func formatAddress(addr *models.Address) string {
	if addr == nil {
		return ""
	}
	if addr.FullAddress != "" {
		return addr.FullAddress
	}
	out := addr.Street + " " + addr.Number
	if addr.District != "" {
		out += ", " + addr.District
	}
	if addr.City != "" {
		out += ", " + addr.City
	}
	return out
}
