package booking

import (
	"context"
	"encoding/json"
	"time"

	"zela/models"
	"zela/services/catalog"
	"zela/services/pricing"
	"zela/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FlowController drives the step-by-step booking wizard. Sessions are
// single-writer: one customer identity mutates one session, so no
// locking happens here.
type FlowController struct {
	Catalog  catalog.Catalog
	Pricing  *pricing.Engine
	Sessions SessionStore
	Clock    utils.Clock
	Logger   *zap.Logger
}

func NewFlowController(cat catalog.Catalog, engine *pricing.Engine, sessions SessionStore, clock utils.Clock, logger *zap.Logger) *FlowController {
	if clock == nil {
		clock = utils.SystemClock()
	}
	return &FlowController{
		Catalog:  cat,
		Pricing:  engine,
		Sessions: sessions,
		Clock:    clock,
		Logger:   logger,
	}
}

// StartSession opens a new wizard session for the service and returns
// it along with the first step of the service's flow.
func (f *FlowController) StartSession(ctx context.Context, customerID, serviceSlug string) (*models.BookingSession, string, error) {
	def, err := f.Catalog.GetDefinition(serviceSlug)
	if err != nil {
		return nil, "", err
	}

	now := f.Clock.Now().UTC()
	sess := &models.BookingSession{
		SessionID:   uuid.New().String(),
		CustomerID:  customerID,
		ServiceSlug: serviceSlug,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := f.Sessions.Create(ctx, sess); err != nil {
		return nil, "", err
	}

	f.Logger.Info("booking session started",
		zap.String("sessionId", sess.SessionID),
		zap.String("serviceSlug", serviceSlug))
	return sess, def.StepSequence[0], nil
}

// GetSession loads an existing session for its owner.
func (f *FlowController) GetSession(ctx context.Context, sessionID, customerID string) (*models.BookingSession, error) {
	return f.Sessions.Get(ctx, sessionID, customerID)
}

// Advance validates and stores one step's payload, then returns the
// next step of the service's flow, or CONFIRMED past the final step.
// A known step the flow omits is skipped transparently instead of
// rejected, so clients can walk the canonical step order blindly.
// Re-submitting a step overwrites the previous answer. Advancing
// through the payment step computes and caches the price quote.
func (f *FlowController) Advance(ctx context.Context, sessionID, customerID, step string, payload json.RawMessage) (string, *models.BookingSession, error) {
	sess, err := f.Sessions.Get(ctx, sessionID, customerID)
	if err != nil {
		return "", nil, err
	}
	def, err := f.Catalog.GetDefinition(sess.ServiceSlug)
	if err != nil {
		return "", nil, err
	}
	if !def.HasStepInSequence(step) {
		if stepIndex(step) < 0 {
			return "", nil, models.ValidationErrors{{Step: step, Field: "step", Message: "unknown step"}}
		}
		// The service's flow omits this step: skip over it without
		// touching the session.
		return nextStep(def, step), sess, nil
	}

	affectsPricing, err := applyStep(def, sess, step, payload, f.Clock)
	if err != nil {
		return "", nil, err
	}
	if affectsPricing && sess.Priced {
		sess.Priced = false
		sess.Quote = nil
		sess.TotalPrice = 0
	}

	if step == models.StepPayment {
		if err := f.price(ctx, def, sess); err != nil {
			return "", nil, err
		}
	}

	sess.UpdatedAt = f.Clock.Now().UTC()
	if err := f.Sessions.Save(ctx, sess); err != nil {
		return "", nil, err
	}
	return nextStep(def, step), sess, nil
}

// Retreat returns the previous step of the flow, or START before the
// first step. Stored data is kept so going back is non-destructive.
func (f *FlowController) Retreat(ctx context.Context, sessionID, customerID, step string) (string, error) {
	sess, err := f.Sessions.Get(ctx, sessionID, customerID)
	if err != nil {
		return "", err
	}
	def, err := f.Catalog.GetDefinition(sess.ServiceSlug)
	if err != nil {
		return "", err
	}
	if !def.HasStepInSequence(step) && stepIndex(step) < 0 {
		return "", models.ValidationErrors{{Step: step, Field: "step", Message: "unknown step"}}
	}
	return previousStep(def, step), nil
}

// Quote prices the session as it currently stands and caches the
// result. Used by the review step and the quote endpoint.
func (f *FlowController) Quote(ctx context.Context, sessionID, customerID string) (*models.PriceQuote, error) {
	sess, err := f.Sessions.Get(ctx, sessionID, customerID)
	if err != nil {
		return nil, err
	}
	def, err := f.Catalog.GetDefinition(sess.ServiceSlug)
	if err != nil {
		return nil, err
	}
	if err := f.price(ctx, def, sess); err != nil {
		return nil, err
	}
	sess.UpdatedAt = f.Clock.Now().UTC()
	if err := f.Sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess.Quote, nil
}

// CancelSession abandons the wizard and discards the session.
func (f *FlowController) CancelSession(ctx context.Context, sessionID, customerID string) error {
	if _, err := f.Sessions.Get(ctx, sessionID, customerID); err != nil {
		return err
	}
	return f.Sessions.Delete(ctx, sessionID)
}

func (f *FlowController) price(ctx context.Context, def *models.ServiceDefinition, sess *models.BookingSession) error {
	quote, err := f.Pricing.Calculate(ctx, def, pricingContext(sess))
	if err != nil {
		return err
	}
	sess.Quote = quote
	sess.TotalPrice = quote.Total
	sess.Priced = true
	return nil
}

// pricingContext projects the session's captured steps into the pricing
// engine's input.
func pricingContext(sess *models.BookingSession) pricing.Context {
	pctx := pricing.Context{CustomerID: sess.CustomerID}
	if sess.Property != nil {
		pctx.Typology = sess.Property.Typology
	}
	if sess.Duration != nil {
		pctx.Hours = sess.Duration.Hours
		pctx.Tasks = sess.Duration.Tasks
	}
	if sess.Address != nil {
		pctx.Area = sess.Address.Area
		if pctx.Area == "" {
			pctx.Area = sess.Address.District
		}
	}
	if sess.Schedule != nil {
		pctx.Urgency = sess.Schedule.Urgency
		if start, err := time.ParseInLocation(scheduleDateForm, sess.Schedule.Date, time.UTC); err == nil {
			pctx.ScheduledDate = start
		}
	}
	if sess.Config != nil {
		pctx.UnitCount = sess.Config.UnitCount
		pctx.PackageID = sess.Config.PackageID
		pctx.PackageType = sess.Config.ServiceType
	}
	if sess.Worker != nil {
		pctx.WorkerID = sess.Worker.WorkerID
	}
	return pctx
}

// nextStep walks the canonical step order forward from the current
// step and returns the first one the service's flow contains, so steps
// a service omits are skipped transparently.
func nextStep(def *models.ServiceDefinition, current string) string {
	idx := stepIndex(current)
	for i := idx + 1; i < len(models.AllSteps); i++ {
		if def.HasStepInSequence(models.AllSteps[i]) {
			return models.AllSteps[i]
		}
	}
	return models.StepConfirmed
}

// previousStep is the mirror of nextStep, so skipping is symmetric in
// both directions.
func previousStep(def *models.ServiceDefinition, current string) string {
	idx := stepIndex(current)
	for i := idx - 1; i >= 0; i-- {
		if def.HasStepInSequence(models.AllSteps[i]) {
			return models.AllSteps[i]
		}
	}
	return models.StepStart
}

func stepIndex(step string) int {
	for i, s := range models.AllSteps {
		if s == step {
			return i
		}
	}
	return -1
}
