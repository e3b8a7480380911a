package models

import "time"

// Wizard step names. Not every service uses every step; a service's
// StepSequence selects the relevant subset in order.
const (
	StepAddress  = "address"
	StepProperty = "property"
	StepConfig   = "service-config"
	StepDuration = "duration"
	StepSchedule = "schedule"
	StepWorker   = "worker"
	StepPayment  = "payment"
	StepReview   = "review"

	// Pseudo-steps marking the flow boundaries.
	StepStart     = "START"
	StepConfirmed = "CONFIRMED"
)

// AllSteps is the canonical ordering used to skip over steps a service
// omits, symmetrically in both directions.
var AllSteps = []string{
	StepAddress, StepProperty, StepConfig, StepDuration,
	StepSchedule, StepWorker, StepPayment, StepReview,
}

// WorkerAny is the sentinel worker choice meaning "any available
// worker"; it is resolved to a concrete worker at commit time.
const WorkerAny = "any"

// Address captures where the service happens.
type Address struct {
	Street      string   `json:"street" validate:"required"`
	Number      string   `json:"number" validate:"required"`
	Complement  string   `json:"complement,omitempty"`
	District    string   `json:"district"`
	City        string   `json:"city" validate:"required"`
	PostalCode  string   `json:"postal_code,omitempty"`
	Area        string   `json:"area,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	FullAddress string   `json:"full_address,omitempty"`
}

// PropertyInfo captures the property typology used as a pricing key.
type PropertyInfo struct {
	Typology  string `json:"typology" validate:"required"`
	Bedrooms  int    `json:"bedrooms,omitempty" validate:"omitempty,min=0,max=10"`
	Bathrooms int    `json:"bathrooms,omitempty" validate:"omitempty,min=1,max=10"`
}

// ServiceConfigData captures the service-specific configuration step
// (AC unit count, pest treatment, training package, ...).
type ServiceConfigData struct {
	UnitCount   int               `json:"unit_count,omitempty"`
	PackageID   string            `json:"package_id,omitempty"`
	ServiceType string            `json:"service_type,omitempty"`
	Options     map[string]string `json:"options,omitempty"`
	Notes       string            `json:"notes,omitempty"`
}

// DurationInfo captures requested hours plus optional extra tasks.
type DurationInfo struct {
	Hours float64  `json:"hours"`
	Tasks []string `json:"tasks,omitempty"`
}

// ScheduleInfo captures the requested date, time and urgency.
type ScheduleInfo struct {
	Date    string `json:"date" validate:"required"`
	Time    string `json:"time" validate:"required"`
	Urgency string `json:"urgency,omitempty" validate:"omitempty,oneof=normal urgent emergency"`
}

// WorkerChoice captures a specific worker id or the "any" sentinel.
type WorkerChoice struct {
	WorkerID   string `json:"worker_id" validate:"required"`
	Preference string `json:"preference,omitempty"`
}

// PaymentChoice captures the selected payment method.
type PaymentChoice struct {
	Method string `json:"payment_method" validate:"required,oneof=cash transfer card"`
}

// BookingSession is the typed record of one customer's in-progress
// booking: one field per wizard step, owned exclusively by one customer
// identity, destroyed on successful commit or abandonment.
type BookingSession struct {
	SessionID   string `json:"sessionId"`
	CustomerID  string `json:"customerId"`
	ServiceSlug string `json:"service_slug"`

	Address  *Address           `json:"address,omitempty"`
	Property *PropertyInfo      `json:"property,omitempty"`
	Config   *ServiceConfigData `json:"service_config,omitempty"`
	Duration *DurationInfo      `json:"duration,omitempty"`
	Schedule *ScheduleInfo      `json:"schedule,omitempty"`
	Worker   *WorkerChoice      `json:"worker,omitempty"`
	Payment  *PaymentChoice     `json:"payment,omitempty"`

	// Quote and TotalPrice are only valid while Priced is true; any
	// mutation of a pricing-relevant step clears the flag.
	Quote      *PriceQuote `json:"quote,omitempty"`
	TotalPrice int64       `json:"total_price,omitempty"`
	Priced     bool        `json:"priced"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasStep reports whether data for the given step has been captured.
// The review step carries no data of its own and is always satisfied.
func (s *BookingSession) HasStep(step string) bool {
	switch step {
	case StepAddress:
		return s.Address != nil
	case StepProperty:
		return s.Property != nil
	case StepConfig:
		return s.Config != nil
	case StepDuration:
		return s.Duration != nil
	case StepSchedule:
		return s.Schedule != nil
	case StepWorker:
		return s.Worker != nil
	case StepPayment:
		return s.Payment != nil
	case StepReview:
		return true
	}
	return false
}

// MissingSteps returns the steps of the given sequence not yet captured.
func (s *BookingSession) MissingSteps(sequence []string) []string {
	var missing []string
	for _, step := range sequence {
		if !s.HasStep(step) {
			missing = append(missing, step)
		}
	}
	return missing
}
