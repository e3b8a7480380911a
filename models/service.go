package models

// PricingModel identifies the strategy used to price a service task.
type PricingModel string

const (
	PricingFixed         PricingModel = "fixed"
	PricingHourly        PricingModel = "hourly"
	PricingHourlyMinimum PricingModel = "hourly_min"
	PricingPerUnit       PricingModel = "per_unit"
	PricingTypology      PricingModel = "typology"
	PricingPackage       PricingModel = "package"
)

// KnownTypologies are the property classifications used as pricing keys.
var KnownTypologies = []string{"T1", "T2", "T3", "T4+"}

// DiscountTier is one volume-discount bucket. Buckets are inclusive on
// both ends; MaxUnits == 0 marks an open-ended final bucket. A valid
// table has no gaps and no overlaps.
type DiscountTier struct {
	MinUnits int `json:"minUnits" bson:"minUnits"`
	MaxUnits int `json:"maxUnits" bson:"maxUnits"`
	Percent  int `json:"percent" bson:"percent"`
}

// PackageOption is a purchasable bundle of sessions.
type PackageOption struct {
	Name     string `json:"name" bson:"name"`
	Type     string `json:"type" bson:"type"`
	Sessions int    `json:"sessions" bson:"sessions"`
	Price    int64  `json:"price" bson:"price"`
}

// PricingConfig carries the model-specific pricing parameters of a task.
// Only the fields relevant to the task's pricing model are populated.
type PricingConfig struct {
	MinimumHours    float64          `json:"minimumHours,omitempty"`
	TypologyRates   map[string]int64 `json:"typologyRates,omitempty"`
	TypologyPrices  map[string]int64 `json:"typologyPrices,omitempty"`
	BasePrice       int64            `json:"basePrice,omitempty"`
	VolumeDiscounts []DiscountTier   `json:"volumeDiscounts,omitempty"`
	Packages        []PackageOption  `json:"packages,omitempty"`
}

// BookingRequirements are the per-service validation rules for the flow.
type BookingRequirements struct {
	MinHours         float64 `json:"minHours,omitempty"`
	MaxHours         float64 `json:"maxHours,omitempty"`
	DefaultHours     float64 `json:"defaultHours,omitempty"`
	RequiresTypology bool    `json:"requiresTypology,omitempty"`
	ShowTasks        bool    `json:"showTasks,omitempty"`
}

// ServiceDefinition is the immutable configuration of one bookable
// service: its pricing model, wizard step sequence, validation rules and
// pricing parameters. Loaded once per flow and never mutated by it.
type ServiceDefinition struct {
	Slug         string              `json:"slug"`
	Name         string              `json:"name"`
	Icon         string              `json:"icon,omitempty"`
	Category     string              `json:"category,omitempty"`
	PricingModel PricingModel        `json:"pricingModel"`
	BasePrice    int64               `json:"basePrice"`
	StepSequence []string            `json:"stepSequence"`
	Requirements BookingRequirements `json:"requirements"`
	Pricing      PricingConfig       `json:"pricing"`
	ExtraTasks   []string            `json:"extraTasks,omitempty"`
	Active       bool                `json:"active"`
}

// HasStepInSequence reports whether the given step belongs to this
// service's wizard flow.
func (d *ServiceDefinition) HasStepInSequence(step string) bool {
	for _, s := range d.StepSequence {
		if s == step {
			return true
		}
	}
	return false
}
