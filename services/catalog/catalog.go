package catalog

import (
	"fmt"
	"sort"

	"zela/models"
)

// Catalog exposes read-only service configuration. Returned
// definitions are detached copies, nested state included.
type Catalog interface {
	GetDefinition(serviceSlug string) (*models.ServiceDefinition, error)
	ListDefinitions() []models.ServiceDefinition
}

// StaticCatalog serves definitions from the in-package service map.
type StaticCatalog struct {
	defs map[string]models.ServiceDefinition
}

// NewStaticCatalog builds the catalog and validates every definition's
// pricing configuration up front, so a malformed discount table fails at
// startup instead of at quote time.
func NewStaticCatalog() (*StaticCatalog, error) {
	defs := make(map[string]models.ServiceDefinition, len(servicesMap))
	for slug, def := range servicesMap {
		if err := validateDefinition(&def); err != nil {
			return nil, fmt.Errorf("service %q: %w", slug, err)
		}
		defs[slug] = def
	}
	return &StaticCatalog{defs: defs}, nil
}

// GetDefinition returns the configuration for a service slug. A missing
// or inactive service yields a ConfigurationError, never a zero value.
func (c *StaticCatalog) GetDefinition(serviceSlug string) (*models.ServiceDefinition, error) {
	def, ok := c.defs[serviceSlug]
	if !ok || !def.Active {
		return nil, models.NewConfigurationError("service %q not found", serviceSlug)
	}
	out := cloneDefinition(def)
	return &out, nil
}

// ListDefinitions returns all active definitions ordered by slug.
func (c *StaticCatalog) ListDefinitions() []models.ServiceDefinition {
	out := make([]models.ServiceDefinition, 0, len(c.defs))
	for _, def := range c.defs {
		if def.Active {
			out = append(out, cloneDefinition(def))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}

// cloneDefinition deep-copies the nested slices and maps so callers
// can never reach catalog state through a returned definition.
func cloneDefinition(def models.ServiceDefinition) models.ServiceDefinition {
	out := def
	out.StepSequence = append([]string(nil), def.StepSequence...)
	out.ExtraTasks = append([]string(nil), def.ExtraTasks...)
	out.Pricing.TypologyRates = cloneRates(def.Pricing.TypologyRates)
	out.Pricing.TypologyPrices = cloneRates(def.Pricing.TypologyPrices)
	out.Pricing.VolumeDiscounts = append([]models.DiscountTier(nil), def.Pricing.VolumeDiscounts...)
	out.Pricing.Packages = append([]models.PackageOption(nil), def.Pricing.Packages...)
	return out
}

func cloneRates(in map[string]int64) map[string]int64 {
	if in == nil {
		return nil
	}
	out := make(map[string]int64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func validateDefinition(def *models.ServiceDefinition) error {
	if len(def.StepSequence) == 0 {
		return fmt.Errorf("empty step sequence")
	}
	for _, step := range def.StepSequence {
		if !knownStep(step) {
			return fmt.Errorf("unknown step %q in sequence", step)
		}
	}
	switch def.PricingModel {
	case models.PricingPerUnit:
		return validateDiscountTiers(def.Pricing.VolumeDiscounts)
	case models.PricingTypology:
		if len(def.Pricing.TypologyPrices) == 0 {
			return fmt.Errorf("typology pricing requires a typology price table")
		}
	case models.PricingPackage:
		if len(def.Pricing.Packages) == 0 {
			return fmt.Errorf("package pricing requires package options")
		}
	case models.PricingFixed, models.PricingHourly, models.PricingHourlyMinimum:
	default:
		return fmt.Errorf("unknown pricing model %q", def.PricingModel)
	}
	return nil
}

// validateDiscountTiers enforces the bucket invariant: buckets start at
// one unit, leave no gaps, never overlap, end open-ended, and discounts
// never shrink as volume grows.
func validateDiscountTiers(tiers []models.DiscountTier) error {
	if len(tiers) == 0 {
		return fmt.Errorf("per-unit pricing requires volume discount tiers")
	}
	sorted := make([]models.DiscountTier, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].MinUnits < sorted[j].MinUnits })

	if sorted[0].MinUnits != 1 {
		return fmt.Errorf("discount tiers must start at 1 unit, got %d", sorted[0].MinUnits)
	}
	for i, t := range sorted {
		last := i == len(sorted)-1
		if last {
			if t.MaxUnits != 0 {
				return fmt.Errorf("final discount tier must be open-ended")
			}
		} else {
			if t.MaxUnits < t.MinUnits {
				return fmt.Errorf("discount tier %d-%d is inverted", t.MinUnits, t.MaxUnits)
			}
			if sorted[i+1].MinUnits != t.MaxUnits+1 {
				return fmt.Errorf("discount tiers have a gap or overlap at %d units", sorted[i+1].MinUnits)
			}
		}
		if t.Percent < 0 || t.Percent > 100 {
			return fmt.Errorf("discount percent %d out of range", t.Percent)
		}
		if i > 0 && t.Percent < sorted[i-1].Percent {
			return fmt.Errorf("discount must be non-decreasing with volume")
		}
	}
	return nil
}

func knownStep(step string) bool {
	for _, s := range models.AllSteps {
		if s == step {
			return true
		}
	}
	return false
}
