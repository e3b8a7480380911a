package pricing

import (
	"context"

	"zela/models"
)

func (e *Engine) priceFixed(def *models.ServiceDefinition, quote *models.PriceQuote) error {
	if def.BasePrice <= 0 {
		return models.NewConfigurationError("service %q has no base price configured", def.Slug)
	}
	quote.BaseCost = def.BasePrice
	return nil
}

func (e *Engine) priceHourly(def *models.ServiceDefinition, pctx Context, quote *models.PriceQuote) error {
	if def.BasePrice <= 0 {
		return models.NewConfigurationError("service %q has no hourly rate configured", def.Slug)
	}
	hours := clampHours(pctx.Hours, def.Requirements)
	quote.BaseCost = roundToInt(float64(def.BasePrice) * hours)
	quote.Breakdown.HourlyRate = def.BasePrice
	quote.Breakdown.Hours = hours
	return nil
}

// priceHourlyMinimum selects the rate from the typology table when the
// service keys on property typology; a typology missing from the table
// is a configuration error, never a silent fallback. The quote reports
// both the up-front charge (rate for the minimum hours) and the
// estimated final total.
func (e *Engine) priceHourlyMinimum(def *models.ServiceDefinition, pctx Context, quote *models.PriceQuote) error {
	rate := def.BasePrice
	if def.Requirements.RequiresTypology {
		r, ok := def.Pricing.TypologyRates[pctx.Typology]
		if !ok {
			return models.NewConfigurationError("service %q has no hourly rate for typology %q", def.Slug, pctx.Typology)
		}
		rate = r
		quote.Breakdown.Typology = pctx.Typology
	}
	if rate <= 0 {
		return models.NewConfigurationError("service %q has no hourly rate for typology %q", def.Slug, pctx.Typology)
	}

	minimum := def.Pricing.MinimumHours
	if minimum <= 0 {
		minimum = 1
	}
	hours := clampHours(pctx.Hours, def.Requirements)
	if hours < minimum {
		hours = minimum
	}

	quote.PrepaidAmount = roundToInt(float64(rate) * minimum)
	quote.EstimatedTotal = roundToInt(float64(rate) * hours)
	quote.BaseCost = quote.EstimatedTotal
	quote.Breakdown.HourlyRate = rate
	quote.Breakdown.Hours = hours
	quote.Breakdown.MinimumHours = minimum
	return nil
}

// pricePerUnit applies the smallest discount bucket containing the unit
// count. Buckets are inclusive on both ends, MaxUnits 0 is open-ended.
func (e *Engine) pricePerUnit(def *models.ServiceDefinition, pctx Context, quote *models.PriceQuote) error {
	if def.Pricing.BasePrice <= 0 {
		return models.NewConfigurationError("service %q has no per-unit price configured", def.Slug)
	}
	count := pctx.UnitCount
	if count < 1 {
		count = 1
	}

	tier, ok := matchTier(def.Pricing.VolumeDiscounts, count)
	if !ok {
		return models.NewConfigurationError("service %q has no discount tier covering %d units", def.Slug, count)
	}

	unitPrice := roundToInt(float64(def.Pricing.BasePrice) * (1 - float64(tier.Percent)/100))
	quote.BaseCost = unitPrice * int64(count)
	quote.Breakdown.UnitPrice = unitPrice
	quote.Breakdown.UnitCount = count
	quote.Breakdown.DiscountPercent = tier.Percent
	return nil
}

func (e *Engine) priceTypology(def *models.ServiceDefinition, pctx Context, quote *models.PriceQuote) error {
	price, ok := def.Pricing.TypologyPrices[pctx.Typology]
	if !ok {
		return models.NewConfigurationError("service %q has no price for typology %q", def.Slug, pctx.Typology)
	}
	quote.BaseCost = price
	quote.Breakdown.Typology = pctx.Typology
	return nil
}

// calculatePackage quotes against the customer's pre-purchased credits.
// With a usable package the booking costs one credit and no money. With
// a selected purchasable option the quote prices the new package, with
// its first session consumed by this booking. Otherwise the quote lists
// the options and asks for a selection.
func (e *Engine) calculatePackage(ctx context.Context, def *models.ServiceDefinition, pctx Context) (*models.PriceQuote, error) {
	quote := &models.PriceQuote{Currency: e.Platform.Currency}

	pkg, err := e.lookupPackage(ctx, def, pctx)
	if err != nil {
		return nil, err
	}
	if pkg != nil && pkg.IsUsable(e.Clock.Now()) && e.packageApplies(pkg, def, pctx) {
		quote.UsesPackage = true
		quote.PackageID = pkg.ID
		quote.CreditsToUse = 1
		quote.RemainingCredits = pkg.RemainingCredits() - 1
		return quote, nil
	}

	if len(def.Pricing.Packages) == 0 {
		return nil, models.NewConfigurationError("service %q has no package options configured", def.Slug)
	}

	if pctx.PackageType != "" {
		for _, opt := range def.Pricing.Packages {
			if opt.Type == pctx.PackageType {
				quote.BaseCost = opt.Price
				quote.CreditsToUse = 1
				quote.RemainingCredits = opt.Sessions - 1
				e.applyCommon(def, pctx, quote)
				return quote, nil
			}
		}
		return nil, models.NewConfigurationError("service %q has no package option %q", def.Slug, pctx.PackageType)
	}

	quote.PackageOptions = def.Pricing.Packages
	quote.RequiresPackageSelection = true
	return quote, nil
}

func (e *Engine) lookupPackage(ctx context.Context, def *models.ServiceDefinition, pctx Context) (*models.ServicePackage, error) {
	if e.Packages == nil {
		return nil, nil
	}
	if pctx.PackageID != "" {
		return e.Packages.GetPackage(ctx, pctx.PackageID)
	}
	return e.Packages.FindActivePackage(ctx, pctx.CustomerID, def.Slug, pctx.WorkerID)
}

// packageApplies enforces the compatibility rule: the package belongs
// to the quoting customer, covers this service when pinned to one, and
// matches the chosen worker when both sides name one.
func (e *Engine) packageApplies(pkg *models.ServicePackage, def *models.ServiceDefinition, pctx Context) bool {
	if pkg.CustomerID != pctx.CustomerID {
		return false
	}
	if pkg.ServiceSlug != "" && pkg.ServiceSlug != def.Slug {
		return false
	}
	if pkg.WorkerID != "" && pctx.WorkerID != "" && pctx.WorkerID != models.WorkerAny && pkg.WorkerID != pctx.WorkerID {
		return false
	}
	return true
}

// clampHours forces the requested duration into the service's bounds;
// zero or negative input falls back to the default, then the minimum.
func clampHours(hours float64, req models.BookingRequirements) float64 {
	if hours <= 0 {
		if req.DefaultHours > 0 {
			hours = req.DefaultHours
		} else if req.MinHours > 0 {
			hours = req.MinHours
		} else {
			hours = 1
		}
	}
	if req.MinHours > 0 && hours < req.MinHours {
		hours = req.MinHours
	}
	if req.MaxHours > 0 && hours > req.MaxHours {
		hours = req.MaxHours
	}
	return hours
}

// matchTier returns the smallest bucket containing count.
func matchTier(tiers []models.DiscountTier, count int) (models.DiscountTier, bool) {
	best := models.DiscountTier{}
	found := false
	for _, t := range tiers {
		if count < t.MinUnits {
			continue
		}
		if t.MaxUnits != 0 && count > t.MaxUnits {
			continue
		}
		if !found || t.MinUnits > best.MinUnits {
			best = t
			found = true
		}
	}
	return best, found
}
