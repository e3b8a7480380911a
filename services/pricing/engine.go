package pricing

import (
	"context"
	"math"
	"strings"
	"time"

	"zela/models"
	"zela/utils"
)

// DefaultHolidays are the Angolan public holidays the holiday
// multiplier applies to, in MM-DD form.
var DefaultHolidays = []string{
	"01-01", "02-04", "03-08", "03-23", "04-04",
	"05-01", "09-17", "11-02", "11-11", "12-25",
}

// Default urgency surcharges as a fraction of the base cost.
const (
	DefaultUrgentSurcharge    = 0.2
	DefaultEmergencySurcharge = 0.5
)

// PlatformConfig carries the platform-wide pricing parameters applied
// on top of every model-specific subtotal. Amounts are AOA.
type PlatformConfig struct {
	Currency             string
	BookingFee           int64
	ServiceFee           int64
	SpecialtyTaskPrice   int64
	MinimumBookingAmount int64
	WeekendMultiplier    float64
	HolidayMultiplier    float64
	UrgentSurcharge      float64
	EmergencySurcharge   float64
	// Holidays are recognized dates in MM-DD form.
	Holidays     []string
	ServiceAreas []models.ServiceArea
}

// PackageSource is the read-only package lookup the engine needs for
// package-priced services. Implemented by the servicepackage repository.
type PackageSource interface {
	GetPackage(ctx context.Context, packageID string) (*models.ServicePackage, error)
	FindActivePackage(ctx context.Context, customerID, serviceSlug, workerID string) (*models.ServicePackage, error)
}

// Context is everything a quote depends on. Given identical Context and
// config the engine always produces the identical quote; the only
// date-sensitive inputs are ScheduledDate and the injected clock used
// for package expiry.
type Context struct {
	CustomerID    string
	Typology      string
	Hours         float64
	UnitCount     int
	Tasks         []string
	Area          string
	Urgency       string
	ScheduledDate time.Time
	PackageID     string
	PackageType   string
	WorkerID      string
}

// Engine computes price quotes for every pricing model.
type Engine struct {
	Platform PlatformConfig
	Packages PackageSource
	Clock    utils.Clock
}

func NewEngine(platform PlatformConfig, packages PackageSource, clock utils.Clock) *Engine {
	if clock == nil {
		clock = utils.SystemClock()
	}
	return &Engine{Platform: platform, Packages: packages, Clock: clock}
}

// Calculate produces a quote for the given service definition. Package
// services short-circuit to a credit quote or a selection prompt; every
// other model computes a subtotal and runs the common fee pipeline so
// Total always equals BaseCost+ExtraCost+Surcharge+Fee+Adjustment.
func (e *Engine) Calculate(ctx context.Context, def *models.ServiceDefinition, pctx Context) (*models.PriceQuote, error) {
	if def.PricingModel == models.PricingPackage {
		return e.calculatePackage(ctx, def, pctx)
	}

	quote := &models.PriceQuote{Currency: e.Platform.Currency}

	var err error
	switch def.PricingModel {
	case models.PricingFixed:
		err = e.priceFixed(def, quote)
	case models.PricingHourly:
		err = e.priceHourly(def, pctx, quote)
	case models.PricingHourlyMinimum:
		err = e.priceHourlyMinimum(def, pctx, quote)
	case models.PricingPerUnit:
		err = e.pricePerUnit(def, pctx, quote)
	case models.PricingTypology:
		err = e.priceTypology(def, pctx, quote)
	default:
		err = models.NewConfigurationError("service %q has unknown pricing model %q", def.Slug, def.PricingModel)
	}
	if err != nil {
		return nil, err
	}

	e.applyCommon(def, pctx, quote)
	return quote, nil
}

// applyCommon adds specialty tasks, the area and urgency surcharges,
// the weekend/holiday premium, the flat fees and the minimum-amount
// clamp, in that order. The premium is computed on the subtotal before
// flat fees and folded into the surcharge component.
func (e *Engine) applyCommon(def *models.ServiceDefinition, pctx Context, quote *models.PriceQuote) {
	if len(pctx.Tasks) > 0 && def.Requirements.ShowTasks {
		quote.ExtraCost = int64(len(pctx.Tasks)) * e.Platform.SpecialtyTaskPrice
	}

	areaSurcharge := e.areaSurcharge(pctx.Area, quote)
	urgency := e.urgencySurcharge(pctx.Urgency, quote.BaseCost)
	quote.Breakdown.UrgencySurcharge = urgency

	subtotal := quote.BaseCost + quote.ExtraCost + areaSurcharge + urgency
	premium := e.datePremium(pctx.ScheduledDate, subtotal, quote)

	quote.Surcharge = areaSurcharge + urgency + premium
	quote.Fee = e.Platform.BookingFee + e.Platform.ServiceFee

	quote.Total = quote.BaseCost + quote.ExtraCost + quote.Surcharge + quote.Fee
	if quote.Total < e.Platform.MinimumBookingAmount {
		quote.Adjustment = e.Platform.MinimumBookingAmount - quote.Total
		quote.Total = e.Platform.MinimumBookingAmount
	}
}

// areaSurcharge resolves the coverage surcharge by case-insensitive
// area name. The configured unit value is converted to AOA.
func (e *Engine) areaSurcharge(area string, quote *models.PriceQuote) int64 {
	if area == "" {
		return 0
	}
	for _, a := range e.Platform.ServiceAreas {
		if strings.EqualFold(a.Name, area) {
			surcharge := a.Surcharge * 100
			quote.Breakdown.Area = a.Name
			quote.Breakdown.AreaSurcharge = surcharge
			return surcharge
		}
	}
	return 0
}

func (e *Engine) urgencySurcharge(urgency string, base int64) int64 {
	switch urgency {
	case "urgent":
		return roundToInt(float64(base) * e.Platform.UrgentSurcharge)
	case "emergency":
		return roundToInt(float64(base) * e.Platform.EmergencySurcharge)
	}
	return 0
}

// datePremium applies the holiday multiplier when the scheduled date is
// a recognized holiday, else the weekend multiplier on Saturdays and
// Sundays. Returned as the flat amount added on top of the subtotal.
func (e *Engine) datePremium(date time.Time, subtotal int64, quote *models.PriceQuote) int64 {
	if date.IsZero() {
		return 0
	}
	if e.isHoliday(date) {
		quote.Breakdown.HolidayApplied = true
		premium := roundToInt(float64(subtotal) * (e.Platform.HolidayMultiplier - 1))
		quote.Breakdown.DatePremium = premium
		return premium
	}
	if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
		quote.Breakdown.WeekendApplied = true
		premium := roundToInt(float64(subtotal) * (e.Platform.WeekendMultiplier - 1))
		quote.Breakdown.DatePremium = premium
		return premium
	}
	return 0
}

func (e *Engine) isHoliday(date time.Time) bool {
	monthDay := date.Format("01-02")
	for _, h := range e.Platform.Holidays {
		if h == monthDay {
			return true
		}
	}
	return false
}

func roundToInt(v float64) int64 {
	return int64(math.Round(v))
}
