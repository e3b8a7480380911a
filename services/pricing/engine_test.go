package pricing

import (
	"context"
	"testing"
	"time"

	"zela/models"
	"zela/services/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakePackageSource struct {
	byID   map[string]*models.ServicePackage
	active *models.ServicePackage
}

func (f *fakePackageSource) GetPackage(ctx context.Context, id string) (*models.ServicePackage, error) {
	return f.byID[id], nil
}

func (f *fakePackageSource) FindActivePackage(ctx context.Context, customerID, serviceSlug, workerID string) (*models.ServicePackage, error) {
	return f.active, nil
}

func testPlatform() PlatformConfig {
	return PlatformConfig{
		Currency:             "AOA",
		BookingFee:           500,
		ServiceFee:           0,
		SpecialtyTaskPrice:   3000,
		MinimumBookingAmount: 5000,
		WeekendMultiplier:    1.2,
		HolidayMultiplier:    1.5,
		UrgentSurcharge:      DefaultUrgentSurcharge,
		EmergencySurcharge:   DefaultEmergencySurcharge,
		Holidays:             DefaultHolidays,
		ServiceAreas:         catalog.DefaultServiceAreas,
	}
}

func testEngine(t *testing.T, pkgs PackageSource) (*Engine, catalog.Catalog) {
	t.Helper()
	cat, err := catalog.NewStaticCatalog()
	require.NoError(t, err)
	clock := fixedClock{now: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)}
	return NewEngine(testPlatform(), pkgs, clock), cat
}

func definition(t *testing.T, cat catalog.Catalog, slug string) *models.ServiceDefinition {
	t.Helper()
	def, err := cat.GetDefinition(slug)
	require.NoError(t, err)
	return def
}

// 2026-09-07 is a Monday, 2026-09-05 a Saturday.
var (
	weekday  = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	saturday = time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	holiday  = time.Date(2026, 11, 11, 0, 0, 0, 0, time.UTC)
)

func TestHourlyMinimumQuote(t *testing.T) {
	engine, cat := testEngine(t, nil)
	def := definition(t, cat, "indoor-cleaning")

	quote, err := engine.Calculate(context.Background(), def, Context{
		Typology:      "T2",
		Hours:         4,
		ScheduledDate: weekday,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(18000), quote.PrepaidAmount)
	assert.Equal(t, int64(36000), quote.EstimatedTotal)
	assert.Equal(t, int64(36000), quote.BaseCost)
	assert.Equal(t, int64(500), quote.Fee)
	assert.Equal(t, int64(36500), quote.Total)
	assert.Equal(t, "AOA", quote.Currency)
}

func TestHourlyMinimumClampsRequestedHours(t *testing.T) {
	engine, cat := testEngine(t, nil)
	def := definition(t, cat, "indoor-cleaning")

	for _, hours := range []float64{-3, 0, 0.5, 1} {
		quote, err := engine.Calculate(context.Background(), def, Context{
			Typology: "T1", Hours: hours, ScheduledDate: weekday,
		})
		require.NoError(t, err, "hours=%v", hours)
		assert.GreaterOrEqual(t, quote.EstimatedTotal, quote.PrepaidAmount, "hours=%v", hours)
		assert.GreaterOrEqual(t, quote.Breakdown.Hours, def.Pricing.MinimumHours, "hours=%v", hours)
	}
}

func TestHourlyMinimumEstimateNeverBelowPrepaid(t *testing.T) {
	engine, cat := testEngine(t, nil)
	def := definition(t, cat, "electrician")

	for hours := 0.0; hours <= 12; hours += 0.5 {
		quote, err := engine.Calculate(context.Background(), def, Context{
			Typology: "T3", Hours: hours, ScheduledDate: weekday,
		})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, quote.EstimatedTotal, quote.PrepaidAmount)
	}
}

func TestPerUnitVolumeDiscounts(t *testing.T) {
	engine, cat := testEngine(t, nil)
	def := definition(t, cat, "ac-repair")

	cases := []struct {
		units     int
		unitPrice int64
		base      int64
	}{
		{1, 16000, 16000},
		{2, 14400, 28800},
		{3, 14400, 43200},
		{4, 13600, 54400},
		{5, 13600, 68000},
		{6, 12800, 76800},
		{12, 12800, 153600},
	}
	for _, tc := range cases {
		quote, err := engine.Calculate(context.Background(), def, Context{
			UnitCount: tc.units, ScheduledDate: weekday,
		})
		require.NoError(t, err, "units=%d", tc.units)
		assert.Equal(t, tc.unitPrice, quote.Breakdown.UnitPrice, "units=%d", tc.units)
		assert.Equal(t, tc.base, quote.BaseCost, "units=%d", tc.units)
		assert.Equal(t, tc.base+500, quote.Total, "units=%d", tc.units)
	}
}

func TestPerUnitZeroCountTreatedAsOne(t *testing.T) {
	engine, cat := testEngine(t, nil)
	def := definition(t, cat, "ac-repair")

	quote, err := engine.Calculate(context.Background(), def, Context{UnitCount: 0, ScheduledDate: weekday})
	require.NoError(t, err)
	assert.Equal(t, 1, quote.Breakdown.UnitCount)
	assert.Equal(t, int64(16000), quote.BaseCost)
}

func TestTypologyTable(t *testing.T) {
	engine, cat := testEngine(t, nil)
	def := definition(t, cat, "pest-control")

	quote, err := engine.Calculate(context.Background(), def, Context{
		Typology: "T3", ScheduledDate: weekday,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(35000), quote.BaseCost)
	assert.Equal(t, int64(35500), quote.Total)
}

func TestTypologyUnknownKeyIsError(t *testing.T) {
	engine, cat := testEngine(t, nil)
	def := definition(t, cat, "pest-control")

	_, err := engine.Calculate(context.Background(), def, Context{
		Typology: "T5", ScheduledDate: weekday,
	})
	var cfgErr *models.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}

func TestHourlyMinimumUnknownTypologyIsError(t *testing.T) {
	engine, cat := testEngine(t, nil)
	def := definition(t, cat, "indoor-cleaning")

	_, err := engine.Calculate(context.Background(), def, Context{
		Typology: "T9", Hours: 4, ScheduledDate: weekday,
	})
	var cfgErr *models.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}

func TestMinimumBookingAmountClamp(t *testing.T) {
	engine, _ := testEngine(t, nil)
	def := &models.ServiceDefinition{
		Slug:         "tiny-fix",
		PricingModel: models.PricingFixed,
		BasePrice:    3000,
		StepSequence: []string{models.StepAddress},
		Active:       true,
	}

	quote, err := engine.Calculate(context.Background(), def, Context{ScheduledDate: weekday})
	require.NoError(t, err)
	assert.Equal(t, int64(5000), quote.Total)
	assert.Equal(t, int64(1500), quote.Adjustment)
	assert.Equal(t, quote.Total, quote.BaseCost+quote.ExtraCost+quote.Surcharge+quote.Fee+quote.Adjustment)
}

func TestWeekendAndHolidayPremium(t *testing.T) {
	engine, cat := testEngine(t, nil)
	def := definition(t, cat, "express-cleaning")

	weekdayQuote, err := engine.Calculate(context.Background(), def, Context{Hours: 2, ScheduledDate: weekday})
	require.NoError(t, err)
	assert.Equal(t, int64(9800), weekdayQuote.BaseCost)
	assert.Equal(t, int64(10300), weekdayQuote.Total)
	assert.False(t, weekdayQuote.Breakdown.WeekendApplied)

	weekendQuote, err := engine.Calculate(context.Background(), def, Context{Hours: 2, ScheduledDate: saturday})
	require.NoError(t, err)
	assert.True(t, weekendQuote.Breakdown.WeekendApplied)
	assert.Equal(t, int64(1960), weekendQuote.Breakdown.DatePremium)
	assert.Equal(t, int64(12260), weekendQuote.Total)

	holidayQuote, err := engine.Calculate(context.Background(), def, Context{Hours: 2, ScheduledDate: holiday})
	require.NoError(t, err)
	assert.True(t, holidayQuote.Breakdown.HolidayApplied)
	assert.Equal(t, int64(4900), holidayQuote.Breakdown.DatePremium)
	assert.Equal(t, int64(15200), holidayQuote.Total)
}

func TestSpecialtyTasksAndAreaSurcharge(t *testing.T) {
	engine, cat := testEngine(t, nil)
	def := definition(t, cat, "indoor-cleaning")

	quote, err := engine.Calculate(context.Background(), def, Context{
		Typology:      "T1",
		Hours:         4,
		Tasks:         []string{"ironing", "oven"},
		Area:          "rangel",
		ScheduledDate: weekday,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(32000), quote.BaseCost)
	assert.Equal(t, int64(6000), quote.ExtraCost)
	// Rangel carries a 10-unit surcharge, converted to AOA.
	assert.Equal(t, int64(1000), quote.Breakdown.AreaSurcharge)
	assert.Equal(t, "Rangel", quote.Breakdown.Area)
	assert.Equal(t, int64(39500), quote.Total)
}

func TestUrgencySurcharge(t *testing.T) {
	engine, cat := testEngine(t, nil)
	def := definition(t, cat, "express-cleaning")

	quote, err := engine.Calculate(context.Background(), def, Context{
		Hours: 2, Urgency: "emergency", ScheduledDate: weekday,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4900), quote.Breakdown.UrgencySurcharge)
	assert.Equal(t, int64(15200), quote.Total)
}

func TestQuoteComponentSumInvariant(t *testing.T) {
	engine, cat := testEngine(t, nil)

	contexts := []Context{
		{Typology: "T2", Hours: 4, ScheduledDate: saturday, Area: "Viana", Urgency: "urgent", Tasks: []string{"oven"}},
		{Typology: "T1", Hours: 0, ScheduledDate: holiday},
		{Typology: "T4+", Hours: 10, ScheduledDate: weekday, Area: "maianga"},
	}
	for _, slug := range []string{"indoor-cleaning", "express-cleaning", "pest-control", "outdoor-services", "moving-cleaning"} {
		def := definition(t, cat, slug)
		for _, pctx := range contexts {
			if def.PricingModel == models.PricingTypology && pctx.Typology == "" {
				continue
			}
			quote, err := engine.Calculate(context.Background(), def, pctx)
			require.NoError(t, err, "%s", slug)
			assert.Equal(t, quote.Total, quote.BaseCost+quote.ExtraCost+quote.Surcharge+quote.Fee+quote.Adjustment, "%s", slug)
			assert.GreaterOrEqual(t, quote.Total, engine.Platform.MinimumBookingAmount, "%s", slug)
		}
	}
}

func TestPackageWithUsableCredits(t *testing.T) {
	pkg := &models.ServicePackage{
		ID:           "pkg-1",
		CustomerID:   "cust-1",
		ServiceSlug:  "dog-trainer",
		Type:         "pack5",
		TotalCredits: 5,
		UsedCredits:  2,
		Status:       models.PackageActive,
	}
	engine, cat := testEngine(t, &fakePackageSource{active: pkg})
	def := definition(t, cat, "dog-trainer")

	quote, err := engine.Calculate(context.Background(), def, Context{
		CustomerID: "cust-1", ScheduledDate: weekday,
	})
	require.NoError(t, err)
	assert.True(t, quote.UsesPackage)
	assert.Equal(t, "pkg-1", quote.PackageID)
	assert.Equal(t, 1, quote.CreditsToUse)
	assert.Equal(t, 2, quote.RemainingCredits)
	assert.Zero(t, quote.Total)
}

func TestPackageBelongingToAnotherCustomerIgnored(t *testing.T) {
	pkg := &models.ServicePackage{
		ID:           "pkg-1",
		CustomerID:   "someone-else",
		TotalCredits: 5,
		Status:       models.PackageActive,
	}
	engine, cat := testEngine(t, &fakePackageSource{active: pkg})
	def := definition(t, cat, "dog-trainer")

	quote, err := engine.Calculate(context.Background(), def, Context{
		CustomerID: "cust-1", ScheduledDate: weekday,
	})
	require.NoError(t, err)
	assert.False(t, quote.UsesPackage)
	assert.True(t, quote.RequiresPackageSelection)
	assert.Len(t, quote.PackageOptions, 4)
}

func TestPackagePurchasePricesSelectedOption(t *testing.T) {
	engine, cat := testEngine(t, &fakePackageSource{})
	def := definition(t, cat, "dog-trainer")

	quote, err := engine.Calculate(context.Background(), def, Context{
		CustomerID:    "cust-1",
		PackageType:   "pack5",
		ScheduledDate: weekday,
	})
	require.NoError(t, err)
	assert.False(t, quote.RequiresPackageSelection)
	assert.Equal(t, int64(90000), quote.BaseCost)
	assert.Equal(t, int64(90500), quote.Total)
	assert.Equal(t, 1, quote.CreditsToUse)
	assert.Equal(t, 4, quote.RemainingCredits)
}

func TestExpiredPackageNotUsed(t *testing.T) {
	expired := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	pkg := &models.ServicePackage{
		ID:           "pkg-old",
		CustomerID:   "cust-1",
		TotalCredits: 5,
		UsedCredits:  1,
		Status:       models.PackageActive,
		ExpiresAt:    &expired,
	}
	engine, cat := testEngine(t, &fakePackageSource{active: pkg})
	def := definition(t, cat, "dog-trainer")

	quote, err := engine.Calculate(context.Background(), def, Context{
		CustomerID: "cust-1", ScheduledDate: weekday,
	})
	require.NoError(t, err)
	assert.False(t, quote.UsesPackage)
	assert.True(t, quote.RequiresPackageSelection)
}
