package models

// PriceBreakdown explains how a quote's components were derived.
type PriceBreakdown struct {
	HourlyRate       int64   `json:"hourlyRate,omitempty"`
	Hours            float64 `json:"hours,omitempty"`
	MinimumHours     float64 `json:"minimumHours,omitempty"`
	UnitPrice        int64   `json:"unitPrice,omitempty"`
	UnitCount        int     `json:"unitCount,omitempty"`
	DiscountPercent  int     `json:"discountPercent,omitempty"`
	Typology         string  `json:"typology,omitempty"`
	Area             string  `json:"area,omitempty"`
	AreaSurcharge    int64   `json:"areaSurcharge,omitempty"`
	UrgencySurcharge int64   `json:"urgencySurcharge,omitempty"`
	DatePremium      int64   `json:"datePremium,omitempty"`
	WeekendApplied   bool    `json:"weekendApplied,omitempty"`
	HolidayApplied   bool    `json:"holidayApplied,omitempty"`
}

// PriceQuote is the result of one pricing calculation. All amounts are
// non-negative integers in the platform's minor currency unit, and
// Total always equals BaseCost+ExtraCost+Surcharge+Fee+Adjustment.
type PriceQuote struct {
	BaseCost   int64  `json:"base_price"`
	ExtraCost  int64  `json:"extra_cost"`
	Surcharge  int64  `json:"surcharge"`
	Fee        int64  `json:"fee"`
	Adjustment int64  `json:"adjustment,omitempty"`
	Total      int64  `json:"total"`
	Currency   string `json:"currency"`

	Breakdown PriceBreakdown `json:"breakdown"`

	// hourly_with_minimum only: the up-front charge vs. the estimate.
	PrepaidAmount  int64 `json:"prepaid_amount,omitempty"`
	EstimatedTotal int64 `json:"estimated_total,omitempty"`

	// package model only.
	UsesPackage              bool            `json:"uses_package,omitempty"`
	PackageID                string          `json:"package_id,omitempty"`
	CreditsToUse             int             `json:"credits_to_use,omitempty"`
	RemainingCredits         int             `json:"remaining_credits,omitempty"`
	PackageOptions           []PackageOption `json:"package_options,omitempty"`
	RequiresPackageSelection bool            `json:"requires_package_selection,omitempty"`
}
