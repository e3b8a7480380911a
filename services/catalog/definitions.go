package catalog

import "zela/models"

// DefaultStepSequence is used for services without a custom wizard flow.
var DefaultStepSequence = []string{
	models.StepAddress, models.StepSchedule, models.StepWorker,
	models.StepPayment, models.StepReview,
}

// typologyHourlyRates are the shared hourly rates (AOA) keyed by
// property typology for cleaning and electrical work.
var typologyHourlyRates = map[string]int64{
	"T1": 8000, "T2": 9000, "T3": 10000, "T4+": 12000,
}

var cleaningExtraTasks = []string{
	"ironing", "interior-windows", "oven", "fridge", "cabinets", "laundry",
}

var cleaningFlow = []string{
	models.StepAddress, models.StepProperty, models.StepDuration,
	models.StepSchedule, models.StepWorker, models.StepPayment, models.StepReview,
}

var configFlow = []string{
	models.StepAddress, models.StepConfig, models.StepSchedule,
	models.StepWorker, models.StepPayment, models.StepReview,
}

var propertyConfigFlow = []string{
	models.StepAddress, models.StepProperty, models.StepConfig,
	models.StepSchedule, models.StepWorker, models.StepPayment, models.StepReview,
}

// servicesMap is the full service catalog. Prices are AOA in minor
// units-free whole kwanzas, matching the platform pricing config.
var servicesMap = map[string]models.ServiceDefinition{
	"indoor-cleaning": {
		Slug:         "indoor-cleaning",
		Name:         "Limpeza Interna",
		Icon:         "🏠",
		Category:     "cleaning",
		PricingModel: models.PricingHourlyMinimum,
		StepSequence: cleaningFlow,
		Requirements: models.BookingRequirements{
			MinHours:         3.5,
			MaxHours:         10,
			DefaultHours:     4,
			RequiresTypology: true,
			ShowTasks:        true,
		},
		Pricing: models.PricingConfig{
			MinimumHours:  2,
			TypologyRates: typologyHourlyRates,
		},
		ExtraTasks: cleaningExtraTasks,
		Active:     true,
	},
	"house-cleaning": {
		Slug:         "house-cleaning",
		Name:         "Limpeza Doméstica",
		Icon:         "🧹",
		Category:     "cleaning",
		PricingModel: models.PricingHourlyMinimum,
		StepSequence: cleaningFlow,
		Requirements: models.BookingRequirements{
			MinHours:         3.5,
			MaxHours:         10,
			DefaultHours:     4,
			RequiresTypology: true,
			ShowTasks:        true,
		},
		Pricing: models.PricingConfig{
			MinimumHours:  2,
			TypologyRates: typologyHourlyRates,
		},
		ExtraTasks: cleaningExtraTasks,
		Active:     true,
	},
	"office-cleaning": {
		Slug:         "office-cleaning",
		Name:         "Limpeza de Escritório",
		Icon:         "🏢",
		Category:     "cleaning",
		PricingModel: models.PricingHourlyMinimum,
		StepSequence: cleaningFlow,
		Requirements: models.BookingRequirements{
			MinHours:         2,
			MaxHours:         8,
			DefaultHours:     3,
			RequiresTypology: true,
			ShowTasks:        true,
		},
		Pricing: models.PricingConfig{
			MinimumHours:  2,
			TypologyRates: typologyHourlyRates,
		},
		ExtraTasks: cleaningExtraTasks,
		Active:     true,
	},
	"express-cleaning": {
		Slug:         "express-cleaning",
		Name:         "Limpeza Express",
		Icon:         "⚡",
		Category:     "cleaning",
		PricingModel: models.PricingHourly,
		BasePrice:    4900,
		StepSequence: []string{
			models.StepAddress, models.StepDuration, models.StepSchedule,
			models.StepWorker, models.StepPayment, models.StepReview,
		},
		Requirements: models.BookingRequirements{
			MinHours:     2,
			MaxHours:     4,
			DefaultHours: 2,
		},
		Active: true,
	},
	"moving-cleaning": {
		Slug:         "moving-cleaning",
		Name:         "Limpeza de Mudança",
		Icon:         "📦",
		Category:     "cleaning",
		PricingModel: models.PricingFixed,
		BasePrice:    15000,
		StepSequence: propertyConfigFlow,
		Requirements: models.BookingRequirements{
			RequiresTypology: true,
		},
		Active: true,
	},
	"outdoor-services": {
		Slug:         "outdoor-services",
		Name:         "Serviços Externos",
		Icon:         "🌳",
		Category:     "outdoor",
		PricingModel: models.PricingHourly,
		BasePrice:    9000,
		StepSequence: configFlow,
		Requirements: models.BookingRequirements{
			MinHours:     2,
			MaxHours:     8,
			DefaultHours: 2,
		},
		Active: true,
	},
	"laundry-ironing": {
		Slug:         "laundry-ironing",
		Name:         "Lavandaria e Engomadoria",
		Icon:         "👔",
		Category:     "home",
		PricingModel: models.PricingPerUnit,
		StepSequence: configFlow,
		Pricing: models.PricingConfig{
			BasePrice: 2500,
			VolumeDiscounts: []models.DiscountTier{
				{MinUnits: 1, MaxUnits: 9, Percent: 0},
				{MinUnits: 10, MaxUnits: 19, Percent: 5},
				{MinUnits: 20, MaxUnits: 0, Percent: 10},
			},
		},
		Active: true,
	},
	"electrician": {
		Slug:         "electrician",
		Name:         "Eletricista",
		Icon:         "⚡",
		Category:     "repairs",
		PricingModel: models.PricingHourlyMinimum,
		StepSequence: propertyConfigFlow,
		Requirements: models.BookingRequirements{
			MinHours:         2,
			MaxHours:         8,
			DefaultHours:     2,
			RequiresTypology: true,
		},
		Pricing: models.PricingConfig{
			MinimumHours:  2,
			TypologyRates: typologyHourlyRates,
		},
		Active: true,
	},
	"ac-repair": {
		Slug:         "ac-repair",
		Name:         "Reparação de AC",
		Icon:         "❄️",
		Category:     "repairs",
		PricingModel: models.PricingPerUnit,
		StepSequence: configFlow,
		Pricing: models.PricingConfig{
			BasePrice: 16000,
			VolumeDiscounts: []models.DiscountTier{
				{MinUnits: 1, MaxUnits: 1, Percent: 0},
				{MinUnits: 2, MaxUnits: 3, Percent: 10},
				{MinUnits: 4, MaxUnits: 5, Percent: 15},
				{MinUnits: 6, MaxUnits: 0, Percent: 20},
			},
		},
		Active: true,
	},
	"pest-control": {
		Slug:         "pest-control",
		Name:         "Desinfestação",
		Icon:         "🚫",
		Category:     "home",
		PricingModel: models.PricingTypology,
		StepSequence: propertyConfigFlow,
		Requirements: models.BookingRequirements{
			RequiresTypology: true,
		},
		Pricing: models.PricingConfig{
			TypologyPrices: map[string]int64{
				"T1": 10000, "T2": 20000, "T3": 35000, "T4+": 40000,
			},
		},
		Active: true,
	},
	"dog-trainer": {
		Slug:         "dog-trainer",
		Name:         "Adestrador",
		Icon:         "🐕",
		Category:     "pets",
		PricingModel: models.PricingPackage,
		StepSequence: configFlow,
		Pricing: models.PricingConfig{
			Packages: []models.PackageOption{
				{Name: "Sessão de Avaliação", Type: "evaluation", Sessions: 1, Price: 15000},
				{Name: "Sessão Avulsa", Type: "single", Sessions: 1, Price: 20000},
				{Name: "Pacote 5 Sessões", Type: "pack5", Sessions: 5, Price: 90000},
				{Name: "Pacote 10 Sessões", Type: "pack10", Sessions: 10, Price: 160000},
			},
		},
		Active: true,
	},
}

// DefaultServiceAreas is the Luanda coverage map. Surcharge is a flat
// amount per booking, stored in whole units and converted to minor
// currency units when priced.
var DefaultServiceAreas = []models.ServiceArea{
	{Name: "Luanda Centro", Surcharge: 0, Enabled: true},
	{Name: "Maianga", Surcharge: 0, Enabled: true},
	{Name: "Ingombota", Surcharge: 5, Enabled: true},
	{Name: "Rangel", Surcharge: 10, Enabled: true},
	{Name: "Cazenga", Surcharge: 15, Enabled: false},
	{Name: "Viana", Surcharge: 20, Enabled: false},
}
