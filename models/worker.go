package models

// ServiceArea is one coverage area with its price surcharge (in whole
// surcharge units; multiplied into minor currency units when priced).
type ServiceArea struct {
	Name      string `json:"name" bson:"name"`
	Surcharge int64  `json:"surcharge" bson:"surcharge"`
	Enabled   bool   `json:"enabled" bson:"enabled"`
}

// WorkerSpecialization is the trade-specific payload carried by a
// Worker. Dispatch happens on Kind, not on a language-level type.
type WorkerSpecialization struct {
	Kind             string           `json:"kind" bson:"kind"`
	MinimumHours     float64          `json:"minimumHours,omitempty" bson:"minimumHours,omitempty"`
	TypologyRates    map[string]int64 `json:"typologyRates,omitempty" bson:"typologyRates,omitempty"`
	TypologyPrices   map[string]int64 `json:"typologyPrices,omitempty" bson:"typologyPrices,omitempty"`
	UnitPricing      map[string]int64 `json:"unitPricing,omitempty" bson:"unitPricing,omitempty"`
	PackageOfferings []PackageOption  `json:"packageOfferings,omitempty" bson:"packageOfferings,omitempty"`
	Certifications   []string         `json:"certifications,omitempty" bson:"certifications,omitempty"`
}

// Worker is a service provider. Availability at an instant is derived
// from committed bookings, never stored.
type Worker struct {
	ID               string                `json:"id" bson:"id"`
	Name             string                `json:"name" bson:"name"`
	Bio              string                `json:"bio,omitempty" bson:"bio,omitempty"`
	Capabilities     []string              `json:"capabilities" bson:"capabilities"`
	ServiceAreas     []ServiceArea         `json:"serviceAreas" bson:"serviceAreas"`
	RatingAverage    float64               `json:"ratingAverage" bson:"ratingAverage"`
	RatingCount      int                   `json:"ratingCount" bson:"ratingCount"`
	JobsCompleted    int                   `json:"jobsCompleted" bson:"jobsCompleted"`
	YearsExperience  int                   `json:"yearsExperience,omitempty" bson:"yearsExperience,omitempty"`
	Languages        []string              `json:"languages,omitempty" bson:"languages,omitempty"`
	Active           bool                  `json:"active" bson:"active"`
	AcceptsEmergency bool                  `json:"acceptsEmergency" bson:"acceptsEmergency"`
	Specialization   *WorkerSpecialization `json:"specialization,omitempty" bson:"specialization,omitempty"`
}

// HasCapability reports whether the worker can provide the service.
func (w *Worker) HasCapability(serviceSlug string) bool {
	for _, c := range w.Capabilities {
		if c == serviceSlug {
			return true
		}
	}
	return false
}
