package models

import "time"

// Package statuses.
const (
	PackageActive   = "active"
	PackageDepleted = "depleted"
	PackageExpired  = "expired"
)

// ServicePackage is a pre-purchased bundle of sessions consumed one
// credit per booking instead of paying per booking.
type ServicePackage struct {
	ID           string     `json:"id" bson:"id"`
	CustomerID   string     `json:"customerId" bson:"customerId"`
	WorkerID     string     `json:"workerId,omitempty" bson:"workerId,omitempty"`
	ServiceSlug  string     `json:"serviceSlug,omitempty" bson:"serviceSlug,omitempty"`
	Name         string     `json:"name" bson:"name"`
	Type         string     `json:"type" bson:"type"`
	TotalCredits int        `json:"totalCredits" bson:"totalCredits"`
	UsedCredits  int        `json:"usedCredits" bson:"usedCredits"`
	AmountPaid   int64      `json:"amountPaid" bson:"amountPaid"`
	Status       string     `json:"status" bson:"status"`
	PurchasedAt  time.Time  `json:"purchasedAt" bson:"purchasedAt"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty" bson:"expiresAt,omitempty"`
}

// RemainingCredits returns the unconsumed credits.
func (p *ServicePackage) RemainingCredits() int {
	return p.TotalCredits - p.UsedCredits
}

// IsUsable reports whether the package can cover a booking at the given
// instant.
func (p *ServicePackage) IsUsable(now time.Time) bool {
	if p.Status != PackageActive {
		return false
	}
	if p.RemainingCredits() <= 0 {
		return false
	}
	if p.ExpiresAt != nil && !p.ExpiresAt.After(now) {
		return false
	}
	return true
}
