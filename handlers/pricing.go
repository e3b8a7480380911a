package handlers

import (
	"net/http"
	"time"

	"zela/middleware"
	"zela/services/catalog"
	"zela/services/pricing"

	"github.com/gin-gonic/gin"
)

// PricingHandler exposes the quote calculator and the platform pricing
// configuration.
type PricingHandler struct {
	Engine  *pricing.Engine
	Catalog catalog.Catalog
}

func NewPricingHandler(engine *pricing.Engine, cat catalog.Catalog) *PricingHandler {
	return &PricingHandler{Engine: engine, Catalog: cat}
}

type calculateRequest struct {
	ServiceSlug string   `json:"service_slug" binding:"required"`
	Typology    string   `json:"typology"`
	Hours       float64  `json:"hours"`
	UnitCount   int      `json:"unit_count"`
	Tasks       []string `json:"tasks"`
	Area        string   `json:"area"`
	Urgency     string   `json:"urgency"`
	Date        string   `json:"date"`
	PackageID   string   `json:"package_id"`
	PackageType string   `json:"package_type"`
	WorkerID    string   `json:"worker_id"`
}

// CalculatePrice quotes a service without a wizard session, for the
// price preview on the service pages.
func (h *PricingHandler) CalculatePrice(c *gin.Context) {
	var req calculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	def, err := h.Catalog.GetDefinition(req.ServiceSlug)
	if err != nil {
		respondError(c, err)
		return
	}

	pctx := pricing.Context{
		CustomerID:  middleware.CustomerID(c),
		Typology:    req.Typology,
		Hours:       req.Hours,
		UnitCount:   req.UnitCount,
		Tasks:       req.Tasks,
		Area:        req.Area,
		Urgency:     req.Urgency,
		PackageID:   req.PackageID,
		PackageType: req.PackageType,
		WorkerID:    req.WorkerID,
	}
	if req.Date != "" {
		if date, err := time.ParseInLocation("2006-01-02", req.Date, time.UTC); err == nil {
			pctx.ScheduledDate = date
		}
	}

	quote, err := h.Engine.Calculate(c.Request.Context(), def, pctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

// GetPricingConfig returns the platform fees, multipliers and coverage
// areas used by the quote calculator.
func (h *PricingHandler) GetPricingConfig(c *gin.Context) {
	p := h.Engine.Platform
	c.JSON(http.StatusOK, gin.H{
		"currency":               p.Currency,
		"booking_fee":            p.BookingFee,
		"service_fee":            p.ServiceFee,
		"specialty_task_price":   p.SpecialtyTaskPrice,
		"minimum_booking_amount": p.MinimumBookingAmount,
		"weekend_multiplier":     p.WeekendMultiplier,
		"holiday_multiplier":     p.HolidayMultiplier,
		"service_areas":          p.ServiceAreas,
	})
}
