package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	bookingRepo "zela/database/repository/booking"
	"zela/middleware"
	"zela/models"
	"zela/services/booking"
	"zela/services/catalog"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes the booking wizard and lifecycle endpoints.
type BookingHandler struct {
	Flow      *booking.FlowController
	Committer *booking.Committer
	Matcher   *booking.Matcher
	Catalog   catalog.Catalog
	Bookings  bookingRepo.BookingRepository
}

func NewBookingHandler(
	flow *booking.FlowController,
	committer *booking.Committer,
	matcher *booking.Matcher,
	cat catalog.Catalog,
	bookings bookingRepo.BookingRepository,
) *BookingHandler {
	return &BookingHandler{
		Flow:      flow,
		Committer: committer,
		Matcher:   matcher,
		Catalog:   cat,
		Bookings:  bookings,
	}
}

// StartSession creates a new wizard session for a service.
func (h *BookingHandler) StartSession(c *gin.Context) {
	var input struct {
		ServiceSlug string `json:"service_slug" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	sess, firstStep, err := h.Flow.StartSession(c.Request.Context(), middleware.CustomerID(c), input.ServiceSlug)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"session_id":   sess.SessionID,
		"service_slug": sess.ServiceSlug,
		"current_step": firstStep,
	})
}

// GetSession returns the session's captured state and missing steps.
func (h *BookingHandler) GetSession(c *gin.Context) {
	sess, err := h.Flow.GetSession(c.Request.Context(), c.Param("id"), middleware.CustomerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	def, err := h.Catalog.GetDefinition(sess.ServiceSlug)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session":       sess,
		"step_sequence": def.StepSequence,
		"missing_steps": sess.MissingSteps(def.StepSequence),
	})
}

// AdvanceStep stores one step's data and moves the wizard forward.
func (h *BookingHandler) AdvanceStep(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read step payload"})
		return
	}

	next, sess, err := h.Flow.Advance(c.Request.Context(), c.Param("id"), middleware.CustomerID(c), c.Param("step"), json.RawMessage(payload))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := gin.H{"next_step": next}
	if sess.Priced {
		resp["quote"] = sess.Quote
		resp["total_price"] = sess.TotalPrice
	}
	c.JSON(http.StatusOK, resp)
}

// RetreatStep moves the wizard back one step without losing data.
func (h *BookingHandler) RetreatStep(c *gin.Context) {
	prev, err := h.Flow.Retreat(c.Request.Context(), c.Param("id"), middleware.CustomerID(c), c.Param("step"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"previous_step": prev})
}

// Quote prices the session as it currently stands.
func (h *BookingHandler) Quote(c *gin.Context) {
	quote, err := h.Flow.Quote(c.Request.Context(), c.Param("id"), middleware.CustomerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

// Candidates lists the workers available for the session's window,
// best ranked first.
func (h *BookingHandler) Candidates(c *gin.Context) {
	ctx := c.Request.Context()
	sess, err := h.Flow.GetSession(ctx, c.Param("id"), middleware.CustomerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	def, err := h.Catalog.GetDefinition(sess.ServiceSlug)
	if err != nil {
		respondError(c, err)
		return
	}
	window, err := booking.SessionWindow(def, sess, sess.Quote)
	if err != nil {
		respondError(c, err)
		return
	}

	workers, err := h.Matcher.FindCandidates(ctx, def, sess.Address, window)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"workers": workers})
}

// Confirm commits the session into a durable booking.
func (h *BookingHandler) Confirm(c *gin.Context) {
	bk, err := h.Committer.Commit(c.Request.Context(), c.Param("id"), middleware.CustomerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": bk})
}

// CancelSession abandons an in-progress wizard session.
func (h *BookingHandler) CancelSession(c *gin.Context) {
	if err := h.Flow.CancelSession(c.Request.Context(), c.Param("id"), middleware.CustomerID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// ListBookings returns the customer's bookings, newest first.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	bookings, err := h.Bookings.ListForCustomer(c.Request.Context(), middleware.CustomerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// GetBooking returns one booking owned by the customer.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	bk, err := h.Bookings.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil || bk.CustomerID != middleware.CustomerID(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": bk})
}

// CancelBooking cancels a committed booking, refunding electronic
// payments.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	bk, err := h.Committer.Cancel(c.Request.Context(), c.Param("id"), middleware.CustomerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": bk})
}

// UpdateBookingStatus moves a booking along its lifecycle.
func (h *BookingHandler) UpdateBookingStatus(c *gin.Context) {
	var input struct {
		Status models.BookingStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	bk, err := h.Committer.Transition(c.Request.Context(), c.Param("id"), input.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": bk})
}
