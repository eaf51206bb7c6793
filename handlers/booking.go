package handlers

import (
	"net/http"

	"bookable/models"
	"bookable/services/booking"
	"bookable/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking submission surface.
type BookingHandler struct {
	Svc    booking.Service
	Logger *zap.Logger
}

// NewBookingHandler builds a BookingHandler.
func NewBookingHandler(svc booking.Service, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Svc: svc, Logger: logger}
}

// SubmitBooking handles POST /api/bookings.
func (h *BookingHandler) SubmitBooking(c *gin.Context) {
	var input models.BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	bk, err := h.Svc.Submit(c.Request.Context(), input)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusCreated, bk)
}

// CheckAvailability handles POST /api/businesses/:id/availability.
func (h *BookingHandler) CheckAvailability(c *gin.Context) {
	businessID := c.Param("id")

	var input struct {
		OfferingID string               `json:"offeringId,omitempty"`
		Schedule   models.ScheduleInput `json:"schedule" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	ok, err := h.Svc.CheckAvailability(c.Request.Context(), businessID, input.OfferingID, input.Schedule)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": ok})
}
