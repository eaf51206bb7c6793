package handlers

import (
	"net/http"

	"bookable/models"
	"bookable/services/business"
	"bookable/utils"

	"github.com/gin-gonic/gin"
)

// BusinessHandler exposes business management endpoints.
type BusinessHandler struct {
	Svc business.Service
}

// NewBusinessHandler builds a BusinessHandler.
func NewBusinessHandler(svc business.Service) *BusinessHandler {
	return &BusinessHandler{Svc: svc}
}

// CreateBusiness handles POST /api/businesses.
func (h *BusinessHandler) CreateBusiness(c *gin.Context) {
	var input business.BusinessInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	biz, err := h.Svc.CreateBusiness(c.Request.Context(), input)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusCreated, biz)
}

// GetBusiness handles GET /api/businesses/:id.
func (h *BusinessHandler) GetBusiness(c *gin.Context) {
	biz, err := h.Svc.GetBusiness(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, biz)
}

// UpdateHours handles PUT /api/businesses/:id/hours.
func (h *BusinessHandler) UpdateHours(c *gin.Context) {
	var hours models.OperatingHours
	if err := c.ShouldBindJSON(&hours); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	biz, err := h.Svc.UpdateOperatingHours(c.Request.Context(), c.Param("id"), hours)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, biz)
}

// AddSlot handles POST /api/businesses/:id/slots.
func (h *BusinessHandler) AddSlot(c *gin.Context) {
	var input struct {
		Name               string   `json:"name" binding:"required"`
		AppliesToOfferings []string `json:"appliesToOfferings,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	biz, err := h.Svc.AddSlot(c.Request.Context(), c.Param("id"), input.Name, input.AppliesToOfferings)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, biz)
}

// AddUnavailability handles POST /api/businesses/:id/unavailability.
func (h *BusinessHandler) AddUnavailability(c *gin.Context) {
	var input business.UnavailabilityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	biz, err := h.Svc.AddUnavailability(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, biz)
}

// RemoveUnavailability handles DELETE /api/businesses/:id/unavailability/:name.
func (h *BusinessHandler) RemoveUnavailability(c *gin.Context) {
	biz, err := h.Svc.RemoveUnavailability(c.Request.Context(), c.Param("id"), c.Param("name"))
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, biz)
}
