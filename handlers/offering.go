package handlers

import (
	"net/http"

	"bookable/models"
	"bookable/services/business"
	"bookable/utils"

	"github.com/gin-gonic/gin"
)

// OfferingHandler exposes offering and option-tree management endpoints.
type OfferingHandler struct {
	Svc business.Service
}

// NewOfferingHandler builds an OfferingHandler.
func NewOfferingHandler(svc business.Service) *OfferingHandler {
	return &OfferingHandler{Svc: svc}
}

// CreateOffering handles POST /api/businesses/:id/offerings.
func (h *OfferingHandler) CreateOffering(c *gin.Context) {
	var input business.OfferingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	off, err := h.Svc.CreateOffering(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusCreated, off)
}

// GetOffering handles GET /api/offerings/:id.
func (h *OfferingHandler) GetOffering(c *gin.Context) {
	off, err := h.Svc.GetOffering(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, off)
}

// AddItem handles POST /api/offerings/:id/items.
func (h *OfferingHandler) AddItem(c *gin.Context) {
	var input struct {
		ParentPath string            `json:"parentPath,omitempty"`
		Item       models.OptionNode `json:"item" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	off, err := h.Svc.AddOfferingItem(c.Request.Context(), c.Param("id"), input.ParentPath, input.Item)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, off)
}

// RemoveItem handles DELETE /api/offerings/:id/items?path=...
// Removing a path that does not exist is a no-op.
func (h *OfferingHandler) RemoveItem(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "path query parameter is required"})
		return
	}
	off, err := h.Svc.RemoveOfferingItem(c.Request.Context(), c.Param("id"), path)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, off)
}

// UpdateItem handles PATCH /api/offerings/:id/items.
func (h *OfferingHandler) UpdateItem(c *gin.Context) {
	var input struct {
		Path   string          `json:"path" binding:"required"`
		Fields models.FlatNode `json:"fields" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	off, err := h.Svc.UpdateOfferingItem(c.Request.Context(), c.Param("id"), input.Path, input.Fields)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, off)
}

// FlattenItems handles GET /api/offerings/:id/items/flat.
func (h *OfferingHandler) FlattenItems(c *gin.Context) {
	flat, err := h.Svc.FlattenOfferingItems(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, flat)
}
