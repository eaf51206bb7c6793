package routes

import (
	"net/http"

	"bookable/handlers"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the handlers the router needs.
type HandlerBundle struct {
	Business *handlers.BusinessHandler
	Offering *handlers.OfferingHandler
	Booking  *handlers.BookingHandler
}

// RegisterRoutes wires every endpoint onto the router.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	RegisterBusinessRoutes(r, hb)
	RegisterOfferingRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
}

// RegisterBusinessRoutes registers business management endpoints.
func RegisterBusinessRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/businesses")
	{
		api.POST("", hb.Business.CreateBusiness)
		api.GET("/:id", hb.Business.GetBusiness)
		api.PUT("/:id/hours", hb.Business.UpdateHours)
		api.POST("/:id/slots", hb.Business.AddSlot)
		api.POST("/:id/unavailability", hb.Business.AddUnavailability)
		api.DELETE("/:id/unavailability/:name", hb.Business.RemoveUnavailability)
		api.POST("/:id/offerings", hb.Offering.CreateOffering)
		api.POST("/:id/availability", hb.Booking.CheckAvailability)
	}
}

// RegisterOfferingRoutes registers offering and option-tree endpoints.
func RegisterOfferingRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/offerings")
	{
		api.GET("/:id", hb.Offering.GetOffering)
		api.POST("/:id/items", hb.Offering.AddItem)
		api.DELETE("/:id/items", hb.Offering.RemoveItem)
		api.PATCH("/:id/items", hb.Offering.UpdateItem)
		api.GET("/:id/items/flat", hb.Offering.FlattenItems)
	}
}

// RegisterBookingRoutes registers the booking submission surface.
func RegisterBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.POST("", hb.Booking.SubmitBooking)
	}
}
