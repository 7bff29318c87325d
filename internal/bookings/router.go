package bookings

import (
	"github.com/gin-gonic/gin"

	"eventures/internal/customers"
	"eventures/internal/shared/middleware"
)

// SetupBookingRoutes configures all booking-related routes
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller, auth gin.HandlerFunc) {
	bookings := rg.Group("/bookings")
	bookings.Use(auth)
	{
		bookings.POST("/checkout", middleware.RequireRole(string(customers.RoleCustomer)), controller.Checkout) // POST /api/v1/bookings/checkout
		bookings.GET("/:id", controller.GetBooking)                                                             // GET /api/v1/bookings/:id
		bookings.POST("/:id/cancel", controller.CancelBooking)                                                  // POST /api/v1/bookings/:id/cancel
	}

	users := rg.Group("/users")
	users.Use(auth, middleware.RequireRole(string(customers.RoleCustomer)))
	{
		users.GET("/bookings", controller.GetUserBookings) // GET /api/v1/users/bookings
	}

	admin := rg.Group("/admin/bookings")
	admin.Use(auth, middleware.RequireAdmin())
	{
		admin.GET("", controller.ListAllBookings) // GET /api/v1/admin/bookings
	}
}

// Checkout flow:
// 1. Customer fills the draft via /drafts/current and visits every catalog
// 2. POST /bookings/checkout with { "payment_method": "credit_card" }
// 3. Booking and payment are stored in one transaction and the draft is cleared
// 4. A BOOKING_CONFIRMED notification is published to Kafka
