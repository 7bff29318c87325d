package lookups

import (
	"eventures/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupLookupRoutes(rg *gin.RouterGroup, controller *Controller, auth gin.HandlerFunc) {
	rg.GET("/event-types", controller.ListEventTypes)         // GET /api/v1/event-types
	rg.POST("/event-types", auth, controller.CreateEventType) // POST /api/v1/event-types
	rg.GET("/locations", controller.ListLocationTypes)        // GET /api/v1/locations

	admin := rg.Group("/admin")
	admin.Use(auth, middleware.RequireAdmin())
	{
		admin.DELETE("/event-types/:id", controller.DeleteEventType)  // DELETE /api/v1/admin/event-types/:id
		admin.POST("/locations", controller.CreateLocationType)       // POST /api/v1/admin/locations
		admin.DELETE("/locations/:id", controller.DeleteLocationType) // DELETE /api/v1/admin/locations/:id
	}
}
