package catalog

import (
	"eventures/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupCatalogRoutes registers browsing and admin routes. optionalAuth runs on
// the public routes so signed-in browsing is attributed in the access log.
func SetupCatalogRoutes(rg *gin.RouterGroup, controller *Controller, auth, optionalAuth gin.HandlerFunc) {
	// Public catalog browsing
	public := rg.Group("/catalog")
	public.Use(optionalAuth)
	{
		public.GET("/items/:id", controller.GetItem)           // GET /api/v1/catalog/items/:id
		public.GET("/:kind", controller.ListByKind)            // GET /api/v1/catalog/:kind
		public.GET("/:kind/categories", controller.Categories) // GET /api/v1/catalog/:kind/categories
	}

	admin := rg.Group("/admin/catalog")
	admin.Use(auth, middleware.RequireAdmin())
	{
		admin.POST("/:kind/items", controller.CreateItem)                      // POST /api/v1/admin/catalog/:kind/items
		admin.PUT("/items/:id", controller.UpdateItem)                         // PUT /api/v1/admin/catalog/items/:id
		admin.DELETE("/items/:id", controller.DeleteItem)                      // DELETE /api/v1/admin/catalog/items/:id
		admin.DELETE("/:kind/categories/:category", controller.DeleteCategory) // DELETE /api/v1/admin/catalog/:kind/categories/:category
	}
}
