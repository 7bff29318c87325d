package draft

import (
	"github.com/gin-gonic/gin"
)

func SetupDraftRoutes(rg *gin.RouterGroup, controller *Controller, auth gin.HandlerFunc) {
	drafts := rg.Group("/drafts/current")
	drafts.Use(auth)
	{
		drafts.GET("", controller.GetCurrent)                      // GET /api/v1/drafts/current
		drafts.PATCH("", controller.UpdateEventInfo)               // PATCH /api/v1/drafts/current
		drafts.DELETE("", controller.Reset)                        // DELETE /api/v1/drafts/current
		drafts.POST("/visits/:kind", controller.MarkVisited)       // POST /api/v1/drafts/current/visits/:kind
		drafts.POST("/cart", controller.AddToCart)                 // POST /api/v1/drafts/current/cart
		drafts.PUT("/cart/:itemId", controller.UpdateCartQuantity) // PUT /api/v1/drafts/current/cart/:itemId
		drafts.DELETE("/cart/:itemId", controller.RemoveFromCart)  // DELETE /api/v1/drafts/current/cart/:itemId
	}
}
