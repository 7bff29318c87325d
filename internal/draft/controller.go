package draft

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"eventures/internal/catalog"
	"eventures/internal/shared/middleware"
	"eventures/internal/shared/utils/response"
)

type Controller struct {
	service  Service
	currency string
}

func NewController(service Service, currency string) *Controller {
	return &Controller{service: service, currency: currency}
}

func (c *Controller) GetCurrent(ctx *gin.Context) {
	customerID, ok := customerParam(ctx)
	if !ok {
		return
	}

	d, err := c.service.Get(ctx.Request.Context(), customerID)
	if err != nil {
		c.handleError(ctx, err, "Failed to load draft")
		return
	}

	response.Success(ctx, http.StatusOK, "Draft retrieved successfully", NewDraftResponse(d, c.currency))
}

func (c *Controller) UpdateEventInfo(ctx *gin.Context) {
	customerID, ok := customerParam(ctx)
	if !ok {
		return
	}

	var req UpdateEventInfoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request data", err.Error())
		return
	}

	d, err := c.service.UpdateEventInfo(ctx.Request.Context(), customerID, req)
	if err != nil {
		c.handleError(ctx, err, "Failed to update event info")
		return
	}

	response.Success(ctx, http.StatusOK, "Draft updated successfully", NewDraftResponse(d, c.currency))
}

func (c *Controller) MarkVisited(ctx *gin.Context) {
	customerID, ok := customerParam(ctx)
	if !ok {
		return
	}

	kind, err := catalog.ParseKind(ctx.Param("kind"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid catalog kind", err.Error())
		return
	}

	d, err := c.service.MarkVisited(ctx.Request.Context(), customerID, kind)
	if err != nil {
		c.handleError(ctx, err, "Failed to record visit")
		return
	}

	response.Success(ctx, http.StatusOK, "Visit recorded", NewDraftResponse(d, c.currency))
}

func (c *Controller) AddToCart(ctx *gin.Context) {
	customerID, ok := customerParam(ctx)
	if !ok {
		return
	}

	var req AddToCartRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request data", err.Error())
		return
	}

	d, err := c.service.AddToCart(ctx.Request.Context(), customerID, req)
	if err != nil {
		c.handleError(ctx, err, "Failed to add item to cart")
		return
	}

	response.Success(ctx, http.StatusOK, "Item added to cart", NewDraftResponse(d, c.currency))
}

func (c *Controller) UpdateCartQuantity(ctx *gin.Context) {
	customerID, ok := customerParam(ctx)
	if !ok {
		return
	}

	var req UpdateQuantityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request data", "quantity is required")
		return
	}

	d, err := c.service.UpdateCartQuantity(ctx.Request.Context(), customerID, ctx.Param("itemId"), *req.Quantity)
	if err != nil {
		c.handleError(ctx, err, "Failed to update quantity")
		return
	}

	response.Success(ctx, http.StatusOK, "Cart updated", NewDraftResponse(d, c.currency))
}

func (c *Controller) RemoveFromCart(ctx *gin.Context) {
	customerID, ok := customerParam(ctx)
	if !ok {
		return
	}

	d, err := c.service.RemoveFromCart(ctx.Request.Context(), customerID, ctx.Param("itemId"))
	if err != nil {
		c.handleError(ctx, err, "Failed to remove item")
		return
	}

	response.Success(ctx, http.StatusOK, "Item removed from cart", NewDraftResponse(d, c.currency))
}

func (c *Controller) Reset(ctx *gin.Context) {
	customerID, ok := customerParam(ctx)
	if !ok {
		return
	}

	if err := c.service.Reset(ctx.Request.Context(), customerID, "customer request"); err != nil {
		c.handleError(ctx, err, "Failed to reset draft")
		return
	}

	response.Success(ctx, http.StatusOK, "Draft reset", NewDraftResponse(New(), c.currency))
}

func (c *Controller) handleError(ctx *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, ErrInvalidEventInfo), errors.Is(err, ErrInvalidRequest),
		errors.Is(err, ErrInvalidLocation), errors.Is(err, ErrKindMismatch):
		response.Error(ctx, http.StatusBadRequest, message, err.Error())
	case errors.Is(err, ErrEventInPast):
		response.Error(ctx, http.StatusUnprocessableEntity, message, err.Error())
	case errors.Is(err, ErrItemNotFound), errors.Is(err, ErrLineNotFound),
		errors.Is(err, ErrUnknownEventType), errors.Is(err, ErrUnknownLocation):
		response.Error(ctx, http.StatusNotFound, message, err.Error())
	case errors.Is(err, ErrConflict):
		response.Error(ctx, http.StatusConflict, message, err.Error())
	default:
		response.Error(ctx, http.StatusInternalServerError, message, err.Error())
	}
}

func customerParam(ctx *gin.Context) (uuid.UUID, bool) {
	customerID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "User not authenticated", nil)
		return uuid.Nil, false
	}
	return customerID, true
}
