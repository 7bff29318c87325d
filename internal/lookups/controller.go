package lookups

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"eventures/internal/shared/middleware"
	"eventures/internal/shared/utils/response"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) ListEventTypes(ctx *gin.Context) {
	types, err := c.service.ListEventTypes(ctx.Request.Context())
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to list event types", err.Error())
		return
	}
	response.Success(ctx, http.StatusOK, "Event types retrieved successfully", types)
}

// CreateEventType adds an event type. Customers create custom ones; admins
// create the standard list.
func (c *Controller) CreateEventType(ctx *gin.Context) {
	var req CreateEventTypeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request data", err.Error())
		return
	}

	eventType, err := c.service.CreateEventType(ctx.Request.Context(), req.Name, !middleware.IsAdmin(ctx))
	if err != nil {
		c.handleError(ctx, err, "Failed to create event type")
		return
	}
	response.Success(ctx, http.StatusCreated, "Event type created successfully", eventType)
}

func (c *Controller) DeleteEventType(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid event type ID", "ID must be a UUID")
		return
	}

	if err := c.service.DeleteEventType(ctx.Request.Context(), id); err != nil {
		c.handleError(ctx, err, "Failed to delete event type")
		return
	}
	response.Success(ctx, http.StatusOK, "Event type deleted successfully", nil)
}

func (c *Controller) ListLocationTypes(ctx *gin.Context) {
	locations, err := c.service.ListLocationTypes(ctx.Request.Context())
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to list locations", err.Error())
		return
	}
	response.Success(ctx, http.StatusOK, "Locations retrieved successfully", locations)
}

func (c *Controller) CreateLocationType(ctx *gin.Context) {
	var req CreateLocationTypeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request data", err.Error())
		return
	}

	location, err := c.service.CreateLocationType(ctx.Request.Context(), req.Name)
	if err != nil {
		c.handleError(ctx, err, "Failed to create location")
		return
	}
	response.Success(ctx, http.StatusCreated, "Location created successfully", location)
}

func (c *Controller) DeleteLocationType(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid location ID", "ID must be a UUID")
		return
	}

	if err := c.service.DeleteLocationType(ctx.Request.Context(), id); err != nil {
		c.handleError(ctx, err, "Failed to delete location")
		return
	}
	response.Success(ctx, http.StatusOK, "Location deleted successfully", nil)
}

func (c *Controller) handleError(ctx *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, ErrEventTypeNotFound), errors.Is(err, ErrLocationNotFound):
		response.Error(ctx, http.StatusNotFound, message, err.Error())
	case errors.Is(err, ErrNameRequired):
		response.Error(ctx, http.StatusBadRequest, message, err.Error())
	default:
		response.Error(ctx, http.StatusInternalServerError, message, err.Error())
	}
}
