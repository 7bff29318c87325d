package catalog

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"eventures/internal/shared/utils/response"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// ListByKind lists the items of one kind grouped by category
func (c *Controller) ListByKind(ctx *gin.Context) {
	kind, ok := kindParam(ctx)
	if !ok {
		return
	}

	var query ListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid query parameters", err.Error())
		return
	}

	listing, err := c.service.ListByKind(ctx.Request.Context(), kind, query.Category)
	if err != nil {
		c.handleError(ctx, err, "Failed to list catalog")
		return
	}

	response.Success(ctx, http.StatusOK, "Catalog retrieved successfully", listing)
}

func (c *Controller) Categories(ctx *gin.Context) {
	kind, ok := kindParam(ctx)
	if !ok {
		return
	}

	categories, err := c.service.Categories(ctx.Request.Context(), kind)
	if err != nil {
		c.handleError(ctx, err, "Failed to list categories")
		return
	}

	response.Success(ctx, http.StatusOK, "Categories retrieved successfully", categories)
}

func (c *Controller) GetItem(ctx *gin.Context) {
	id, ok := itemIDParam(ctx)
	if !ok {
		return
	}

	item, err := c.service.GetItem(ctx.Request.Context(), id)
	if err != nil {
		c.handleError(ctx, err, "Failed to get item")
		return
	}

	response.Success(ctx, http.StatusOK, "Item retrieved successfully", ToItemResponse(item))
}

// ADMIN

func (c *Controller) CreateItem(ctx *gin.Context) {
	kind, ok := kindParam(ctx)
	if !ok {
		return
	}

	var req CreateItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request data", err.Error())
		return
	}

	item, err := c.service.CreateItem(ctx.Request.Context(), kind, req)
	if err != nil {
		c.handleError(ctx, err, "Failed to create item")
		return
	}

	response.Success(ctx, http.StatusCreated, "Item created successfully", ToItemResponse(item))
}

func (c *Controller) UpdateItem(ctx *gin.Context) {
	id, ok := itemIDParam(ctx)
	if !ok {
		return
	}

	var req UpdateItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request data", err.Error())
		return
	}

	item, err := c.service.UpdateItem(ctx.Request.Context(), id, req)
	if err != nil {
		c.handleError(ctx, err, "Failed to update item")
		return
	}

	response.Success(ctx, http.StatusOK, "Item updated successfully", ToItemResponse(item))
}

func (c *Controller) DeleteItem(ctx *gin.Context) {
	id, ok := itemIDParam(ctx)
	if !ok {
		return
	}

	if err := c.service.DeleteItem(ctx.Request.Context(), id); err != nil {
		c.handleError(ctx, err, "Failed to delete item")
		return
	}

	response.Success(ctx, http.StatusOK, "Item deleted successfully", nil)
}

func (c *Controller) DeleteCategory(ctx *gin.Context) {
	kind, ok := kindParam(ctx)
	if !ok {
		return
	}
	category := ctx.Param("category")

	deleted, err := c.service.DeleteCategory(ctx.Request.Context(), kind, category)
	if err != nil {
		c.handleError(ctx, err, "Failed to delete category")
		return
	}

	response.Success(ctx, http.StatusOK, "Category deleted successfully", DeleteCategoryResponse{
		Kind:     kind,
		Category: category,
		Deleted:  deleted,
	})
}

func (c *Controller) handleError(ctx *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(ctx, http.StatusNotFound, message, err.Error())
	case errors.Is(err, ErrInvalidKind), errors.Is(err, ErrInvalidPrice):
		response.Error(ctx, http.StatusBadRequest, message, err.Error())
	default:
		response.Error(ctx, http.StatusInternalServerError, message, err.Error())
	}
}

func kindParam(ctx *gin.Context) (Kind, bool) {
	kind, err := ParseKind(ctx.Param("kind"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid catalog kind", err.Error())
		return "", false
	}
	return kind, true
}

func itemIDParam(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid item ID", "item ID must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}
