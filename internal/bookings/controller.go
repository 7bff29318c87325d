package bookings

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"eventures/internal/draft"
	"eventures/internal/shared/middleware"
	"eventures/internal/shared/utils/response"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// Checkout handles POST /api/v1/bookings/checkout
func (c *Controller) Checkout(ctx *gin.Context) {
	customerID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	var req CheckoutRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.Error(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
			return
		}
	}

	booking, err := c.service.Checkout(ctx.Request.Context(), customerID, req)
	if err != nil {
		c.handleError(ctx, err, "Failed to complete checkout")
		return
	}

	response.Success(ctx, http.StatusCreated, "Booking confirmed successfully", ToCheckoutResponse(booking))
}

// GetBooking handles GET /api/v1/bookings/:id
func (c *Controller) GetBooking(ctx *gin.Context) {
	bookingID, requester, ok := bookingParams(ctx)
	if !ok {
		return
	}

	booking, err := c.service.GetBooking(ctx.Request.Context(), bookingID, requester)
	if err != nil {
		c.handleError(ctx, err, "Failed to get booking")
		return
	}

	response.Success(ctx, http.StatusOK, "Booking retrieved successfully", ToBookingResponse(booking))
}

// CancelBooking handles POST /api/v1/bookings/:id/cancel
func (c *Controller) CancelBooking(ctx *gin.Context) {
	bookingID, requester, ok := bookingParams(ctx)
	if !ok {
		return
	}

	booking, err := c.service.CancelBooking(ctx.Request.Context(), bookingID, requester)
	if err != nil {
		c.handleError(ctx, err, "Failed to cancel booking")
		return
	}

	response.Success(ctx, http.StatusOK, "Booking cancelled successfully", ToBookingResponse(booking))
}

// GetUserBookings handles GET /api/v1/users/bookings
func (c *Controller) GetUserBookings(ctx *gin.Context) {
	customerID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	var query ListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid query parameters", err.Error())
		return
	}
	query.Normalize()

	bookings, total, err := c.service.ListCustomerBookings(ctx.Request.Context(), customerID, query)
	if err != nil {
		c.handleError(ctx, err, "Failed to get user bookings")
		return
	}

	response.Success(ctx, http.StatusOK, "Bookings retrieved successfully",
		response.NewPage(ToBookingResponses(bookings), total, query.Page, query.Limit))
}

// ListAllBookings handles GET /api/v1/admin/bookings
func (c *Controller) ListAllBookings(ctx *gin.Context) {
	var query ListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid query parameters", err.Error())
		return
	}
	query.Normalize()

	bookings, total, err := c.service.ListAllBookings(ctx.Request.Context(), query)
	if err != nil {
		c.handleError(ctx, err, "Failed to list bookings")
		return
	}

	response.Success(ctx, http.StatusOK, "Bookings retrieved successfully",
		response.NewPage(ToBookingResponses(bookings), total, query.Page, query.Limit))
}

func (c *Controller) handleError(ctx *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, ErrDraftNotReady), errors.Is(err, ErrMissingEventInfo):
		response.Error(ctx, http.StatusUnprocessableEntity, message, err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(ctx, http.StatusNotFound, message, err.Error())
	case errors.Is(err, ErrForbidden):
		response.Error(ctx, http.StatusForbidden, "Access denied", nil)
	case errors.Is(err, ErrAlreadyCancelled), errors.Is(err, draft.ErrConflict),
		errors.Is(err, draft.ErrCheckoutInProgress):
		response.Error(ctx, http.StatusConflict, message, err.Error())
	default:
		response.Error(ctx, http.StatusInternalServerError, message, err.Error())
	}
}

func bookingParams(ctx *gin.Context) (uuid.UUID, Requester, bool) {
	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid booking ID", nil)
		return uuid.Nil, Requester{}, false
	}

	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "User not authenticated", nil)
		return uuid.Nil, Requester{}, false
	}

	return bookingID, Requester{ID: userID, Admin: middleware.IsAdmin(ctx)}, true
}
