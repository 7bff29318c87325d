package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"eventures/internal/shared/middleware"
	"eventures/internal/shared/utils/response"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
	}
}

func (c *Controller) Register(ctx *gin.Context) {
	var req RegisterRequest
	if !c.bind(ctx, &req) {
		return
	}

	resp, err := c.service.Register(ctx.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserAlreadyExists):
			response.Error(ctx, http.StatusConflict, "User with this email already exists", nil)
		default:
			response.Error(ctx, http.StatusInternalServerError, "Failed to register user", nil)
		}
		return
	}

	response.Success(ctx, http.StatusCreated, "User registered successfully", resp)
}

func (c *Controller) Login(ctx *gin.Context) {
	var req LoginRequest
	if !c.bind(ctx, &req) {
		return
	}

	resp, err := c.service.Login(ctx.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(ctx, http.StatusUnauthorized, "Invalid email or password", nil)
		default:
			response.Error(ctx, http.StatusInternalServerError, "Failed to login", nil)
		}
		return
	}

	response.Success(ctx, http.StatusOK, "Login successful", resp)
}

func (c *Controller) RefreshToken(ctx *gin.Context) {
	var req RefreshTokenRequest
	if !c.bind(ctx, &req) {
		return
	}

	tokenPair, err := c.service.RefreshToken(ctx.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidToken):
			response.Error(ctx, http.StatusUnauthorized, "Invalid or expired refresh token", nil)
		case errors.Is(err, ErrUserNotFound):
			response.Error(ctx, http.StatusUnauthorized, "User not found", nil)
		default:
			response.Error(ctx, http.StatusInternalServerError, "Failed to refresh token", nil)
		}
		return
	}

	response.Success(ctx, http.StatusOK, "Token refreshed successfully", tokenPair)
}

func (c *Controller) ChangePassword(ctx *gin.Context) {
	subjectID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	var req ChangePasswordRequest
	if !c.bind(ctx, &req) {
		return
	}

	if err := c.service.ChangePassword(ctx.Request.Context(), subjectID, &req); err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(ctx, http.StatusUnauthorized, "Current password is incorrect", nil)
		case errors.Is(err, ErrUserNotFound):
			response.Error(ctx, http.StatusNotFound, "User not found", nil)
		default:
			response.Error(ctx, http.StatusInternalServerError, "Failed to change password", nil)
		}
		return
	}

	response.Success(ctx, http.StatusOK, "Password changed successfully", nil)
}

func (c *Controller) GetMe(ctx *gin.Context) {
	subjectID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	profile, err := c.service.Profile(ctx.Request.Context(), subjectID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(ctx, http.StatusNotFound, "User not found", nil)
			return
		}
		response.Error(ctx, http.StatusInternalServerError, "Failed to load profile", nil)
		return
	}

	response.Success(ctx, http.StatusOK, "User data retrieved successfully", profile)
}

func (c *Controller) bind(ctx *gin.Context, req interface{}) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return false
	}
	if err := c.validator.Struct(req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Validation failed", err.Error())
		return false
	}
	return true
}
