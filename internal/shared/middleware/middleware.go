package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"eventures/internal/customers"
	"eventures/internal/shared/utils/response"
	"eventures/pkg/logger"
)

// Context keys set by the auth middleware
const (
	ContextUserID    = "user_id"
	ContextUserEmail = "user_email"
	ContextUserRole  = "user_role"
)

// JWTAuth creates a JWT authentication middleware for HS256 access tokens
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header is required", nil)
			return
		}

		tokenString, ok := bearerToken(authHeader)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "authorization header format must be Bearer {token}", nil)
			return
		}

		claims, err := parseAccessToken(tokenString, secret)
		if err != nil {
			logger.GetDefault().LogAuthFailure(c.Request.Context(), err.Error(), "")
			response.Error(c, http.StatusUnauthorized, "invalid or expired token", nil)
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuth validates a JWT token if present but doesn't require it
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString, ok := bearerToken(c.GetHeader("Authorization")); ok {
			if claims, err := parseAccessToken(tokenString, secret); err == nil {
				setClaims(c, claims)
			}
		}
		c.Next()
	}
}

// RequireRole middleware checks if user has required role
func RequireRole(requiredRole string) gin.HandlerFunc {
	return RequireRoles(requiredRole)
}

// RequireAdmin middleware that requires admin role
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(string(customers.RoleAdmin))
}

// RequireRoles middleware checks if user has any of the required roles
func RequireRoles(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := c.GetString(ContextUserRole)
		if userRole == "" {
			response.Error(c, http.StatusUnauthorized, "user role not found in context", nil)
			return
		}

		for _, role := range requiredRoles {
			if userRole == role {
				c.Next()
				return
			}
		}

		response.Error(c, http.StatusForbidden, "Insufficient permissions", nil)
	}
}

// CurrentUserID returns the authenticated subject id
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString(ContextUserID))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// IsAdmin reports whether the authenticated user has the admin role
func IsAdmin(c *gin.Context) bool {
	return c.GetString(ContextUserRole) == string(customers.RoleAdmin)
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func parseAccessToken(tokenString, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrInvalidKeyType
	}
	if tokenType, _ := claims["type"].(string); tokenType != "access" {
		return nil, jwt.NewValidationError("invalid token type", jwt.ValidationErrorClaimsInvalid)
	}
	return claims, nil
}

func setClaims(c *gin.Context, claims jwt.MapClaims) {
	userID, _ := claims["user_id"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	c.Set(ContextUserID, userID)
	c.Set(ContextUserEmail, email)
	c.Set(ContextUserRole, role)
}
