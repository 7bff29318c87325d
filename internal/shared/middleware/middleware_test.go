package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-secret"

func signed(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func claimsFor(userID, role, tokenType string) jwt.MapClaims {
	return jwt.MapClaims{
		"user_id": userID,
		"email":   "ada@example.com",
		"role":    role,
		"type":    tokenType,
		"exp":     time.Now().Add(time.Minute).Unix(),
	}
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		id, ok := CurrentUserID(c)
		c.JSON(http.StatusOK, gin.H{"id": id.String(), "ok": ok, "admin": IsAdmin(c)})
	})
	r.GET("/protected", handlers...)
	return r
}

func do(r *gin.Engine, header string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	userID := uuid.New().String()
	r := newRouter(JWTAuth(testSecret))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "missing header", header: "", want: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Token abc", want: http.StatusUnauthorized},
		{name: "bad signature", header: "Bearer " + signed(t, "other", claimsFor(userID, "CUSTOMER", "access")), want: http.StatusUnauthorized},
		{name: "refresh token", header: "Bearer " + signed(t, testSecret, claimsFor(userID, "CUSTOMER", "refresh")), want: http.StatusUnauthorized},
		{name: "valid access token", header: "Bearer " + signed(t, testSecret, claimsFor(userID, "CUSTOMER", "access")), want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, tt.header)
			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusOK {
				assert.Contains(t, w.Body.String(), userID)
			}
		})
	}
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	claims := claimsFor(uuid.New().String(), "CUSTOMER", "access")
	claims["exp"] = time.Now().Add(-time.Minute).Unix()

	w := do(newRouter(JWTAuth(testSecret)), "Bearer "+signed(t, testSecret, claims))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	r := newRouter(JWTAuth(testSecret), RequireAdmin())

	customer := do(r, "Bearer "+signed(t, testSecret, claimsFor(uuid.New().String(), "CUSTOMER", "access")))
	assert.Equal(t, http.StatusForbidden, customer.Code)

	admin := do(r, "Bearer "+signed(t, testSecret, claimsFor(uuid.New().String(), "ADMIN", "access")))
	assert.Equal(t, http.StatusOK, admin.Code)
	assert.Contains(t, admin.Body.String(), `"admin":true`)
}

func TestRequireRoles_WithoutAuth(t *testing.T) {
	w := do(newRouter(RequireRoles("ADMIN", "CUSTOMER")), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuth(t *testing.T) {
	r := newRouter(OptionalAuth(testSecret))

	anonymous := do(r, "")
	assert.Equal(t, http.StatusOK, anonymous.Code)
	assert.Contains(t, anonymous.Body.String(), `"ok":false`)

	userID := uuid.New().String()
	authed := do(r, "Bearer "+signed(t, testSecret, claimsFor(userID, "CUSTOMER", "access")))
	assert.Contains(t, authed.Body.String(), userID)
}
