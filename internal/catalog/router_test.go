package catalog

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSetupCatalogRoutes_AuthPerGroup(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var required, optional int
	auth := func(c *gin.Context) {
		required++
		c.AbortWithStatus(http.StatusUnauthorized)
	}
	optionalAuth := func(c *gin.Context) {
		optional++
		c.Next()
	}

	svc := new(mockService)
	svc.On("ListByKind", mock.Anything, KindUtensil, "").
		Return(&KindListingResponse{Kind: KindUtensil, Categories: []CategoryGroup{}}, nil)

	r := gin.New()
	SetupCatalogRoutes(r.Group("/api/v1"), NewController(svc), auth, optionalAuth)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/catalog/utensils", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, optional, "public browsing goes through optional auth")
	assert.Zero(t, required)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/admin/catalog/items/00000000-0000-0000-0000-000000000000", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 1, required)
	assert.Equal(t, 1, optional)
}
