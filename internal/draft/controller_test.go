package draft

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"eventures/internal/catalog"
	"eventures/internal/shared/middleware"
)

type envelope struct {
	Status string        `json:"status"`
	Data   DraftResponse `json:"data"`
}

func setupDraftRouter(svc Service, customerID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	fakeAuth := func(c *gin.Context) {
		if customerID != "" {
			c.Set(middleware.ContextUserID, customerID)
			c.Set(middleware.ContextUserRole, "CUSTOMER")
		}
		c.Next()
	}
	SetupDraftRoutes(r.Group("/api/v1"), NewController(svc, "USD"), fakeAuth)
	return r
}

func call(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)

	var env envelope
	if w.Code < 300 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestDraftRoutes_RequireCustomer(t *testing.T) {
	svc, _, _ := newTestService()
	w, _ := call(t, setupDraftRouter(svc, ""), http.MethodGet, "/api/v1/drafts/current", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDraftRoutes_Flow(t *testing.T) {
	svc, cat, _ := newTestService()
	itemID := uuid.New()
	cat.On("GetItem", mock.Anything, itemID).Return(&catalog.Item{
		ID: itemID, Kind: catalog.KindDecoration, Name: "Lantern", Price: decimal.NewFromInt(10),
	}, nil)
	r := setupDraftRouter(svc, uuid.NewString())

	w, env := call(t, r, http.MethodPost, "/api/v1/drafts/current/cart", `{"item_id":"`+itemID.String()+`","quantity":2}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "20.00", env.Data.Summary.Total)
	assert.False(t, env.Data.Summary.CanProceed)

	for _, kind := range []string{"decoration", "utensils", "furniture"} {
		w, env = call(t, r, http.MethodPost, "/api/v1/drafts/current/visits/"+kind, "")
		require.Equal(t, http.StatusOK, w.Code)
	}
	assert.True(t, env.Data.Summary.AllVisited)
	assert.True(t, env.Data.Summary.CanProceed)

	w, env = call(t, r, http.MethodPut, "/api/v1/drafts/current/cart/"+itemID.String(), `{"quantity":0}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, env.Data.Draft.CartItems)
	assert.False(t, env.Data.Summary.CanProceed)

	w, env = call(t, r, http.MethodDelete, "/api/v1/drafts/current", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, env.Data.Summary.AllVisited)
	assert.Equal(t, "USD", env.Data.Summary.Currency)
}

func TestDraftRoutes_Errors(t *testing.T) {
	svc, _, _ := newTestService()
	r := setupDraftRouter(svc, uuid.NewString())

	w, _ := call(t, r, http.MethodPost, "/api/v1/drafts/current/visits/spoons", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = call(t, r, http.MethodPut, "/api/v1/drafts/current/cart/abc", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = call(t, r, http.MethodPut, "/api/v1/drafts/current/cart/abc", `{"quantity":2}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = call(t, r, http.MethodPatch, "/api/v1/drafts/current", `{"event_date_time":"2020-01-01T00:00:00Z"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w, _ = call(t, r, http.MethodPatch, "/api/v1/drafts/current", `{"event_location":{"kind":"moon"}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
