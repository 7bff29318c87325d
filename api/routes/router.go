// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "eventures/docs"
	"eventures/internal/auth"
	"eventures/internal/bookings"
	"eventures/internal/catalog"
	"eventures/internal/customers"
	"eventures/internal/draft"
	"eventures/internal/lookups"
	"eventures/internal/notifications"
	"eventures/internal/shared/config"
	"eventures/internal/shared/database"
	"eventures/internal/shared/middleware"
	"eventures/pkg/cache"
)

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	db        *database.DB
	publisher notifications.Publisher

	cache          cache.Service
	auth           gin.HandlerFunc
	optionalAuth   gin.HandlerFunc
	customerRepo   customers.Repository
	catalogService catalog.Service
	lookupService  lookups.Service
	draftService   draft.Service
}

// NewRouter creates a new router instance. publisher may be nil when Kafka is off.
func NewRouter(cfg *config.Config, db *database.DB, publisher notifications.Publisher) *Router {
	return &Router{
		config:    cfg,
		db:        db,
		publisher: publisher,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.initShared()

	api := engine.Group(r.config.GetAPIBasePath())
	{
		// order matters: drafts depend on catalog and lookups, bookings on drafts
		r.setupAuthRoutes(api)
		r.setupLookupRoutes(api)
		r.setupCatalogRoutes(api)
		r.setupDraftRoutes(api)
		r.setupBookingRoutes(api)
	}
}

func (r *Router) initShared() {
	if r.db.Redis != nil {
		r.cache = cache.NewService(r.db.Redis)
	} else {
		r.cache = cache.NewNoop()
	}
	r.auth = middleware.JWTAuth(r.config.JWT.Secret)
	r.optionalAuth = middleware.OptionalAuth(r.config.JWT.Secret)
	r.customerRepo = customers.NewRepository(r.db.GetPostgreSQL())
}

func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "eventures-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "eventures-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":        "operational",
			"api_version":   r.config.APIVersion,
			"redis":         r.db.Redis != nil,
			"notifications": r.config.Kafka.Enabled,
			"timestamp":     time.Now(),
		})
	})
}

func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authService := auth.NewService(r.customerRepo, r.config.JWT)
	authController := auth.NewController(authService)
	auth.NewRouter(authController, r.auth).SetupRoutes(rg)
}

func (r *Router) setupLookupRoutes(rg *gin.RouterGroup) {
	lookupRepo := lookups.NewRepository(r.db.GetPostgreSQL())
	r.lookupService = lookups.NewService(lookupRepo, r.cache)
	lookups.SetupLookupRoutes(rg, lookups.NewController(r.lookupService), r.auth)
}

func (r *Router) setupCatalogRoutes(rg *gin.RouterGroup) {
	catalogRepo := catalog.NewRepository(r.db.GetPostgreSQL())
	r.catalogService = catalog.NewService(catalogRepo, r.cache, r.config.Redis.CacheTTL)
	catalog.SetupCatalogRoutes(rg, catalog.NewController(r.catalogService), r.auth, r.optionalAuth)
}

func (r *Router) setupDraftRoutes(rg *gin.RouterGroup) {
	var store draft.Store
	if r.db.Redis != nil {
		store = draft.NewRedisStore(r.db.Redis, r.config.Redis.DraftTTL)
	} else {
		store = draft.NewMemoryStore()
	}

	r.draftService = draft.NewService(store, r.catalogService, r.lookupService)
	draft.SetupDraftRoutes(rg, draft.NewController(r.draftService, r.config.Booking.Currency), r.auth)
}

func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
	bookingService := bookings.NewService(
		bookingRepo,
		r.draftService,
		auth.NewCustomerDirectory(r.customerRepo),
		r.publisher,
		r.config.Booking.Currency,
	)
	bookings.SetupBookingRoutes(rg, bookings.NewController(bookingService), r.auth)
}
