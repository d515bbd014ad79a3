package v1

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"

	"github.com/opsvix-api/middleware"
	"github.com/opsvix-api/services"
)

const (
	// MaxJSONBody caps JSON request bodies
	MaxJSONBody = 10 << 20
	// MaxMultipartMemory is held in memory per upload request before spilling to disk
	MaxMultipartMemory = 32 << 20
)

// Services bundles everything the controllers depend on
type Services struct {
	Auth        *services.AuthService
	Enquiries   *services.EnquiryService
	Projects    *services.ProjectService
	Testimonies *services.TestimonyService
	Analytics   *services.AnalyticsService
}

// RouterConfig configures the HTTP surface
type RouterConfig struct {
	// AllowedOrigins are the browser origins allowed to call the API
	AllowedOrigins []string
	// ExposeErrors echoes unexpected error details to clients
	ExposeErrors bool
}

// NewRouter builds the gin engine with the shared middleware and every
// route mounted under /api
func NewRouter(cfg RouterConfig, svc Services, logger hclog.Logger) *gin.Engine {
	router := gin.New()
	// asset ids contain slashes and are addressed percent-encoded
	router.UseRawPath = true
	router.UnescapePathValues = true
	router.MaxMultipartMemory = MaxMultipartMemory

	httpLogger := logger.Named("http")
	router.Use(
		middleware.Recovery(httpLogger, cfg.ExposeErrors),
		middleware.RequestLogger(httpLogger),
		middleware.SecurityHeaders(),
	)

	var origins []string
	for _, o := range cfg.AllowedOrigins {
		if o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	router.Use(middleware.JSONBodyLimit(MaxJSONBody))
	router.NoRoute(NotFound)

	RegisterRoutes(router.Group("/api"), svc, cfg, httpLogger)
	return router
}

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup, svc Services, cfg RouterConfig, logger hclog.Logger) {
	r := responder{logger: logger, exposeErrors: cfg.ExposeErrors}

	router.GET("/health", HealthCheck)

	requireAuth := middleware.AuthMiddleware(svc.Auth)
	guard := []gin.HandlerFunc{requireAuth, middleware.AdminMiddleware()}

	NewAuthController(svc.Auth, r).RegisterRoutes(router, requireAuth)
	NewEnquiryController(svc.Enquiries, r).RegisterRoutes(router, guard...)
	NewProjectController(svc.Projects, r).RegisterRoutes(router, guard...)
	NewTestimonyController(svc.Testimonies, r).RegisterRoutes(router, guard...)
	NewAnalyticsController(svc.Analytics, r).RegisterRoutes(router, guard...)
}
