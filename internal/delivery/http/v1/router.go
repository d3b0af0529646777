package v1

import (
	"os"

	"go-contacts-backend/config"
	"go-contacts-backend/internal/delivery/http/middleware"
	"go-contacts-backend/internal/domain"
	"go-contacts-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/heptiolabs/healthcheck"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ContactUC    domain.ContactUsecase
	ExportUC     domain.ExportUsecase
	PostalCodes  domain.PostalCodeValidator
	HealthChecks map[string]healthcheck.Check
	// Redis backs the rate limiter; nil falls back to in-memory counters.
	Redis  *goredis.Client
	Config *config.Config
}

func init() {
	// gin binding shares the custom rules and JSON field names with the usecases
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.CORSOrigins)) // CORS must be first!
	r.Use(gin.Recovery())
	if os.Getenv("GIN_LOGGING") != "off" {
		r.Use(gin.Logger())
	}
	r.Use(middleware.RequestID())
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())

	NewHealthHandler(r, deps.HealthChecks)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	contacts := api.Group("/contacts")
	contacts.Use(middleware.RateLimitMiddleware(middleware.ContactsRateLimitConfig(
		deps.Config.RateLimitGlobalThreshold,
		deps.Config.RateLimitWindow(),
		deps.Redis,
	)))
	NewContactHandler(contacts, deps.ContactUC, deps.ExportUC)

	NewPostalCodeHandler(api.Group("/postal-codes"), deps.PostalCodes)

	// Swagger
	api.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
