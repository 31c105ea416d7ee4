package restapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"     // swagger embed files
	ginSwagger "github.com/swaggo/gin-swagger" // gin-swagger middleware
	"go.uber.org/zap"
)

// RouterOptions controls the optional parts of the router.
type RouterOptions struct {
	Logger          *zap.Logger
	RateLimiter     *IPRateLimiter // nil disables rate limiting
	EnableMetrics   bool
	EnableSwagger   bool
	SwaggerSpecFile string
}

// SetupRouter настраивает и возвращает экземпляр Gin роутера.
func SetupRouter(balanceHandler *BalanceHandler, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if opts.Logger != nil {
		router.Use(ZapLoggerMiddleware(opts.Logger))
	}

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.GET("/healthz", HealthHandler)

	if opts.EnableMetrics {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	// Группа для API v1
	v1 := router.Group("/api/v1")
	{
		v1.GET("/networks", balanceHandler.ListNetworksHandler)
		v1.GET("/validate", balanceHandler.ValidateAddressHandler)

		balance := v1.Group("")
		if opts.RateLimiter != nil {
			balance.Use(opts.RateLimiter.Middleware())
		}
		balance.GET("/balance", balanceHandler.GetBalanceHandler)
	}

	if opts.EnableSwagger && opts.SwaggerSpecFile != "" {
		router.StaticFile("/docs/swagger.yaml", opts.SwaggerSpecFile)
		swaggerURL := ginSwagger.URL("/docs/swagger.yaml") // Указываем Gin Swagger, где найти спецификацию
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, swaggerURL))
	}

	return router
}
