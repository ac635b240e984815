package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lotusaroma/pkg/logger"
	"lotusaroma/pkg/metrics"
)

// RouterConfig - то, что роутеру нужно из конфигурации сервиса
type RouterConfig struct {
	ServiceName string
	CORSOrigins []string
}

// SetupRoutes настраивает все маршруты витрины
func SetupRoutes(
	cfg RouterConfig,
	productHandler *ProductHandler,
	authHandler *AuthHandler,
	sessions *SessionMiddleware,
) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(logger.GinLoggerMiddleware())
	router.Use(metrics.GinPrometheusMiddleware(cfg.ServiceName))

	// cookie сессии требует credentials, поэтому список origin явный
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Content-Type", logger.RequestIDHeader},
		ExposeHeaders:    []string{logger.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": cfg.ServiceName,
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	api.Use(sessions.Resolve())

	products := api.Group("/products")
	{
		products.GET("", productHandler.List)
		products.GET("/new-arrivals", productHandler.NewArrivals)
		products.GET("/bestsellers", productHandler.Bestsellers)
		products.GET("/:id", productHandler.Get)
		products.GET("/:id/reviews", productHandler.Reviews)
		products.POST("/:id/reviews", productHandler.CreateReview)
	}

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/user", authHandler.User)
	}

	return router
}
