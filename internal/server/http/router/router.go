package router

import (
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rewardhub/rewardhub/internal/server/http/handlers"
	"github.com/rewardhub/rewardhub/internal/server/http/middleware"
)

// Setup configures the gin router with handlers and middleware.
func Setup(facade handlers.RewardFacade, verifier middleware.TokenVerifier, rewardVerifier handlers.RewardVerifier, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.Metrics())
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))
	engine.Use(cors.Default())

	profileHandler := handlers.NewProfileHandler(facade)
	withdrawalHandler := handlers.NewWithdrawalHandler(facade)
	adminHandler := handlers.NewAdminHandler(facade)
	rewardsHandler := handlers.NewRewardsHandler(facade, rewardVerifier)
	healthHandler := handlers.NewHealthHandler(facade)

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api")
	api.GET("/health", healthHandler.Check)
	api.POST("/rewards/callback", rewardsHandler.Callback)

	user := api.Group("/user")
	user.Use(middleware.AuthRequired(verifier))
	user.GET("/profile", profileHandler.Get)
	user.PUT("/demographics", profileHandler.UpdateDemographics)
	user.POST("/withdrawals", withdrawalHandler.Submit)
	user.GET("/withdrawals", withdrawalHandler.List)

	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(verifier))
	admin.GET("/withdrawals", adminHandler.List)
	admin.PATCH("/withdrawals/:id", adminHandler.Resolve)

	return engine
}
