package routes

import (
	"net/http"

	"organmatch_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers every HTTP route.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	ginRouter.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := ginRouter.Group("/api/v1")
	{
		appHandlers.DonorHandler.RegisterRoutes(api)
		appHandlers.RecipientHandler.RegisterRoutes(api)
		appHandlers.MatchingHandler.RegisterRoutes(api)
		appHandlers.AllocationHandler.RegisterRoutes(api)
	}
}
