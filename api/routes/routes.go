package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jchen042/batch-translator/api/handlers"
	"github.com/jchen042/batch-translator/api/middleware"
)

// SetupRoutes registers all routes.
func SetupRoutes(r *gin.Engine, h *handlers.Handlers) {
	r.Use(middleware.CORS())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")

	translate := v1.Group("/translate")
	{
		translate.POST("/batch", h.Translate.TranslateBatch)
		translate.POST("/convert", h.Translate.ConvertDocument)
	}
}
