package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/calendar")

	// === Public Routes ===
	group.GET("/auspicious/:year", h.Auspicious)

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("/:year/:month", h.Month)
		group.GET("/:year/:month/image", h.Image)
	}
}
