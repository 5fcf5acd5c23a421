package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")

	// Admin routes; superadmins pass the admin gate as well.
	group.Use(authMiddleware, adminMiddleware)
	{
		group.GET("", h.ListCurrent)
		group.GET("/history", h.ListHistory)
		group.POST("", h.Create)
		group.PUT("/:id", h.Update)
		group.DELETE("/:id", h.Cancel)
		group.POST("/:id/remove-day", h.RemoveDay)
	}
}
