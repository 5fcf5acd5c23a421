package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware, superadminMiddleware gin.HandlerFunc) {
	group := g.Group("/dachas")
	group.Use(authMiddleware)
	{
		group.GET("", adminMiddleware, h.ListMine)
		group.GET("/all", superadminMiddleware, h.ListAll)
		group.POST("", superadminMiddleware, h.Create)
		group.PATCH("/:id", superadminMiddleware, h.Update)
		group.DELETE("/:id", superadminMiddleware, h.Delete)
	}
}
