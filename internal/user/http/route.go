package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, superadminMiddleware gin.HandlerFunc) {
	authGroup := g.Group("/auth")
	{
		authGroup.POST("/login", h.Login)
		authGroup.GET("/me", authMiddleware, h.Me)
	}

	admins := g.Group("/admins")
	admins.Use(authMiddleware, superadminMiddleware)
	{
		admins.POST("", h.CreateAdmin)
		admins.GET("", h.ListAdmins)
		admins.PATCH("/:id", h.UpdateAdmin)
		admins.DELETE("/:id", h.DeleteAdmin)
	}
}
