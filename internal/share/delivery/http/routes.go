package http

import (
	"github.com/gin-gonic/gin"

	"cartsync/internal/middleware"
)

// RegisterRoutes maps HTTP verbs and paths to Handler methods.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	lists := rg.Group("/lists", mw.Auth())
	{
		lists.GET("/:id/shares", h.GetSharedUsers)
		lists.POST("/:id/shares", mw.RateLimit(), h.ShareList)
		lists.POST("/:id/leave", mw.RateLimit(), h.LeaveList)
	}

	shares := rg.Group("/shares", mw.Auth())
	{
		shares.GET("/with-me", h.GetSharedWithMe)
		shares.PUT("/:id", mw.RateLimit(), h.UpdateSharePermission)
		shares.DELETE("/:id", mw.RateLimit(), h.RemoveShare)
	}
}
