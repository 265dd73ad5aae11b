package http

import (
	"github.com/gin-gonic/gin"

	"cartsync/internal/middleware"
)

// RegisterRoutes maps HTTP verbs and paths to Handler methods.
// Reads pass through auth only; mutations carry the per-user rate
// limit as well.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	lists := rg.Group("/lists", mw.Auth())
	{
		lists.GET("", h.FetchLists)
		lists.GET("/owned", h.GetOwnedLists)
		lists.GET("/shared", h.GetSharedLists)
		lists.GET("/templates", h.GetTemplates)
		lists.GET("/:id/summary", h.Summary)
		lists.GET("/:id/items", h.GetItemsByStatus)

		lists.POST("", mw.RateLimit(), h.CreateList)
		lists.PUT("/:id", mw.RateLimit(), h.UpdateList)
		lists.DELETE("/:id", mw.RateLimit(), h.DeleteList)
		lists.POST("/:id/activate", mw.RateLimit(), h.SetActiveList)
		lists.POST("/:id/items", mw.RateLimit(), h.AddItem)
		lists.POST("/:id/quick-add", mw.RateLimit(), h.QuickAdd)
		lists.POST("/:id/save-template", mw.RateLimit(), h.SaveAsTemplate)
		lists.POST("/templates/:id/instantiate", mw.RateLimit(), h.CreateFromTemplate)
	}

	items := rg.Group("/items", mw.Auth(), mw.RateLimit())
	{
		items.POST("/:id/toggle", h.ToggleItemStatus)
		items.POST("/:id/skip", h.SkipItem)
		items.PUT("/:id/name", h.UpdateItemName)
		items.PUT("/:id/quantity", h.UpdateItemQuantity)
		items.POST("/:id/quantity/adjust", h.AdjustItemQuantity)
		items.PUT("/:id/price", h.UpdateItemPrice)
		items.PUT("/:id/tags", h.SetItemTags)
		items.PUT("/:id/sort", h.ReorderItem)
		items.DELETE("/:id", h.DeleteItem)
	}
}
