package middleware

import (
	"github.com/gin-gonic/gin"

	"cartsync/internal/model"
)

const scopeKey = "cartsync.scope"

// SetScope stores the authenticated scope in the request context.
func SetScope(c *gin.Context, sc model.Scope) {
	c.Set(scopeKey, sc)
}

// GetScope returns the authenticated scope of the request, if any.
func GetScope(c *gin.Context) (model.Scope, bool) {
	v, ok := c.Get(scopeKey)
	if !ok {
		return model.Scope{}, false
	}
	sc, ok := v.(model.Scope)
	return sc, ok
}
