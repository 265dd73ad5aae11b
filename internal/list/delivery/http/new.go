package http

import (
	"github.com/gin-gonic/gin"

	"cartsync/internal/list"
	"cartsync/internal/middleware"
	"cartsync/internal/model"
	pkgLog "cartsync/pkg/log"
	"cartsync/pkg/response"
)

type handler struct {
	l  pkgLog.Logger
	uc list.UseCase
}

// New creates a new HTTP handler for the list domain.
func New(l pkgLog.Logger, uc list.UseCase) *handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}

// scope pulls the authenticated scope set by the auth middleware.
func (h *handler) scope(c *gin.Context) (model.Scope, bool) {
	sc, ok := middleware.GetScope(c)
	if !ok {
		response.Unauthorized(c)
	}
	return sc, ok
}
