package http

import (
	"github.com/gin-gonic/gin"

	"cartsync/internal/middleware"
	"cartsync/internal/model"
	"cartsync/internal/share"
	pkgLog "cartsync/pkg/log"
	"cartsync/pkg/response"
)

type handler struct {
	l  pkgLog.Logger
	uc share.UseCase
}

// New creates a new HTTP handler for the share domain.
func New(l pkgLog.Logger, uc share.UseCase) *handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}

func (h *handler) scope(c *gin.Context) (model.Scope, bool) {
	sc, ok := middleware.GetScope(c)
	if !ok {
		response.Unauthorized(c)
	}
	return sc, ok
}
