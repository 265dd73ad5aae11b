package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	listHTTP "cartsync/internal/list/delivery/http"
	listRepo "cartsync/internal/list/repository/supabase"
	listUC "cartsync/internal/list/usecase"
	"cartsync/internal/middleware"
	"cartsync/internal/reconciler"
	shareHTTP "cartsync/internal/share/delivery/http"
	shareRepo "cartsync/internal/share/repository/supabase"
	shareUC "cartsync/internal/share/usecase"
	"cartsync/pkg/quickadd"
)

// setupDomains initializes the share and list domains and registers
// their routes. The share usecase is built first; the list pipeline
// consumes it for the merged owned ∪ shared view.
func (srv *HTTPServer) setupDomains(ctx context.Context, api *gin.RouterGroup, mw middleware.Middleware) error {
	// Repositories
	lRepo := listRepo.New(srv.supabase, srv.l)
	sRepo := shareRepo.New(srv.supabase, srv.l)

	// Share domain
	sUC := shareUC.New(srv.l, sRepo, lRepo)
	sHandler := shareHTTP.New(srv.l, sUC)
	shareHTTP.RegisterRoutes(api, sHandler, mw)
	srv.l.Infof(ctx, "Share domain registered")

	// Realtime reconciler feeding session stores
	recon := reconciler.New(srv.l, reconciler.NewDialer(srv.supabase, srv.config.Realtime.HeartbeatInterval), lRepo, reconciler.Config{
		BackoffInitial:   srv.config.Realtime.BackoffInitial,
		BackoffMax:       srv.config.Realtime.BackoffMax,
		RefetchPerMinute: srv.config.Realtime.RefetchPerMinute,
	})

	// List domain
	lUC := listUC.New(srv.l, lRepo, sUC, srv.sessions, recon, quickadd.NewParser(""))
	lHandler := listHTTP.New(srv.l, lUC)
	listHTTP.RegisterRoutes(api, lHandler, mw)
	srv.l.Infof(ctx, "List domain registered")

	return nil
}
