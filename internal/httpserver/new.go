package httpserver

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"cartsync/config"
	"cartsync/internal/session"
	pkgLog "cartsync/pkg/log"
	pkgSupabase "cartsync/pkg/supabase"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	gin         *gin.Engine
	l           pkgLog.Logger
	port        int
	mode        string
	environment string

	config   *config.Config
	supabase *pkgSupabase.Client
	sessions *session.Manager
}

// Config is the dependency bag passed to New().
type Config struct {
	Port        int
	Mode        string
	Environment string

	AppConfig *config.Config
	Supabase  *pkgSupabase.Client
	Sessions  *session.Manager
}

// New creates a new HTTPServer instance.
func New(logger pkgLog.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:           logger,
		gin:         gin.Default(),
		port:        cfg.Port,
		mode:        cfg.Mode,
		environment: cfg.Environment,
		config:      cfg.AppConfig,
		supabase:    cfg.Supabase,
		sessions:    cfg.Sessions,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv *HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.config == nil {
		return errors.New("config is required")
	}
	if srv.supabase == nil {
		return errors.New("supabase client is required")
	}
	if srv.sessions == nil {
		return errors.New("session manager is required")
	}
	return nil
}

// Run maps all handlers and serves until the listener fails.
func (srv *HTTPServer) Run() error {
	if err := srv.mapHandlers(); err != nil {
		return err
	}
	return srv.gin.Run(fmt.Sprintf(":%d", srv.port))
}
