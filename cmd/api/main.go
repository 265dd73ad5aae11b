package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cartsync/config"
	_ "cartsync/docs" // Swagger docs
	"cartsync/internal/httpserver"
	"cartsync/internal/session"
	"cartsync/pkg/log"
	pkgSupabase "cartsync/pkg/supabase"
)

// @title       CartSync API
// @description Realtime shared shopping list engine: optimistic mutations, live reconciliation, sharing and budget aggregates.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting CartSync...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Supabase project: %s", cfg.Supabase.ProjectRef)

	// 3. Persistence gateway client
	supabase := pkgSupabase.NewClient(cfg.Supabase.URL, cfg.Supabase.ProjectRef, cfg.Supabase.AnonKey)

	// 4. Per-user engine sessions
	sessions := session.NewManager(logger, session.Config{
		MaxSessions: cfg.Session.MaxSessions,
		TTL:         cfg.Session.TTL,
	})

	// 5. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,
		AppConfig:   cfg,
		Supabase:    supabase,
		Sessions:    sessions,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 6. Run
	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
