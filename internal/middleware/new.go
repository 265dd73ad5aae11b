package middleware

import (
	"cartsync/config"
	pkgLog "cartsync/pkg/log"
	pkgSupabase "cartsync/pkg/supabase"
)

type Middleware struct {
	l        pkgLog.Logger
	supabase *pkgSupabase.Client
	config   *config.Config
	limiter  *rateLimiter
}

func New(l pkgLog.Logger, supabase *pkgSupabase.Client, cfg *config.Config) Middleware {
	return Middleware{
		l:        l,
		supabase: supabase,
		config:   cfg,
		limiter:  newRateLimiter(cfg.RateLimit.MutationsPerMin),
	}
}
