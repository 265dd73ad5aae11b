package config

import (
	"fmt"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Persistence gateway
	Supabase SupabaseConfig

	// Sync engine
	Session   SessionConfig
	Realtime  RealtimeConfig
	RateLimit RateLimitConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// SupabaseConfig points the engine at its persistence gateway.
// JWTSecret enables local token verification; when empty, tokens are
// verified with a round-trip to the auth endpoint instead.
type SupabaseConfig struct {
	URL        string
	ProjectRef string
	AnonKey    string
	JWTSecret  string
}

// SessionConfig bounds the per-user engine sessions kept in memory.
type SessionConfig struct {
	MaxSessions int
	TTL         time.Duration
}

// RealtimeConfig tunes the change-stream subscription.
type RealtimeConfig struct {
	HeartbeatInterval time.Duration
	BackoffInitial    time.Duration
	BackoffMax        time.Duration
	RefetchPerMinute  int
}

type RateLimitConfig struct {
	MutationsPerMin int
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Supabase gateway
	cfg.Supabase.URL = viper.GetString("supabase.url")
	cfg.Supabase.AnonKey = viper.GetString("supabase.anon_key")
	cfg.Supabase.JWTSecret = viper.GetString("supabase.jwt_secret")
	if url := viper.GetString("supabase_url"); url != "" {
		cfg.Supabase.URL = url
	}
	if key := viper.GetString("supabase_anon_key"); key != "" {
		cfg.Supabase.AnonKey = key
	}
	if secret := viper.GetString("supabase_jwt_secret"); secret != "" {
		cfg.Supabase.JWTSecret = secret
	}
	cfg.Supabase.ProjectRef = projectRefFromURL(cfg.Supabase.URL)

	if cfg.Supabase.URL == "" {
		return nil, fmt.Errorf("supabase.url is required")
	}
	if cfg.Supabase.AnonKey == "" {
		return nil, fmt.Errorf("supabase.anon_key is required")
	}

	// Sessions
	cfg.Session.MaxSessions = viper.GetInt("session.max_sessions")
	cfg.Session.TTL = viper.GetDuration("session.ttl")

	// Realtime
	cfg.Realtime.HeartbeatInterval = viper.GetDuration("realtime.heartbeat_interval")
	cfg.Realtime.BackoffInitial = viper.GetDuration("realtime.backoff_initial")
	cfg.Realtime.BackoffMax = viper.GetDuration("realtime.backoff_max")
	cfg.Realtime.RefetchPerMinute = viper.GetInt("realtime.refetch_per_minute")

	// Rate limiting
	cfg.RateLimit.MutationsPerMin = viper.GetInt("rate_limit.mutations_per_min")

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("session.max_sessions", 1000)
	viper.SetDefault("session.ttl", "30m")

	viper.SetDefault("realtime.heartbeat_interval", "25s")
	viper.SetDefault("realtime.backoff_initial", "1s")
	viper.SetDefault("realtime.backoff_max", "30s")
	viper.SetDefault("realtime.refetch_per_minute", 6)

	viper.SetDefault("rate_limit.mutations_per_min", 300)
}

// projectRefFromURL extracts the project ref from a hosted supabase
// URL, e.g. https://abcd.supabase.co → abcd.
func projectRefFromURL(url string) string {
	ref := strings.TrimPrefix(strings.TrimPrefix(url, "https://"), "http://")
	if idx := strings.Index(ref, ".supabase.co"); idx != -1 {
		return ref[:idx]
	}
	return ref
}
