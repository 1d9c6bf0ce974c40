package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// AuthStrategy selects the session-authentication strategy used by the
// gate middleware.
type AuthStrategy string

const (
	StrategyBase       AuthStrategy = "base"        // exclusion gate only, no identity resolution
	StrategyBasic      AuthStrategy = "basic"       // Basic credential header
	StrategySession    AuthStrategy = "session"     // in-memory session table
	StrategySessionExp AuthStrategy = "session_exp" // in-memory with TTL
	StrategySessionDB  AuthStrategy = "session_db"  // TTL + durable session table
)

type (
	Config struct {
		HTTP
		Global
		Database
		Auth
		Audit
		Tasks
		Cleanup
	}

	HTTP struct {
		Port int32
		Host string
	}

	Global struct {
		ShutdownTimeoutInSeconds int
	}

	Database struct {
		Path string
	}

	Auth struct {
		Strategy        AuthStrategy
		CookieName      string        // name of the session cookie
		SessionDuration time.Duration // 0 or negative = sessions never expire
		ExcludedPaths   []string      // paths the gate middleware lets through
		BcryptCost      int
		SecureCookies   bool // set to false for local dev without HTTPS

		// CSRF protection for browser form clients. Off by default so that
		// plain API clients can post forms without a token.
		CSRFEnabled bool
		CSRFSecret  string
	}

	Audit struct {
		RetentionDays int // days to keep audit events (default: 30)
	}

	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}

	Cleanup struct {
		Enabled  bool
		Schedule string // cron format: "0 3 * * *" = daily at 03:00
	}
)

// splitPaths parses a comma-separated exclusion list, keeping entries as-is
// apart from dropping empties; per-pattern trimming happens in the gate.
func splitPaths(raw string) []string {
	parts := strings.Split(raw, ",")
	paths := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		paths = append(paths, p)
	}
	return paths
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Auth defaults. The excluded paths cover the public authentication
	// endpoints themselves; everything else goes through the gate.
	v.SetDefault("auth_strategy", "base")
	v.SetDefault("session_name", "session_id")
	v.SetDefault("session_duration", 0)
	v.SetDefault("auth_excluded_paths", "/,/status/,/users,/sessions,/profile,/reset_password")
	v.SetDefault("auth_bcrypt_cost", 12)
	v.SetDefault("auth_secure_cookies", true)
	v.SetDefault("auth_csrf_enabled", false)
	v.SetDefault("auth_csrf_secret", "")

	v.SetDefault("audit_retention_days", 30)

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	// Cleanup scheduler defaults
	v.SetDefault("cleanup_enabled", true)
	v.SetDefault("cleanup_schedule", "0 3 * * *")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Auth: Auth{
			Strategy:        AuthStrategy(v.GetString("AUTH_STRATEGY")),
			CookieName:      v.GetString("SESSION_NAME"),
			SessionDuration: time.Duration(v.GetInt("SESSION_DURATION")) * time.Second,
			ExcludedPaths:   splitPaths(v.GetString("AUTH_EXCLUDED_PATHS")),
			BcryptCost:      v.GetInt("AUTH_BCRYPT_COST"),
			SecureCookies:   v.GetBool("AUTH_SECURE_COOKIES"),
			CSRFEnabled:     v.GetBool("AUTH_CSRF_ENABLED"),
			CSRFSecret:      v.GetString("AUTH_CSRF_SECRET"),
		},
		Audit: Audit{
			RetentionDays: v.GetInt("AUDIT_RETENTION_DAYS"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		Cleanup: Cleanup{
			Enabled:  v.GetBool("CLEANUP_ENABLED"),
			Schedule: v.GetString("CLEANUP_SCHEDULE"),
		},
	}
}
