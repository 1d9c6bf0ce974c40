package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/userauth/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())

	// CSRF protection for browser form clients; off by default so plain
	// API clients can post forms without a token.
	if cfg.AuthConfig.CSRFEnabled && cfg.AuthConfig.CSRFSecret != "" {
		router.Use(auth.CSRFMiddleware([]byte(cfg.AuthConfig.CSRFSecret), cfg.AuthConfig.SecureCookies))
	}

	// The gate: every path outside the exclusion list must authenticate.
	if cfg.AuthMiddleware != nil {
		router.Use(cfg.AuthMiddleware.Handler())
	}

	// Authentication endpoints
	authController := auth.NewController(cfg.AuthService, cfg.AuthStrategy, cfg.AuditService, cfg.AuthConfig)
	authController.RegisterRoutes(router)

	// Health endpoints
	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/status/", health.Status)
	router.GET("/health", health.Status)

	// Audit trail (behind the gate)
	if cfg.AuditService != nil {
		auditController := NewAuditController(cfg.AuditService)
		router.GET("/audit/events", auditController.GetAuditEvents)
	}

	return router
}
