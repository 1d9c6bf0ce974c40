package http

import (
	"github.com/mrlokans/userauth/internal/audit"
	"github.com/mrlokans/userauth/internal/auth"
	"github.com/mrlokans/userauth/internal/config"
	"github.com/mrlokans/userauth/internal/database"
)

// RouterConfig holds all dependencies needed to construct the router.
type RouterConfig struct {
	Database *database.Database
	Version  string

	AuthConfig     config.Auth
	AuthService    *auth.Service
	AuthStrategy   auth.Strategy
	AuthMiddleware *auth.Middleware

	AuditService *audit.Service
}
