package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/userauth/internal/config"
	"github.com/mrlokans/userauth/internal/entities"
)

// Context key for the authenticated user.
const ContextKeyUser = "auth_user"

// Middleware gates HTTP requests behind the configured strategy. Paths on
// the exclusion list pass through untouched; everything else must present
// credentials (an Authorization header or a session cookie) and those
// credentials must resolve to a user.
type Middleware struct {
	service  *Service
	strategy Strategy
	config   config.Auth
}

// NewMiddleware creates the authentication middleware.
func NewMiddleware(service *Service, strategy Strategy, cfg config.Auth) *Middleware {
	return &Middleware{
		service:  service,
		strategy: strategy,
		config:   cfg,
	}
}

// Handler returns a Gin handler enforcing the gate.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.strategy.RequireAuth(c.Request.URL.Path, m.config.ExcludedPaths) {
			c.Next()
			return
		}

		header := AuthorizationHeader(c.Request)
		cookie := m.strategy.SessionCookie(c.Request)
		if header == "" && cookie == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Unauthorized",
			})
			return
		}

		user := m.resolveUser(c.Request, cookie)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Forbidden",
			})
			return
		}

		c.Set(ContextKeyUser, user)
		c.Next()
	}
}

// resolveUser maps the request to a user via the strategy, falling back to
// the record-backed session lookup for strategies that keep no session
// state of their own.
func (m *Middleware) resolveUser(r *http.Request, cookie string) *entities.User {
	if user := m.strategy.ResolveIdentity(r); user != nil {
		return user
	}
	if !m.strategy.ManagesSessions() {
		return m.service.GetUserFromSession(cookie)
	}
	return nil
}

// CurrentUser retrieves the authenticated user set by the middleware, or
// nil on an unauthenticated request.
func CurrentUser(c *gin.Context) *entities.User {
	if v, exists := c.Get(ContextKeyUser); exists {
		if user, ok := v.(*entities.User); ok {
			return user
		}
	}
	return nil
}
