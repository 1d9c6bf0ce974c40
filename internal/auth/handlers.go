package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/userauth/internal/audit"
	"github.com/mrlokans/userauth/internal/config"
	"github.com/mrlokans/userauth/internal/entities"
)

// Controller exposes the authentication endpoints: registration, the
// session lifecycle and the password-reset flow.
//
// Session ownership depends on the configured strategy: strategies that
// manage sessions issue and destroy their own tokens; the others fall back
// to the record-backed sessions kept by Service.
type Controller struct {
	service  *Service
	strategy Strategy
	audit    *audit.Service
	config   config.Auth
}

// NewController creates the authentication controller.
func NewController(service *Service, strategy Strategy, auditService *audit.Service, cfg config.Auth) *Controller {
	return &Controller{
		service:  service,
		strategy: strategy,
		audit:    auditService,
		config:   cfg,
	}
}

// RegisterRoutes registers the authentication routes on the router.
func (ac *Controller) RegisterRoutes(router *gin.Engine) {
	router.GET("/", ac.Index)
	router.POST("/users", ac.RegisterUser)
	router.POST("/sessions", ac.Login)
	router.DELETE("/sessions", ac.Logout)
	router.GET("/profile", ac.Profile)
	router.POST("/reset_password", ac.ResetPasswordToken)
	router.PUT("/reset_password", ac.UpdatePassword)
}

// Index is the public landing endpoint.
func (ac *Controller) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome"})
}

// RegisterUser creates a new account from form credentials.
func (ac *Controller) RegisterUser(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	user, err := ac.service.Register(email, password)
	if err != nil {
		if ac.audit != nil {
			ac.audit.LogRegister(0, email, c.ClientIP(), c.Request.UserAgent(), err)
		}
		if errors.Is(err, ErrAlreadyRegistered) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "registration failed"})
		return
	}

	if ac.audit != nil {
		ac.audit.LogRegister(user.ID, email, c.ClientIP(), c.Request.UserAgent(), nil)
	}
	c.JSON(http.StatusOK, gin.H{"email": email, "message": "user created"})
}

// Login verifies form credentials, issues a session token and sets the
// session cookie. Invalid credentials abort with 401 and no body detail.
func (ac *Controller) Login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	if !ac.service.ValidLogin(email, password) {
		if ac.audit != nil {
			ac.audit.LogLogin(0, email, c.ClientIP(), c.Request.UserAgent(), false)
		}
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	sessionID, user, err := ac.createSession(email)
	if err != nil || sessionID == "" {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	ac.setSessionCookie(c, sessionID)
	if ac.audit != nil {
		ac.audit.LogLogin(user.ID, email, c.ClientIP(), c.Request.UserAgent(), true)
	}
	c.JSON(http.StatusOK, gin.H{"email": email, "message": "logged in"})
}

// Logout destroys the session carried by the request cookie and redirects
// to the index. Requests without a live session get 403.
func (ac *Controller) Logout(c *gin.Context) {
	user := ac.resolveUser(c.Request)
	if user == nil {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	if ac.strategy.ManagesSessions() {
		ac.strategy.DestroySession(c.Request)
	} else if err := ac.service.DestroySession(user.ID); err != nil {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	ac.clearSessionCookie(c)
	if ac.audit != nil {
		ac.audit.LogLogout(user.ID, user.Email, c.ClientIP(), c.Request.UserAgent())
	}
	c.Redirect(http.StatusFound, "/")
}

// Profile returns the email of the user owning the request's session.
func (ac *Controller) Profile(c *gin.Context) {
	user := ac.resolveUser(c.Request)
	if user == nil {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}
	c.JSON(http.StatusOK, gin.H{"email": user.Email})
}

// ResetPasswordToken issues a password-reset token for the form email.
// Unknown emails get 403.
func (ac *Controller) ResetPasswordToken(c *gin.Context) {
	email := c.PostForm("email")

	token, err := ac.service.GetResetToken(email)
	if err != nil {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	if ac.audit != nil {
		if user, lookupErr := ac.service.UserByEmail(email); lookupErr == nil {
			ac.audit.LogResetRequested(user.ID, email, c.ClientIP(), c.Request.UserAgent())
		}
	}
	c.JSON(http.StatusOK, gin.H{"email": email, "reset_token": token})
}

// UpdatePassword consumes a reset token and sets the new password. An
// invalid or spent token gets 403.
func (ac *Controller) UpdatePassword(c *gin.Context) {
	email := c.PostForm("email")
	resetToken := c.PostForm("reset_token")
	newPassword := c.PostForm("new_password")

	if err := ac.service.UpdatePassword(resetToken, newPassword); err != nil {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	if ac.audit != nil {
		if user, err := ac.service.UserByEmail(email); err == nil {
			ac.audit.LogPasswordUpdated(user.ID, email, c.ClientIP(), c.Request.UserAgent())
		}
	}
	c.JSON(http.StatusOK, gin.H{"email": email, "message": "Password updated"})
}

// createSession issues a session token for the email's user via the
// configured strategy, or the record-backed fallback.
func (ac *Controller) createSession(email string) (string, *entities.User, error) {
	user, err := ac.service.UserByEmail(email)
	if err != nil {
		return "", nil, err
	}

	if ac.strategy.ManagesSessions() {
		return ac.strategy.CreateSession(user.ID), user, nil
	}

	sessionID, err := ac.service.CreateSession(email)
	if err != nil {
		return "", nil, err
	}
	return sessionID, user, nil
}

// resolveUser maps the request to its session owner, mirroring the gate
// middleware's fallback order.
func (ac *Controller) resolveUser(r *http.Request) *entities.User {
	if user := ac.strategy.ResolveIdentity(r); user != nil {
		return user
	}
	if !ac.strategy.ManagesSessions() {
		return ac.service.GetUserFromSession(ac.strategy.SessionCookie(r))
	}
	return nil
}

func (ac *Controller) setSessionCookie(c *gin.Context, sessionID string) {
	maxAge := 0 // session cookie
	if ac.config.SessionDuration > 0 {
		maxAge = int(ac.config.SessionDuration.Seconds())
	}
	c.SetCookie(ac.config.CookieName, sessionID, maxAge, "/", "", ac.config.SecureCookies, true)
}

func (ac *Controller) clearSessionCookie(c *gin.Context) {
	c.SetCookie(ac.config.CookieName, "", -1, "/", "", ac.config.SecureCookies, true)
}
