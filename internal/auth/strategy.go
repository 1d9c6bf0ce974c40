package auth

import (
	"net/http"

	"github.com/mrlokans/userauth/internal/entities"
)

// Strategy is a pluggable session-authentication strategy. Implementations
// decide which requests need credentials, how a request maps to a user, and
// where session state lives.
type Strategy interface {
	// RequireAuth reports whether the path needs authentication given the
	// exclusion list.
	RequireAuth(path string, excludedPaths []string) bool

	// ResolveIdentity maps a request to its authenticated user, or nil.
	ResolveIdentity(r *http.Request) *entities.User

	// CreateSession issues a session token for the user, or "" when the
	// strategy does not manage sessions.
	CreateSession(userID uint) string

	// DestroySession invalidates the session carried by the request.
	// Returns false when there was no valid session to destroy.
	DestroySession(r *http.Request) bool

	// SessionCookie returns the value of the configured session cookie.
	SessionCookie(r *http.Request) string

	// ManagesSessions reports whether the strategy owns session state.
	// Strategies that do not are backed by the record-level sessions of
	// Service instead.
	ManagesSessions() bool
}

// AuthorizationHeader returns the request's Authorization header, or "".
func AuthorizationHeader(r *http.Request) string {
	if r == nil {
		return ""
	}
	return r.Header.Get("Authorization")
}

// Base is the no-op strategy: it gates paths but resolves nobody and keeps
// no session state. It also carries the cookie plumbing the other
// strategies embed.
type Base struct {
	cookieName string
}

// NewBase creates a base strategy reading the named session cookie.
func NewBase(cookieName string) *Base {
	return &Base{cookieName: cookieName}
}

func (b *Base) RequireAuth(path string, excludedPaths []string) bool {
	return RequireAuth(path, excludedPaths)
}

func (b *Base) ResolveIdentity(*http.Request) *entities.User { return nil }

func (b *Base) CreateSession(uint) string { return "" }

func (b *Base) DestroySession(*http.Request) bool { return false }

func (b *Base) ManagesSessions() bool { return false }

// SessionCookie returns the session cookie value from the request, or ""
// when the request or cookie is absent.
func (b *Base) SessionCookie(r *http.Request) string {
	if r == nil {
		return ""
	}
	cookie, err := r.Cookie(b.cookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
