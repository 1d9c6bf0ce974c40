package auth

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/mrlokans/userauth/internal/database/users"
	"github.com/mrlokans/userauth/internal/entities"
)

// BasicCredential authenticates requests with HTTP Basic credentials in the
// Authorization header. It keeps no session state of its own.
type BasicCredential struct {
	*Base
	users  *users.Repository
	hasher *Hasher
}

// NewBasicCredential creates the Basic-auth strategy.
func NewBasicCredential(cookieName string, repo *users.Repository, hasher *Hasher) *BasicCredential {
	return &BasicCredential{
		Base:   NewBase(cookieName),
		users:  repo,
		hasher: hasher,
	}
}

// ResolveIdentity decodes the Basic credentials and matches them against a
// stored user. Any malformed header resolves to nil.
func (b *BasicCredential) ResolveIdentity(r *http.Request) *entities.User {
	email, password, ok := decodeBasicHeader(AuthorizationHeader(r))
	if !ok {
		return nil
	}

	user, err := b.users.FindOne(map[string]any{"email": email})
	if err != nil {
		return nil
	}
	if !b.hasher.Verify(password, user.HashedPassword) {
		return nil
	}
	return user
}

// decodeBasicHeader extracts the email and password from a
// "Basic <base64(email:password)>" header value.
func decodeBasicHeader(header string) (email, password string, ok bool) {
	if !strings.HasPrefix(header, "Basic ") {
		return "", "", false
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(header, "Basic "))
	if err != nil {
		return "", "", false
	}

	parts := strings.SplitN(string(decoded), ":", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}
