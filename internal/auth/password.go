package auth

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Hasher produces and verifies salted bcrypt password hashes.
type Hasher struct {
	cost int
}

// NewHasher creates a hasher with the given bcrypt cost factor.
// Costs below the bcrypt minimum fall back to the library default.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash creates a bcrypt hash of the password. Each call salts freshly, so
// hashing the same password twice yields different outputs.
func (h *Hasher) Hash(password string) (string, error) {
	// bcrypt has a 72-byte limit
	if len(password) > 72 {
		return "", ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether the candidate password matches the stored hash.
// A malformed stored hash verifies as false rather than erroring.
func (h *Hasher) Verify(candidate, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(candidate)) == nil
}

// GenerateToken creates an opaque session or reset token backed by
// crypto/rand.
func GenerateToken() string {
	return uuid.NewString()
}
