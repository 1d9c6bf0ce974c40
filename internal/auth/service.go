package auth

import (
	"errors"
	"fmt"
	"log"

	"github.com/mrlokans/userauth/internal/database/users"
	"github.com/mrlokans/userauth/internal/entities"
)

// Service implements the credential and record-backed session operations:
// registration, login verification, the single-session-per-user lifecycle
// and the password-reset flow. The session token lives on the user row, so
// each login implicitly invalidates the previous session.
type Service struct {
	users  *users.Repository
	hasher *Hasher
}

// NewService creates a new authentication service.
func NewService(repo *users.Repository, hasher *Hasher) *Service {
	return &Service{
		users:  repo,
		hasher: hasher,
	}
}

// Register creates a new user with the given credentials. Returns
// ErrAlreadyRegistered if a record with that email already exists.
func (s *Service) Register(email, password string) (*entities.User, error) {
	_, err := s.users.FindOne(map[string]any{"email": email})
	if err == nil {
		return nil, ErrAlreadyRegistered
	}
	if !errors.Is(err, users.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return s.users.Insert(&entities.User{
		Email:          email,
		HashedPassword: hash,
	})
}

// ValidLogin reports whether the email and password pair is valid. An
// unknown email is an ordinary false, never an error.
func (s *Service) ValidLogin(email, password string) bool {
	user, err := s.users.FindOne(map[string]any{"email": email})
	if err != nil {
		return false
	}
	return s.hasher.Verify(password, user.HashedPassword)
}

// UserByEmail retrieves a user by email. Returns ErrUserNotFound if no such
// record exists.
func (s *Service) UserByEmail(email string) (*entities.User, error) {
	user, err := s.users.FindOne(map[string]any{"email": email})
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// CreateSession issues a fresh session token for the user with the given
// email and persists it on the record, overwriting any prior token.
func (s *Service) CreateSession(email string) (string, error) {
	user, err := s.UserByEmail(email)
	if err != nil {
		return "", err
	}

	sessionID := GenerateToken()
	if err := s.users.Update(user.ID, map[string]any{"session_id": sessionID}); err != nil {
		return "", fmt.Errorf("failed to save session: %w", err)
	}
	return sessionID, nil
}

// GetUserFromSession resolves a session token to its user. Returns nil for
// an empty token, an unknown token, or a store failure.
func (s *Service) GetUserFromSession(sessionID string) *entities.User {
	if sessionID == "" {
		return nil
	}

	user, err := s.users.FindOne(map[string]any{"session_id": sessionID})
	if err != nil {
		if !errors.Is(err, users.ErrNotFound) {
			log.Printf("Failed to look up session: %v", err)
		}
		return nil
	}
	return user
}

// DestroySession clears the user's session token. Idempotent: clearing an
// already clear session, or an unknown user, is not an error. A zero user
// ID is a no-op.
func (s *Service) DestroySession(userID uint) error {
	if userID == 0 {
		return nil
	}

	err := s.users.Update(userID, map[string]any{"session_id": nil})
	if errors.Is(err, users.ErrNotFound) {
		return nil
	}
	return err
}

// GetResetToken generates a password-reset token for the user with the
// given email and stores it on the record. Returns ErrUserNotFound for an
// unknown email.
func (s *Service) GetResetToken(email string) (string, error) {
	user, err := s.UserByEmail(email)
	if err != nil {
		return "", err
	}

	token := GenerateToken()
	if err := s.users.Update(user.ID, map[string]any{"reset_token": token}); err != nil {
		return "", fmt.Errorf("failed to save reset token: %w", err)
	}
	return token, nil
}

// UpdatePassword sets a new password for the user holding the given reset
// token and clears the token, making it single-use. Returns ErrInvalidToken
// if no record holds the token.
//
// Reset tokens carry no expiry; a token stays valid until used or replaced.
func (s *Service) UpdatePassword(resetToken, newPassword string) error {
	if resetToken == "" {
		return ErrInvalidToken
	}

	user, err := s.users.FindOne(map[string]any{"reset_token": resetToken})
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return ErrInvalidToken
		}
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.users.Update(user.ID, map[string]any{
		"hashed_password": hash,
		"reset_token":     nil,
	})
}
