// Package sessions provides database operations for durable session rows
// used by the persisted session strategy.
package sessions

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/userauth/internal/entities"
)

// ErrNotFound is returned when no session row matches the given token.
var ErrNotFound = errors.New("session not found")

// Repository handles all session database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new sessions repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create stores a new session row for the given user.
func (r *Repository) Create(userID uint, sessionID string) (*entities.UserSession, error) {
	session := &entities.UserSession{
		UserID:    userID,
		SessionID: sessionID,
	}
	if err := r.db.Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

// GetBySessionID retrieves a session row by its token.
func (r *Repository) GetBySessionID(sessionID string) (*entities.UserSession, error) {
	var session entities.UserSession
	err := r.db.Where("session_id = ?", sessionID).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// Touch bumps the row's updated_at timestamp.
func (r *Repository) Touch(sessionID string) error {
	return r.db.Model(&entities.UserSession{}).
		Where("session_id = ?", sessionID).
		Update("updated_at", time.Now()).Error
}

// Delete removes the session row with the given token. Deleting a token
// that does not exist is not an error.
func (r *Repository) Delete(sessionID string) error {
	return r.db.Where("session_id = ?", sessionID).Delete(&entities.UserSession{}).Error
}

// DeleteExpired removes rows created before the cutoff and returns how many
// were deleted. Lookup-side expiry never depends on this; it only reclaims
// storage.
func (r *Repository) DeleteExpired(olderThan time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", olderThan).Delete(&entities.UserSession{})
	return result.RowsAffected, result.Error
}
