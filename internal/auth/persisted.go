package auth

import (
	"errors"
	"log"
	"time"

	"github.com/mrlokans/userauth/internal/database/sessions"
	"github.com/mrlokans/userauth/internal/database/users"
)

// DBTable is a session table backed by the user_sessions database table.
// Sessions survive restarts; storage failures degrade to "no session"
// rather than propagating to the caller. Expired rows are masked on lookup
// and reclaimed out-of-band by the cleanup task; live lookups bump the
// row's updated_at.
type DBTable struct {
	sessions *sessions.Repository
	duration time.Duration

	now func() time.Time // overridable in tests
}

// NewDBTable creates a database-backed session table. A duration of zero or
// less means sessions never expire.
func NewDBTable(repo *sessions.Repository, duration time.Duration) *DBTable {
	return &DBTable{
		sessions: repo,
		duration: duration,
		now:      time.Now,
	}
}

func (t *DBTable) Create(userID uint) (string, error) {
	sessionID := GenerateToken()
	if _, err := t.sessions.Create(userID, sessionID); err != nil {
		return "", err
	}
	return sessionID, nil
}

func (t *DBTable) Lookup(sessionID string) (uint, bool) {
	session, err := t.sessions.GetBySessionID(sessionID)
	if err != nil {
		if !errors.Is(err, sessions.ErrNotFound) {
			log.Printf("Failed to look up session: %v", err)
		}
		return 0, false
	}
	if t.duration > 0 && t.now().After(session.CreatedAt.Add(t.duration)) {
		return 0, false
	}
	if err := t.sessions.Touch(sessionID); err != nil {
		log.Printf("Failed to touch session: %v", err)
	}
	return session.UserID, true
}

func (t *DBTable) Remove(sessionID string) bool {
	if _, err := t.sessions.GetBySessionID(sessionID); err != nil {
		return false
	}
	if err := t.sessions.Delete(sessionID); err != nil {
		log.Printf("Failed to delete session: %v", err)
		return false
	}
	return true
}

// NewPersistedSession creates the database-backed session strategy.
func NewPersistedSession(cookieName string, usersRepo *users.Repository, sessionsRepo *sessions.Repository, duration time.Duration) *SessionStrategy {
	return NewSessionStrategy(cookieName, usersRepo, NewDBTable(sessionsRepo, duration))
}
