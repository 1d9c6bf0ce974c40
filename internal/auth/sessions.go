package auth

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/mrlokans/userauth/internal/database/users"
	"github.com/mrlokans/userauth/internal/entities"
)

// SessionTable is the storage behind a session-managing strategy. Lookup
// treats expired entries as absent without deleting them (lazy expiry).
type SessionTable interface {
	Create(userID uint) (string, error)
	Lookup(sessionID string) (uint, bool)
	Remove(sessionID string) bool
}

type memoryEntry struct {
	userID    uint
	createdAt time.Time
}

// MemoryTable is a mutex-guarded in-process session table. A duration of
// zero or less means entries never expire (the bare variant); a positive
// duration masks entries on lookup once created_at + duration has passed.
// Masked entries stay in the table.
type MemoryTable struct {
	mu       sync.RWMutex
	entries  map[string]memoryEntry
	duration time.Duration

	now func() time.Time // overridable in tests
}

// NewMemoryTable creates an in-process session table with the given expiry
// duration.
func NewMemoryTable(duration time.Duration) *MemoryTable {
	return &MemoryTable{
		entries:  make(map[string]memoryEntry),
		duration: duration,
		now:      time.Now,
	}
}

func (t *MemoryTable) Create(userID uint) (string, error) {
	sessionID := GenerateToken()

	t.mu.Lock()
	t.entries[sessionID] = memoryEntry{userID: userID, createdAt: t.now()}
	t.mu.Unlock()

	return sessionID, nil
}

func (t *MemoryTable) Lookup(sessionID string) (uint, bool) {
	t.mu.RLock()
	entry, ok := t.entries[sessionID]
	t.mu.RUnlock()

	if !ok {
		return 0, false
	}
	if t.duration > 0 && t.now().After(entry.createdAt.Add(t.duration)) {
		return 0, false
	}
	return entry.userID, true
}

func (t *MemoryTable) Remove(sessionID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.entries[sessionID]; !ok {
		return false
	}
	delete(t.entries, sessionID)
	return true
}

// Size returns the number of stored entries, expired ones included.
func (t *MemoryTable) Size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// SessionStrategy authenticates requests against a session table: the
// cookie carries the token, the table maps it to a user ID, and the user
// repository supplies the record. The table decides storage and expiry, so
// the bare, expiring and persisted variants are all one strategy over
// different tables.
type SessionStrategy struct {
	*Base
	table SessionTable
	users *users.Repository
}

// NewBareSession creates the in-memory session strategy without expiry.
func NewBareSession(cookieName string, repo *users.Repository) *SessionStrategy {
	return &SessionStrategy{
		Base:  NewBase(cookieName),
		table: NewMemoryTable(0),
		users: repo,
	}
}

// NewExpiringSession creates the in-memory session strategy with lazy
// expiry after the given duration.
func NewExpiringSession(cookieName string, repo *users.Repository, duration time.Duration) *SessionStrategy {
	return &SessionStrategy{
		Base:  NewBase(cookieName),
		table: NewMemoryTable(duration),
		users: repo,
	}
}

// NewSessionStrategy creates a session strategy over an explicit table.
// Used by the persisted variant and by tests.
func NewSessionStrategy(cookieName string, repo *users.Repository, table SessionTable) *SessionStrategy {
	return &SessionStrategy{
		Base:  NewBase(cookieName),
		table: table,
		users: repo,
	}
}

func (s *SessionStrategy) CreateSession(userID uint) string {
	if userID == 0 {
		return ""
	}
	sessionID, err := s.table.Create(userID)
	if err != nil {
		log.Printf("Failed to create session: %v", err)
		return ""
	}
	return sessionID
}

func (s *SessionStrategy) ResolveIdentity(r *http.Request) *entities.User {
	sessionID := s.SessionCookie(r)
	if sessionID == "" {
		return nil
	}

	userID, ok := s.table.Lookup(sessionID)
	if !ok {
		return nil
	}

	user, err := s.users.FindOne(map[string]any{"id": userID})
	if err != nil {
		return nil
	}
	return user
}

func (s *SessionStrategy) DestroySession(r *http.Request) bool {
	sessionID := s.SessionCookie(r)
	if sessionID == "" {
		return false
	}
	if _, ok := s.table.Lookup(sessionID); !ok {
		return false
	}
	return s.table.Remove(sessionID)
}

func (s *SessionStrategy) ManagesSessions() bool { return true }
