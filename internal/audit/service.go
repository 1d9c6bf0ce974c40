package audit

import (
	"time"

	"github.com/mrlokans/userauth/internal/database/audit"
	"github.com/mrlokans/userauth/internal/entities"
	"github.com/mrlokans/userauth/internal/logging"
)

// logger masks personal data before event details reach the log output.
var logger = logging.NewRedactor(logging.PIIFields)

// Service records authentication events. Writes happen in the background so
// a slow audit table never delays a login.
type Service struct {
	repo *audit.Repository
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records an audit event synchronously.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.repo.LogEvent(event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	go func() {
		if err := s.repo.LogEvent(event); err != nil {
			logger.Printf("Failed to log audit event type=%s;email=%s;ip=%s;: %v",
				event.EventType, event.Email, event.IPAddress, err)
		}
	}()
}

// LogRegister records an account registration attempt.
func (s *Service) LogRegister(userID uint, email, ipAddr, userAgent string, err error) {
	event := &entities.AuditEvent{
		UserID:    userID,
		EventType: entities.AuditEventRegister,
		Email:     email,
		IPAddress: ipAddr,
		UserAgent: truncate(userAgent, 500),
		Status:    entities.AuditStatusSuccess,
	}
	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}
	s.LogAsync(event)
}

// LogLogin records a login attempt.
func (s *Service) LogLogin(userID uint, email, ipAddr, userAgent string, success bool) {
	event := &entities.AuditEvent{
		UserID:    userID,
		EventType: entities.AuditEventLogin,
		Email:     email,
		IPAddress: ipAddr,
		UserAgent: truncate(userAgent, 500),
		Status:    entities.AuditStatusSuccess,
	}
	if !success {
		event.EventType = entities.AuditEventLoginFailed
		event.Status = entities.AuditStatusFailed
	}
	s.LogAsync(event)
}

// LogLogout records a session destruction.
func (s *Service) LogLogout(userID uint, email, ipAddr, userAgent string) {
	s.LogAsync(&entities.AuditEvent{
		UserID:    userID,
		EventType: entities.AuditEventLogout,
		Email:     email,
		IPAddress: ipAddr,
		UserAgent: truncate(userAgent, 500),
		Status:    entities.AuditStatusSuccess,
	})
}

// LogResetRequested records a password-reset token request.
func (s *Service) LogResetRequested(userID uint, email, ipAddr, userAgent string) {
	s.LogAsync(&entities.AuditEvent{
		UserID:    userID,
		EventType: entities.AuditEventResetRequested,
		Email:     email,
		IPAddress: ipAddr,
		UserAgent: truncate(userAgent, 500),
		Status:    entities.AuditStatusSuccess,
	})
}

// LogPasswordUpdated records a completed password reset.
func (s *Service) LogPasswordUpdated(userID uint, email, ipAddr, userAgent string) {
	s.LogAsync(&entities.AuditEvent{
		UserID:    userID,
		EventType: entities.AuditEventPasswordUpdated,
		Email:     email,
		IPAddress: ipAddr,
		UserAgent: truncate(userAgent, 500),
		Status:    entities.AuditStatusSuccess,
	})
}

// GetEvents retrieves paginated audit events.
func (s *Service) GetEvents(userID uint, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(userID, limit, offset)
}

// GetEventsByType retrieves audit events filtered by type.
func (s *Service) GetEventsByType(eventType entities.AuditEventType, userID uint, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEventsByType(eventType, userID, limit, offset)
}

// DeleteOldEvents removes events older than the retention duration.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldEvents(cutoff)
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
