package entities

import "time"

type AuditEventType string

const (
	AuditEventRegister        AuditEventType = "register"
	AuditEventLogin           AuditEventType = "login"
	AuditEventLoginFailed     AuditEventType = "login_failed"
	AuditEventLogout          AuditEventType = "logout"
	AuditEventResetRequested  AuditEventType = "reset_requested"
	AuditEventPasswordUpdated AuditEventType = "password_updated"
)

type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailed  AuditStatus = "failed"
)

// AuditEvent records a single authentication action for later review.
type AuditEvent struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"index" json:"user_id"`
	EventType AuditEventType `gorm:"index;size:50" json:"event_type"`
	Email     string         `gorm:"index;size:255" json:"email,omitempty"`
	IPAddress string         `gorm:"size:45" json:"ip_address,omitempty"`
	UserAgent string         `gorm:"size:500" json:"user_agent,omitempty"`
	Status    AuditStatus    `gorm:"size:20" json:"status"`
	ErrorMsg  string         `gorm:"size:500" json:"error_msg,omitempty"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}
