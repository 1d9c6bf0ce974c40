package entities

import "time"

// UserSession is the durable session row used by the persisted session
// strategy. Expired rows are masked on lookup rather than deleted; the
// cleanup task removes them out of band.
type UserSession struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	SessionID string    `gorm:"uniqueIndex;size:64" json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (UserSession) TableName() string {
	return "user_sessions"
}
