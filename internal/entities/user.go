package entities

import (
	"time"

	"gorm.io/gorm"
)

// User is the credential record backing registration, login and the
// single-session-per-user model: at most one live SessionID and one live
// ResetToken per user, each overwritten in place.
type User struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Email          string         `gorm:"uniqueIndex;size:255" json:"email"`
	HashedPassword string         `gorm:"size:100" json:"-"`
	SessionID      *string        `gorm:"index;size:64" json:"-"`
	ResetToken     *string        `gorm:"index;size:64" json:"-"`
	FirstName      string         `gorm:"size:100" json:"first_name,omitempty"`
	LastName       string         `gorm:"size:100" json:"last_name,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}
