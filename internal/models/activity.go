package models

import (
	"time"

	"gorm.io/datatypes"
)

// ActivityRecord is an immutable audit entry for a user action. The owning
// organization is derived through the acting user rather than stored on the
// record, so feed queries always follow the user's current membership.
// Only the read flag may change after creation.
type ActivityRecord struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	UserID    uint              `gorm:"index;not null" json:"user_id"`
	Action    string            `gorm:"size:64;not null" json:"action"`
	Details   string            `gorm:"type:text" json:"details"`
	Metadata  datatypes.JSONMap `gorm:"type:json" json:"metadata"`
	Read      bool              `gorm:"not null;default:false" json:"read"`
	CreatedAt time.Time         `json:"created_at"`
}

// Notification points a single user at an activity with its own read state.
// Content is never updated; only the read flag mutates.
type Notification struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	UserID     uint            `gorm:"index;not null" json:"user_id"`
	ActivityID *uint           `gorm:"index" json:"activity_id"`
	Activity   *ActivityRecord `gorm:"foreignKey:ActivityID" json:"activity,omitempty"`
	Read       bool            `gorm:"not null;default:false" json:"read"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
