package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Event is a calendar entry. RecurrencePattern is stored opaquely; the
// service never interprets it.
type Event struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title             string         `gorm:"size:255;not null;index" json:"title"`
	Description       *string        `gorm:"type:text" json:"description"`
	StartTime         time.Time      `gorm:"not null;index" json:"start_time"`
	EndTime           time.Time      `gorm:"not null;index" json:"end_time"`
	Location          *string        `gorm:"size:255" json:"location"`
	IsRecurring       bool           `gorm:"default:false" json:"is_recurring"`
	RecurrencePattern datatypes.JSON `json:"recurrence_pattern"`
	OwnerID           uuid.UUID      `gorm:"type:uuid;not null;index" json:"owner_id"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`

	Permissions []Permission   `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`
	Versions    []EventVersion `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`
}
