package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// EventVersion is an immutable snapshot of an event's field set. Rows are
// append-only; they are only ever removed when the event itself is deleted.
type EventVersion struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	EventID           uuid.UUID      `gorm:"type:uuid;not null;index" json:"event_id"`
	Data              datatypes.JSON `gorm:"not null" json:"data"`
	CreatedBy         uuid.UUID      `gorm:"type:uuid;not null" json:"created_by"`
	ChangeDescription string         `gorm:"type:text" json:"change_description"`
	CreatedAt         time.Time      `gorm:"index" json:"created_at"`
}
