package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of access levels a user can hold on an event.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// ParseRole validates a role string coming in from a request body.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleOwner, RoleEditor, RoleViewer:
		return Role(s), nil
	}
	return "", fmt.Errorf("invalid role %q", s)
}

// Permission grants one user one role on one event. Every event has
// exactly one row with RoleOwner, created in the same transaction as the
// event itself.
type Permission struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EventID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_permissions_event_user" json:"event_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_permissions_event_user" json:"user_id"`
	Role      Role      `gorm:"size:20;not null" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
