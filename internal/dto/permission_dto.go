package dto

import "github.com/google/uuid"

type PermissionGrant struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
}

type ShareEventRequest struct {
	Users []PermissionGrant `json:"users"`
}

type PermissionUpdateRequest struct {
	Role string `json:"role"`
}
