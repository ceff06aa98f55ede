package dto

import (
	"github.com/canozbey/planwise-backend/internal/versioning"
	"github.com/google/uuid"
)

type VersionDiffResponse struct {
	Version1ID uuid.UUID                `json:"version1_id"`
	Version2ID uuid.UUID                `json:"version2_id"`
	Changes    []versioning.FieldChange `json:"changes"`
}
