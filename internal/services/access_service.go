package services

import (
	"errors"
	"fmt"

	"github.com/canozbey/planwise-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccessService gates every event, permission, and version operation on
// the caller's permission row. The lookup runs before anything else, so a
// caller with no row gets ErrForbidden whether or not the event exists;
// event existence is never revealed to outsiders.
type AccessService struct {
	db *gorm.DB
}

func NewAccessService(db *gorm.DB) *AccessService {
	return &AccessService{db: db}
}

// Authorize returns the caller's permission row for the event if its role
// is in the allowed set.
func (s *AccessService) Authorize(eventID, userID uuid.UUID, roles ...models.Role) (*models.Permission, error) {
	var perm models.Permission
	err := s.db.Where("event_id = ? AND user_id = ?", eventID, userID).First(&perm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrForbidden
		}
		return nil, fmt.Errorf("failed to look up permission: %w", err)
	}

	for _, role := range roles {
		if perm.Role == role {
			return &perm, nil
		}
	}
	return nil, ErrForbidden
}

// AuthorizeAny requires any role on the event (read access).
func (s *AccessService) AuthorizeAny(eventID, userID uuid.UUID) (*models.Permission, error) {
	return s.Authorize(eventID, userID, models.RoleOwner, models.RoleEditor, models.RoleViewer)
}

// AuthorizeEditor requires owner or editor (write access).
func (s *AccessService) AuthorizeEditor(eventID, userID uuid.UUID) (*models.Permission, error) {
	return s.Authorize(eventID, userID, models.RoleOwner, models.RoleEditor)
}

// AuthorizeOwner requires the owner role; used to gate permission
// management and deletion.
func (s *AccessService) AuthorizeOwner(eventID, userID uuid.UUID) (*models.Permission, error) {
	return s.Authorize(eventID, userID, models.RoleOwner)
}
