package services

import (
	"errors"
	"fmt"

	"github.com/canozbey/planwise-backend/internal/dto"
	"github.com/canozbey/planwise-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PermissionService manages sharing. Every path defends the single-owner
// invariant: the owner's row is never the target of an update or delete,
// and the owner role is never grantable.
type PermissionService struct {
	db     *gorm.DB
	access *AccessService
}

func NewPermissionService(db *gorm.DB, access *AccessService) *PermissionService {
	return &PermissionService{db: db, access: access}
}

// Share grants or updates editor/viewer roles for a list of users. Only
// the owner may share; the whole grant list applies in one transaction.
func (s *PermissionService) Share(eventID, actingUserID uuid.UUID, grants []dto.PermissionGrant) ([]models.Permission, error) {
	if _, err := s.access.AuthorizeOwner(eventID, actingUserID); err != nil {
		return nil, err
	}

	type parsedGrant struct {
		userID uuid.UUID
		role   models.Role
	}
	parsed := make([]parsedGrant, 0, len(grants))
	for _, g := range grants {
		role, err := models.ParseRole(g.Role)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		if role == models.RoleOwner {
			return nil, ErrOwnerProtected
		}
		parsed = append(parsed, parsedGrant{userID: g.UserID, role: role})
	}

	result := make([]models.Permission, 0, len(parsed))
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, g := range parsed {
			var user models.User
			if err := tx.First(&user, "id = ?", g.userID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("user %s: %w", g.userID, ErrUserNotFound)
				}
				return fmt.Errorf("failed to look up user: %w", err)
			}

			var perm models.Permission
			err := tx.Where("event_id = ? AND user_id = ?", eventID, g.userID).First(&perm).Error
			switch {
			case err == nil:
				if perm.Role == models.RoleOwner {
					return ErrOwnerProtected
				}
				perm.Role = g.role
				if err := tx.Save(&perm).Error; err != nil {
					return fmt.Errorf("failed to update permission: %w", err)
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				perm = models.Permission{
					ID:      uuid.New(),
					EventID: eventID,
					UserID:  g.userID,
					Role:    g.role,
				}
				if err := tx.Create(&perm).Error; err != nil {
					return fmt.Errorf("failed to create permission: %w", err)
				}
			default:
				return fmt.Errorf("failed to look up permission: %w", err)
			}
			result = append(result, perm)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// List returns every permission row on the event; any role may look.
func (s *PermissionService) List(eventID, userID uuid.UUID) ([]models.Permission, error) {
	if _, err := s.access.AuthorizeAny(eventID, userID); err != nil {
		return nil, err
	}

	var perms []models.Permission
	if err := s.db.Where("event_id = ?", eventID).Find(&perms).Error; err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}
	return perms, nil
}

// UpdateRole changes a collaborator's role. The owner row is untouchable
// and the owner role is not assignable.
func (s *PermissionService) UpdateRole(eventID, actingUserID, targetUserID uuid.UUID, roleName string) (*models.Permission, error) {
	if _, err := s.access.AuthorizeOwner(eventID, actingUserID); err != nil {
		return nil, err
	}

	role, err := models.ParseRole(roleName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if role == models.RoleOwner {
		return nil, ErrOwnerProtected
	}

	perm, err := s.findPermission(eventID, targetUserID)
	if err != nil {
		return nil, err
	}
	if perm.Role == models.RoleOwner {
		return nil, ErrOwnerProtected
	}

	perm.Role = role
	if err := s.db.Save(perm).Error; err != nil {
		return nil, fmt.Errorf("failed to update permission: %w", err)
	}
	return perm, nil
}

// Remove revokes a collaborator's access. The owner row cannot be
// removed.
func (s *PermissionService) Remove(eventID, actingUserID, targetUserID uuid.UUID) error {
	if _, err := s.access.AuthorizeOwner(eventID, actingUserID); err != nil {
		return err
	}

	perm, err := s.findPermission(eventID, targetUserID)
	if err != nil {
		return err
	}
	if perm.Role == models.RoleOwner {
		return ErrOwnerProtected
	}

	if err := s.db.Delete(perm).Error; err != nil {
		return fmt.Errorf("failed to delete permission: %w", err)
	}
	return nil
}

func (s *PermissionService) findPermission(eventID, userID uuid.UUID) (*models.Permission, error) {
	var perm models.Permission
	err := s.db.Where("event_id = ? AND user_id = ?", eventID, userID).First(&perm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPermissionNotFound
		}
		return nil, fmt.Errorf("failed to look up permission: %w", err)
	}
	return &perm, nil
}
