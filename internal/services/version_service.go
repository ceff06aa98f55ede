package services

import (
	"errors"
	"fmt"

	"github.com/canozbey/planwise-backend/internal/models"
	"github.com/canozbey/planwise-backend/internal/versioning"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VersionService maintains the append-only snapshot log per event.
// Versions are never mutated; rollback applies an old snapshot onto the
// live event and records the result as a new version, so the log only
// grows.
type VersionService struct {
	db     *gorm.DB
	access *AccessService
}

func NewVersionService(db *gorm.DB, access *AccessService) *VersionService {
	return &VersionService{db: db, access: access}
}

// record writes a snapshot of the event's current state inside the
// caller's transaction.
func (s *VersionService) record(tx *gorm.DB, ev *models.Event, userID uuid.UUID, description string) (*models.EventVersion, error) {
	data, err := versioning.Encode(versioning.Snapshot(ev))
	if err != nil {
		return nil, err
	}

	version := models.EventVersion{
		ID:                uuid.New(),
		EventID:           ev.ID,
		Data:              data,
		CreatedBy:         userID,
		ChangeDescription: description,
	}
	if err := tx.Create(&version).Error; err != nil {
		return nil, fmt.Errorf("failed to create version: %w", err)
	}
	return &version, nil
}

// Changelog returns every version of the event, newest first.
func (s *VersionService) Changelog(eventID, userID uuid.UUID) ([]models.EventVersion, error) {
	if _, err := s.access.AuthorizeAny(eventID, userID); err != nil {
		return nil, err
	}

	var versions []models.EventVersion
	err := s.db.Where("event_id = ?", eventID).
		Order("created_at DESC").
		Find(&versions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load changelog: %w", err)
	}
	return versions, nil
}

// GetVersion returns one version of the event.
func (s *VersionService) GetVersion(eventID, versionID, userID uuid.UUID) (*models.EventVersion, error) {
	if _, err := s.access.AuthorizeAny(eventID, userID); err != nil {
		return nil, err
	}
	return s.findVersion(eventID, versionID)
}

// Rollback restores the event to the state captured by the target
// version. Every known field present in the stored map is applied; fields
// the snapshot predates are left as they are. The post-rollback state is
// recorded as a fresh version referencing the source.
func (s *VersionService) Rollback(eventID, versionID, userID uuid.UUID) (*models.EventVersion, error) {
	if _, err := s.access.AuthorizeEditor(eventID, userID); err != nil {
		return nil, err
	}

	var ev models.Event
	if err := s.db.First(&ev, "id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to load event: %w", err)
	}

	version, err := s.findVersion(eventID, versionID)
	if err != nil {
		return nil, err
	}

	data, err := versioning.Decode(version.Data)
	if err != nil {
		return nil, err
	}
	if err := versioning.Apply(&ev, data); err != nil {
		return nil, fmt.Errorf("snapshot does not apply: %w", err)
	}
	if !ev.EndTime.After(ev.StartTime) {
		return nil, ErrInvalidTimeRange
	}

	var rollback *models.EventVersion
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&ev).Error; err != nil {
			return fmt.Errorf("failed to persist rollback: %w", err)
		}
		rollback, err = s.record(tx, &ev, userID, fmt.Sprintf("Rolled back to version %s", versionID))
		return err
	})
	if err != nil {
		return nil, err
	}
	return rollback, nil
}

// DiffVersions computes the field-level changes between two versions of
// the same event.
func (s *VersionService) DiffVersions(eventID, v1, v2, userID uuid.UUID) ([]versioning.FieldChange, error) {
	if _, err := s.access.AuthorizeAny(eventID, userID); err != nil {
		return nil, err
	}

	first, err := s.findVersion(eventID, v1)
	if err != nil {
		return nil, err
	}
	second, err := s.findVersion(eventID, v2)
	if err != nil {
		return nil, err
	}

	oldData, err := versioning.Decode(first.Data)
	if err != nil {
		return nil, err
	}
	newData, err := versioning.Decode(second.Data)
	if err != nil {
		return nil, err
	}

	return versioning.Diff(oldData, newData), nil
}

func (s *VersionService) findVersion(eventID, versionID uuid.UUID) (*models.EventVersion, error) {
	var version models.EventVersion
	err := s.db.Where("id = ? AND event_id = ?", versionID, eventID).First(&version).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVersionNotFound
		}
		return nil, fmt.Errorf("failed to load version: %w", err)
	}
	return &version, nil
}
