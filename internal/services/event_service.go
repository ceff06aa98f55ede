package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/canozbey/planwise-backend/internal/dto"
	"github.com/canozbey/planwise-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EventService coordinates the event lifecycle. Every mutation is a
// single transaction: an event row, its owner permission, and its version
// snapshots become visible together or not at all.
type EventService struct {
	db        *gorm.DB
	access    *AccessService
	conflicts *ConflictService
	versions  *VersionService
}

func NewEventService(db *gorm.DB, access *AccessService, conflicts *ConflictService, versions *VersionService) *EventService {
	return &EventService{db: db, access: access, conflicts: conflicts, versions: versions}
}

// Create persists a new event with its owner permission and initial
// snapshot. The conflict check is advisory: force bypasses it.
func (s *EventService) Create(userID uuid.UUID, req *dto.EventCreateRequest, force bool) (*models.Event, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	conflicts, err := s.conflicts.FindConflicts(userID, req.StartTime, req.EndTime, nil)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 && !force {
		return nil, &ConflictError{Count: len(conflicts)}
	}

	ev := newEvent(userID, req)
	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.createOne(tx, ev, userID, "Event created")
	})
	if err != nil {
		return nil, err
	}
	return ev, nil
}

// BatchCreate creates every event in the batch or none of them. Each
// candidate is conflict-checked independently against the existing
// calendar (not against its batch siblings); the error reports how many
// candidates had conflicts.
func (s *EventService) BatchCreate(userID uuid.UUID, reqs []dto.EventCreateRequest, force bool) ([]models.Event, error) {
	for i := range reqs {
		if err := validateCreate(&reqs[i]); err != nil {
			return nil, err
		}
	}

	conflicted := 0
	for i := range reqs {
		conflicts, err := s.conflicts.FindConflicts(userID, reqs[i].StartTime, reqs[i].EndTime, nil)
		if err != nil {
			return nil, err
		}
		if len(conflicts) > 0 {
			conflicted++
		}
	}
	if conflicted > 0 && !force {
		return nil, &ConflictError{Count: conflicted, Batch: true}
	}

	created := make([]models.Event, 0, len(reqs))
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for i := range reqs {
			ev := newEvent(userID, &reqs[i])
			if err := s.createOne(tx, ev, userID, "Event created in batch"); err != nil {
				return err
			}
			created = append(created, *ev)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// createOne writes the three rows of a single create inside tx.
func (s *EventService) createOne(tx *gorm.DB, ev *models.Event, userID uuid.UUID, description string) error {
	if err := tx.Create(ev).Error; err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	perm := models.Permission{
		ID:      uuid.New(),
		EventID: ev.ID,
		UserID:  userID,
		Role:    models.RoleOwner,
	}
	if err := tx.Create(&perm).Error; err != nil {
		return fmt.Errorf("failed to create owner permission: %w", err)
	}

	_, err := s.versions.record(tx, ev, userID, description)
	return err
}

// List returns the caller's permitted events, optionally windowed to
// those overlapping [startDate, endDate].
func (s *EventService) List(userID uuid.UUID, skip, limit int, startDate, endDate *time.Time) ([]models.Event, error) {
	query := s.db.Model(&models.Event{}).
		Select("events.*").
		Joins("JOIN permissions ON permissions.event_id = events.id").
		Where("permissions.user_id = ?", userID)

	if startDate != nil {
		query = query.Where("events.end_time >= ?", *startDate)
	}
	if endDate != nil {
		query = query.Where("events.start_time <= ?", *endDate)
	}

	var events []models.Event
	err := query.Order("events.start_time ASC").
		Offset(skip).
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// Get returns one event the caller holds any role on.
func (s *EventService) Get(eventID, userID uuid.UUID) (*models.Event, error) {
	if _, err := s.access.AuthorizeAny(eventID, userID); err != nil {
		return nil, err
	}
	return s.findEvent(eventID)
}

// Update applies a partial update. The conflict check only runs when a
// time bound changes, uses the event's current values for whichever bound
// is not supplied, and excludes the event from its own search.
func (s *EventService) Update(eventID, userID uuid.UUID, req *dto.EventUpdateRequest, force bool) (*models.Event, error) {
	if _, err := s.access.AuthorizeEditor(eventID, userID); err != nil {
		return nil, err
	}

	ev, err := s.findEvent(eventID)
	if err != nil {
		return nil, err
	}

	if req.StartTime != nil || req.EndTime != nil {
		start := ev.StartTime
		if req.StartTime != nil {
			start = *req.StartTime
		}
		end := ev.EndTime
		if req.EndTime != nil {
			end = *req.EndTime
		}
		if !end.After(start) {
			return nil, ErrInvalidTimeRange
		}

		conflicts, err := s.conflicts.FindConflicts(userID, start, end, &eventID)
		if err != nil {
			return nil, err
		}
		if len(conflicts) > 0 && !force {
			return nil, &ConflictError{Count: len(conflicts)}
		}
	}

	applyUpdate(ev, req)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(ev).Error; err != nil {
			return fmt.Errorf("failed to update event: %w", err)
		}
		_, err := s.versions.record(tx, ev, userID, "Event updated")
		return err
	})
	if err != nil {
		return nil, err
	}
	return ev, nil
}

// Delete removes the event with its permissions and versions; their
// lifetime is bound to the event.
func (s *EventService) Delete(eventID, userID uuid.UUID) error {
	if _, err := s.access.AuthorizeOwner(eventID, userID); err != nil {
		return err
	}

	ev, err := s.findEvent(eventID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", ev.ID).Delete(&models.EventVersion{}).Error; err != nil {
			return fmt.Errorf("failed to delete versions: %w", err)
		}
		if err := tx.Where("event_id = ?", ev.ID).Delete(&models.Permission{}).Error; err != nil {
			return fmt.Errorf("failed to delete permissions: %w", err)
		}
		if err := tx.Delete(ev).Error; err != nil {
			return fmt.Errorf("failed to delete event: %w", err)
		}
		return nil
	})
}

func (s *EventService) findEvent(eventID uuid.UUID) (*models.Event, error) {
	var ev models.Event
	if err := s.db.First(&ev, "id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to load event: %w", err)
	}
	return &ev, nil
}

func validateCreate(req *dto.EventCreateRequest) error {
	if req.Title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: start_time and end_time are required", ErrValidation)
	}
	if !req.EndTime.After(req.StartTime) {
		return ErrInvalidTimeRange
	}
	return nil
}

func newEvent(userID uuid.UUID, req *dto.EventCreateRequest) *models.Event {
	return &models.Event{
		ID:                uuid.New(),
		Title:             req.Title,
		Description:       req.Description,
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		Location:          req.Location,
		IsRecurring:       req.IsRecurring,
		RecurrencePattern: datatypes.JSON(req.RecurrencePattern),
		OwnerID:           userID,
	}
}

func applyUpdate(ev *models.Event, req *dto.EventUpdateRequest) {
	if req.Title != nil {
		ev.Title = *req.Title
	}
	if req.Description != nil {
		ev.Description = req.Description
	}
	if req.StartTime != nil {
		ev.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		ev.EndTime = *req.EndTime
	}
	if req.Location != nil {
		ev.Location = req.Location
	}
	if req.IsRecurring != nil {
		ev.IsRecurring = *req.IsRecurring
	}
	if req.RecurrencePattern != nil {
		ev.RecurrencePattern = datatypes.JSON(req.RecurrencePattern)
	}
}
