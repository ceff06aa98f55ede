package services

import (
	"fmt"
	"time"

	"github.com/canozbey/planwise-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConflictService finds scheduling overlaps on a user's personal
// calendar: every event the user holds any permission on, not just the
// ones they own.
type ConflictService struct {
	db *gorm.DB
}

func NewConflictService(db *gorm.DB) *ConflictService {
	return &ConflictService{db: db}
}

// Overlaps reports whether [s1, e1) and [s2, e2) intersect. Half-open
// intervals: touching boundaries do not overlap.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// FindConflicts returns the user's events whose interval overlaps
// [start, end). excludeEventID omits the event being updated from its own
// check.
func (s *ConflictService) FindConflicts(userID uuid.UUID, start, end time.Time, excludeEventID *uuid.UUID) ([]models.Event, error) {
	query := s.db.Model(&models.Event{}).
		Select("events.*").
		Joins("JOIN permissions ON permissions.event_id = events.id").
		Where("permissions.user_id = ?", userID).
		Where("events.start_time < ? AND events.end_time > ?", end, start)

	if excludeEventID != nil {
		query = query.Where("events.id <> ?", *excludeEventID)
	}

	var conflicts []models.Event
	if err := query.Find(&conflicts).Error; err != nil {
		return nil, fmt.Errorf("conflict query failed: %w", err)
	}
	return conflicts, nil
}
