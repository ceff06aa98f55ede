package versioning

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/canozbey/planwise-backend/internal/models"
	"gorm.io/datatypes"
)

// TimeFormat is the canonical serialization for timestamps inside
// snapshots. Apply re-parses with the same layout and Snapshot always
// formats from the parsed time.Time, so a stored value survives any
// number of rollback round-trips byte-identically.
const TimeFormat = time.RFC3339Nano

// Snapshot flattens the mutable fields of an event into a FieldMap.
func Snapshot(ev *models.Event) FieldMap {
	m := FieldMap{
		"title":        ev.Title,
		"description":  nil,
		"start_time":   ev.StartTime.UTC().Format(TimeFormat),
		"end_time":     ev.EndTime.UTC().Format(TimeFormat),
		"location":     nil,
		"is_recurring": ev.IsRecurring,
	}
	if ev.Description != nil {
		m["description"] = *ev.Description
	}
	if ev.Location != nil {
		m["location"] = *ev.Location
	}
	m["recurrence_pattern"] = decodeOpaque(ev.RecurrencePattern)
	return m
}

// Apply copies every known field present in data onto the event. Fields
// absent from the map are left untouched, so a snapshot recorded before a
// schema gained fields still applies cleanly.
func Apply(ev *models.Event, data FieldMap) error {
	if v, ok := data["title"]; ok {
		if s, ok := v.(string); ok {
			ev.Title = s
		}
	}
	if v, ok := data["description"]; ok {
		ev.Description = toStringPtr(v)
	}
	if v, ok := data["start_time"]; ok {
		t, err := parseTime(v)
		if err != nil {
			return fmt.Errorf("start_time: %w", err)
		}
		ev.StartTime = t
	}
	if v, ok := data["end_time"]; ok {
		t, err := parseTime(v)
		if err != nil {
			return fmt.Errorf("end_time: %w", err)
		}
		ev.EndTime = t
	}
	if v, ok := data["location"]; ok {
		ev.Location = toStringPtr(v)
	}
	if v, ok := data["is_recurring"]; ok {
		if b, ok := v.(bool); ok {
			ev.IsRecurring = b
		}
	}
	if v, ok := data["recurrence_pattern"]; ok {
		if v == nil {
			ev.RecurrencePattern = nil
		} else {
			b, err := json.Marshal(v)
			if err != nil {
				return fmt.Errorf("recurrence_pattern: %w", err)
			}
			ev.RecurrencePattern = datatypes.JSON(b)
		}
	}
	return nil
}

// Encode marshals a FieldMap for storage in the versions JSONB column.
func Encode(m FieldMap) (datatypes.JSON, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return datatypes.JSON(b), nil
}

// Decode unmarshals a stored snapshot back into a FieldMap.
func Decode(data datatypes.JSON) (FieldMap, error) {
	var m FieldMap
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return m, nil
}

func parseTime(v any) (time.Time, error) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, fmt.Errorf("expected timestamp string, got %T", v)
	}
	t, err := time.Parse(TimeFormat, s)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

func toStringPtr(v any) *string {
	if s, ok := v.(string); ok {
		return &s
	}
	return nil
}

func decodeOpaque(raw datatypes.JSON) any {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}
