package dto

import (
	"encoding/json"
	"time"
)

type EventCreateRequest struct {
	Title             string          `json:"title"`
	Description       *string         `json:"description"`
	StartTime         time.Time       `json:"start_time"`
	EndTime           time.Time       `json:"end_time"`
	Location          *string         `json:"location"`
	IsRecurring       bool            `json:"is_recurring"`
	RecurrencePattern json.RawMessage `json:"recurrence_pattern"`
}

// EventUpdateRequest is a partial update: nil pointers mean "leave the
// field as it is".
type EventUpdateRequest struct {
	Title             *string         `json:"title"`
	Description       *string         `json:"description"`
	StartTime         *time.Time      `json:"start_time"`
	EndTime           *time.Time      `json:"end_time"`
	Location          *string         `json:"location"`
	IsRecurring       *bool           `json:"is_recurring"`
	RecurrencePattern json.RawMessage `json:"recurrence_pattern"`
}

type EventBatchCreateRequest struct {
	Events []EventCreateRequest `json:"events"`
}
