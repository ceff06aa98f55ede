package versioning

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiffIdempotent(t *testing.T) {
	m := FieldMap{
		"title":        "Standup",
		"is_recurring": true,
		"recurrence_pattern": map[string]any{
			"freq": "weekly",
			"days": []any{"mon", "wed"},
		},
	}
	require.Empty(t, Diff(m, m))
}

func TestDiffChangedAddedRemoved(t *testing.T) {
	oldData := FieldMap{
		"title":    "Standup",
		"location": "Room 4",
	}
	newData := FieldMap{
		"title":       "Retro",
		"description": "monthly",
	}

	changes := Diff(oldData, newData)
	require.Len(t, changes, 3)

	// sorted by field name
	require.Equal(t, "description", changes[0].Field)
	require.Nil(t, changes[0].OldValue)
	require.Equal(t, "monthly", changes[0].NewValue)

	require.Equal(t, "location", changes[1].Field)
	require.Equal(t, "Room 4", changes[1].OldValue)
	require.Nil(t, changes[1].NewValue)

	require.Equal(t, "title", changes[2].Field)
	require.Equal(t, "Standup", changes[2].OldValue)
	require.Equal(t, "Retro", changes[2].NewValue)
}

func TestDiffSymmetry(t *testing.T) {
	a := FieldMap{"title": "A", "location": "x", "is_recurring": false}
	b := FieldMap{"title": "B", "description": "d", "is_recurring": false}

	forward := Diff(a, b)
	backward := Diff(b, a)
	require.Len(t, backward, len(forward))

	for i := range forward {
		require.Equal(t, forward[i].Field, backward[i].Field)
		require.Equal(t, forward[i].OldValue, backward[i].NewValue)
		require.Equal(t, forward[i].NewValue, backward[i].OldValue)
	}
}

func TestDiffDeepEquality(t *testing.T) {
	oldData := FieldMap{
		"recurrence_pattern": map[string]any{"freq": "daily", "interval": float64(1)},
	}
	same := FieldMap{
		"recurrence_pattern": map[string]any{"freq": "daily", "interval": float64(1)},
	}
	require.Empty(t, Diff(oldData, same))

	changed := FieldMap{
		"recurrence_pattern": map[string]any{"freq": "daily", "interval": float64(2)},
	}
	changes := Diff(oldData, changed)
	require.Len(t, changes, 1)
	require.Equal(t, "recurrence_pattern", changes[0].Field)
}

func TestDiffNullValueIsAChange(t *testing.T) {
	oldData := FieldMap{"location": "Room 4"}
	newData := FieldMap{"location": nil}

	changes := Diff(oldData, newData)
	require.Len(t, changes, 1)
	require.Equal(t, "Room 4", changes[0].OldValue)
	require.Nil(t, changes[0].NewValue)
}
