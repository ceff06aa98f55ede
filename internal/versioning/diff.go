package versioning

import (
	"reflect"
	"sort"
)

// FieldMap is the dynamically-shaped payload stored with each event
// version: field name -> JSON-decoded value (string, float64, bool, nil,
// nested map/slice). Keeping it loose lets the diff and rollback paths
// work over field sets that change as the schema evolves.
type FieldMap map[string]any

// FieldChange records a single field differing between two snapshots.
type FieldChange struct {
	Field    string `json:"field"`
	OldValue any    `json:"old_value"`
	NewValue any    `json:"new_value"`
}

// Diff compares two snapshots over the union of their keys. A key present
// in both with deep-equal values is omitted; a key only in oldData reports
// new=nil, a key only in newData reports old=nil. The result is sorted by
// field name so callers always see a stable order.
func Diff(oldData, newData FieldMap) []FieldChange {
	keys := make(map[string]struct{}, len(oldData)+len(newData))
	for k := range oldData {
		keys[k] = struct{}{}
	}
	for k := range newData {
		keys[k] = struct{}{}
	}

	changes := make([]FieldChange, 0)
	for key := range keys {
		oldVal, inOld := oldData[key]
		newVal, inNew := newData[key]
		switch {
		case inOld && inNew:
			if !reflect.DeepEqual(oldVal, newVal) {
				changes = append(changes, FieldChange{Field: key, OldValue: oldVal, NewValue: newVal})
			}
		case inOld:
			changes = append(changes, FieldChange{Field: key, OldValue: oldVal, NewValue: nil})
		default:
			changes = append(changes, FieldChange{Field: key, OldValue: nil, NewValue: newVal})
		}
	}

	sort.Slice(changes, func(i, j int) bool { return changes[i].Field < changes[j].Field })
	return changes
}
