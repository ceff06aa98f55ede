package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOverlaps(t *testing.T) {
	base := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	min := func(m int) time.Time { return base.Add(time.Duration(m) * time.Minute) }

	cases := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		want           bool
	}{
		{"partial overlap", min(10), min(20), min(15), min(25), true},
		{"touching boundary", min(10), min(20), min(20), min(30), false},
		{"containment", min(10), min(30), min(15), min(20), true},
		{"identical", min(10), min(20), min(10), min(20), true},
		{"disjoint", min(10), min(20), min(40), min(50), false},
		{"reverse touching", min(20), min(30), min(10), min(20), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Overlaps(tc.s1, tc.e1, tc.s2, tc.e2))
			require.Equal(t, tc.want, Overlaps(tc.s2, tc.e2, tc.s1, tc.e1))
		})
	}
}

func TestFindConflicts(t *testing.T) {
	env := newTestEnv(t)
	owner := env.newUser(t, "owner@example.com")
	other := env.newUser(t, "other@example.com")

	existing := env.mustCreate(t, owner.ID, "Existing", at(10, 0), at(11, 0))

	t.Run("overlapping interval conflicts", func(t *testing.T) {
		conflicts, err := env.conflicts.FindConflicts(owner.ID, at(10, 30), at(11, 30), nil)
		require.NoError(t, err)
		require.Len(t, conflicts, 1)
		require.Equal(t, existing.ID, conflicts[0].ID)
	})

	t.Run("touching boundary does not conflict", func(t *testing.T) {
		conflicts, err := env.conflicts.FindConflicts(owner.ID, at(11, 0), at(12, 0), nil)
		require.NoError(t, err)
		require.Empty(t, conflicts)
	})

	t.Run("contained interval conflicts", func(t *testing.T) {
		conflicts, err := env.conflicts.FindConflicts(owner.ID, at(10, 15), at(10, 45), nil)
		require.NoError(t, err)
		require.Len(t, conflicts, 1)
	})

	t.Run("containing interval conflicts", func(t *testing.T) {
		conflicts, err := env.conflicts.FindConflicts(owner.ID, at(9, 0), at(12, 0), nil)
		require.NoError(t, err)
		require.Len(t, conflicts, 1)
	})

	t.Run("exclude omits the event itself", func(t *testing.T) {
		conflicts, err := env.conflicts.FindConflicts(owner.ID, at(10, 0), at(11, 0), &existing.ID)
		require.NoError(t, err)
		require.Empty(t, conflicts)
	})

	t.Run("scope is the user's own calendar", func(t *testing.T) {
		conflicts, err := env.conflicts.FindConflicts(other.ID, at(10, 0), at(11, 0), nil)
		require.NoError(t, err)
		require.Empty(t, conflicts)
	})

	t.Run("shared events count as calendar entries", func(t *testing.T) {
		env.grant(t, existing.ID, other.ID, "viewer")
		conflicts, err := env.conflicts.FindConflicts(other.ID, at(10, 0), at(11, 0), nil)
		require.NoError(t, err)
		require.Len(t, conflicts, 1)
	})
}
