package services

import (
	"testing"

	"github.com/canozbey/planwise-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestAuthorize(t *testing.T) {
	env := newTestEnv(t)
	owner := env.newUser(t, "owner@example.com")
	editor := env.newUser(t, "editor@example.com")
	viewer := env.newUser(t, "viewer@example.com")
	outsider := env.newUser(t, "outsider@example.com")

	ev := env.mustCreate(t, owner.ID, "Meeting", at(9, 0), at(10, 0))
	env.grant(t, ev.ID, editor.ID, models.RoleEditor)
	env.grant(t, ev.ID, viewer.ID, models.RoleViewer)

	t.Run("role must be in the allowed set", func(t *testing.T) {
		perm, err := env.access.AuthorizeEditor(ev.ID, editor.ID)
		require.NoError(t, err)
		require.Equal(t, models.RoleEditor, perm.Role)

		_, err = env.access.AuthorizeEditor(ev.ID, viewer.ID)
		require.ErrorIs(t, err, ErrForbidden)

		_, err = env.access.AuthorizeOwner(ev.ID, editor.ID)
		require.ErrorIs(t, err, ErrForbidden)

		perm, err = env.access.AuthorizeOwner(ev.ID, owner.ID)
		require.NoError(t, err)
		require.Equal(t, models.RoleOwner, perm.Role)
	})

	t.Run("any role grants read access", func(t *testing.T) {
		for _, id := range []uuid.UUID{owner.ID, editor.ID, viewer.ID} {
			_, err := env.access.AuthorizeAny(ev.ID, id)
			require.NoError(t, err)
		}
	})

	t.Run("no permission row means forbidden", func(t *testing.T) {
		_, err := env.access.AuthorizeAny(ev.ID, outsider.ID)
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("nonexistent event is indistinguishable from inaccessible", func(t *testing.T) {
		_, err := env.access.AuthorizeAny(uuid.New(), owner.ID)
		require.ErrorIs(t, err, ErrForbidden)
	})
}
