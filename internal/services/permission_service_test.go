package services

import (
	"testing"

	"github.com/canozbey/planwise-backend/internal/dto"
	"github.com/canozbey/planwise-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func ownerRows(t *testing.T, env *testEnv, eventID uuid.UUID) []models.Permission {
	t.Helper()
	var rows []models.Permission
	require.NoError(t, env.db.Where("event_id = ? AND role = ?", eventID, models.RoleOwner).Find(&rows).Error)
	return rows
}

func TestShareUpsertAndList(t *testing.T) {
	env := newTestEnv(t)
	owner := env.newUser(t, "owner@example.com")
	guest := env.newUser(t, "guest@example.com")

	ev := env.mustCreate(t, owner.ID, "Shared", at(9, 0), at(10, 0))

	perms, err := env.permissions.Share(ev.ID, owner.ID, []dto.PermissionGrant{
		{UserID: guest.ID, Role: "editor"},
	})
	require.NoError(t, err)
	require.Len(t, perms, 1)
	require.Equal(t, models.RoleEditor, perms[0].Role)

	// the grantee can now see the permission list
	listed, err := env.permissions.List(ev.ID, guest.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)

	// sharing again updates the existing row instead of duplicating it
	perms, err = env.permissions.Share(ev.ID, owner.ID, []dto.PermissionGrant{
		{UserID: guest.ID, Role: "viewer"},
	})
	require.NoError(t, err)
	require.Equal(t, models.RoleViewer, perms[0].Role)

	listed, err = env.permissions.List(ev.ID, owner.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
}

func TestShareRequiresOwner(t *testing.T) {
	env := newTestEnv(t)
	owner := env.newUser(t, "owner@example.com")
	editor := env.newUser(t, "editor@example.com")
	guest := env.newUser(t, "guest@example.com")

	ev := env.mustCreate(t, owner.ID, "Locked", at(9, 0), at(10, 0))
	env.grant(t, ev.ID, editor.ID, models.RoleEditor)

	_, err := env.permissions.Share(ev.ID, editor.ID, []dto.PermissionGrant{
		{UserID: guest.ID, Role: "viewer"},
	})
	require.ErrorIs(t, err, ErrForbidden)

	// a nonexistent event looks exactly the same to the caller
	_, err = env.permissions.Share(uuid.New(), owner.ID, []dto.PermissionGrant{
		{UserID: guest.ID, Role: "viewer"},
	})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestShareUnknownUserRollsBack(t *testing.T) {
	env := newTestEnv(t)
	owner := env.newUser(t, "owner@example.com")
	guest := env.newUser(t, "guest@example.com")

	ev := env.mustCreate(t, owner.ID, "Partial", at(9, 0), at(10, 0))

	_, err := env.permissions.Share(ev.ID, owner.ID, []dto.PermissionGrant{
		{UserID: guest.ID, Role: "viewer"},
		{UserID: uuid.New(), Role: "viewer"},
	})
	require.ErrorIs(t, err, ErrUserNotFound)

	// the valid grant was rolled back with the failed one
	var count int64
	env.db.Model(&models.Permission{}).Where("event_id = ?", ev.ID).Count(&count)
	require.EqualValues(t, 1, count)
}

func TestOwnerRowIsProtected(t *testing.T) {
	env := newTestEnv(t)
	owner := env.newUser(t, "owner@example.com")
	guest := env.newUser(t, "guest@example.com")

	ev := env.mustCreate(t, owner.ID, "Invariant", at(9, 0), at(10, 0))
	env.grant(t, ev.ID, guest.ID, models.RoleViewer)

	// the owner role is never grantable
	_, err := env.permissions.Share(ev.ID, owner.ID, []dto.PermissionGrant{
		{UserID: guest.ID, Role: "owner"},
	})
	require.ErrorIs(t, err, ErrOwnerProtected)

	// the owner's own row cannot be re-shared
	_, err = env.permissions.Share(ev.ID, owner.ID, []dto.PermissionGrant{
		{UserID: owner.ID, Role: "editor"},
	})
	require.ErrorIs(t, err, ErrOwnerProtected)

	// nor updated
	_, err = env.permissions.UpdateRole(ev.ID, owner.ID, owner.ID, "viewer")
	require.ErrorIs(t, err, ErrOwnerProtected)

	// nor promoted to
	_, err = env.permissions.UpdateRole(ev.ID, owner.ID, guest.ID, "owner")
	require.ErrorIs(t, err, ErrOwnerProtected)

	// nor removed
	require.ErrorIs(t, env.permissions.Remove(ev.ID, owner.ID, owner.ID), ErrOwnerProtected)

	// after all of it: exactly one owner row, untouched
	rows := ownerRows(t, env, ev.ID)
	require.Len(t, rows, 1)
	require.Equal(t, owner.ID, rows[0].UserID)
}

func TestUpdateAndRemoveCollaborator(t *testing.T) {
	env := newTestEnv(t)
	owner := env.newUser(t, "owner@example.com")
	guest := env.newUser(t, "guest@example.com")

	ev := env.mustCreate(t, owner.ID, "Collab", at(9, 0), at(10, 0))
	env.grant(t, ev.ID, guest.ID, models.RoleViewer)

	perm, err := env.permissions.UpdateRole(ev.ID, owner.ID, guest.ID, "editor")
	require.NoError(t, err)
	require.Equal(t, models.RoleEditor, perm.Role)

	_, err = env.permissions.UpdateRole(ev.ID, owner.ID, uuid.New(), "editor")
	require.ErrorIs(t, err, ErrPermissionNotFound)

	_, err = env.permissions.UpdateRole(ev.ID, owner.ID, guest.ID, "superuser")
	require.ErrorIs(t, err, ErrValidation)

	require.NoError(t, env.permissions.Remove(ev.ID, owner.ID, guest.ID))
	require.ErrorIs(t, env.permissions.Remove(ev.ID, owner.ID, guest.ID), ErrPermissionNotFound)

	rows := ownerRows(t, env, ev.ID)
	require.Len(t, rows, 1)
}

func TestListRequiresAccess(t *testing.T) {
	env := newTestEnv(t)
	owner := env.newUser(t, "owner@example.com")
	outsider := env.newUser(t, "outsider@example.com")

	ev := env.mustCreate(t, owner.ID, "Private", at(9, 0), at(10, 0))

	_, err := env.permissions.List(ev.ID, outsider.ID)
	require.ErrorIs(t, err, ErrForbidden)
}
