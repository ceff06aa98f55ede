package services

import (
	"testing"
	"time"

	"github.com/canozbey/planwise-backend/internal/dto"
	"github.com/canozbey/planwise-backend/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db          *gorm.DB
	access      *AccessService
	conflicts   *ConflictService
	versions    *VersionService
	events      *EventService
	permissions *PermissionService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection keeps every query on the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Event{},
		&models.Permission{},
		&models.EventVersion{},
		&models.SystemLog{},
	))

	access := NewAccessService(db)
	conflicts := NewConflictService(db)
	versions := NewVersionService(db, access)
	events := NewEventService(db, access, conflicts, versions)
	permissions := NewPermissionService(db, access)

	return &testEnv{
		db:          db,
		access:      access,
		conflicts:   conflicts,
		versions:    versions,
		events:      events,
		permissions: permissions,
	}
}

func (e *testEnv) newUser(t *testing.T, email string) *models.User {
	t.Helper()
	user := &models.User{
		ID:       uuid.New(),
		Email:    email,
		Password: "irrelevant",
		IsActive: true,
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

// at returns a time on a fixed day, hour:minute UTC.
func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 2, hour, minute, 0, 0, time.UTC)
}

func createReq(title string, start, end time.Time) dto.EventCreateRequest {
	return dto.EventCreateRequest{
		Title:     title,
		StartTime: start,
		EndTime:   end,
	}
}

func (e *testEnv) mustCreate(t *testing.T, userID uuid.UUID, title string, start, end time.Time) *models.Event {
	t.Helper()
	req := createReq(title, start, end)
	ev, err := e.events.Create(userID, &req, true)
	require.NoError(t, err)
	return ev
}

func (e *testEnv) grant(t *testing.T, eventID, userID uuid.UUID, role models.Role) {
	t.Helper()
	require.NoError(t, e.db.Create(&models.Permission{
		ID:      uuid.New(),
		EventID: eventID,
		UserID:  userID,
		Role:    role,
	}).Error)
}
