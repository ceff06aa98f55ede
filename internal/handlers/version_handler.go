package handlers

import (
	"github.com/canozbey/planwise-backend/internal/dto"
	"github.com/canozbey/planwise-backend/internal/middleware"
	"github.com/canozbey/planwise-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type VersionHandler struct {
	versionService *services.VersionService
}

func NewVersionHandler(versionService *services.VersionService) *VersionHandler {
	return &VersionHandler{versionService: versionService}
}

// Changelog handles GET /events/:id/changelog, newest first.
func (h *VersionHandler) Changelog(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid event ID")
	}

	versions, err := h.versionService.Changelog(eventID, userID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(versions)
}

// GetVersion handles GET /events/:id/history/:versionId.
func (h *VersionHandler) GetVersion(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid event ID")
	}
	versionID, err := uuid.Parse(c.Params("versionId"))
	if err != nil {
		return badRequest(c, "Invalid version ID")
	}

	version, err := h.versionService.GetVersion(eventID, versionID, userID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(version)
}

// Rollback handles POST /events/:id/rollback/:versionId; editor or owner.
func (h *VersionHandler) Rollback(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid event ID")
	}
	versionID, err := uuid.Parse(c.Params("versionId"))
	if err != nil {
		return badRequest(c, "Invalid version ID")
	}

	version, err := h.versionService.Rollback(eventID, versionID, userID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(version)
}

// Diff handles GET /events/:id/diff/:versionId1/:versionId2.
func (h *VersionHandler) Diff(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid event ID")
	}
	v1, err := uuid.Parse(c.Params("versionId1"))
	if err != nil {
		return badRequest(c, "Invalid version ID")
	}
	v2, err := uuid.Parse(c.Params("versionId2"))
	if err != nil {
		return badRequest(c, "Invalid version ID")
	}

	changes, err := h.versionService.DiffVersions(eventID, v1, v2, userID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(dto.VersionDiffResponse{
		Version1ID: v1,
		Version2ID: v2,
		Changes:    changes,
	})
}
