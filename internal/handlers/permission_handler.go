package handlers

import (
	"github.com/canozbey/planwise-backend/internal/dto"
	"github.com/canozbey/planwise-backend/internal/middleware"
	"github.com/canozbey/planwise-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type PermissionHandler struct {
	permissionService *services.PermissionService
}

func NewPermissionHandler(permissionService *services.PermissionService) *PermissionHandler {
	return &PermissionHandler{permissionService: permissionService}
}

// Share handles POST /events/:id/share; owner only.
func (h *PermissionHandler) Share(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid event ID")
	}

	var req dto.ShareEventRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if len(req.Users) == 0 {
		return badRequest(c, "users list is empty")
	}

	perms, err := h.permissionService.Share(eventID, userID, req.Users)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(perms)
}

// List handles GET /events/:id/permissions; any role may look.
func (h *PermissionHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid event ID")
	}

	perms, err := h.permissionService.List(eventID, userID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(perms)
}

// Update handles PUT /events/:id/permissions/:userId; owner only, owner
// row untouchable.
func (h *PermissionHandler) Update(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid event ID")
	}
	targetUserID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	var req dto.PermissionUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	perm, err := h.permissionService.UpdateRole(eventID, userID, targetUserID, req.Role)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(perm)
}

// Delete handles DELETE /events/:id/permissions/:userId; owner only,
// owner row untouchable.
func (h *PermissionHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid event ID")
	}
	targetUserID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	if err := h.permissionService.Remove(eventID, userID, targetUserID); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
