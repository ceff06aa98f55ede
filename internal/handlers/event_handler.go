package handlers

import (
	"time"

	"github.com/canozbey/planwise-backend/internal/dto"
	"github.com/canozbey/planwise-backend/internal/middleware"
	"github.com/canozbey/planwise-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type EventHandler struct {
	eventService *services.EventService
}

func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// Create handles POST /events. ?force=true bypasses the advisory
// conflict check.
func (h *EventHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.EventCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	event, err := h.eventService.Create(userID, &req, c.QueryBool("force", false))
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(event)
}

// BatchCreate handles POST /events/batch; the whole batch is created in
// one transaction or not at all.
func (h *EventHandler) BatchCreate(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.EventBatchCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if len(req.Events) == 0 {
		return badRequest(c, "events list is empty")
	}

	events, err := h.eventService.BatchCreate(userID, req.Events, c.QueryBool("force", false))
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(events)
}

// List handles GET /events with skip/limit pagination and an optional
// start_date/end_date window.
func (h *EventHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	skip := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", 100)
	if skip < 0 {
		skip = 0
	}
	if limit < 1 || limit > 100 {
		limit = 100
	}

	startDate, err := queryTime(c, "start_date")
	if err != nil {
		return badRequest(c, "Invalid start_date")
	}
	endDate, err := queryTime(c, "end_date")
	if err != nil {
		return badRequest(c, "Invalid end_date")
	}

	events, err := h.eventService.List(userID, skip, limit, startDate, endDate)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(events)
}

// Get handles GET /events/:id.
func (h *EventHandler) Get(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid event ID")
	}

	event, err := h.eventService.Get(eventID, userID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(event)
}

// Update handles PUT /events/:id with partial semantics.
func (h *EventHandler) Update(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid event ID")
	}

	var req dto.EventUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	event, err := h.eventService.Update(eventID, userID, &req, c.QueryBool("force", false))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(event)
}

// Delete handles DELETE /events/:id; owner only.
func (h *EventHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid event ID")
	}

	if err := h.eventService.Delete(eventID, userID); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func queryTime(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}
