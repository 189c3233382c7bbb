package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/guau-api/internal/models"
	"github.com/localnerve/guau-api/internal/services"
	"github.com/localnerve/guau-api/internal/types"
	"github.com/localnerve/guau-api/internal/utils"
	"gorm.io/gorm"
)

// EventHandler handles event listing, registration and event administration
type EventHandler struct {
	DB *gorm.DB
}

// RegisterRequest is the body of POST /api/events/register
type RegisterRequest struct {
	EventRouteID string `json:"eventRouteId" validate:"required"`
}

// RegisterResponse carries the code the user shows at the event
type RegisterResponse struct {
	Message          string `json:"message"`
	ConfirmationCode string `json:"confirmationCode"`
	EventName        string `json:"eventName"`
}

// EventRequest is the body of the admin create and update routes. "date" is
// accepted as an alias of eventDate.
type EventRequest struct {
	Name                 *string            `json:"name" validate:"omitempty,min=1,max=255"`
	Description          *string            `json:"description" validate:"omitempty,max=2048"`
	EventDate            *time.Time         `json:"eventDate"`
	Date                 *time.Time         `json:"date"`
	Location             *string            `json:"location" validate:"omitempty,max=255"`
	Kilometers           *types.FlexFloat64 `json:"kilometers"`
	MaxParticipants      *int               `json:"maxParticipants" validate:"omitempty,min=1"`
	ClearMaxParticipants bool               `json:"clearMaxParticipants"`
	RequiresConfirmation *bool              `json:"requiresConfirmation"`
	IsActive             *bool              `json:"isActive"`
}

func (r *EventRequest) input() services.EventInput {
	in := services.EventInput{
		Name:                 r.Name,
		Description:          r.Description,
		EventDate:            r.EventDate,
		Location:             r.Location,
		MaxParticipants:      r.MaxParticipants,
		ClearMaxParticipants: r.ClearMaxParticipants,
		RequiresConfirmation: r.RequiresConfirmation,
		IsActive:             r.IsActive,
	}
	if in.EventDate == nil {
		in.EventDate = r.Date
	}
	if r.Kilometers != nil {
		km := r.Kilometers.Float64()
		in.Kilometers = &km
	}
	return in
}

// List handles GET /api/events
// @Summary List active events
// @Tags Events
// @Produce json
// @Param upcoming query bool false "Only events that have not started"
// @Success 200 {array} services.EventSummary
// @Router /events [get]
func (h *EventHandler) List(c *fiber.Ctx) error {
	events, err := services.ListEvents(c.UserContext(), h.DB, services.ListEventsFilter{
		UpcomingOnly: c.QueryBool("upcoming", false),
	})
	if err != nil {
		return mapServiceError(c, err, "events.list")
	}
	return utils.SuccessResponse(c, events, fiber.StatusOK)
}

// AdminList handles GET /api/admin/events, inactive events included
// @Summary List all events
// @Tags Admin
// @Produce json
// @Success 200 {array} services.EventSummary
// @Security BearerAuth
// @Security CookieAuth
// @Router /admin/events [get]
func (h *EventHandler) AdminList(c *fiber.Ctx) error {
	events, err := services.ListEvents(c.UserContext(), h.DB, services.ListEventsFilter{IncludeInactive: true})
	if err != nil {
		return mapServiceError(c, err, "events.adminList")
	}
	return utils.SuccessResponse(c, events, fiber.StatusOK)
}

// Get handles GET /api/events/:id
// @Summary Event detail
// @Tags Events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} services.EventSummary
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /events/{id} [get]
func (h *EventHandler) Get(c *fiber.Ctx) error {
	event, err := services.GetEvent(c.UserContext(), h.DB, c.Params("id"), false)
	if err != nil {
		return mapServiceError(c, err, "events.get")
	}
	return utils.SuccessResponse(c, event, fiber.StatusOK)
}

// Register handles POST /api/events/register
// @Summary Register for an event
// @Tags Events
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Event"
// @Success 200 {object} RegisterResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Security CookieAuth
// @Router /events/register [post]
func (h *EventHandler) Register(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var body RegisterRequest
	if err := parseBody(c, &body); err != nil {
		return err
	}

	participant, event, err := services.RegisterForEvent(c.UserContext(), h.DB, p.UserID, body.EventRouteID)
	if err != nil {
		return mapServiceError(c, err, "events.register")
	}

	return utils.SuccessResponse(c, RegisterResponse{
		Message:          "Registered for " + event.Name,
		ConfirmationCode: participant.ConfirmationCode,
		EventName:        event.Name,
	}, fiber.StatusOK)
}

// Cancel handles DELETE /api/events/:id/registration
// @Summary Cancel an unconfirmed registration
// @Tags Events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Security CookieAuth
// @Router /events/{id}/registration [delete]
func (h *EventHandler) Cancel(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	if err := services.CancelRegistration(c.UserContext(), h.DB, p.UserID, c.Params("id")); err != nil {
		return mapServiceError(c, err, "events.cancel")
	}
	return utils.MessageResponse(c, "Registration cancelled", nil)
}

// MyRegistrations handles GET /api/me/registrations
// @Summary My registrations
// @Tags Me
// @Produce json
// @Success 200 {array} models.EventParticipant
// @Security BearerAuth
// @Security CookieAuth
// @Router /me/registrations [get]
func (h *EventHandler) MyRegistrations(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	regs, err := services.ListUserRegistrations(c.UserContext(), h.DB, p.UserID)
	if err != nil {
		return mapServiceError(c, err, "events.myRegistrations")
	}
	return utils.SuccessResponse(c, regs, fiber.StatusOK)
}

// Create handles POST /api/admin/events
// @Summary Create an event
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body EventRequest true "Event"
// @Success 201 {object} models.EventRoute
// @Failure 400 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Security CookieAuth
// @Router /admin/events [post]
func (h *EventHandler) Create(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var body EventRequest
	if err := parseBody(c, &body); err != nil {
		return err
	}

	event, err := services.CreateEvent(c.UserContext(), h.DB, p.UserID, body.input())
	if err != nil {
		return mapServiceError(c, err, "events.create")
	}
	return utils.SuccessResponse(c, event, fiber.StatusCreated)
}

// Update handles PUT /api/admin/events/:id
// @Summary Update an event
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param body body EventRequest true "Fields to change"
// @Success 200 {object} models.EventRoute
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Security CookieAuth
// @Router /admin/events/{id} [put]
func (h *EventHandler) Update(c *fiber.Ctx) error {
	var body EventRequest
	if err := parseBody(c, &body); err != nil {
		return err
	}

	event, err := services.UpdateEvent(c.UserContext(), h.DB, c.Params("id"), body.input())
	if err != nil {
		return mapServiceError(c, err, "events.update")
	}
	return utils.SuccessResponse(c, event, fiber.StatusOK)
}

// Deactivate handles DELETE /api/admin/events/:id
// @Summary Deactivate an event
// @Tags Admin
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Security CookieAuth
// @Router /admin/events/{id} [delete]
func (h *EventHandler) Deactivate(c *fiber.Ctx) error {
	if err := services.DeactivateEvent(c.UserContext(), h.DB, c.Params("id")); err != nil {
		return mapServiceError(c, err, "events.deactivate")
	}
	return utils.MessageResponse(c, "Event deactivated", nil)
}

// Participants handles GET /api/admin/events/:id/participants
// @Summary List an event's participants
// @Tags Admin
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {array} models.EventParticipant
// @Security BearerAuth
// @Security CookieAuth
// @Router /admin/events/{id}/participants [get]
func (h *EventHandler) Participants(c *fiber.Ctx) error {
	participants, err := services.ListParticipants(c.UserContext(), h.DB, c.Params("id"))
	if err != nil {
		return mapServiceError(c, err, "events.participants")
	}
	if participants == nil {
		participants = []models.EventParticipant{}
	}
	return utils.SuccessResponse(c, participants, fiber.StatusOK)
}
