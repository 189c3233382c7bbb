package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/guau-api/internal/services"
	"github.com/localnerve/guau-api/internal/types"
	"github.com/localnerve/guau-api/internal/utils"
	"gorm.io/gorm"
)

// AdminHandler handles user management, broadcasts and settings
type AdminHandler struct {
	DB *gorm.DB
}

// RoleRequest is the body of PATCH /api/admin/users/:id/role
type RoleRequest struct {
	Role string `json:"role" validate:"required,oneof=USER ADMIN user admin"`
}

// BroadcastRequest is the body of POST /api/admin/notifications. No userIds
// means every user.
type BroadcastRequest struct {
	UserIDs types.FlexList[string] `json:"userIds"`
	Title   string                 `json:"title" validate:"required,max=255"`
	Message string                 `json:"message" validate:"required,max=1024"`
}

// ConfigRequest is the body of PUT /api/admin/config/:key
type ConfigRequest struct {
	Value  json.RawMessage `json:"value" validate:"required"`
	Public bool            `json:"public"`
}

// UserPage is one page of users
type UserPage struct {
	Users  any   `json:"users"`
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

// Users handles GET /api/admin/users
// @Summary List users
// @Tags Admin
// @Produce json
// @Param limit query int false "Page size (max 200)"
// @Param offset query int false "Offset"
// @Success 200 {object} UserPage
// @Security BearerAuth
// @Security CookieAuth
// @Router /admin/users [get]
func (h *AdminHandler) Users(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	users, total, err := services.ListUsers(c.UserContext(), h.DB, limit, offset)
	if err != nil {
		return mapServiceError(c, err, "admin.users")
	}
	return utils.SuccessResponse(c, UserPage{Users: users, Total: total, Limit: limit, Offset: offset}, fiber.StatusOK)
}

// SetRole handles PATCH /api/admin/users/:id/role
// @Summary Change a user's role
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param body body RoleRequest true "Role"
// @Success 200 {object} models.User
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Security CookieAuth
// @Router /admin/users/{id}/role [patch]
func (h *AdminHandler) SetRole(c *fiber.Ctx) error {
	var body RoleRequest
	if err := parseBody(c, &body); err != nil {
		return err
	}

	user, err := services.SetUserRole(c.UserContext(), h.DB, c.Params("id"), body.Role)
	if err != nil {
		return mapServiceError(c, err, "admin.setRole")
	}
	return utils.SuccessResponse(c, user, fiber.StatusOK)
}

// Broadcast handles POST /api/admin/notifications
// @Summary Send a system notification
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body BroadcastRequest true "Notification"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Security CookieAuth
// @Router /admin/notifications [post]
func (h *AdminHandler) Broadcast(c *fiber.Ctx) error {
	var body BroadcastRequest
	if err := parseBody(c, &body); err != nil {
		return err
	}

	sent, err := services.Broadcast(c.UserContext(), h.DB, body.UserIDs.Unique(), body.Title, body.Message)
	if err != nil {
		return mapServiceError(c, err, "admin.broadcast")
	}
	return utils.MessageResponse(c, "Notification sent", fiber.Map{"sent": sent})
}

// SetConfig handles PUT /api/admin/config/:key
// @Summary Create or replace a setting
// @Tags Admin
// @Accept json
// @Produce json
// @Param key path string true "Setting key"
// @Param body body ConfigRequest true "Value"
// @Success 200 {object} models.AppConfig
// @Failure 400 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Security CookieAuth
// @Router /admin/config/{key} [put]
func (h *AdminHandler) SetConfig(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var body ConfigRequest
	if err := parseBody(c, &body); err != nil {
		return err
	}

	row, err := services.SetConfig(c.UserContext(), h.DB, p.UserID, c.Params("key"), body.Value, body.Public)
	if err != nil {
		return mapServiceError(c, err, "admin.setConfig")
	}
	return utils.SuccessResponse(c, row, fiber.StatusOK)
}
