package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/guau-api/internal/models"
	"github.com/localnerve/guau-api/internal/services"
	"github.com/localnerve/guau-api/internal/utils"
	"gorm.io/gorm"
)

// AttendanceHandler confirms that registrants showed up. Hooks run after each
// confirmation.
type AttendanceHandler struct {
	DB    *gorm.DB
	Hooks []services.AttendanceHook
}

// ConfirmByIDRequest is the body of POST /api/admin/attendance/confirm
type ConfirmByIDRequest struct {
	ParticipantID string `json:"participantId" validate:"required"`
}

// ConfirmByCodeRequest is the body of POST /api/admin/attendance/confirm-code
type ConfirmByCodeRequest struct {
	ConfirmationCode string `json:"confirmationCode" validate:"required,max=16"`
}

// ConfirmByIDResponse returns the updated registration
type ConfirmByIDResponse struct {
	Message     string                   `json:"message"`
	Participant *models.EventParticipant `json:"participant"`
}

// ConfirmByCodeResponse names who was checked in
type ConfirmByCodeResponse struct {
	Message   string `json:"message"`
	UserName  string `json:"userName"`
	EventName string `json:"eventName"`
}

// ConfirmByID handles POST /api/admin/attendance/confirm
// @Summary Confirm attendance by participant id
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body ConfirmByIDRequest true "Participant"
// @Success 200 {object} ConfirmByIDResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Security CookieAuth
// @Router /admin/attendance/confirm [post]
func (h *AttendanceHandler) ConfirmByID(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var body ConfirmByIDRequest
	if err := parseBody(c, &body); err != nil {
		return err
	}

	participant, err := services.ConfirmAttendance(c.UserContext(), h.DB, p.UserID,
		services.AttendanceSelector{ParticipantID: body.ParticipantID}, h.Hooks...)
	if err != nil {
		return mapServiceError(c, err, "attendance.confirm")
	}

	return utils.SuccessResponse(c, ConfirmByIDResponse{
		Message:     "Attendance confirmed",
		Participant: participant,
	}, fiber.StatusOK)
}

// ConfirmByCode handles POST /api/admin/attendance/confirm-code
// @Summary Confirm attendance by confirmation code
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body ConfirmByCodeRequest true "Confirmation code"
// @Success 200 {object} ConfirmByCodeResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Security CookieAuth
// @Router /admin/attendance/confirm-code [post]
func (h *AttendanceHandler) ConfirmByCode(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var body ConfirmByCodeRequest
	if err := parseBody(c, &body); err != nil {
		return err
	}

	participant, err := services.ConfirmAttendance(c.UserContext(), h.DB, p.UserID,
		services.AttendanceSelector{ConfirmationCode: body.ConfirmationCode}, h.Hooks...)
	if err != nil {
		return mapServiceError(c, err, "attendance.confirmCode")
	}

	res := ConfirmByCodeResponse{Message: "Attendance confirmed"}
	if participant.User != nil {
		res.UserName = participant.User.Name
	}
	if participant.EventRoute != nil {
		res.EventName = participant.EventRoute.Name
	}
	return utils.SuccessResponse(c, res, fiber.StatusOK)
}
