// codes.go
//
// A gamified dog-walking community service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of guau-api.
// guau-api is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// guau-api is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with guau-api.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/guau-api/internal/services"
	"github.com/localnerve/guau-api/internal/types"
	"github.com/localnerve/guau-api/internal/utils"
	"gorm.io/gorm"
)

// CodeHandler handles entry-code redemption and administration
type CodeHandler struct {
	DB *gorm.DB
}

// RedeemRequest is the body of POST /api/codes/redeem
type RedeemRequest struct {
	Code string `json:"code" validate:"required,max=32"`
}

// RedeemResponse reports the credited kilometers
type RedeemResponse struct {
	Success         bool    `json:"success"`
	Kilometers      float64 `json:"kilometers"`
	EventName       string  `json:"eventName"`
	TotalKilometers float64 `json:"totalKilometers"`
}

// CreateCodesRequest is the body of POST /api/admin/events/:id/codes
type CreateCodesRequest struct {
	Count      int                `json:"count" validate:"required,min=1,max=500"`
	Kilometers *types.FlexFloat64 `json:"kilometers"`
	ExpiresAt  *time.Time         `json:"expiresAt"`
}

// Redeem handles POST /api/codes/redeem
// @Summary Redeem an entry code
// @Description Consumes a single-use event entry code and credits its kilometers
// @Tags Codes
// @Accept json
// @Produce json
// @Param body body RedeemRequest true "Entry code"
// @Success 200 {object} RedeemResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Security CookieAuth
// @Router /codes/redeem [post]
func (h *CodeHandler) Redeem(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var body RedeemRequest
	if err := parseBody(c, &body); err != nil {
		return err
	}

	res, err := services.RedeemCode(c.UserContext(), h.DB, p.UserID, body.Code)
	if err != nil {
		return mapServiceError(c, err, "codes.redeem")
	}

	return utils.SuccessResponse(c, RedeemResponse{
		Success:         true,
		Kilometers:      res.Kilometers,
		EventName:       res.EventName,
		TotalKilometers: res.TotalKilometers,
	}, fiber.StatusOK)
}

// Create handles POST /api/admin/events/:id/codes
// @Summary Generate entry codes
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param body body CreateCodesRequest true "Batch"
// @Success 201 {array} models.EntryCode
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Security CookieAuth
// @Router /admin/events/{id}/codes [post]
func (h *CodeHandler) Create(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var body CreateCodesRequest
	if err := parseBody(c, &body); err != nil {
		return err
	}

	batch := services.EntryCodeBatch{Count: body.Count, ExpiresAt: body.ExpiresAt}
	if body.Kilometers != nil {
		km := body.Kilometers.Float64()
		batch.Kilometers = &km
	}

	codes, err := services.CreateEntryCodes(c.UserContext(), h.DB, p.UserID, c.Params("id"), batch)
	if err != nil {
		return mapServiceError(c, err, "codes.create")
	}
	return utils.SuccessResponse(c, codes, fiber.StatusCreated)
}

// List handles GET /api/admin/events/:id/codes
// @Summary List an event's entry codes
// @Tags Admin
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {array} models.EntryCode
// @Security BearerAuth
// @Security CookieAuth
// @Router /admin/events/{id}/codes [get]
func (h *CodeHandler) List(c *fiber.Ctx) error {
	codes, err := services.ListEntryCodes(c.UserContext(), h.DB, c.Params("id"))
	if err != nil {
		return mapServiceError(c, err, "codes.list")
	}
	return utils.SuccessResponse(c, codes, fiber.StatusOK)
}

// Delete handles DELETE /api/admin/codes/:id
// @Summary Delete an unused entry code
// @Tags Admin
// @Produce json
// @Param id path string true "Entry code ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Security CookieAuth
// @Router /admin/codes/{id} [delete]
func (h *CodeHandler) Delete(c *fiber.Ctx) error {
	if err := services.DeleteEntryCode(c.UserContext(), h.DB, c.Params("id")); err != nil {
		if errors.Is(err, services.ErrEntryCodeNotFound) {
			return utils.NotFoundResponse(c, "Entry code not found")
		}
		return mapServiceError(c, err, "codes.delete")
	}
	return utils.MessageResponse(c, "Entry code deleted", nil)
}
