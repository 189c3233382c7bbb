// common.go
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
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/guau-api/internal/middleware"
	"github.com/localnerve/guau-api/internal/services"
	"github.com/localnerve/guau-api/internal/types"
	"github.com/localnerve/guau-api/internal/utils"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json field names in validation messages
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// parseBody decodes and validates a JSON request body
func parseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return &types.CustomError{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid input",
			Type:    "validation.input",
		}
	}
	if err := validate.Struct(dst); err != nil {
		return &types.CustomError{
			Code:    fiber.StatusBadRequest,
			Message: validationMessage(err),
			Type:    "validation.input",
		}
	}
	return nil
}

func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return "Invalid input"
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fe.Field()+" is required")
		case "email":
			parts = append(parts, fe.Field()+" must be a valid email")
		default:
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		}
	}
	return strings.Join(parts, "; ")
}

// principal returns the authenticated caller. Routes without auth middleware
// never call it.
func principal(c *fiber.Ctx) (*services.Principal, error) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return nil, &types.CustomError{
			Code:    fiber.StatusUnauthorized,
			Message: "Authentication required",
			Type:    "auth.user",
		}
	}
	return p, nil
}

type errorMapping struct {
	err    error
	status int
	kind   string
}

// serviceErrors maps domain failures to HTTP. Order matters only for wrapped
// chains that match more than one entry.
var serviceErrors = []errorMapping{
	{services.ErrInvalidInput, fiber.StatusBadRequest, "validation"},
	{services.ErrEntryCodeNotFound, fiber.StatusBadRequest, "code.not_found"},
	{services.ErrEntryCodeUsed, fiber.StatusBadRequest, "code.used"},
	{services.ErrEntryCodeExpired, fiber.StatusBadRequest, "code.expired"},
	{services.ErrEventPassed, fiber.StatusBadRequest, "event.passed"},
	{services.ErrAlreadyRegistered, fiber.StatusBadRequest, "event.already_registered"},
	{services.ErrEventFull, fiber.StatusBadRequest, "event.full"},
	{services.ErrAlreadyConfirmed, fiber.StatusBadRequest, "attendance.already_confirmed"},
	{services.ErrEventNotFound, fiber.StatusNotFound, "event.not_found"},
	{services.ErrParticipantNotFound, fiber.StatusNotFound, "attendance.not_found"},
	{services.ErrRegistrationNotFound, fiber.StatusNotFound, "event.registration_not_found"},
	{services.ErrUserNotFound, fiber.StatusNotFound, "user.not_found"},
	{services.ErrDogNotFound, fiber.StatusNotFound, "dog.not_found"},
	{services.ErrAchievementNotFound, fiber.StatusNotFound, "achievement.not_found"},
	{services.ErrEmailTaken, fiber.StatusConflict, "user.email_taken"},
	{services.ErrAchievementExists, fiber.StatusConflict, "achievement.exists"},
	{services.ErrInvalidCredentials, fiber.StatusUnauthorized, "auth.credentials"},
	{services.ErrUnauthenticated, fiber.StatusUnauthorized, "auth.user"},
}

// mapServiceError renders a service failure. Known failures keep their
// message; anything else is logged and reported as a generic 500.
func mapServiceError(c *fiber.Ctx, err error, op string) error {
	for _, m := range serviceErrors {
		if errors.Is(err, m.err) {
			return utils.ErrorResponse(c, clientMessage(err, m.err), m.status, m.kind)
		}
	}

	slog.ErrorContext(c.UserContext(), "request failed",
		"op", op,
		"requestId", c.Locals("requestid"),
		"path", c.Path(),
		"error", err,
	)
	return utils.ErrorResponse(c, "Internal server error", fiber.StatusInternalServerError, op)
}

// clientMessage keeps validation detail ("invalid input: kilometers must ...")
// and otherwise uses the sentinel text
func clientMessage(err, sentinel error) string {
	if sentinel == services.ErrInvalidInput {
		return err.Error()
	}
	return sentinel.Error()
}

// ErrorHandler renders errors that escape handlers and middleware in the
// common failure envelope
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	errorType := "unknown"

	var ce *types.CustomError
	var fe *fiber.Error
	switch {
	case errors.As(err, &ce):
		code = ce.Code
		message = ce.Message
		errorType = ce.Type
	case errors.As(err, &fe):
		code = fe.Code
		message = fe.Message
		errorType = "http"
	default:
		slog.ErrorContext(c.UserContext(), "unhandled error", "path", c.Path(), "error", err)
	}

	return utils.ErrorResponse(c, message, code, errorType)
}

// NotFound is the catch-all for unknown routes
func NotFound(c *fiber.Ctx) error {
	return utils.NotFoundResponse(c, "[404] Resource Not Found")
}

// parseQueryList extracts a list parameter, supporting both repeated keys and
// comma-separated values
func parseQueryList(c *fiber.Ctx, name string) []string {
	seen := make(map[string]struct{})
	var out []string

	args := c.Context().QueryArgs()
	for key, value := range args.All() {
		if string(key) != name {
			continue
		}
		for _, v := range strings.Split(string(value), ",") {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}
