// auth.go
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

package middleware

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/guau-api/internal/services"
	"github.com/localnerve/guau-api/internal/types"
)

const (
	// SessionCookie is the Authorizer session cookie name
	SessionCookie = "cookie_session"

	principalKey = "principal"
)

// AuthUser requires a valid session of any role
func AuthUser(v services.SessionVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, err := authenticate(c, v, "auth.user")
		if err != nil {
			return err
		}
		return c.Next()
	}
}

// AuthAdmin requires a valid session with the ADMIN role
func AuthAdmin(v services.SessionVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := authenticate(c, v, "auth.admin")
		if err != nil {
			return err
		}
		if !p.IsAdmin() {
			return &types.CustomError{
				Code:    fiber.StatusForbidden,
				Message: "Admin role required",
				Type:    "auth.admin",
			}
		}
		return c.Next()
	}
}

// CurrentPrincipal returns the caller stored by AuthUser or AuthAdmin
func CurrentPrincipal(c *fiber.Ctx) (*services.Principal, bool) {
	p, ok := c.Locals(principalKey).(*services.Principal)
	return p, ok && p != nil
}

// SetPrincipal stores the caller on the request
func SetPrincipal(c *fiber.Ctx, p *services.Principal) {
	c.Locals(principalKey, p)
}

// sessionToken reads a bearer token, falling back to the session cookie
func sessionToken(c *fiber.Ctx) string {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return c.Cookies(SessionCookie)
}

func authenticate(c *fiber.Ctx, v services.SessionVerifier, errorType string) (*services.Principal, error) {
	token := sessionToken(c)
	if token == "" {
		return nil, &types.CustomError{
			Code:    fiber.StatusUnauthorized,
			Message: "Missing bearer token or \"" + SessionCookie + "\" cookie",
			Type:    errorType,
		}
	}

	p, err := v.Verify(c.UserContext(), token)
	if err != nil {
		if errors.Is(err, services.ErrUnauthenticated) {
			return nil, &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Invalid session",
				Type:    errorType,
			}
		}
		slog.ErrorContext(c.UserContext(), "session verification failed", "path", c.Path(), "error", err)
		return nil, &types.CustomError{
			Code:    fiber.StatusServiceUnavailable,
			Message: "Session provider unavailable",
			Type:    errorType,
		}
	}

	SetPrincipal(c, p)
	return p, nil
}
