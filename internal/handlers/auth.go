package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/guau-api/internal/config"
	"github.com/localnerve/guau-api/internal/middleware"
	"github.com/localnerve/guau-api/internal/models"
	"github.com/localnerve/guau-api/internal/services"
	"github.com/localnerve/guau-api/internal/utils"
	"gorm.io/gorm"
)

// AuthHandler handles local accounts when AUTH_PROVIDER=jwt
type AuthHandler struct {
	DB     *gorm.DB
	Config *config.Config
}

// SignupRequest is the body of POST /api/auth/signup
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"max=255"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest is the body of POST /api/auth/login
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SessionResponse is returned by signup and login
type SessionResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *models.User `json:"user"`
}

func (h *AuthHandler) issue(c *fiber.Ctx, user *models.User, status int) error {
	token, expires, err := services.IssueToken(user, h.Config.JWTSecret, h.Config.JWTTTL)
	if err != nil {
		return mapServiceError(c, err, "auth.token")
	}
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Expires:  expires,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return utils.SuccessResponse(c, SessionResponse{Token: token, ExpiresAt: expires, User: user}, status)
}

// Signup handles POST /api/auth/signup
// @Summary Create a local account
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body SignupRequest true "Account"
// @Success 201 {object} SessionResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var body SignupRequest
	if err := parseBody(c, &body); err != nil {
		return err
	}

	user, err := services.Signup(c.UserContext(), h.DB, services.SignupInput{
		Email:    body.Email,
		Name:     body.Name,
		Password: body.Password,
	})
	if err != nil {
		return mapServiceError(c, err, "auth.signup")
	}
	return h.issue(c, user, fiber.StatusCreated)
}

// Login handles POST /api/auth/login
// @Summary Log in with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body LoginRequest
	if err := parseBody(c, &body); err != nil {
		return err
	}

	user, err := services.Login(c.UserContext(), h.DB, body.Email, body.Password)
	if err != nil {
		return mapServiceError(c, err, "auth.login")
	}
	return h.issue(c, user, fiber.StatusOK)
}

// Me handles GET /api/auth/me
// @Summary Current user
// @Tags Auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Security CookieAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	user, err := services.GetUser(c.UserContext(), h.DB, p.UserID)
	if err != nil {
		return mapServiceError(c, err, "auth.me")
	}
	return utils.SuccessResponse(c, user, fiber.StatusOK)
}
