package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/guau-api/internal/models"
	"github.com/localnerve/guau-api/internal/services"
	"github.com/localnerve/guau-api/internal/types"
	"github.com/localnerve/guau-api/internal/utils"
	"gorm.io/gorm"
)

// AchievementHandler serves the catalog and user grants
type AchievementHandler struct {
	DB *gorm.DB
}

// AchievementRequest is the body of POST /api/admin/achievements
type AchievementRequest struct {
	Code        string            `json:"code" validate:"required,max=64"`
	Name        string            `json:"name" validate:"required,max=255"`
	Description string            `json:"description" validate:"max=1024"`
	Icon        string            `json:"icon" validate:"max=64"`
	Type        string            `json:"type" validate:"required,oneof=kilometers events special"`
	Threshold   types.FlexFloat64 `json:"threshold"`
}

// Catalog handles GET /api/achievements
// @Summary Achievement catalog
// @Tags Achievements
// @Produce json
// @Success 200 {array} models.Achievement
// @Router /achievements [get]
func (h *AchievementHandler) Catalog(c *fiber.Ctx) error {
	list, err := services.ListAchievements(c.UserContext(), h.DB)
	if err != nil {
		return mapServiceError(c, err, "achievements.catalog")
	}
	return utils.SuccessResponse(c, list, fiber.StatusOK)
}

// Mine handles GET /api/me/achievements
// @Summary My unlocked achievements
// @Tags Me
// @Produce json
// @Success 200 {array} models.UserAchievement
// @Security BearerAuth
// @Security CookieAuth
// @Router /me/achievements [get]
func (h *AchievementHandler) Mine(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	list, err := services.ListUserAchievements(c.UserContext(), h.DB, p.UserID)
	if err != nil {
		return mapServiceError(c, err, "achievements.mine")
	}
	if list == nil {
		list = []models.UserAchievement{}
	}
	return utils.SuccessResponse(c, list, fiber.StatusOK)
}

// Welcome handles POST /api/achievements/welcome
// @Summary Grant the welcome achievement
// @Description Idempotent. A repeat call answers success=false.
// @Tags Achievements
// @Produce json
// @Success 200 {object} services.WelcomeResult
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Security CookieAuth
// @Router /achievements/welcome [post]
func (h *AchievementHandler) Welcome(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	res, err := services.GrantWelcomeAchievement(c.UserContext(), h.DB, p.UserID)
	if err != nil {
		return mapServiceError(c, err, "achievements.welcome")
	}
	return utils.SuccessResponse(c, res, fiber.StatusOK)
}

// Create handles POST /api/admin/achievements
// @Summary Add a catalog achievement
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body AchievementRequest true "Achievement"
// @Success 201 {object} models.Achievement
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Security CookieAuth
// @Router /admin/achievements [post]
func (h *AchievementHandler) Create(c *fiber.Ctx) error {
	var body AchievementRequest
	if err := parseBody(c, &body); err != nil {
		return err
	}

	a, err := services.CreateAchievement(c.UserContext(), h.DB, services.AchievementInput{
		Code:        body.Code,
		Name:        body.Name,
		Description: body.Description,
		Icon:        body.Icon,
		Type:        body.Type,
		Threshold:   body.Threshold.Float64(),
	})
	if err != nil {
		return mapServiceError(c, err, "achievements.create")
	}
	return utils.SuccessResponse(c, a, fiber.StatusCreated)
}
