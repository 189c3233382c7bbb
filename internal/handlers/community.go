package handlers

import (
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/guau-api/internal/config"
	"github.com/localnerve/guau-api/internal/services"
	"github.com/localnerve/guau-api/internal/utils"
	"gorm.io/gorm"
)

// CommunityHandler serves public, unauthenticated data
type CommunityHandler struct {
	DB     *gorm.DB
	Config *config.Config
}

// Leaderboard handles GET /api/leaderboard
// @Summary Top walkers by total kilometers
// @Description Without ?limit the public leaderboard_size setting applies
// @Tags Community
// @Produce json
// @Param limit query int false "Entries (max 100)"
// @Success 200 {array} services.LeaderboardEntry
// @Router /leaderboard [get]
func (h *CommunityHandler) Leaderboard(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)
	if limit == 0 {
		limit = h.configuredSize(c)
	}

	board, err := services.Leaderboard(c.UserContext(), h.DB, limit)
	if err != nil {
		return mapServiceError(c, err, "community.leaderboard")
	}
	if board == nil {
		board = []services.LeaderboardEntry{}
	}
	return utils.SuccessResponse(c, board, fiber.StatusOK)
}

func (h *CommunityHandler) configuredSize(c *fiber.Ctx) int {
	cfg, err := services.PublicConfig(c.UserContext(), h.DB)
	if err != nil {
		slog.WarnContext(c.UserContext(), "failed to read leaderboard size, using default", "error", err)
		return 0
	}
	raw, ok := cfg["leaderboard_size"]
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(string(raw))
	if err != nil {
		slog.WarnContext(c.UserContext(), "leaderboard_size is not an integer, using default", "value", string(raw))
		return 0
	}
	return n
}

// PublicConfig handles GET /api/config
// @Summary Public settings
// @Tags Community
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /config [get]
func (h *CommunityHandler) PublicConfig(c *fiber.Ctx) error {
	cfg, err := services.PublicConfig(c.UserContext(), h.DB)
	if err != nil {
		return mapServiceError(c, err, "community.config")
	}
	return utils.SuccessResponse(c, cfg, fiber.StatusOK)
}

// Health handles GET /health
// @Summary Service health
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *CommunityHandler) Health(c *fiber.Ctx) error {
	res := services.HealthCheck(c.UserContext(), h.Config, h.DB)
	status := fiber.StatusOK
	if res.Status != "healthy" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(res)
}
