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

// MeHandler serves the caller's own ledger, dogs, walks and notifications
type MeHandler struct {
	DB *gorm.DB
}

// ProgressResponse is the ledger plus the distance to the next level
type ProgressResponse struct {
	*models.UserProgress
	NextLevelAt int `json:"nextLevelAt"`
}

// DogRequest is the body of POST /api/me/dogs
type DogRequest struct {
	Name      string     `json:"name" validate:"required,max=255"`
	Breed     string     `json:"breed" validate:"max=255"`
	BirthDate *time.Time `json:"birthDate"`
	PhotoURL  string     `json:"photoUrl" validate:"omitempty,url,max=1024"`
}

// WalkRequest is the body of POST /api/me/walks
type WalkRequest struct {
	DogID           *string           `json:"dogId"`
	Kilometers      types.FlexFloat64 `json:"kilometers"`
	DurationMinutes int               `json:"durationMinutes" validate:"min=0"`
	WalkedAt        *time.Time        `json:"walkedAt"`
	Notes           string            `json:"notes" validate:"max=1024"`
}

// MarkReadRequest is the body of PATCH /api/me/notifications/read. Empty ids
// marks everything read.
type MarkReadRequest struct {
	IDs types.FlexList[string] `json:"ids"`
}

// Progress handles GET /api/me/progress
// @Summary My progress ledger
// @Tags Me
// @Produce json
// @Success 200 {object} ProgressResponse
// @Security BearerAuth
// @Security CookieAuth
// @Router /me/progress [get]
func (h *MeHandler) Progress(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	progress, err := services.GetProgress(c.UserContext(), h.DB, p.UserID)
	if err != nil {
		return mapServiceError(c, err, "me.progress")
	}
	return utils.SuccessResponse(c, ProgressResponse{
		UserProgress: progress,
		NextLevelAt:  progress.CurrentLevel * services.XPPerLevel,
	}, fiber.StatusOK)
}

// Dogs handles GET /api/me/dogs
// @Summary My dogs
// @Tags Me
// @Produce json
// @Success 200 {array} models.Dog
// @Security BearerAuth
// @Security CookieAuth
// @Router /me/dogs [get]
func (h *MeHandler) Dogs(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	dogs, err := services.ListDogs(c.UserContext(), h.DB, p.UserID)
	if err != nil {
		return mapServiceError(c, err, "me.dogs")
	}
	if dogs == nil {
		dogs = []models.Dog{}
	}
	return utils.SuccessResponse(c, dogs, fiber.StatusOK)
}

// CreateDog handles POST /api/me/dogs
// @Summary Add a dog
// @Tags Me
// @Accept json
// @Produce json
// @Param body body DogRequest true "Dog"
// @Success 201 {object} models.Dog
// @Failure 400 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Security CookieAuth
// @Router /me/dogs [post]
func (h *MeHandler) CreateDog(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var body DogRequest
	if err := parseBody(c, &body); err != nil {
		return err
	}

	dog, err := services.CreateDog(c.UserContext(), h.DB, p.UserID, services.DogInput{
		Name:      body.Name,
		Breed:     body.Breed,
		BirthDate: body.BirthDate,
		PhotoURL:  body.PhotoURL,
	})
	if err != nil {
		return mapServiceError(c, err, "me.createDog")
	}
	return utils.SuccessResponse(c, dog, fiber.StatusCreated)
}

// DeleteDog handles DELETE /api/me/dogs/:id
// @Summary Remove a dog
// @Tags Me
// @Produce json
// @Param id path string true "Dog ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Security CookieAuth
// @Router /me/dogs/{id} [delete]
func (h *MeHandler) DeleteDog(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	if err := services.DeleteDog(c.UserContext(), h.DB, p.UserID, c.Params("id")); err != nil {
		return mapServiceError(c, err, "me.deleteDog")
	}
	return utils.MessageResponse(c, "Dog removed", nil)
}

// Walks handles GET /api/me/walks
// @Summary My walks
// @Tags Me
// @Produce json
// @Param limit query int false "Page size (max 200)"
// @Success 200 {array} models.Walk
// @Security BearerAuth
// @Security CookieAuth
// @Router /me/walks [get]
func (h *MeHandler) Walks(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	walks, err := services.ListWalks(c.UserContext(), h.DB, p.UserID, c.QueryInt("limit", 50))
	if err != nil {
		return mapServiceError(c, err, "me.walks")
	}
	if walks == nil {
		walks = []models.Walk{}
	}
	return utils.SuccessResponse(c, walks, fiber.StatusOK)
}

// LogWalk handles POST /api/me/walks
// @Summary Log a walk
// @Description Credits the kilometers to the ledger and evaluates achievements
// @Tags Me
// @Accept json
// @Produce json
// @Param body body WalkRequest true "Walk"
// @Success 201 {object} services.WalkResult
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Security CookieAuth
// @Router /me/walks [post]
func (h *MeHandler) LogWalk(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var body WalkRequest
	if err := parseBody(c, &body); err != nil {
		return err
	}

	res, err := services.LogWalk(c.UserContext(), h.DB, p.UserID, services.WalkInput{
		DogID:           body.DogID,
		Kilometers:      body.Kilometers.Float64(),
		DurationMinutes: body.DurationMinutes,
		WalkedAt:        body.WalkedAt,
		Notes:           body.Notes,
	})
	if err != nil {
		return mapServiceError(c, err, "me.logWalk")
	}
	if res.Unlocked == nil {
		res.Unlocked = []models.Achievement{}
	}
	return utils.SuccessResponse(c, res, fiber.StatusCreated)
}

// Notifications handles GET /api/me/notifications
// @Summary My notifications
// @Tags Me
// @Produce json
// @Param unread query bool false "Only unread"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {array} models.Notification
// @Security BearerAuth
// @Security CookieAuth
// @Router /me/notifications [get]
func (h *MeHandler) Notifications(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	list, err := services.ListNotifications(c.UserContext(), h.DB, p.UserID, c.QueryBool("unread", false), c.QueryInt("limit", 0))
	if err != nil {
		return mapServiceError(c, err, "me.notifications")
	}
	if list == nil {
		list = []models.Notification{}
	}
	return utils.SuccessResponse(c, list, fiber.StatusOK)
}

// MarkRead handles PATCH /api/me/notifications/read
// @Summary Mark notifications read
// @Description ids may come from the body or as ?ids=a,b. None marks all.
// @Tags Me
// @Accept json
// @Produce json
// @Param body body MarkReadRequest false "Notification ids"
// @Success 200 {object} utils.MessageResponseStruct
// @Security BearerAuth
// @Security CookieAuth
// @Router /me/notifications/read [patch]
func (h *MeHandler) MarkRead(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	ids := parseQueryList(c, "ids")
	if len(c.Body()) > 0 {
		var body MarkReadRequest
		if err := parseBody(c, &body); err != nil {
			return err
		}
		ids = append(ids, body.IDs.Unique()...)
	}

	n, err := services.MarkNotificationsRead(c.UserContext(), h.DB, p.UserID, ids)
	if err != nil {
		return mapServiceError(c, err, "me.markRead")
	}
	return utils.MessageResponse(c, "Notifications updated", fiber.Map{"updated": n})
}
