package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/guau-api/internal/config"
	"github.com/localnerve/guau-api/internal/middleware"
	"github.com/localnerve/guau-api/internal/services"
	"gorm.io/gorm"
)

// Deps are what the route table needs
type Deps struct {
	DB              *gorm.DB
	Config          *config.Config
	Verifier        services.SessionVerifier
	AttendanceHooks []services.AttendanceHook
}

// AttendanceHooks returns the hooks the configuration enables
func AttendanceHooks(cfg *config.Config) []services.AttendanceHook {
	hooks := []services.AttendanceHook{services.NotifyAttendanceHook}
	if cfg.AttendanceCreditsProgress {
		hooks = append(hooks, services.CreditAttendanceHook)
	}
	return hooks
}

// Register mounts /health and the /api tree on app
func Register(app *fiber.App, d Deps) {
	community := &CommunityHandler{DB: d.DB, Config: d.Config}
	auth := &AuthHandler{DB: d.DB, Config: d.Config}
	codes := &CodeHandler{DB: d.DB}
	events := &EventHandler{DB: d.DB}
	attendance := &AttendanceHandler{DB: d.DB, Hooks: d.AttendanceHooks}
	achievements := &AchievementHandler{DB: d.DB}
	me := &MeHandler{DB: d.DB}
	admin := &AdminHandler{DB: d.DB}

	user := middleware.AuthUser(d.Verifier)
	adminOnly := middleware.AuthAdmin(d.Verifier)

	app.Get("/health", community.Health)

	api := app.Group("/api", middleware.VersionMiddleware())

	// Public
	api.Get("/events", events.List)
	api.Get("/events/:id", events.Get)
	api.Get("/achievements", achievements.Catalog)
	api.Get("/leaderboard", community.Leaderboard)
	api.Get("/config", community.PublicConfig)

	// Local accounts
	if d.Config.AuthProvider == "jwt" {
		api.Post("/auth/signup", auth.Signup)
		api.Post("/auth/login", auth.Login)
	}
	api.Get("/auth/me", user, auth.Me)

	// Users
	api.Post("/codes/redeem", user, codes.Redeem)
	api.Post("/events/register", user, events.Register)
	api.Delete("/events/:id/registration", user, events.Cancel)
	api.Post("/achievements/welcome", user, achievements.Welcome)

	mine := api.Group("/me", user)
	mine.Get("/progress", me.Progress)
	mine.Get("/achievements", achievements.Mine)
	mine.Get("/registrations", events.MyRegistrations)
	mine.Get("/dogs", me.Dogs)
	mine.Post("/dogs", me.CreateDog)
	mine.Delete("/dogs/:id", me.DeleteDog)
	mine.Get("/walks", me.Walks)
	mine.Post("/walks", me.LogWalk)
	mine.Get("/notifications", me.Notifications)
	mine.Patch("/notifications/read", me.MarkRead)

	// Admins
	adm := api.Group("/admin", adminOnly)
	adm.Post("/attendance/confirm", attendance.ConfirmByID)
	adm.Post("/attendance/confirm-code", attendance.ConfirmByCode)
	adm.Get("/events", events.AdminList)
	adm.Post("/events", events.Create)
	adm.Put("/events/:id", events.Update)
	adm.Delete("/events/:id", events.Deactivate)
	adm.Get("/events/:id/participants", events.Participants)
	adm.Post("/events/:id/codes", codes.Create)
	adm.Get("/events/:id/codes", codes.List)
	adm.Delete("/codes/:id", codes.Delete)
	adm.Post("/achievements", achievements.Create)
	adm.Post("/notifications", admin.Broadcast)
	adm.Get("/users", admin.Users)
	adm.Patch("/users/:id/role", admin.SetRole)
	adm.Put("/config/:key", admin.SetConfig)
}
