package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"pickaname/internal/db"
	"pickaname/internal/services"
)

// Handler carries the services and cookie settings every route needs.
type Handler struct {
	log          zerolog.Logger
	repos        *db.Repositories
	sessions     *services.SessionService
	auth         *services.AuthService
	names        *services.NameService
	prefs        *services.PreferenceService
	groups       *services.GroupService
	cookieSecure bool
	cookieDomain string
}

func NewHandler(database *gorm.DB, log zerolog.Logger, cookieSecure bool, cookieDomain string) *Handler {
	repos := db.NewRepositories(database)

	sessions := services.NewSessionService(repos.Users)
	lockout := services.NewLockoutGuard(repos.FailedLogins)

	return &Handler{
		log:          log.With().Str("component", "api").Logger(),
		repos:        repos,
		sessions:     sessions,
		auth:         services.NewAuthService(repos.Users, repos.Groups, sessions, lockout),
		names:        services.NewNameService(repos.Names),
		prefs:        services.NewPreferenceService(repos.Preferences),
		groups:       services.NewGroupService(repos.Groups),
		cookieSecure: cookieSecure,
		cookieDomain: cookieDomain,
	}
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.SendString("ok")
}
