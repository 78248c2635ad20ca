// Package user serves the profile of the authenticated user.
package user

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/finansync/finansync-api/internal/config"
	usersvc "github.com/finansync/finansync-api/internal/service/user"
	"github.com/finansync/finansync-api/internal/web/handler"
)

const (
	// Path is the path of the profile routes.
	Path = "/user"

	// StatusPath reports whether the authenticated user still exists.
	StatusPath = Path + "/authorization-status"
)

// Service is the user handler service.
type Service struct {
	cfg   *config.Config
	users *usersvc.Service
}

// Handler is the user handler.
var Handler = Service{}

// Init initializes the user handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authn fiber.Handler) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	if authn == nil {
		return errors.New(handler.ErrNilAuthnMsg)
	}

	s.cfg = cfg
	s.users = usersvc.New(db)

	app.Get(Path, authn, s.Get)
	app.Get(StatusPath, authn, s.Status)

	return nil
}

// Get returns the profile with the stored settings.
func (s *Service) Get(c *fiber.Ctx) error {
	userID, err := handler.UserID(c)
	if err != nil {
		return err
	}

	profile, err := s.users.GetProfile(c.UserContext(), userID)
	if err != nil {
		return err
	}

	if profile == nil {
		return handler.Problem(c, fiber.StatusNotFound, "Not Found", "User not found.")
	}

	return c.JSON(profile)
}

// Status answers 200 if the user of the token exists and 404 otherwise.
func (s *Service) Status(c *fiber.Ctx) error {
	userID, err := handler.UserID(c)
	if err != nil {
		return err
	}

	ok, err := s.users.Exists(c.UserContext(), userID)
	if err != nil {
		return err
	}

	if !ok {
		return handler.Problem(c, fiber.StatusNotFound, "Not Found", "User not found.")
	}

	return c.SendStatus(fiber.StatusOK)
}
