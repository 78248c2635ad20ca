// Package settings serves the settings of the authenticated user.
package settings

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/finansync/finansync-api/internal/config"
	"github.com/finansync/finansync-api/internal/dto"
	settingsvc "github.com/finansync/finansync-api/internal/service/settings"
	"github.com/finansync/finansync-api/internal/validation"
	"github.com/finansync/finansync-api/internal/web/handler"
)

const (
	// Path is the path of the settings routes.
	Path = "/user/settings"

	// SetFailedMessage is returned when storing settings failed.
	SetFailedMessage = "Failed to set settings."
	// ResetFailedMessage is returned when resetting settings failed.
	ResetFailedMessage = "Failed to reset settings."
)

// Service is the settings handler service.
type Service struct {
	cfg       *config.Config
	settings  *settingsvc.Service
	validator *validation.Validator
}

// Handler is the settings handler.
var Handler = Service{}

// Init initializes the settings handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authn fiber.Handler) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	if authn == nil {
		return errors.New(handler.ErrNilAuthnMsg)
	}

	s.cfg = cfg
	s.settings = settingsvc.New(db)
	s.validator = validation.New()

	router := app.Group(Path, authn)
	router.Get(handler.RootPath, s.Get)
	router.Post("/set", s.Set)
	router.Post("/reset", s.Reset)

	return nil
}

// Get returns a value for every catalog setting.
func (s *Service) Get(c *fiber.Ctx) error {
	userID, err := handler.UserID(c)
	if err != nil {
		return err
	}

	all, err := s.settings.GetAll(c.UserContext(), userID)
	if err != nil {
		return err
	}

	return c.JSON(all)
}

// Set stores the posted values.
func (s *Service) Set(c *fiber.Ctx) error {
	userID, err := handler.UserID(c)
	if err != nil {
		return err
	}

	var requests []dto.SettingRequest
	if err = c.BodyParser(&requests); err != nil {
		return handler.Problem(c, fiber.StatusBadRequest, "Bad Request", "Invalid request body.")
	}

	errs := make(map[string]string)

	for i := range requests {
		fieldErrs, err := s.validator.Fields(&requests[i])
		if err != nil {
			return err
		}

		for field, msg := range fieldErrs {
			errs[fmt.Sprintf("[%d].%s", i, field)] = msg
		}
	}

	if len(errs) > 0 {
		return handler.ValidationProblem(c, errs)
	}

	res, err := s.settings.Set(c.UserContext(), userID, requests)
	if err != nil {
		return err
	}

	return handler.Respond(c, fiber.StatusOK, res, SetFailedMessage)
}

// Reset sets every stored value back to its default.
func (s *Service) Reset(c *fiber.Ctx) error {
	userID, err := handler.UserID(c)
	if err != nil {
		return err
	}

	res, err := s.settings.Reset(c.UserContext(), userID)
	if err != nil {
		return err
	}

	return handler.Respond(c, fiber.StatusOK, res, ResetFailedMessage)
}
