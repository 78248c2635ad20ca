package login

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/finansync/finansync-api/internal/auth"
	"github.com/finansync/finansync-api/internal/config"
	"github.com/finansync/finansync-api/internal/dto"
	"github.com/finansync/finansync-api/internal/validation"
	"github.com/finansync/finansync-api/internal/web/handler"
)

const (
	// Path is the path of the token endpoint.
	Path = "/auth/token"
)

// Service is the login handler service.
type Service struct {
	cfg       *config.Config
	provider  *auth.LocalProvider
	tokens    *auth.TokenService
	validator *validation.Validator
}

// Handler is the login handler.
var Handler = Service{}

// Init initializes the login handler. The token endpoint is public, authn is not used.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, _ fiber.Handler) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	tokens, err := auth.NewTokenService(cfg.Authentication.Bearer)
	if err != nil {
		return err
	}

	s.cfg = cfg
	s.provider = auth.NewLocalProvider(db)
	s.tokens = tokens
	s.validator = validation.New()

	// register routes
	app.Route(Path, func(router fiber.Router) {
		router.Post(handler.RootPath, s.Post)
	})

	return nil
}

// Post checks the credentials and returns a bearer token.
func (s *Service) Post(c *fiber.Ctx) error {
	req := new(dto.AuthenticationRequest)

	if err := c.BodyParser(req); err != nil {
		return handler.Problem(c, fiber.StatusBadRequest, "Bad Request", ErrInvalidFormData.Error())
	}

	errs, err := s.validator.Fields(req)
	if err != nil {
		return err
	}

	if len(errs) > 0 {
		return handler.ValidationProblem(c, errs)
	}

	user, err := s.provider.Authenticate(c.UserContext(), req.UserName, req.Password)

	switch {
	case errors.Is(err, auth.ErrUserNotFound),
		errors.Is(err, auth.ErrInvalidPassword),
		errors.Is(err, auth.ErrUserAccountDisabled):
		log.Info().Err(err).Str("user", req.UserName).Str("ip", c.IP()).Msg("login failed")
		return handler.Problem(c, fiber.StatusUnauthorized, "Unauthorized", ErrInvalidCredentials.Error())
	case err != nil:
		return err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return err
	}

	return c.JSON(dto.AuthenticationResponse{
		BearerToken:         token.Value,
		TokenExpirationTime: token.ExpirationDate,
	})
}
