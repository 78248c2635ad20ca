// Package web wires the HTTP API of FinanSync.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/finansync/finansync-api/internal/auth"
	"github.com/finansync/finansync-api/internal/config"
	fiberlogger "github.com/finansync/finansync-api/internal/logger/adapter/fiber"
	"github.com/finansync/finansync-api/internal/service/account"
	"github.com/finansync/finansync-api/internal/service/transaction"
	"github.com/finansync/finansync-api/internal/validation"
	"github.com/finansync/finansync-api/internal/web/handler"
	"github.com/finansync/finansync-api/internal/web/handler/crud"
	"github.com/finansync/finansync-api/internal/web/handler/login"
	"github.com/finansync/finansync-api/internal/web/handler/settings"
	"github.com/finansync/finansync-api/internal/web/handler/user"
	authmiddleware "github.com/finansync/finansync-api/internal/web/middleware/auth"
)

const (
	// CheckAlivePath answers 200 while the service accepts traffic.
	CheckAlivePath = "/checkalive"

	// MetricsPath exposes the prometheus metrics.
	MetricsPath = "/metrics"

	// AccountsPath and TransactionsPath are the CRUD resources.
	AccountsPath     = "/accounts"
	TransactionsPath = "/transactions"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	db           *gorm.DB
	tokens       *auth.TokenService
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan error, 1)

	go func() {
		err := s.App.Listen(addr)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("fiber listen error")
		}

		doneFiber <- err
	}()

	return <-doneFiber // wait for fiber to stop
}

// WaitShutdown waits for SIGINT or SIGTERM and shuts the http server down gracefully.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	s.Shutdown()
}

// Shutdown stops the http server. Unless fast shutdown is set, checkalive
// returns 503 for Webserver.ShutDownTime seconds before, so load balancers
// can remove this instance from their targets.
func (s *Service) Shutdown() {
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	log.Info().Msg("stopping http server ...")

	if err := s.App.Shutdown(); err != nil {
		log.Error().Err(err).Msg("")
	}

	log.Info().Msg("http server was stopped ... good bye...")
}

// SetFastShutDown skips the checkalive grace period on shutdown.
func (s *Service) SetFastShutDown(fast bool) {
	s.fastShutDown = fast
}

// Alive reports whether checkalive currently answers 200.
func (s *Service) Alive() bool {
	return s.alive.Load()
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, db *gorm.DB) (*Service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if db == nil {
		return nil, errors.New("db cannot be nil")
	}

	tokens, err := auth.NewTokenService(cfg.Authentication.Bearer)
	if err != nil {
		return nil, err
	}

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			BodyLimit:      cfg.Webserver.BodyLimit,
			ErrorHandler:   errorHandler,
		},
	)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New(recover.Config{EnableStackTrace: cfg.DevMode}))
	}

	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
		UserIDLocal:   handler.UserIDLocal,
	}))

	service := &Service{
		cfg:    cfg,
		App:    app,
		db:     db,
		tokens: tokens,
	}
	service.alive.Store(true)

	app.Get(CheckAlivePath, service.checkAlive)
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	authn := authmiddleware.New(tokens)
	v := validation.New()

	handlers := []handler.Service{
		&login.Handler,
		&user.Handler,
		&settings.Handler,
		crud.New(AccountsPath, account.New(db, v)),
		crud.New(TransactionsPath, transaction.New(db, v)),
	}

	for _, h := range handlers {
		if err = h.Init(app, cfg, db, authn); err != nil {
			return nil, err
		}
	}

	return service, nil
}

func (s *Service) checkAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.SendStatus(fiber.StatusServiceUnavailable)
	}

	return c.SendString("OK")
}

// errorHandler renders errors returned by handlers as problem responses.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return handler.Problem(c, fe.Code, http.StatusText(fe.Code), fe.Message)
	}

	log.Error().Err(err).Str("path", c.Path()).Str("method", c.Method()).Msg("unhandled error")

	return handler.Problem(c, fiber.StatusInternalServerError, "Internal Server Error", "")
}
