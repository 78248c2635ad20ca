// Package fiber provides a zerolog based access log middleware for fiber.
package fiber

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/finansync/finansync-api/internal/logger"
)

// Config implements fiber middleware struct.
type Config struct {
	// Next defines a function to skip this middleware when returned true.
	//
	// Optional. Default: nil
	Next func(c *fiber.Ctx) bool

	// Config of the logger.
	Config logger.Log

	// CacheControlError max-age caching on chain errors.
	CacheControlError string

	// CheckAliveURI for disabling logging of check alive http calls.
	CheckAliveURI string

	// UserIDLocal is the fiber.Locals key holding the authenticated user id.
	// The id is added to the access log entry when present.
	UserIDLocal string
}

// ConfigDefault is the default config for fiber.
var ConfigDefault = Config{
	CacheControlError: "max-age=0",
}

func configDefault(config ...Config) Config {
	if len(config) < 1 {
		return ConfigDefault
	}

	cfg := config[0]

	if cfg.CacheControlError == "" {
		cfg.CacheControlError = ConfigDefault.CacheControlError
	}

	return cfg
}

// New creates a new fiber access logging middleware using zerolog.
func New(config ...Config) fiber.Handler {
	var (
		cfg        = configDefault(config...)
		once       sync.Once
		errHandler fiber.ErrorHandler
	)

	accessLog := zerolog.New(zerolog.MultiLevelWriter(accessWriters(&cfg.Config)...)).
		With().
		Timestamp().
		Logger().
		Level(zerolog.NoLevel)

	return func(ctx *fiber.Ctx) error {
		if cfg.Next != nil && cfg.Next(ctx) {
			return ctx.Next()
		}

		once.Do(func() {
			errHandler = ctx.App().ErrorHandler
		})

		start := time.Now()

		chainErr := ctx.Next()
		if chainErr != nil {
			if errH := errHandler(ctx, chainErr); errH != nil {
				_ = ctx.SendStatus(fiber.StatusInternalServerError) //nolint:errcheck // ok here
				ctx.Response().Header.Set(fiber.HeaderCacheControl, cfg.CacheControlError)
			}
		}

		elapsed := time.Since(start).Seconds()
		ctx.Response().Header.Set("X-Performance", fmt.Sprintf("%f", elapsed))

		if cfg.Config.DisableCheckAlive && cfg.CheckAliveURI != "" && ctx.Path() == cfg.CheckAliveURI {
			return nil
		}

		// fasthttp normalizes the request path, the original one is logged
		uri := string(ctx.Request().URI().PathOriginal())
		if qs := ctx.Request().URI().QueryString(); len(qs) > 0 {
			uri = uri + "?" + string(qs)
		}

		entry := accessLog.Log().
			Str("IP", ctx.IP()).
			Int("status", ctx.Response().StatusCode()).
			Float64("X-Performance", elapsed).
			Str("URI", uri).
			Str("method", ctx.Method()).
			Bytes("host", ctx.Request().Host()).
			Str(fiber.HeaderXForwardedFor, ctx.Get(fiber.HeaderXForwardedFor)).
			Str(fiber.HeaderUserAgent, ctx.Get(fiber.HeaderUserAgent)).
			Str(fiber.HeaderOrigin, ctx.Get(fiber.HeaderOrigin)).
			Str(fiber.HeaderReferer, ctx.Get(fiber.HeaderReferer))

		if cfg.UserIDLocal != "" {
			if userID, ok := ctx.Locals(cfg.UserIDLocal).(string); ok && userID != "" {
				entry.Str("user", userID)
			}
		}

		if chainErr != nil {
			entry.Err(chainErr)
		}

		entry.Send()

		return nil
	}
}

func accessWriters(cfg *logger.Log) []io.Writer {
	var writers []io.Writer

	if cfg.File.Enabled {
		if err := os.MkdirAll(cfg.File.Path, 0o750); err != nil {
			log.Error().Err(err).Str("path", cfg.File.Path).Msg("can't create log directory")
		} else {
			writers = append(writers, logger.RollingFile(
				cfg.File.Path,
				cfg.File.AccessLog,
				cfg.File.AccessMaxSize,
				cfg.File.AccessMaxAge,
				cfg.File.AccessMaxBackups,
			))
		}
	}

	if cfg.Console.Enabled && cfg.EnableAccessLogToConsole {
		if cfg.Console.UseConsoleWriter {
			writers = append(writers, zerolog.ConsoleWriter{
				Out:          os.Stdout,
				TimeFormat:   zerolog.TimeFieldFormat,
				PartsExclude: []string{"level"},
			})
		} else {
			writers = append(writers, os.Stdout)
		}
	}

	return writers
}
