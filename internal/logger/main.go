// Package logger configures the global zerolog logger of the service.
package logger

import (
	"fmt"
	"io"
	"os"
	"path"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LevelWriter splits log output by level.
// Trace, warn and error (and up) each get their own writer, debug and info share InfoWriter.
type LevelWriter struct {
	io.Writer
	ErrorWriter io.Writer
	InfoWriter  io.Writer
	TraceWriter io.Writer
	WarnWriter  io.Writer
}

// WriteLevel implements zerolog.LevelWriter.
func (lw *LevelWriter) WriteLevel(l zerolog.Level, p []byte) (n int, err error) {
	var w io.Writer

	switch {
	case l == zerolog.Disabled:
		return 0, nil
	case l == zerolog.TraceLevel:
		w = lw.TraceWriter
	case l == zerolog.WarnLevel:
		w = lw.WarnWriter
	case l > zerolog.WarnLevel:
		w = lw.ErrorWriter
	default:
		w = lw.InfoWriter
	}

	return w.Write(p) //nolint:wrapcheck
}

// Init the zerolog logger.
// Depending on the config it enables all, some or no writer at all.
func Init(cfg Log) error {
	logLevel, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return errors.Wrap(err, fmt.Sprintf("loglevel %s is not supported", cfg.LogLevel))
	}

	if cfg.ServiceName == "" {
		return ErrServiceNameIsEmpty
	}

	if cfg.AppName == "" {
		return ErrAppNameIsEmpty
	}

	stack := logLevel == zerolog.TraceLevel
	if stack {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack //nolint:reassign
	}

	zerolog.SetGlobalLevel(logLevel)
	zerolog.ErrorHandler = WriteErrorHandler //nolint:reassign

	var writers []io.Writer

	if cfg.Console.Enabled {
		writers = append(writers, NewConsoleWriter(cfg))
	}

	if cfg.File.Enabled {
		if fw := newRollingLevelFiles(cfg.File); fw != nil {
			writers = append(writers, fw)
		}
	}

	ctx := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Hook(NewPrometheusHook(cfg.ServiceName)).
		With().
		Timestamp().
		Str("app", cfg.AppName)

	switch {
	case cfg.ReportCaller && stack:
		ctx = ctx.Stack()
	case cfg.ReportCaller:
		ctx = ctx.Caller()
	}

	log.Logger = ctx.Logger()

	return nil
}

// RollingFile returns a lumberjack writer below dir.
func RollingFile(dir, name string, maxSize, maxAge, maxBackups int) io.Writer {
	return &lumberjack.Logger{
		Filename:   path.Join(dir, name),
		MaxSize:    maxSize,
		MaxAge:     maxAge,
		MaxBackups: maxBackups,
	}
}

// newRollingLevelFiles writes every level group into its own rotated file.
func newRollingLevelFiles(f LogFile) io.Writer {
	if err := os.MkdirAll(f.Path, 0o750); err != nil { //nolint: mnd
		log.Error().Err(err).Str("path", f.Path).Msg("can't create log directory")

		return nil
	}

	return &LevelWriter{
		ErrorWriter: RollingFile(f.Path, f.ErrorLog, f.ErrorMaxSize, f.ErrorMaxAge, f.ErrorMaxBackups),
		InfoWriter:  RollingFile(f.Path, f.InfoLog, f.InfoMaxSize, f.InfoMaxAge, f.InfoMaxBackups),
		TraceWriter: RollingFile(f.Path, f.TraceLog, f.TraceMaxSize, f.TraceMaxAge, f.TraceMaxBackups),
		WarnWriter:  RollingFile(f.Path, f.WarnLog, f.WarnMaxSize, f.WarnMaxAge, f.WarnMaxBackups),
	}
}

// NewConsoleWriter sends info and debug to stdout and everything else to stderr,
// optionally through a human readable zerolog.ConsoleWriter.
func NewConsoleWriter(cfg Log) io.Writer {
	wrap := func(out *os.File) io.Writer {
		if !cfg.Console.UseConsoleWriter {
			return out
		}

		return zerolog.ConsoleWriter{Out: out, TimeFormat: zerolog.TimeFieldFormat}
	}

	return &LevelWriter{
		ErrorWriter: wrap(os.Stderr),
		InfoWriter:  wrap(os.Stdout),
		TraceWriter: wrap(os.Stderr),
		WarnWriter:  wrap(os.Stderr),
	}
}
