package logger_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finansync/finansync-api/internal/logger"
)

func TestLogger(t *testing.T) {
	testCases := []struct {
		name             string
		cfg              logger.Log
		shouldHaveOutPut bool
		outPutIsJSON     bool
	}{
		{
			name: "no logger enabled log level not set",
			cfg: logger.Log{
				ServiceName: "test",
				AppName:     "test",
			},
		},
		{
			name: "console enabled log level info",
			cfg: logger.Log{
				LogLevel:    "info",
				ServiceName: "test",
				AppName:     "test",
				Console:     logger.Console{Enabled: true},
			},
			shouldHaveOutPut: true,
			outPutIsJSON:     true,
		},
		{
			name: "console writer enabled",
			cfg: logger.Log{
				LogLevel:    "info",
				ServiceName: "test",
				AppName:     "test",
				Console:     logger.Console{Enabled: true, UseConsoleWriter: true},
			},
			shouldHaveOutPut: true,
		},
		{
			name: "trace with caller and stack",
			cfg: logger.Log{
				LogLevel:     "trace",
				ServiceName:  "test",
				AppName:      "test",
				ReportCaller: true,
				Console:      logger.Console{Enabled: true},
			},
			shouldHaveOutPut: true,
			outPutIsJSON:     true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := captureLoggerOutput(t, tc.cfg)

			if !tc.shouldHaveOutPut {
				assert.Empty(t, out)
				return
			}

			require.NotEmpty(t, out)

			if !tc.outPutIsJSON {
				return
			}

			scanner := bufio.NewScanner(strings.NewReader(out))
			for scanner.Scan() {
				line := scanner.Text()
				if line == "" {
					continue
				}

				var entry struct {
					Level   string `json:"level"`
					App     string `json:"app"`
					Message string `json:"message"`
				}

				require.NoError(t, json.Unmarshal([]byte(line), &entry), "expected json output but got: %s", line)
				assert.Equal(t, "test", entry.App)
			}
		})
	}
}

func TestInitErrors(t *testing.T) {
	tests := []struct {
		name    string
		cfg     logger.Log
		wantErr error
	}{
		{
			name: "unknown level",
			cfg:  logger.Log{LogLevel: "loud", ServiceName: "s", AppName: "a"},
		},
		{
			name:    "missing service name",
			cfg:     logger.Log{LogLevel: "info", AppName: "a"},
			wantErr: logger.ErrServiceNameIsEmpty,
		},
		{
			name:    "missing app name",
			cfg:     logger.Log{LogLevel: "info", ServiceName: "s"},
			wantErr: logger.ErrAppNameIsEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := logger.Init(tt.cfg)
			require.Error(t, err)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestLevelWriter(t *testing.T) {
	var info, warn, trace, errBuf bytes.Buffer

	lw := &logger.LevelWriter{
		InfoWriter:  &info,
		WarnWriter:  &warn,
		TraceWriter: &trace,
		ErrorWriter: &errBuf,
	}

	writes := map[zerolog.Level]string{
		zerolog.TraceLevel: "t",
		zerolog.DebugLevel: "d",
		zerolog.InfoLevel:  "i",
		zerolog.WarnLevel:  "w",
		zerolog.ErrorLevel: "e",
		zerolog.FatalLevel: "f",
		zerolog.Disabled:   "x",
	}

	for level, p := range writes {
		_, err := lw.WriteLevel(level, []byte(p))
		require.NoError(t, err)
	}

	assert.Equal(t, "t", trace.String())
	assert.Equal(t, "w", warn.String())
	assert.ElementsMatch(t, []byte("di"), info.Bytes())
	assert.ElementsMatch(t, []byte("ef"), errBuf.Bytes())
}

func TestFileLogger(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	err := logger.Init(logger.Log{
		LogLevel:    "info",
		ServiceName: "test",
		AppName:     "test",
		File: logger.LogFile{
			Enabled:      true,
			Path:         dir,
			InfoLog:      "info.log",
			InfoMaxSize:  1,
			ErrorLog:     "error.log",
			ErrorMaxSize: 1,
			WarnLog:      "warn.log",
			WarnMaxSize:  1,
			TraceLog:     "trace.log",
			TraceMaxSize: 1,
		},
	})
	require.NoError(t, err)

	log.Info().Msg("to the info file")
	log.Error().Err(errors.New("boom")).Msg("to the error file")

	infoContent, err := os.ReadFile(filepath.Join(dir, "info.log"))
	require.NoError(t, err)
	assert.Contains(t, string(infoContent), "to the info file")

	errorContent, err := os.ReadFile(filepath.Join(dir, "error.log"))
	require.NoError(t, err)
	assert.Contains(t, string(errorContent), "boom")
}

func captureLoggerOutput(t *testing.T, cfg logger.Log) string {
	t.Helper()

	stdout := os.Stdout
	stderr := os.Stderr

	r, w, err := os.Pipe()
	require.NoError(t, err)

	os.Stdout = w
	os.Stderr = w

	require.NoError(t, logger.Init(cfg))

	log.Info().Msg("this info message should be seen...")
	log.Error().Err(errors.New("a test error")).Msg("this err message should be seen...")
	log.Trace().Msg("this trace message should be seen...")

	outC := make(chan string)

	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	_ = w.Close()
	os.Stdout = stdout
	os.Stderr = stderr

	return <-outC
}
