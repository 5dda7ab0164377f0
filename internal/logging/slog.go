package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Graylog2/go-gelf/gelf"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

// Outputs lists where diagnostic logs go. Nil fields are skipped.
type Outputs struct {
	// File receives text logs. When nil, logs go to stdout instead.
	File io.Writer
	// Graylog receives JSON logs, usually a *gelf.Writer.
	Graylog io.Writer
	// Provider bridges logs into OpenTelemetry.
	Provider *sdklog.LoggerProvider
}

// SlogManager manages slog-based logging with optional Graylog and OTel integration.
type SlogManager struct {
	logger *slog.Logger

	// OTel provider for flushing
	logProvider *sdklog.LoggerProvider
}

// NewSlogManager creates a new slog-based logging manager.
func NewSlogManager() *SlogManager {
	return &SlogManager{}
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewGraylogWriter dials the GELF UDP endpoint at address.
func NewGraylogWriter(address string) (*gelf.Writer, error) {
	w, err := gelf.NewWriter(address)
	if err != nil {
		return nil, fmt.Errorf("failed to create graylog writer: %w", err)
	}
	return w, nil
}

// Setup initializes the logging system. Calling it again replaces the logger.
func (m *SlogManager) Setup(out Outputs, level string) {
	lvl := parseLevel(level)
	m.logProvider = out.Provider

	// Common handler options with RFC3339 time formatting
	handlerOpts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.UTC().Format(time.RFC3339))
				}
			}
			return a
		},
	}

	var handlers []slog.Handler

	if out.File != nil {
		handlers = append(handlers, slog.NewTextHandler(out.File, handlerOpts))
	} else {
		handlers = append(handlers, slog.NewTextHandler(os.Stdout, handlerOpts))
	}

	if out.Graylog != nil {
		handlers = append(handlers, slog.NewJSONHandler(out.Graylog, handlerOpts))
	}

	if out.Provider != nil {
		handlers = append(handlers, otelslog.NewHandler("place-player-starts", otelslog.WithLoggerProvider(out.Provider)))
	}

	m.logger = slog.New(NewMultiHandler(handlers...))
	m.logger.Debug("Logging initialized", "level", level)
}

// Logger returns the configured slog.Logger.
func (m *SlogManager) Logger() *slog.Logger {
	if m.logger == nil {
		// Return a default logger if Setup hasn't been called
		return slog.Default()
	}
	return m.logger
}

// Flush forces a flush of OTel logs if available.
func (m *SlogManager) Flush(ctx context.Context) error {
	if m.logProvider != nil {
		return m.logProvider.ForceFlush(ctx)
	}
	return nil
}
