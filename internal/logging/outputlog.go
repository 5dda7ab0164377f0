package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// OutputLog is the log a placement run writes to, the equivalent of the
// editor's output log. It adapts zerolog.Logger to placement.Logger.
type OutputLog struct {
	logger zerolog.Logger
}

// NewOutputLog wraps an existing zerolog.Logger.
func NewOutputLog(logger zerolog.Logger) *OutputLog {
	return &OutputLog{logger: logger}
}

// NewConsoleOutputLog writes human-readable lines to console and, when file
// is non-nil, JSON lines to file.
func NewConsoleOutputLog(console io.Writer, file io.Writer) *OutputLog {
	writers := []io.Writer{zerolog.ConsoleWriter{Out: console, TimeFormat: time.TimeOnly, NoColor: true}}
	if file != nil {
		writers = append(writers, file)
	}
	return NewOutputLog(zerolog.New(zerolog.MultiLevelWriter(writers...)).
		With().Timestamp().Str("component", "placement").Logger())
}

// Info logs an info message with optional key-value pairs.
func (l *OutputLog) Info(msg string, keysAndValues ...any) {
	l.logger.Info().Fields(toFields(keysAndValues)).Msg(msg)
}

// Error logs an error message with optional key-value pairs.
func (l *OutputLog) Error(msg string, keysAndValues ...any) {
	l.logger.Error().Fields(toFields(keysAndValues)).Msg(msg)
}

// toFields converts key-value pairs to a map for zerolog.
func toFields(keysAndValues []any) map[string]any {
	fields := make(map[string]any, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		if err, ok := keysAndValues[i+1].(error); ok {
			fields[key] = err.Error()
			continue
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}
