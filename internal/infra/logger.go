// README: Structured JSON logger setup.
package infra

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

const serviceName = "rickshawgo-api"

// NewLogger writes JSON to stdout. Unknown levels fall back to info.
func NewLogger(level string) zerolog.Logger {
	return newLogger(os.Stdout, level)
}

func newLogger(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Str("service", serviceName).
		Logger()
}
