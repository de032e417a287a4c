package reader

import (
	"log/slog"

	"github.com/syssam/entityreader"
)

type config struct {
	logger   *slog.Logger
	lastWins bool
}

// Option configures a Reader.
type Option func(*config) error

// WithLogger sets the logger used for classification diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) error {
		if l == nil {
			return entityreader.NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.logger = l
		return nil
	}
}

// WithLastWins makes the last structural annotation of a property decide its
// kind when several are present, instead of failing the extraction.
func WithLastWins() Option {
	return func(c *config) error {
		c.lastWins = true
		return nil
	}
}
