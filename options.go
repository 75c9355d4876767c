package kpuzzle

import (
	"io"
	"log/slog"
)

// Option configures Session behavior.
type Option func(*config)

type config struct {
	history    bool
	validation bool
	logger     *slog.Logger
}

func defaultConfig() *config {
	return &config{
		history:    true,
		validation: false,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithHistory enables or disables undo/redo history.
// When enabled (default), every state change is kept so Undo can restore it.
// Disable this for long simulations to reduce memory usage.
func WithHistory(enabled bool) Option {
	return func(c *config) {
		c.history = enabled
	}
}

// WithValidation enables checking move transformations before they are applied.
// The algebra trusts its inputs, so this is off by default.
func WithValidation(enabled bool) Option {
	return func(c *config) {
		c.validation = enabled
	}
}

// WithLogger sets the logger used for move tracing at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}
