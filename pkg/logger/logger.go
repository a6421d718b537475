// Package logger builds the zap loggers used by the kit command.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects the level and encoding of a logger.
type Options struct {
	Level       string // debug, info, warn or error; empty means info
	Development bool   // console encoding with caller and stack traces
}

// New returns a production logger at info level tagged with service. It
// falls back to a no-op logger if zap cannot be built.
func New(service string) *zap.SugaredLogger {
	log, err := NewWithOptions(service, Options{})
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return log
}

// NewWithOptions returns a logger tagged with service and configured by opts.
func NewWithOptions(service string, opts Options) (*zap.SugaredLogger, error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
	}

	cfg := zap.NewProductionConfig()
	if opts.Development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	cfg.InitialFields = map[string]any{"service": service}

	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return log.Sugar(), nil
}
