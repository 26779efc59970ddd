// Package logging builds the zap loggers used across layerkeys.
package logging

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dshills/layerkeys/internal/config"
)

// Options configures New.
type Options struct {
	// Level is the minimum level, e.g. "debug". Empty means info.
	Level string

	// Format is "console" or "json". Empty means console.
	Format string

	// Output receives log lines. Nil means os.Stderr.
	Output io.Writer

	// Development enables caller and stack annotations on warnings.
	Development bool
}

// FromConfig converts the logging section into Options.
func FromConfig(cfg config.LoggingConfig) Options {
	return Options{Level: cfg.Level, Format: cfg.Format}
}

// New builds a logger. Console output uses short timestamps; JSON output
// uses the zap production encoder.
func New(opts Options) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}

	var enc zapcore.Encoder
	switch opts.Format {
	case "", "console":
		ec := zap.NewDevelopmentEncoderConfig()
		ec.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		enc = zapcore.NewConsoleEncoder(ec)
	case "json":
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	default:
		return nil, fmt.Errorf("logging: unknown format %q", opts.Format)
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	core := zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(out)), level)
	zopts := []zap.Option{zap.ErrorOutput(zapcore.Lock(zapcore.AddSync(out)))}
	if opts.Development {
		zopts = append(zopts, zap.Development(), zap.AddCaller(), zap.AddStacktrace(zapcore.WarnLevel))
	} else {
		zopts = append(zopts, zap.AddStacktrace(zapcore.ErrorLevel))
	}
	return zap.New(core, zopts...), nil
}

// Component returns a child logger tagged with a component name.
func Component(logger *zap.Logger, name string) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger.Named(name)
}
