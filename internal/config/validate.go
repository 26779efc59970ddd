package config

import (
	"errors"
	"net"
	"slices"

	"go.uber.org/zap/zapcore"

	"github.com/dshills/layerkeys/internal/document"
	"github.com/dshills/layerkeys/internal/input/keymap"
)

var logFormats = []string{"console", "json"}

// Validate checks every setting and returns all problems joined.
func (c Config) Validate() error {
	var errs []error
	invalid := func(path, msg string, value any, code ValidationErrorCode) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: value, Code: code})
	}

	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		invalid("logging.level", "unknown level", c.Logging.Level, ErrCodeInvalidEnum)
	}
	if !slices.Contains(logFormats, c.Logging.Format) {
		invalid("logging.format", "must be console or json", c.Logging.Format, ErrCodeInvalidEnum)
	}

	for _, name := range c.Flatten.Channels {
		if _, err := document.ParseChannel(name); err != nil {
			invalid("flatten.channels", "unknown channel", name, ErrCodeInvalidValue)
		}
	}

	for _, name := range c.Bake.MeshMaps {
		if _, err := document.ParseMeshMap(name); err != nil {
			invalid("bake.mesh_maps", "unknown mesh map", name, ErrCodeInvalidValue)
		}
	}

	if c.Keymap.File != "" {
		if _, err := keymap.FormatFromPath(c.Keymap.File); err != nil {
			invalid("keymap.file", "extension must be .yaml, .yml, .toml or .json", c.Keymap.File, ErrCodeInvalidValue)
		}
	}

	if c.Metrics.Addr != "" {
		if _, _, err := net.SplitHostPort(c.Metrics.Addr); err != nil {
			invalid("metrics.addr", "must be host:port", c.Metrics.Addr, ErrCodeInvalidValue)
		}
	}

	return errors.Join(errs...)
}
