package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/layerkeys/internal/bake"
	"github.com/dshills/layerkeys/internal/config/loader"
	"github.com/dshills/layerkeys/internal/dispatcher"
	"github.com/dshills/layerkeys/internal/document"
	"github.com/dshills/layerkeys/internal/layerstack"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "LAYERKEYS_"

// DefaultFile is the configuration file read when none is given.
const DefaultFile = "layerkeys.toml"

// Config is the complete layerkeys configuration.
type Config struct {
	Logging    LoggingConfig    `toml:"logging"`
	Dispatcher DispatcherConfig `toml:"dispatcher"`
	Flatten    FlattenConfig    `toml:"flatten"`
	Bake       BakeConfig       `toml:"bake"`
	Keymap     KeymapConfig     `toml:"keymap"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Document   DocumentConfig   `toml:"document"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`

	// Format is "console" or "json".
	Format string `toml:"format"`
}

// DispatcherConfig configures action dispatch.
type DispatcherConfig struct {
	RecoverFromPanic bool     `toml:"recover_from_panic"`
	EnableMetrics    bool     `toml:"enable_metrics"`
	DisabledActions  []string `toml:"disabled_actions"`
}

// FlattenConfig configures stack flattening.
type FlattenConfig struct {
	// Channels lists the channels eligible for flattening. Normal is
	// accepted but never flattened.
	Channels []string `toml:"channels"`
}

// BakeConfig configures quick bakes.
type BakeConfig struct {
	MeshMaps      []string `toml:"mesh_maps"`
	SwitchToPaint bool     `toml:"switch_to_paint"`
}

// KeymapConfig points at an optional user keymap.
type KeymapConfig struct {
	// File is a YAML, TOML or JSON keymap layered over the defaults.
	File string `toml:"file"`

	// Watch reloads File when it changes during a terminal session.
	Watch bool `toml:"watch"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	// Addr is the listen address for /metrics. Empty disables the endpoint.
	Addr string `toml:"addr"`
}

// DocumentConfig selects the document the terminal session edits.
type DocumentConfig struct {
	// File is a YAML document snapshot. Empty starts a blank document.
	File string `toml:"file"`
}

// Default returns the built-in configuration.
func Default() Config {
	meshMaps := make([]string, 0, len(document.DefaultMeshMaps()))
	for _, m := range document.DefaultMeshMaps() {
		meshMaps = append(meshMaps, m.String())
	}
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Dispatcher: DispatcherConfig{
			RecoverFromPanic: true,
			EnableMetrics:    true,
		},
		Flatten: FlattenConfig{
			Channels: layerstack.DefaultFlattenChannels().Names(),
		},
		Bake: BakeConfig{
			MeshMaps:      meshMaps,
			SwitchToPaint: true,
		},
		Keymap: KeymapConfig{
			Watch: true,
		},
	}
}

// sections lists the top-level keys accepted from the environment.
var sections = []string{"logging", "dispatcher", "flatten", "bake", "keymap", "metrics", "document"}

type options struct {
	path     string
	explicit bool
	fs       loader.FileSystem
	env      *loader.EnvLoader
}

// Option configures Load.
type Option func(*options)

// WithFile reads path instead of DefaultFile. A missing explicit file is
// an error; a missing default file is not.
func WithFile(path string) Option {
	return func(o *options) {
		if path != "" {
			o.path = path
			o.explicit = true
		}
	}
}

// WithFS reads files from fsys.
func WithFS(fsys loader.FileSystem) Option {
	return func(o *options) {
		o.fs = fsys
	}
}

// WithEnviron reads environment variables from environ instead of the
// process environment. A nil environ disables the environment layer.
func WithEnviron(environ func() []string) Option {
	return func(o *options) {
		if environ == nil {
			o.env = nil
			return
		}
		o.env = newEnvLoader().WithEnviron(environ)
	}
}

func newEnvLoader() *loader.EnvLoader {
	return loader.NewEnvLoader(EnvPrefix).WithSections(sections...)
}

// Load builds the configuration from defaults, the TOML file and the
// environment, then validates it.
func Load(opts ...Option) (Config, error) {
	o := options{
		path: DefaultFile,
		fs:   loader.DefaultFS(),
		env:  newEnvLoader(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	if o.explicit {
		if _, err := o.fs.Stat(o.path); err != nil {
			return Config{}, fmt.Errorf("config file %s: %w", o.path, err)
		}
	}

	sources := []loader.Loader{loader.NewTOMLLoaderWithFS(o.fs, o.path)}
	if o.env != nil {
		sources = append(sources, o.env)
	}
	merged, err := loader.LoadAll(sources...)
	if err != nil {
		return Config{}, err
	}

	cfg, err := Decode(merged)
	if err != nil {
		return Config{}, err
	}
	cfg.resolvePaths(filepath.Dir(o.path))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Decode applies a merged settings map over Default.
func Decode(settings map[string]any) (Config, error) {
	cfg := Default()
	if len(settings) == 0 {
		return cfg, nil
	}

	data, err := toml.Marshal(settings)
	if err != nil {
		return Config{}, fmt.Errorf("encoding settings: %w", err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, &ValidationError{
				Path:    "",
				Message: "unknown settings: " + strings.TrimSpace(strict.String()),
				Code:    ErrCodeUnknownSetting,
			}
		}
		return Config{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	return cfg, nil
}

// resolvePaths expands "~" and makes relative file settings relative to
// the directory holding the configuration file.
func (c *Config) resolvePaths(base string) {
	c.Keymap.File = resolvePath(base, c.Keymap.File)
	c.Document.File = resolvePath(base, c.Document.File)
}

func resolvePath(base, path string) string {
	if path == "" {
		return ""
	}
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	if filepath.IsAbs(path) || base == "" || base == "." {
		return path
	}
	return filepath.Join(base, path)
}

// ChannelSet returns the configured flatten channels.
func (f FlattenConfig) ChannelSet() (document.ChannelSet, error) {
	return document.ParseChannelSet(f.Channels)
}

// Settings converts the section into a bake trigger configuration.
func (b BakeConfig) Settings() (bake.Config, error) {
	cfg := bake.Config{SwitchToPaint: b.SwitchToPaint}
	for _, name := range b.MeshMaps {
		m, err := document.ParseMeshMap(name)
		if err != nil {
			return bake.Config{}, err
		}
		cfg.MeshMaps = append(cfg.MeshMaps, m)
	}
	return cfg, nil
}

// Settings converts the section into a dispatcher configuration.
func (d DispatcherConfig) Settings() dispatcher.Config {
	cfg := dispatcher.DefaultConfig().WithPanicRecovery(d.RecoverFromPanic)
	if d.EnableMetrics {
		cfg = cfg.WithMetrics()
	}
	if len(d.DisabledActions) > 0 {
		cfg = cfg.WithDisabledActions(d.DisabledActions...)
	}
	return cfg
}
