package keymap

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a keymap file format.
type Format string

// Supported keymap file formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported keymap file %q", path)
	}
}

// Loader loads keymaps from configuration files.
type Loader struct {
	// searchPaths are directories to search for keymap files.
	searchPaths []string
}

// NewLoader creates a new keymap loader.
func NewLoader() *Loader {
	return &Loader{
		searchPaths: make([]string, 0),
	}
}

// AddSearchPath adds a directory to search for keymap files.
func (l *Loader) AddSearchPath(path string) {
	l.searchPaths = append(l.searchPaths, path)
}

// LoadFile loads a keymap from a JSON, YAML or TOML file. A keymap without
// a name is named after the file, and its source records the path.
func (l *Loader) LoadFile(path string) (*Keymap, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening keymap file: %w", err)
	}
	defer f.Close()

	km, err := l.LoadReader(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if km.Name == "" {
		km.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if km.Source == "" {
		km.Source = "file:" + path
	}
	return km, nil
}

// LoadReader loads a keymap in the given format from a reader.
func (l *Loader) LoadReader(r io.Reader, format Format) (*Keymap, error) {
	var config keymapConfig
	var err error
	switch format {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&config)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&config)
	case FormatTOML:
		err = toml.NewDecoder(r).Decode(&config)
	default:
		return nil, fmt.Errorf("unsupported keymap format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding keymap: %w", err)
	}

	km := &Keymap{
		Name:     config.Name,
		Priority: config.Priority,
		Source:   config.Source,
		Bindings: make([]Binding, 0, len(config.Bindings)),
	}
	for _, bc := range config.Bindings {
		km.Bindings = append(km.Bindings, Binding(bc))
	}

	if err := km.Validate(); err != nil {
		return nil, err
	}
	return km, nil
}

// LoadAll loads every keymap file in the search paths. Files that fail to
// load are reported together after the rest have loaded.
func (l *Loader) LoadAll() ([]*Keymap, error) {
	keymaps := make([]*Keymap, 0)
	var errs []string

	for _, dir := range l.searchPaths {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("reading keymap dir: %w", err)
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			path := filepath.Join(dir, e.Name())
			if _, err := FormatFromPath(path); err != nil {
				continue
			}
			km, err := l.LoadFile(path)
			if err != nil {
				errs = append(errs, err.Error())
				continue
			}
			keymaps = append(keymaps, km)
		}
	}

	if len(errs) > 0 {
		return keymaps, fmt.Errorf("loading keymaps: %s", strings.Join(errs, "; "))
	}
	return keymaps, nil
}

// LoadAndRegister loads all keymaps and registers them.
func (l *Loader) LoadAndRegister(registry *Registry) error {
	keymaps, err := l.LoadAll()
	if err != nil {
		return err
	}

	for _, km := range keymaps {
		if err := registry.Register(km); err != nil {
			return fmt.Errorf("registering keymap %q: %w", km.Name, err)
		}
	}

	return nil
}

// keymapConfig is the file structure of a keymap.
type keymapConfig struct {
	Name     string          `json:"name" yaml:"name" toml:"name"`
	Priority int             `json:"priority,omitempty" yaml:"priority,omitempty" toml:"priority,omitempty"`
	Source   string          `json:"source,omitempty" yaml:"source,omitempty" toml:"source,omitempty"`
	Bindings []bindingConfig `json:"bindings" yaml:"bindings" toml:"bindings"`
}

type bindingConfig struct {
	Keys        string         `json:"keys" yaml:"keys" toml:"keys"`
	Action      string         `json:"action" yaml:"action" toml:"action"`
	Args        map[string]any `json:"args,omitempty" yaml:"args,omitempty" toml:"args,omitempty"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Priority    int            `json:"priority,omitempty" yaml:"priority,omitempty" toml:"priority,omitempty"`
	Category    string         `json:"category,omitempty" yaml:"category,omitempty" toml:"category,omitempty"`
}

func (k *Keymap) toConfig() keymapConfig {
	config := keymapConfig{
		Name:     k.Name,
		Priority: k.Priority,
		Source:   k.Source,
		Bindings: make([]bindingConfig, 0, len(k.Bindings)),
	}
	for _, b := range k.Bindings {
		config.Bindings = append(config.Bindings, bindingConfig(b))
	}
	return config
}

// MarshalJSON converts a keymap to JSON.
func (k *Keymap) MarshalJSON() ([]byte, error) {
	return json.MarshalIndent(k.toConfig(), "", "  ")
}

// MarshalYAML converts a keymap to its YAML form.
func (k *Keymap) MarshalYAML() (any, error) {
	return k.toConfig(), nil
}

// Encode writes the keymap in the given format.
func (k *Keymap) Encode(w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		data, err := k.MarshalJSON()
		if err != nil {
			return err
		}
		_, err = w.Write(append(data, '\n'))
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(k.toConfig()); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(k.toConfig())
	default:
		return fmt.Errorf("unsupported keymap format %q", format)
	}
}

// SaveFile saves a keymap in the format implied by the file extension.
func (k *Keymap) SaveFile(path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing keymap file: %w", err)
	}
	if err := k.Encode(f, format); err != nil {
		f.Close()
		return fmt.Errorf("encoding keymap: %w", err)
	}
	return f.Close()
}
