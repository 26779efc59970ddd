package memhost

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dshills/layerkeys/internal/document"
)

// Snapshot is the YAML form of a document.
type Snapshot struct {
	TextureSet TextureSetSnapshot `yaml:"texture_set"`
	Closed     bool               `yaml:"closed,omitempty"`
	Selection  string             `yaml:"selection,omitempty"`
	Mode       string             `yaml:"mode,omitempty"`
	Layers     []LayerSnapshot    `yaml:"layers"`
}

// TextureSetSnapshot is the YAML form of document.TextureSetInfo.
type TextureSetSnapshot struct {
	Name     string   `yaml:"name"`
	Channels []string `yaml:"channels"`
	Width    int      `yaml:"width"`
	Height   int      `yaml:"height"`
	UVTiles  [][2]int `yaml:"uv_tiles,omitempty"`
}

// LayerSnapshot is the YAML form of one layer.
type LayerSnapshot struct {
	ID       string            `yaml:"id"`
	Kind     string            `yaml:"kind"`
	Name     string            `yaml:"name"`
	Channels []string          `yaml:"channels"`
	Hidden   bool              `yaml:"hidden,omitempty"`
	Mask     *MaskSnapshot     `yaml:"mask,omitempty"`
	Sources  map[string]string `yaml:"sources,omitempty"`
}

// MaskSnapshot is the YAML form of document.Mask.
type MaskSnapshot struct {
	Background string `yaml:"background"`
	Generator  string `yaml:"generator,omitempty"`
	Painted    bool   `yaml:"painted,omitempty"`
}

// LoadFile reads a YAML snapshot from path.
func LoadFile(path string, opts ...Option) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}
	defer f.Close()
	return Load(f, opts...)
}

// Load decodes a YAML snapshot.
func Load(r io.Reader, opts ...Option) (*Document, error) {
	var snap Snapshot
	if err := yaml.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	return FromSnapshot(snap, opts...)
}

// FromSnapshot builds a document from a decoded snapshot.
func FromSnapshot(snap Snapshot, opts ...Option) (*Document, error) {
	channels, err := document.ParseChannelSet(snap.TextureSet.Channels)
	if err != nil {
		return nil, fmt.Errorf("texture set: %w", err)
	}
	info := document.TextureSetInfo{
		Name:     snap.TextureSet.Name,
		Channels: channels,
		Resolution: document.Resolution{
			Width:  snap.TextureSet.Width,
			Height: snap.TextureSet.Height,
		},
	}
	for _, t := range snap.TextureSet.UVTiles {
		info.UVTiles = append(info.UVTiles, document.UVTile{U: t[0], V: t[1]})
	}

	d := New(info, opts...)
	if snap.Closed {
		d.open = false
	}
	switch snap.Mode {
	case "", "paint":
		d.mode = document.ModePaint
	case "bake":
		d.mode = document.ModeBake
	default:
		return nil, fmt.Errorf("unknown mode %q", snap.Mode)
	}

	seen := make(map[document.LayerID]bool, len(snap.Layers))
	for i, ls := range snap.Layers {
		l, err := layerFromSnapshot(ls)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		if l.id == "" {
			l.id = document.LayerID(d.newID())
		}
		if seen[l.id] {
			return nil, fmt.Errorf("layer %d: duplicate id %q", i, l.id)
		}
		seen[l.id] = true
		for ch, res := range l.sources {
			d.resources[res] = ch
		}
		d.layers = append(d.layers, l)
	}

	if snap.Selection != "" {
		if !seen[document.LayerID(snap.Selection)] {
			return nil, fmt.Errorf("selection %q: %w", snap.Selection, document.ErrLayerNotFound)
		}
		d.selected = document.LayerID(snap.Selection)
	}
	return d, nil
}

func layerFromSnapshot(ls LayerSnapshot) (*layerState, error) {
	kind, err := document.ParseLayerKind(ls.Kind)
	if err != nil {
		return nil, err
	}
	channels, err := document.ParseChannelSet(ls.Channels)
	if err != nil {
		return nil, err
	}
	l := &layerState{
		id:       document.LayerID(ls.ID),
		kind:     kind,
		name:     ls.Name,
		channels: channels,
		visible:  !ls.Hidden,
	}
	if ls.Mask != nil {
		m := document.Mask{Painted: ls.Mask.Painted}
		switch ls.Mask.Background {
		case "", "white":
			m.Background = document.FillWhite
		case "black":
			m.Background = document.FillBlack
		default:
			return nil, fmt.Errorf("unknown mask background %q", ls.Mask.Background)
		}
		if m.Generator, err = document.ParseGenerator(ls.Mask.Generator); err != nil {
			return nil, fmt.Errorf("mask generator %q: %w", ls.Mask.Generator, err)
		}
		l.mask = &m
	}
	if len(ls.Sources) > 0 {
		l.sources = make(map[document.Channel]document.ResourceID, len(ls.Sources))
		for name, res := range ls.Sources {
			ch, err := document.ParseChannel(name)
			if err != nil {
				return nil, err
			}
			l.sources[ch] = document.ResourceID(res)
		}
	}
	return l, nil
}

// Snapshot captures the document state.
func (d *Document) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	snap := Snapshot{
		TextureSet: TextureSetSnapshot{
			Name:     d.info.Name,
			Channels: d.info.Channels.Names(),
			Width:    d.info.Resolution.Width,
			Height:   d.info.Resolution.Height,
		},
		Closed:    !d.open,
		Selection: string(d.selected),
		Mode:      d.mode.String(),
		Layers:    make([]LayerSnapshot, 0, len(d.layers)),
	}
	for _, t := range d.info.UVTiles {
		snap.TextureSet.UVTiles = append(snap.TextureSet.UVTiles, [2]int{t.U, t.V})
	}
	for _, l := range d.layers {
		ls := LayerSnapshot{
			ID:       string(l.id),
			Kind:     l.kind.String(),
			Name:     l.name,
			Channels: l.channels.Names(),
			Hidden:   !l.visible,
		}
		if l.mask != nil {
			ls.Mask = &MaskSnapshot{
				Background: l.mask.Background.String(),
				Painted:    l.mask.Painted,
			}
			if l.mask.Generator != document.GeneratorNone {
				ls.Mask.Generator = l.mask.Generator.String()
			}
		}
		if len(l.sources) > 0 {
			ls.Sources = make(map[string]string, len(l.sources))
			for ch, res := range l.sources {
				ls.Sources[ch.String()] = string(res)
			}
		}
		snap.Layers = append(snap.Layers, ls)
	}
	return snap
}

// Save encodes the document as YAML.
func (d *Document) Save(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d.Snapshot()); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return enc.Close()
}

// SaveFile writes the document as YAML to path.
func (d *Document) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snapshot: %w", err)
	}
	if err := d.Save(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
