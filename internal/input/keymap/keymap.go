package keymap

import (
	"fmt"
	"maps"

	"github.com/dshills/layerkeys/internal/input/key"
)

// Keymap is a named collection of bindings.
type Keymap struct {
	// Name is the keymap identifier.
	Name string

	// Bindings are the chord-to-action mappings.
	Bindings []Binding

	// Priority determines precedence when multiple keymaps bind a chord.
	// Higher priority wins. Default is 0.
	Priority int

	// Source indicates where this keymap was defined.
	// Examples: "default", "user:/home/me/.config/layerkeys/keymap.yaml"
	Source string
}

// NewKeymap creates a new keymap with the given name.
func NewKeymap(name string) *Keymap {
	return &Keymap{
		Name:     name,
		Bindings: make([]Binding, 0),
	}
}

// WithPriority sets the priority for this keymap.
func (k *Keymap) WithPriority(priority int) *Keymap {
	k.Priority = priority
	return k
}

// WithSource sets the source for this keymap.
func (k *Keymap) WithSource(source string) *Keymap {
	k.Source = source
	return k
}

// Add adds a binding to this keymap.
func (k *Keymap) Add(keys, action string) *Keymap {
	k.Bindings = append(k.Bindings, NewBinding(keys, action))
	return k
}

// AddBinding adds a fully configured binding to this keymap.
func (k *Keymap) AddBinding(binding Binding) *Keymap {
	k.Bindings = append(k.Bindings, binding)
	return k
}

// Validate checks that all bindings in the keymap are valid.
func (k *Keymap) Validate() error {
	_, err := k.Parse()
	return err
}

// ParsedKeymap is a keymap with parsed chords, indexed by chord.
type ParsedKeymap struct {
	*Keymap
	ParsedBindings []ParsedBinding

	byChord map[key.Chord]int
}

// Parse parses all bindings in the keymap. A chord bound twice in the same
// keymap is an error.
func (k *Keymap) Parse() (*ParsedKeymap, error) {
	parsed := &ParsedKeymap{
		Keymap:         k,
		ParsedBindings: make([]ParsedBinding, 0, len(k.Bindings)),
		byChord:        make(map[key.Chord]int, len(k.Bindings)),
	}

	for i, b := range k.Bindings {
		if b.Keys == "" {
			return nil, fmt.Errorf("binding %d: empty keys", i)
		}
		if b.Action == "" {
			return nil, fmt.Errorf("binding %d (%s): empty action", i, b.Keys)
		}
		chord, err := key.Parse(b.Keys)
		if err != nil {
			return nil, fmt.Errorf("binding %d (%s): %w", i, b.Keys, err)
		}
		if prev, dup := parsed.byChord[chord]; dup {
			return nil, fmt.Errorf("binding %d (%s): chord %s already bound to %q",
				i, b.Keys, chord, parsed.ParsedBindings[prev].Action)
		}
		parsed.byChord[chord] = len(parsed.ParsedBindings)
		parsed.ParsedBindings = append(parsed.ParsedBindings, ParsedBinding{
			Binding: b,
			Chord:   chord,
		})
	}

	return parsed, nil
}

// lookup returns the binding for a chord in this keymap.
func (p *ParsedKeymap) lookup(chord key.Chord) (*ParsedBinding, bool) {
	i, ok := p.byChord[chord]
	if !ok {
		return nil, false
	}
	return &p.ParsedBindings[i], true
}

// Clone creates a deep copy of the keymap.
func (k *Keymap) Clone() *Keymap {
	clone := &Keymap{
		Name:     k.Name,
		Priority: k.Priority,
		Source:   k.Source,
		Bindings: make([]Binding, len(k.Bindings)),
	}
	for i, b := range k.Bindings {
		clone.Bindings[i] = b
		if b.Args != nil {
			clone.Bindings[i].Args = maps.Clone(b.Args)
		}
	}
	return clone
}
