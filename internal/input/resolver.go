package input

import (
	"errors"
	"fmt"
	"maps"

	"github.com/dshills/layerkeys/internal/input/key"
	"github.com/dshills/layerkeys/internal/input/keymap"
)

// ErrUnboundChord indicates a chord with no binding.
var ErrUnboundChord = errors.New("input: chord is not bound")

// Resolver maps chords to actions through a keymap registry.
type Resolver struct {
	keymaps *keymap.Registry
}

// NewResolver creates a resolver over the given registry.
func NewResolver(keymaps *keymap.Registry) *Resolver {
	return &Resolver{keymaps: keymaps}
}

// Keymaps returns the registry the resolver reads.
func (r *Resolver) Keymaps() *keymap.Registry {
	return r.keymaps
}

// Resolve returns the action bound to chord.
func (r *Resolver) Resolve(chord key.Chord) (Action, error) {
	chord = chord.Normalize()
	b, ok := r.keymaps.Lookup(chord)
	if !ok {
		return Action{}, fmt.Errorf("%w: %s", ErrUnboundChord, chord)
	}
	action := NewAction(b.Action, SourceKeyboard)
	action.Args.Chord = chord.String()
	if len(b.Args) > 0 {
		action.Args.Extra = maps.Clone(b.Args)
	}
	return action, nil
}

// ResolveSpec parses a chord specification and resolves it.
func (r *Resolver) ResolveSpec(spec string) (Action, error) {
	chord, err := key.Parse(spec)
	if err != nil {
		return Action{}, err
	}
	return r.Resolve(chord)
}
