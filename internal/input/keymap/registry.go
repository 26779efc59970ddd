package keymap

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/layerkeys/internal/input/key"
)

// Registry manages all keymaps and provides binding lookup.
type Registry struct {
	mu sync.RWMutex

	// keymaps holds all registered keymaps by name.
	keymaps map[string]*ParsedKeymap

	// order records registration order; later registrations win ties.
	order []string
}

// NewRegistry creates a new keymap registry.
func NewRegistry() *Registry {
	return &Registry{
		keymaps: make(map[string]*ParsedKeymap),
	}
}

// Register adds a keymap to the registry.
// If a keymap with the same name already exists, it is replaced.
func (r *Registry) Register(km *Keymap) error {
	if km == nil {
		return fmt.Errorf("cannot register nil keymap")
	}

	parsed, err := km.Clone().Parse()
	if err != nil {
		return fmt.Errorf("parsing keymap %q: %w", km.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.unregisterLocked(km.Name)
	r.keymaps[km.Name] = parsed
	r.order = append(r.order, km.Name)
	return nil
}

// Replace swaps the keymap registered under km.Name for km. Unlike
// Register followed by Unregister, lookups never observe a state where
// neither keymap is present. A nil km removes the keymap named name.
func (r *Registry) Replace(name string, km *Keymap) error {
	if km == nil {
		r.Unregister(name)
		return nil
	}
	if km.Name != name {
		km = km.Clone()
		km.Name = name
	}
	return r.Register(km)
}

// Unregister removes a keymap from the registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.unregisterLocked(name)
}

// unregisterLocked removes a keymap without acquiring the lock.
// Caller must hold the write lock.
func (r *Registry) unregisterLocked(name string) {
	if _, ok := r.keymaps[name]; !ok {
		return
	}
	delete(r.keymaps, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Get returns a keymap by name.
func (r *Registry) Get(name string) *ParsedKeymap {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.keymaps[name]
}

// Keymaps returns the registered keymaps in registration order.
func (r *Registry) Keymaps() []*ParsedKeymap {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*ParsedKeymap, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.keymaps[name])
	}
	return out
}

// BindingMatch is a binding together with the keymap that holds it.
type BindingMatch struct {
	*ParsedBinding

	// Keymap is the keymap containing the binding.
	Keymap *ParsedKeymap

	// rank is the registration index of the keymap.
	rank int
}

// Less reports whether m takes precedence over other.
func (m BindingMatch) Less(other BindingMatch) bool {
	if m.Keymap.Priority != other.Keymap.Priority {
		return m.Keymap.Priority > other.Keymap.Priority
	}
	if m.Priority != other.Priority {
		return m.Priority > other.Priority
	}
	return m.rank > other.rank
}

// Lookup finds the winning binding for a chord.
func (r *Registry) Lookup(chord key.Chord) (Binding, bool) {
	matches := r.LookupAll(chord)
	if len(matches) == 0 {
		return Binding{}, false
	}
	return matches[0].Binding, true
}

// LookupAll returns every binding of a chord, winner first.
func (r *Registry) LookupAll(chord key.Chord) []BindingMatch {
	chord = chord.Normalize()

	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []BindingMatch
	for rank, name := range r.order {
		km := r.keymaps[name]
		if pb, ok := km.lookup(chord); ok {
			matches = append(matches, BindingMatch{ParsedBinding: pb, Keymap: km, rank: rank})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Less(matches[j])
	})
	return matches
}

// Effective returns the winning binding of every bound chord, in the order
// chords are first declared across keymaps.
func (r *Registry) Effective() []BindingMatch {
	r.mu.RLock()
	seen := make(map[key.Chord]bool)
	var chords []key.Chord
	for _, name := range r.order {
		for _, pb := range r.keymaps[name].ParsedBindings {
			if !seen[pb.Chord] {
				seen[pb.Chord] = true
				chords = append(chords, pb.Chord)
			}
		}
	}
	r.mu.RUnlock()

	out := make([]BindingMatch, 0, len(chords))
	for _, c := range chords {
		if matches := r.LookupAll(c); len(matches) > 0 {
			out = append(out, matches[0])
		}
	}
	return out
}

// ChordsFor returns the chords whose winning binding runs action.
func (r *Registry) ChordsFor(action string) []key.Chord {
	var out []key.Chord
	for _, m := range r.Effective() {
		if m.Action == action {
			out = append(out, m.Chord)
		}
	}
	return out
}
