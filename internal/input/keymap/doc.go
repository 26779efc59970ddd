// Package keymap maps key chords to action names.
//
// # Key Concepts
//
// Binding: maps one chord to an action, with a description used as the menu
// label and a category used to group the menu.
//
// Keymap: a named collection of bindings from one source (defaults, a user
// file).
//
// Registry: holds the registered keymaps and resolves chords. Keymaps are
// parsed once on registration; a parsed keymap is never mutated, so lookups
// see either the old or the new set of bindings during a reload.
//
// # Binding Precedence
//
// When several keymaps bind the same chord, the binding with the highest
// keymap priority wins, then the highest binding priority, then the keymap
// registered last.
//
// # Usage
//
//	registry := keymap.NewRegistry()
//	if err := keymap.LoadDefaults(registry); err != nil {
//	    return err
//	}
//
//	if b, ok := registry.Lookup(key.MustParse("Ctrl+M")); ok {
//	    // dispatch b.Action
//	}
package keymap
