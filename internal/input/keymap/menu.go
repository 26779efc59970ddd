package keymap

import "fmt"

// MenuEntry is one menu item.
type MenuEntry struct {
	Action string
	Label  string
	Chord  string
}

// MenuCategory groups menu entries.
type MenuCategory struct {
	Name    string
	Entries []MenuEntry
}

// Menu lists the effective bindings as menu entries labelled with their
// chord, e.g. "New Paint Layer (Ctrl+P)", grouped by category. An action
// bound to several chords appears once, labelled with its first chord.
func Menu(r *Registry) []MenuCategory {
	var bindings []Binding
	chords := make(map[string]string)
	for _, m := range r.Effective() {
		if _, dup := chords[m.Action]; dup {
			continue
		}
		chords[m.Action] = m.Chord.String()
		bindings = append(bindings, m.Binding)
	}

	groups := GroupByCategory(bindings)
	out := make([]MenuCategory, 0, len(groups))
	for _, g := range groups {
		cat := MenuCategory{Name: g.Name}
		for _, b := range g.Bindings {
			desc := b.Description
			if desc == "" {
				desc = b.Action
			}
			chord := chords[b.Action]
			cat.Entries = append(cat.Entries, MenuEntry{
				Action: b.Action,
				Label:  fmt.Sprintf("%s (%s)", desc, chord),
				Chord:  chord,
			})
		}
		out = append(out, cat)
	}
	return out
}
