package palette

import (
	"testing"

	"github.com/dshills/layerkeys/internal/input/keymap"
)

func testMenu(t *testing.T) []keymap.MenuCategory {
	t.Helper()
	r := keymap.NewRegistry()
	if err := keymap.LoadDefaults(r); err != nil {
		t.Fatalf("LoadDefaults failed: %v", err)
	}
	return keymap.Menu(r)
}

func actions(matches []Match) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Entry.Action
	}
	return out
}

func TestSearchTopHit(t *testing.T) {
	p := New(testMenu(t), 10)

	tests := []struct {
		query string
		want  string
	}{
		{"paint", "layer.newPaint"},
		{"mask ao", "mask.addAOGenerator"},
		{"curv", "mask.addCurvatureGenerator"},
		{"bake", "bake.textureSet"},
		{"reference", "layer.referencePoint"},
		{"flattenVisible", "stack.flattenVisible"},
		{"fill height", "layer.newFillHeight"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := p.Search(tt.query, 1)
			if len(got) != 1 {
				t.Fatalf("Search(%q) returned %d results, want 1", tt.query, len(got))
			}
			if got[0].Entry.Action != tt.want {
				t.Errorf("Search(%q) = %s, want %s", tt.query, got[0].Entry.Action, tt.want)
			}
		})
	}
}

func TestSearchNoMatch(t *testing.T) {
	p := New(testMenu(t), 10)
	if got := p.Search("zzzz", 0); len(got) != 0 {
		t.Errorf("Search(zzzz) = %v, want none", actions(got))
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	p := New(testMenu(t), 10)

	all := p.Search("", 0)
	if len(all) != len(p.Entries()) {
		t.Fatalf("Search(\"\") returned %d entries, want %d", len(all), len(p.Entries()))
	}
	if all[0].Entry.Action != p.Entries()[0].Action {
		t.Errorf("first entry = %s, want menu order", all[0].Entry.Action)
	}

	p.Record("bake.textureSet")
	p.Record("mask.toggle")

	got := actions(p.Search("", 2))
	want := []string{"mask.toggle", "bake.textureSet"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Search(\"\")[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestSearchRecentBoost(t *testing.T) {
	p := New(testMenu(t), 10)

	const effect = "mask.toggleFillEffect"
	if top := p.Search("fill", 1)[0].Entry.Action; top == effect {
		t.Fatalf("%s already ranked first", effect)
	}

	p.Record(effect)
	if top := p.Search("fill", 1)[0].Entry.Action; top != effect {
		t.Errorf("recent action %s not ranked first, got %s", effect, top)
	}
}

func TestSetMenuKeepsHistory(t *testing.T) {
	p := New(testMenu(t), 10)
	p.Record("mask.toggle")
	p.SetMenu(nil)

	if n := len(p.Entries()); n != 0 {
		t.Errorf("Entries() = %d after SetMenu(nil), want 0", n)
	}
	if p.History().Len() != 1 {
		t.Errorf("History().Len() = %d, want 1", p.History().Len())
	}
}

func TestHistory(t *testing.T) {
	h := NewHistory(3)
	for _, a := range []string{"a", "b", "c", "a", "d"} {
		h.Add(a)
	}

	got := h.Recent(0)
	want := []string{"d", "a", "c"}
	if len(got) != len(want) {
		t.Fatalf("Recent() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Recent()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
	if h.Position("b") != -1 {
		t.Errorf("Position(b) = %d, want -1 (evicted)", h.Position("b"))
	}
	if h.Position("a") != 1 {
		t.Errorf("Position(a) = %d, want 1", h.Position("a"))
	}
}

func TestFuzzyMatch(t *testing.T) {
	tests := []struct {
		query string
		text  string
		match bool
	}{
		{"nfl", "New Fill Layer", true},
		{"lfn", "New Fill Layer", false},
		{"ctrl", "Toggle Mask (Ctrl+M)", true},
		{"", "anything", false},
	}
	for _, tt := range tests {
		s, _ := fuzzyMatch([]rune(tt.query), tt.text)
		if (s > 0) != tt.match {
			t.Errorf("fuzzyMatch(%q, %q) = %d, want match=%v", tt.query, tt.text, s, tt.match)
		}
	}

	word, _ := fuzzyMatch([]rune("nfl"), "New Fill Layer")
	mid, _ := fuzzyMatch([]rune("nfl"), "unfilled")
	if word <= mid {
		t.Errorf("word-boundary match %d should outrank %d", word, mid)
	}
}
