package keymap

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/layerkeys/internal/input/key"
)

func TestKeymapBuilders(t *testing.T) {
	km := NewKeymap("test").
		WithPriority(10).
		WithSource("test-source").
		Add("Ctrl+P", "layer.newPaint").
		AddBinding(NewBinding("Ctrl+M", "mask.toggle").WithCategory("Mask").WithDescription("Toggle Mask"))

	if km.Priority != 10 {
		t.Errorf("Priority = %d, want %d", km.Priority, 10)
	}
	if km.Source != "test-source" {
		t.Errorf("Source = %q, want %q", km.Source, "test-source")
	}
	if len(km.Bindings) != 2 {
		t.Fatalf("len(Bindings) = %d, want %d", len(km.Bindings), 2)
	}
	if km.Bindings[1].Category != "Mask" {
		t.Errorf("Category = %q, want %q", km.Bindings[1].Category, "Mask")
	}
}

func TestKeymapValidate(t *testing.T) {
	tests := []struct {
		name     string
		bindings []Binding
		wantErr  bool
	}{
		{"valid", []Binding{{Keys: "Ctrl+P", Action: "layer.newPaint"}, {Keys: "Ctrl+M", Action: "mask.toggle"}}, false},
		{"empty keys", []Binding{{Keys: "", Action: "mask.toggle"}}, true},
		{"empty action", []Binding{{Keys: "Ctrl+M", Action: ""}}, true},
		{"bad chord", []Binding{{Keys: "Hyper+M", Action: "mask.toggle"}}, true},
		{"duplicate chord", []Binding{{Keys: "Ctrl+M", Action: "mask.toggle"}, {Keys: "<C-m>", Action: "layer.newPaint"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			km := &Keymap{Name: tt.name, Bindings: tt.bindings}
			if err := km.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestKeymapClone(t *testing.T) {
	km := NewKeymap("orig").AddBinding(NewBinding("Ctrl+P", "layer.newPaint").WithArgs(map[string]any{"n": 1}))
	clone := km.Clone()
	clone.Bindings[0].Args["n"] = 2
	clone.Bindings[0].Action = "other"

	if km.Bindings[0].Args["n"] != 1 {
		t.Error("Clone shares Args with the original")
	}
	if km.Bindings[0].Action != "layer.newPaint" {
		t.Error("Clone shares Bindings with the original")
	}
}

func TestDefaultKeymap(t *testing.T) {
	r := NewRegistry()
	if err := LoadDefaults(r); err != nil {
		t.Fatalf("LoadDefaults() error = %v", err)
	}

	tests := []struct {
		chord  string
		action string
	}{
		{"Ctrl+P", "layer.newPaint"},
		{"Ctrl+F", "layer.newFillBaseColor"},
		{"Ctrl+Alt+F", "layer.newFillHeight"},
		{"Ctrl+Shift+F", "layer.newFillAll"},
		{"Alt+F", "layer.newFillEmpty"},
		{"Ctrl+M", "mask.toggle"},
		{"Shift+M", "mask.toggleFillEffect"},
		{"Ctrl+Shift+M", "mask.addAOGenerator"},
		{"Ctrl+Alt+M", "mask.addCurvatureGenerator"},
		{"Ctrl+Shift+G", "stack.flattenVisible"},
		{"Ctrl+R", "layer.referencePoint"},
		{"Ctrl+B", "bake.textureSet"},
	}
	for _, tt := range tests {
		b, ok := r.Lookup(key.MustParse(tt.chord))
		if !ok {
			t.Errorf("Lookup(%s) found nothing", tt.chord)
			continue
		}
		if b.Action != tt.action {
			t.Errorf("Lookup(%s) = %q, want %q", tt.chord, b.Action, tt.action)
		}
	}

	if len(r.Effective()) != len(tests) {
		t.Errorf("len(Effective()) = %d, want %d", len(r.Effective()), len(tests))
	}
}

func TestRegistryLookupNormalizes(t *testing.T) {
	r := NewRegistry()
	if err := LoadDefaults(r); err != nil {
		t.Fatal(err)
	}

	// an uppercase rune with Ctrl is Ctrl+Shift
	b, ok := r.Lookup(key.Chord{Key: key.KeyRune, Rune: 'F', Modifiers: key.ModCtrl})
	if !ok || b.Action != "layer.newFillAll" {
		t.Errorf("Lookup(Ctrl+F uppercase) = %q, %v", b.Action, ok)
	}

	if _, ok := r.Lookup(key.MustParse("Ctrl+Q")); ok {
		t.Error("Ctrl+Q should be unbound")
	}
}

func TestRegistryPrecedence(t *testing.T) {
	r := NewRegistry()
	if err := LoadDefaults(r); err != nil {
		t.Fatal(err)
	}

	user := NewKeymap("user").WithPriority(10).Add("Ctrl+M", "mask.addAOGenerator")
	if err := r.Register(user); err != nil {
		t.Fatal(err)
	}
	b, _ := r.Lookup(key.MustParse("Ctrl+M"))
	if b.Action != "mask.addAOGenerator" {
		t.Errorf("user binding should win, got %q", b.Action)
	}

	matches := r.LookupAll(key.MustParse("Ctrl+M"))
	if len(matches) != 2 {
		t.Fatalf("len(LookupAll) = %d, want 2", len(matches))
	}
	if matches[1].Keymap.Name != DefaultKeymapName {
		t.Errorf("second match keymap = %q, want %q", matches[1].Keymap.Name, DefaultKeymapName)
	}

	// same priority: later registration wins
	late := NewKeymap("late").Add("Ctrl+P", "layer.referencePoint")
	if err := r.Register(late); err != nil {
		t.Fatal(err)
	}
	b, _ = r.Lookup(key.MustParse("Ctrl+P"))
	if b.Action != "layer.referencePoint" {
		t.Errorf("later keymap should win ties, got %q", b.Action)
	}

	r.Unregister("late")
	b, _ = r.Lookup(key.MustParse("Ctrl+P"))
	if b.Action != "layer.newPaint" {
		t.Errorf("after Unregister got %q, want layer.newPaint", b.Action)
	}
}

func TestRegistryReplace(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(NewKeymap("user").Add("Ctrl+K", "mask.toggle")); err != nil {
		t.Fatal(err)
	}
	if err := r.Replace("user", NewKeymap("ignored").Add("Ctrl+J", "mask.toggle")); err != nil {
		t.Fatal(err)
	}
	if _, ok := r.Lookup(key.MustParse("Ctrl+K")); ok {
		t.Error("old binding survived Replace")
	}
	if _, ok := r.Lookup(key.MustParse("Ctrl+J")); !ok {
		t.Error("new binding missing after Replace")
	}
	if r.Get("user") == nil {
		t.Error("Replace should keep the registered name")
	}

	// an invalid keymap leaves the old one in place
	if err := r.Replace("user", NewKeymap("user").Add("Nope+J", "mask.toggle")); err == nil {
		t.Error("expected error for invalid keymap")
	}
	if _, ok := r.Lookup(key.MustParse("Ctrl+J")); !ok {
		t.Error("failed Replace should keep the old keymap")
	}

	if err := r.Replace("user", nil); err != nil {
		t.Fatal(err)
	}
	if len(r.Keymaps()) != 0 {
		t.Errorf("len(Keymaps()) = %d, want 0", len(r.Keymaps()))
	}
}

func TestRegistryIsolatedFromCaller(t *testing.T) {
	r := NewRegistry()
	km := NewKeymap("user").Add("Ctrl+K", "mask.toggle")
	if err := r.Register(km); err != nil {
		t.Fatal(err)
	}
	km.Bindings[0].Action = "changed"

	b, _ := r.Lookup(key.MustParse("Ctrl+K"))
	if b.Action != "mask.toggle" {
		t.Errorf("registered binding changed to %q", b.Action)
	}
}

func TestChordsFor(t *testing.T) {
	r := NewRegistry()
	if err := LoadDefaults(r); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(NewKeymap("user").Add("F5", "bake.textureSet")); err != nil {
		t.Fatal(err)
	}
	chords := r.ChordsFor("bake.textureSet")
	if len(chords) != 2 {
		t.Fatalf("ChordsFor = %v, want 2 chords", chords)
	}
	if chords[0].String() != "Ctrl+B" || chords[1].String() != "F5" {
		t.Errorf("ChordsFor = %v", chords)
	}
}

func TestMenu(t *testing.T) {
	r := NewRegistry()
	if err := LoadDefaults(r); err != nil {
		t.Fatal(err)
	}
	menu := Menu(r)

	var names []string
	for _, c := range menu {
		names = append(names, c.Name)
	}
	if got := strings.Join(names, ","); got != "Paint,Fill,Mask,Stack,Bake" {
		t.Errorf("categories = %s", got)
	}
	if got := menu[0].Entries[0].Label; got != "New Paint Layer (Ctrl+P)" {
		t.Errorf("first label = %q", got)
	}
	if got := menu[1].Entries[2].Label; got != "New Fill Layer with All Channels (Ctrl+Shift+F)" {
		t.Errorf("fill-all label = %q", got)
	}
}

func TestGroupByCategory(t *testing.T) {
	groups := GroupByCategory([]Binding{
		{Keys: "a", Action: "x", Category: "B"},
		{Keys: "b", Action: "y"},
		{Keys: "c", Action: "z", Category: "B"},
	})
	if len(groups) != 2 {
		t.Fatalf("len(groups) = %d, want 2", len(groups))
	}
	if groups[0].Name != "B" || len(groups[0].Bindings) != 2 {
		t.Errorf("groups[0] = %+v", groups[0])
	}
	if groups[1].Name != "Other" {
		t.Errorf("groups[1].Name = %q, want Other", groups[1].Name)
	}
}

func TestLoaderFormats(t *testing.T) {
	docs := map[Format]string{
		FormatJSON: `{"name":"user","priority":5,"bindings":[{"keys":"Ctrl+K","action":"mask.toggle","category":"Mask"}]}`,
		FormatYAML: "name: user\npriority: 5\nbindings:\n  - keys: Ctrl+K\n    action: mask.toggle\n    category: Mask\n",
		FormatTOML: "name = \"user\"\npriority = 5\n\n[[bindings]]\nkeys = \"Ctrl+K\"\naction = \"mask.toggle\"\ncategory = \"Mask\"\n",
	}
	for format, doc := range docs {
		t.Run(string(format), func(t *testing.T) {
			km, err := NewLoader().LoadReader(strings.NewReader(doc), format)
			if err != nil {
				t.Fatalf("LoadReader() error = %v", err)
			}
			if km.Name != "user" || km.Priority != 5 {
				t.Errorf("keymap = %+v", km)
			}
			if len(km.Bindings) != 1 || km.Bindings[0].Action != "mask.toggle" || km.Bindings[0].Category != "Mask" {
				t.Errorf("bindings = %+v", km.Bindings)
			}

			var buf bytes.Buffer
			if err := km.Encode(&buf, format); err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			again, err := NewLoader().LoadReader(&buf, format)
			if err != nil {
				t.Fatalf("reloading encoded keymap: %v", err)
			}
			if again.Bindings[0].Keys != "Ctrl+K" {
				t.Errorf("round trip keys = %q", again.Bindings[0].Keys)
			}
		})
	}
}

func TestLoaderRejectsInvalid(t *testing.T) {
	_, err := NewLoader().LoadReader(strings.NewReader("bindings:\n  - keys: Hyper+K\n    action: mask.toggle\n"), FormatYAML)
	if err == nil {
		t.Error("expected error for invalid chord")
	}
	_, err = NewLoader().LoadReader(strings.NewReader("{}"), Format("ini"))
	if err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestLoaderLoadAll(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("extra.yaml", "bindings:\n  - keys: F5\n    action: bake.textureSet\n")
	write("notes.txt", "ignored")

	l := NewLoader()
	l.AddSearchPath(dir)
	l.AddSearchPath(filepath.Join(dir, "missing"))

	r := NewRegistry()
	if err := l.LoadAndRegister(r); err != nil {
		t.Fatalf("LoadAndRegister() error = %v", err)
	}
	km := r.Get("extra")
	if km == nil {
		t.Fatal("keymap named after file not registered")
	}
	if !strings.HasPrefix(km.Source, "file:") {
		t.Errorf("Source = %q", km.Source)
	}
	if _, ok := r.Lookup(key.MustParse("F5")); !ok {
		t.Error("F5 should be bound")
	}

	write("broken.json", "{")
	if _, err := l.LoadAll(); err == nil {
		t.Error("expected error for broken file")
	}
}

func TestSaveFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defaults.toml")
	if err := DefaultKeymap().SaveFile(path); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}
	km, err := NewLoader().LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if len(km.Bindings) != len(DefaultKeymap().Bindings) {
		t.Errorf("len(Bindings) = %d", len(km.Bindings))
	}
	if km.Name != DefaultKeymapName {
		t.Errorf("Name = %q, want %q", km.Name, DefaultKeymapName)
	}
}
