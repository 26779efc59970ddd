package input_test

import (
	"errors"
	"testing"

	"github.com/dshills/layerkeys/internal/input"
	"github.com/dshills/layerkeys/internal/input/key"
	"github.com/dshills/layerkeys/internal/input/keymap"
)

func newResolver(t *testing.T) *input.Resolver {
	t.Helper()
	r := keymap.NewRegistry()
	if err := keymap.LoadDefaults(r); err != nil {
		t.Fatal(err)
	}
	return input.NewResolver(r)
}

func TestResolve(t *testing.T) {
	r := newResolver(t)

	action, err := r.Resolve(key.NewRune('m', key.ModCtrl))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if action.Name != "mask.toggle" {
		t.Errorf("Name = %q, want %q", action.Name, "mask.toggle")
	}
	if action.Source != input.SourceKeyboard {
		t.Errorf("Source = %v, want keyboard", action.Source)
	}
	if action.Args.Chord != "Ctrl+M" {
		t.Errorf("Args.Chord = %q, want %q", action.Args.Chord, "Ctrl+M")
	}
	if action.Namespace() != "mask" {
		t.Errorf("Namespace() = %q, want %q", action.Namespace(), "mask")
	}
}

func TestResolveUnbound(t *testing.T) {
	r := newResolver(t)
	_, err := r.ResolveSpec("Ctrl+Q")
	if !errors.Is(err, input.ErrUnboundChord) {
		t.Errorf("error = %v, want ErrUnboundChord", err)
	}
	if _, err := r.ResolveSpec("Hyper+Q"); !errors.Is(err, key.ErrInvalidSpec) {
		t.Errorf("error = %v, want ErrInvalidSpec", err)
	}
}

func TestResolveBindingArgs(t *testing.T) {
	reg := keymap.NewRegistry()
	km := keymap.NewKeymap("user").AddBinding(
		keymap.NewBinding("F6", "stack.flattenVisible").
			WithArgs(map[string]any{"channels": []any{"BaseColor", "Height"}}),
	)
	if err := reg.Register(km); err != nil {
		t.Fatal(err)
	}

	action, err := input.NewResolver(reg).ResolveSpec("F6")
	if err != nil {
		t.Fatal(err)
	}
	got := action.Args.GetStrings("channels")
	if len(got) != 2 || got[0] != "BaseColor" || got[1] != "Height" {
		t.Errorf("GetStrings(channels) = %v", got)
	}
}

func TestActionSourceString(t *testing.T) {
	tests := []struct {
		src  input.ActionSource
		want string
	}{
		{input.SourceKeyboard, "keyboard"},
		{input.SourceMenu, "menu"},
		{input.SourceCLI, "cli"},
		{input.SourceAPI, "api"},
		{input.ActionSource(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.src.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
