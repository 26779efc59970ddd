package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Parse errors.
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Chord is a single key press with modifiers.
type Chord struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune chords.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// NewRune returns the normalized chord for a character key.
func NewRune(r rune, mods Modifier) Chord {
	return Chord{Key: KeyRune, Rune: r, Modifiers: mods}.Normalize()
}

// NewSpecial returns the chord for a special key.
func NewSpecial(k Key, mods Modifier) Chord {
	return Chord{Key: k, Modifiers: mods}.Normalize()
}

// Normalize returns the canonical form of the chord: letters are lowercase,
// an uppercase letter implies Shift, and a space rune becomes KeySpace.
func (c Chord) Normalize() Chord {
	if c.Key != KeyRune {
		c.Rune = 0
		return c
	}
	if c.Rune == ' ' {
		return Chord{Key: KeySpace, Modifiers: c.Modifiers}
	}
	if unicode.IsUpper(c.Rune) {
		c.Rune = unicode.ToLower(c.Rune)
		c.Modifiers = c.Modifiers.With(ModShift)
	}
	return c
}

// String returns the modifier form, e.g. "Ctrl+Shift+F".
func (c Chord) String() string {
	var name string
	switch {
	case c.Key == KeyRune && unicode.IsLetter(c.Rune):
		name = string(unicode.ToUpper(c.Rune))
	case c.Key == KeyRune:
		name = string(c.Rune)
	default:
		name = c.Key.String()
	}
	if mods := c.Modifiers.String(); mods != "" {
		return mods + "+" + name
	}
	return name
}

// VimString returns the Vim form, e.g. "<C-S-f>".
func (c Chord) VimString() string {
	var b strings.Builder
	b.WriteByte('<')
	for _, o := range []struct {
		mod    Modifier
		letter string
	}{{ModCtrl, "C-"}, {ModAlt, "A-"}, {ModShift, "S-"}, {ModMeta, "M-"}} {
		if c.Modifiers.Has(o.mod) {
			b.WriteString(o.letter)
		}
	}
	if c.Key == KeyRune {
		b.WriteRune(c.Rune)
	} else {
		b.WriteString(c.Key.String())
	}
	b.WriteByte('>')
	return b.String()
}

// Parse parses a chord specification.
//
// Supported formats:
//   - Single character: "m", "M" (Shift+M); with modifiers the case of
//     the key is ignored, so "Ctrl+F" and "Ctrl+f" are the same chord
//   - Special keys: "Enter", "Escape", "F5", "Space"
//   - With modifiers: "Ctrl+P", "Ctrl+Alt+F", "Ctrl+Shift+G"
//   - Vim-style: "<C-p>", "<C-S-g>", "<A-f>"
func Parse(spec string) (Chord, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Chord{}, ErrEmptySpec
	}

	if strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") && len(spec) > 2 {
		return parseVimStyle(spec[1 : len(spec)-1])
	}
	if len(spec) > 1 && strings.Contains(spec, "+") {
		return parseModifierStyle(spec)
	}
	return parseKey(spec, ModNone)
}

// MustParse parses a chord and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Chord {
	c, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return c
}

// NormalizeSpec parses spec and returns its canonical string.
func NormalizeSpec(spec string) (string, error) {
	c, err := Parse(spec)
	if err != nil {
		return "", err
	}
	return c.String(), nil
}

func parseVimStyle(inner string) (Chord, error) {
	parts := strings.Split(inner, "-")
	// "<C-->" binds the minus key
	if strings.HasSuffix(inner, "--") {
		parts = append(strings.Split(strings.TrimSuffix(inner, "--"), "-"), "-")
	}

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		mod, ok := vimModifiers[strings.ToLower(strings.TrimSpace(p))]
		if !ok {
			return Chord{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods = mods.With(mod)
	}
	return parseKey(parts[len(parts)-1], mods)
}

func parseModifierStyle(spec string) (Chord, error) {
	parts := strings.Split(spec, "+")
	// "Ctrl++" binds the plus key
	if strings.HasSuffix(spec, "++") {
		parts = append(strings.Split(strings.TrimSuffix(spec, "++"), "+"), "+")
	}

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Chord{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods = mods.With(mod)
	}
	return parseKey(parts[len(parts)-1], mods)
}

func parseKey(part string, mods Modifier) (Chord, error) {
	if part != " " {
		part = strings.TrimSpace(part)
	}
	if part == "" {
		return Chord{}, fmt.Errorf("%w: missing key", ErrInvalidSpec)
	}

	runes := []rune(part)
	if len(runes) == 1 {
		r := runes[0]
		// Only a bare uppercase letter implies Shift; "Ctrl+F" names the key.
		if mods != ModNone {
			r = unicode.ToLower(r)
		}
		return NewRune(r, mods), nil
	}
	if k := KeyFromName(part); k != KeyNone {
		return NewSpecial(k, mods), nil
	}
	return Chord{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, part)
}
