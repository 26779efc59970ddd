// Package key defines key chords and their textual notation.
//
// A Chord is one key press plus modifiers, such as Ctrl+Shift+F. Chords are
// normalized so that every way of writing the same press compares equal:
// letters are stored lowercase and an uppercase letter becomes Shift plus
// the lowercase letter.
//
// # Notation
//
// Chords can be written as:
//
//   - Plain keys: "m", "F", "Enter", "F5"
//   - Modifier form: "Ctrl+P", "Ctrl+Alt+F", "shift+m"
//   - Vim form: "<C-p>", "<C-S-f>", "<A-f>"
//
// String always produces the modifier form in Ctrl, Alt, Shift, Meta order
// with an uppercase letter, e.g. "Ctrl+Shift+G".
package key
