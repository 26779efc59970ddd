// Package input turns key chords and menu picks into actions.
//
// An Action names a command ("mask.toggle") and records where it came
// from. The Resolver maps a chord to an action through the keymap registry;
// the dispatcher then runs it. Menu entries and the command line build
// actions by name, so every command works without a chord.
//
// # Usage
//
//	keymaps := keymap.NewRegistry()
//	_ = keymap.LoadDefaults(keymaps)
//
//	resolver := input.NewResolver(keymaps)
//	action, err := resolver.Resolve(key.MustParse("Ctrl+M"))
//	if err == nil {
//	    result := dispatcher.Dispatch(action)
//	}
package input
