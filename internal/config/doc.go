// Package config loads layerkeys settings.
//
// Settings come from three layers, later layers overriding earlier ones:
//
//  1. Built-in defaults (Default)
//  2. A TOML file, by default "layerkeys.toml"
//  3. Environment variables with the LAYERKEYS_ prefix
//
// The file and environment layers are read as generic maps by the loader
// package, deep-merged, and decoded into Config. Unknown keys are errors.
//
// Example file:
//
//	[logging]
//	level = "debug"
//	format = "json"
//
//	[dispatcher]
//	disabled_actions = ["bake.textureSet"]
//
//	[flatten]
//	channels = ["BaseColor", "Roughness"]
//
//	[keymap]
//	file = "~/.config/layerkeys/keymap.yaml"
//
// Environment variables follow the section_key convention:
// LAYERKEYS_BAKE_SWITCH_TO_PAINT=false sets bake.switch_to_paint. The
// shortcuts LAYERKEYS_LOG_LEVEL, LAYERKEYS_LOG_FORMAT, LAYERKEYS_KEYMAP and
// LAYERKEYS_DOCUMENT are also recognized. Lists may be given as JSON arrays
// or comma separated values.
//
// Watch reports edits to a file, which the terminal session uses to reload
// the user keymap without restarting.
package config
