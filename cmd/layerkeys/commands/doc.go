// Package commands implements the layerkeys command line.
//
// The root command loads layerkeys.toml (or the file named by --config or
// LAYERKEYS_CONFIG), applies LAYERKEYS_* overrides and builds the logger
// before any subcommand runs:
//
//	layerkeys run                   interactive terminal session
//	layerkeys bindings              print the shortcut menu
//	layerkeys dispatch Ctrl+F ...   apply actions to a document
//	layerkeys config                print the effective configuration
//	layerkeys version
package commands
