// Package memhost provides an in-memory document.Host.
//
// A Document keeps a layer stack, a selection, a texture set description and
// the UI mode. It backs the terminal session and the dispatch command, and it
// is the host used by the package tests. Bakes are queued rather than run:
// CompleteBakes plays the role of the host's "baking finished" event.
//
// Documents can be loaded from and saved to YAML snapshots.
package memhost
