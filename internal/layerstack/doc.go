// Package layerstack implements the compound layer-stack mutations behind
// each shortcut action.
//
// Every component works through a document.Host and never holds on to a
// layer between calls: layers are addressed by handle and re-fetched, since
// the host may reorder or drop layers at any time.
//
// Components:
//
//   - Inspector: read-only queries (selection, mask state, channels)
//   - Factory: paint, fill and empty layers inserted above the selection
//   - MaskController: add, toggle and regenerate the selected layer's mask
//   - Flattener: merge the visible stack per channel into new fill layers
//   - ReferencePoints: numbered, channel-less reference layers
//
// With the exception of flattening, which places its layers at the top of
// the stack, every mutation targets the selected layer or inserts directly
// above it.
package layerstack
