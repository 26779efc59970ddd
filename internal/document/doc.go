// Package document describes the host document model the command layer mutates.
//
// The host application owns the document: a texture set with an ordered layer
// stack. This package defines the value types exchanged with the host and the
// Host interface through which every read and write goes. Layers are addressed
// by opaque LayerID handles; callers must not hold on to Layer values across
// calls, since the host may reorder or invalidate layers between invocations.
// Re-fetch with Host.Layer before each use.
//
// # Masks
//
// A layer owns at most one Mask. A mask has a base fill (black or white), an
// optional procedural generator, and may carry painted content. StateOf reduces
// a mask to one of the MaskState values used by the toggle logic:
//
//	NoMask --toggle--> SolidWhite --toggle--> SolidBlack --toggle--> SolidWhite
//	any    --add generator(G)--> Generated
package document
