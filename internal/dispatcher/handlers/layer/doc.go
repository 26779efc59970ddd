// Package layer provides handlers for layer creation.
//
// Every new layer is inserted directly above the selected layer, or at
// the top of an empty or unselected stack, and becomes the selection:
//   - layer.newPaint: paint layer with every texture-set channel
//   - layer.newFillBaseColor: fill layer with Base Color only
//   - layer.newFillHeight: fill layer with Height only
//   - layer.newFillAll: fill layer with every texture-set channel
//   - layer.newFillEmpty: fill layer with no channel active
//   - layer.referencePoint: numbered reference point layer
//
// A texture set lacking the requested channel fails with
// document.ErrUnsupportedChannel and leaves the stack unchanged.
package layer
