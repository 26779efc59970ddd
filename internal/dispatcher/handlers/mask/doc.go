// Package mask provides handlers for layer mask operations.
//
// All actions apply to the selected layer; with nothing selected they fail
// with document.ErrNoSelection:
//   - mask.toggle: add a white mask, or flip the background of the mask
//   - mask.toggleFillEffect: as mask.toggle, a new mask carries a fill effect
//   - mask.addAOGenerator: replace the mask with a black ambient occlusion mask
//   - mask.addCurvatureGenerator: replace the mask with a black curvature mask
//
// On success the result data holds the mask state under DataState.
package mask
