package document

import (
	"errors"
	"fmt"
)

// Document errors.
//
// ErrNoActiveDocument, ErrNothingVisible and ErrUnsupportedChannel are
// recoverable: the operation reports them and leaves the document unmodified.
var (
	// ErrNoActiveDocument indicates no document or texture set is open.
	ErrNoActiveDocument = errors.New("document: no active document")

	// ErrNothingVisible indicates no supported channel has visible content.
	ErrNothingVisible = errors.New("document: nothing visible to flatten")

	// ErrUnsupportedChannel indicates a channel the texture set does not support.
	ErrUnsupportedChannel = errors.New("document: unsupported channel")

	// ErrLayerNotFound indicates a stale or unknown layer handle.
	ErrLayerNotFound = errors.New("document: layer not found")

	// ErrInvalidGenerator indicates a generator that cannot be used here.
	ErrInvalidGenerator = errors.New("document: invalid generator")

	// ErrNoMask indicates the layer has no mask.
	ErrNoMask = errors.New("document: layer has no mask")
)

// ErrNoSelection indicates an open document with no selected layer.
// It matches ErrNoActiveDocument with errors.Is.
var ErrNoSelection = fmt.Errorf("%w: no layer selected", ErrNoActiveDocument)

// IsRecoverable reports whether err belongs to the recoverable taxonomy.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrNoActiveDocument) ||
		errors.Is(err, ErrNothingVisible) ||
		errors.Is(err, ErrUnsupportedChannel)
}
