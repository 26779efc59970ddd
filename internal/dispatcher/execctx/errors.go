package execctx

import (
	"fmt"

	"github.com/dshills/layerkeys/internal/document"
)

// ErrMissingHost indicates the context carries no document. It wraps
// document.ErrNoActiveDocument so callers can treat both alike.
var ErrMissingHost = fmt.Errorf("execution context: host is required: %w", document.ErrNoActiveDocument)
