package layerstack

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/dshills/layerkeys/internal/document"
)

// ReferencePoints creates numbered reference layers.
type ReferencePoints struct {
	host      document.Host
	inspector *Inspector
	logger    *zap.Logger
}

// NewReferencePoints creates a reference point creator. A nil logger
// disables logging.
func NewReferencePoints(host document.Host, logger *zap.Logger) *ReferencePoints {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReferencePoints{host: host, inspector: NewInspector(host), logger: logger}
}

// Create inserts a channel-less reference layer above the selection.
// Layers are named "Reference point N", N counting from the reference
// layers already in the stack.
func (r *ReferencePoints) Create() (document.Layer, error) {
	n, err := r.inspector.Count(document.KindReference)
	if err != nil {
		return document.Layer{}, err
	}
	name := fmt.Sprintf("%s %d", referencePointPrefix, n+1)

	id, err := r.host.InsertLayer(document.LayerSpec{
		Kind: document.KindReference,
		Name: name,
	}, document.AboveSelection)
	if err != nil {
		return document.Layer{}, fmt.Errorf("inserting reference point: %w", err)
	}
	r.logger.Debug("reference point created", zap.String("id", string(id)), zap.String("name", name))
	return r.inspector.Layer(id)
}
