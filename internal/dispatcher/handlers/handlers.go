// Package handlers registers every layer-stack action with a dispatcher registry.
package handlers

import (
	"fmt"

	corebake "github.com/dshills/layerkeys/internal/bake"
	"github.com/dshills/layerkeys/internal/dispatcher"
	"github.com/dshills/layerkeys/internal/dispatcher/handler"
	"github.com/dshills/layerkeys/internal/dispatcher/handlers/bake"
	"github.com/dshills/layerkeys/internal/dispatcher/handlers/layer"
	"github.com/dshills/layerkeys/internal/dispatcher/handlers/mask"
	"github.com/dshills/layerkeys/internal/dispatcher/handlers/stack"
	"github.com/dshills/layerkeys/internal/document"
)

// Options configures the registered handlers.
type Options struct {
	// FlattenChannels is the channel set flattened by stack.flattenVisible.
	// Empty selects the default set.
	FlattenChannels document.ChannelSet

	// Bake configures bake.textureSet.
	Bake corebake.Config
}

// DefaultOptions returns the default handler options.
func DefaultOptions() Options {
	return Options{Bake: corebake.DefaultConfig()}
}

// RegisterAll registers the layer, mask, stack and bake namespaces.
// The caller seals the registry afterwards.
func RegisterAll(reg *dispatcher.Registry, opts Options) error {
	namespaces := []handler.NamespaceHandler{
		layer.NewHandler(),
		mask.NewHandler(),
		stack.NewHandler(opts.FlattenChannels),
		bake.NewHandler(opts.Bake),
	}
	for _, h := range namespaces {
		if err := reg.RegisterNamespace(h); err != nil {
			return fmt.Errorf("registering %s handlers: %w", h.Namespace(), err)
		}
	}
	return nil
}

// NewRegistry returns a sealed registry holding every action.
func NewRegistry(opts Options) (*dispatcher.Registry, error) {
	reg := dispatcher.NewRegistry()
	if err := RegisterAll(reg, opts); err != nil {
		return nil, err
	}
	reg.Seal()
	return reg, nil
}
