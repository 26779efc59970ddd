// Package stack provides handlers for whole-stack operations.
package stack

import (
	"fmt"

	"github.com/dshills/layerkeys/internal/dispatcher/execctx"
	"github.com/dshills/layerkeys/internal/dispatcher/handler"
	"github.com/dshills/layerkeys/internal/document"
	"github.com/dshills/layerkeys/internal/input"
	"github.com/dshills/layerkeys/internal/layerstack"
)

// ActionFlattenVisible merges the visible stack into one fill layer per channel.
const ActionFlattenVisible = "stack.flattenVisible" // Ctrl+Shift+G

// ArgChannels is the action argument that overrides the flattened channels
// for one dispatch, as a list of channel names.
const ArgChannels = "channels"

// Handler performs stack operations.
type Handler struct {
	supported document.ChannelSet
}

// NewHandler creates a stack handler flattening the supported channels.
// An empty set selects layerstack.DefaultFlattenChannels.
func NewHandler(supported document.ChannelSet) *Handler {
	if supported.IsEmpty() {
		supported = layerstack.DefaultFlattenChannels()
	}
	return &Handler{supported: supported}
}

// Namespace returns the stack namespace.
func (h *Handler) Namespace() string {
	return "stack"
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	return actionName == ActionFlattenVisible
}

// Actions lists the stack actions.
func (h *Handler) Actions() []string {
	return []string{ActionFlattenVisible}
}

// Supported returns the configured flatten channels.
func (h *Handler) Supported() document.ChannelSet {
	return h.supported
}

// HandleAction processes a stack action.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if action.Name != ActionFlattenVisible {
		return handler.Errorf("unknown stack action: %s", action.Name)
	}
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}

	supported := h.supported
	if names := action.Args.GetStrings(ArgChannels); len(names) > 0 {
		set, err := document.ParseChannelSet(names)
		if err != nil {
			return handler.Error(fmt.Errorf("%s argument: %w", ArgChannels, err))
		}
		supported = set
	}

	layers, err := layerstack.NewFlattener(ctx.Host, ctx.Logger).FlattenVisible(supported)
	if err != nil {
		return handler.Error(err)
	}

	ids := make([]document.LayerID, len(layers))
	for i, l := range layers {
		ids[i] = l.ID
	}
	return handler.SuccessWithMessage(fmt.Sprintf("flattened %d channel(s)", len(layers))).WithLayers(ids...)
}
