// Package bake provides the handler that starts mesh map bakes.
package bake

import (
	"github.com/dshills/layerkeys/internal/bake"
	"github.com/dshills/layerkeys/internal/dispatcher/execctx"
	"github.com/dshills/layerkeys/internal/dispatcher/handler"
	"github.com/dshills/layerkeys/internal/input"
)

// ActionTextureSet bakes the mesh maps of the active texture set.
const ActionTextureSet = "bake.textureSet" // Ctrl+B

// DataTextureSet is the result data key holding the baked texture set name.
const DataTextureSet = "texture_set"

// Handler queues bakes.
type Handler struct {
	cfg bake.Config
}

// NewHandler creates a bake handler using cfg for every request.
func NewHandler(cfg bake.Config) *Handler {
	return &Handler{cfg: cfg}
}

// Namespace returns the bake namespace.
func (h *Handler) Namespace() string {
	return "bake"
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	return actionName == ActionTextureSet
}

// Actions lists the bake actions.
func (h *Handler) Actions() []string {
	return []string{ActionTextureSet}
}

// HandleAction queues the bake and returns StatusAsync; the bake finishes
// after the dispatch has returned.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if action.Name != ActionTextureSet {
		return handler.Errorf("unknown bake action: %s", action.Name)
	}
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}

	req, err := bake.NewTrigger(ctx.Host, h.cfg, ctx.Logger).BakeActiveTextureSet()
	if err != nil {
		return handler.Error(err)
	}
	return handler.AsyncWithMessage("baking "+req.TextureSet).
		WithData(DataTextureSet, req.TextureSet)
}
