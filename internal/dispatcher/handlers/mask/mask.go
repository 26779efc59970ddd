// Package mask provides handlers for layer mask operations.
package mask

import (
	"github.com/dshills/layerkeys/internal/dispatcher/execctx"
	"github.com/dshills/layerkeys/internal/dispatcher/handler"
	"github.com/dshills/layerkeys/internal/document"
	"github.com/dshills/layerkeys/internal/input"
	"github.com/dshills/layerkeys/internal/layerstack"
)

// Action names for mask operations.
const (
	ActionToggle                = "mask.toggle"                // Ctrl+M
	ActionToggleFillEffect      = "mask.toggleFillEffect"      // Shift+M
	ActionAddAOGenerator        = "mask.addAOGenerator"        // Ctrl+Shift+M
	ActionAddCurvatureGenerator = "mask.addCurvatureGenerator" // Ctrl+Alt+M
)

// DataState is the result data key holding the resulting mask state name.
const DataState = "state"

// Handler operates on the mask of the selected layer.
type Handler struct {
	*handler.BaseNamespaceHandler
}

// NewHandler creates a new mask handler.
func NewHandler() *Handler {
	h := &Handler{BaseNamespaceHandler: handler.NewBaseNamespaceHandler("mask")}
	h.Register(ActionToggle, selected(func(c *layerstack.MaskController, id document.LayerID) (document.Mask, error) {
		return c.Toggle(id)
	}))
	h.Register(ActionToggleFillEffect, selected(func(c *layerstack.MaskController, id document.LayerID) (document.Mask, error) {
		return c.ToggleWithFillEffect(id)
	}))
	h.Register(ActionAddAOGenerator, selected(func(c *layerstack.MaskController, id document.LayerID) (document.Mask, error) {
		return c.AddGenerator(id, document.GeneratorAmbientOcclusion)
	}))
	h.Register(ActionAddCurvatureGenerator, selected(func(c *layerstack.MaskController, id document.LayerID) (document.Mask, error) {
		return c.AddGenerator(id, document.GeneratorCurvature)
	}))
	return h
}

// selected adapts a mask operation on one layer to an action on the selection.
func selected(op func(*layerstack.MaskController, document.LayerID) (document.Mask, error)) handler.ActionFunc {
	return func(_ input.Action, ctx *execctx.ExecutionContext) handler.Result {
		id, err := ctx.RequireSelection()
		if err != nil {
			return handler.Error(err)
		}
		m, err := op(layerstack.NewMaskController(ctx.Host, ctx.Logger), id)
		if err != nil {
			return handler.Error(err)
		}
		state := document.StateOf(&m)
		return handler.SuccessWithMessage("mask is "+state.String()).
			WithLayers(id).
			WithData(DataState, state.String())
	}
}
