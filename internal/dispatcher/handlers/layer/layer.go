// Package layer provides handlers for layer creation.
package layer

import (
	"github.com/dshills/layerkeys/internal/dispatcher/execctx"
	"github.com/dshills/layerkeys/internal/dispatcher/handler"
	"github.com/dshills/layerkeys/internal/document"
	"github.com/dshills/layerkeys/internal/input"
	"github.com/dshills/layerkeys/internal/layerstack"
)

// Action names for layer operations.
const (
	ActionNewPaint         = "layer.newPaint"         // Ctrl+P
	ActionNewFillBaseColor = "layer.newFillBaseColor" // Ctrl+F
	ActionNewFillHeight    = "layer.newFillHeight"    // Ctrl+Alt+F
	ActionNewFillAll       = "layer.newFillAll"       // Ctrl+Shift+F
	ActionNewFillEmpty     = "layer.newFillEmpty"     // Alt+F
	ActionReferencePoint   = "layer.referencePoint"   // Ctrl+R
)

// Handler creates layers above the selection.
type Handler struct{}

// NewHandler creates a new layer handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Namespace returns the layer namespace.
func (h *Handler) Namespace() string {
	return "layer"
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionNewPaint, ActionNewFillBaseColor, ActionNewFillHeight,
		ActionNewFillAll, ActionNewFillEmpty, ActionReferencePoint:
		return true
	}
	return false
}

// Actions lists the layer actions.
func (h *Handler) Actions() []string {
	return []string{
		ActionNewPaint, ActionNewFillBaseColor, ActionNewFillHeight,
		ActionNewFillAll, ActionNewFillEmpty, ActionReferencePoint,
	}
}

// HandleAction processes a layer action.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}
	factory := layerstack.NewFactory(ctx.Host, ctx.Logger)

	var (
		l   document.Layer
		err error
	)
	switch action.Name {
	case ActionNewPaint:
		l, err = factory.Paint()
	case ActionNewFillBaseColor:
		l, err = factory.Fill(document.NewChannelSet(document.ChannelBaseColor), layerstack.NameFillBaseColor)
	case ActionNewFillHeight:
		l, err = factory.Fill(document.NewChannelSet(document.ChannelHeight), layerstack.NameFillHeight)
	case ActionNewFillAll:
		l, err = factory.FillAll()
	case ActionNewFillEmpty:
		l, err = factory.Fill(0, layerstack.NameFillEmpty)
	case ActionReferencePoint:
		l, err = layerstack.NewReferencePoints(ctx.Host, ctx.Logger).Create()
	default:
		return handler.Errorf("unknown layer action: %s", action.Name)
	}
	if err != nil {
		return handler.Error(err)
	}
	return handler.SuccessWithMessage("created " + l.Name).WithLayers(l.ID)
}
