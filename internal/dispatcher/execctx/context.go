// Package execctx provides the execution context for action handlers.
package execctx

import (
	"go.uber.org/zap"

	"github.com/dshills/layerkeys/internal/document"
)

// ExecutionContext provides context for action execution.
// It is built fresh for each dispatch and carries the document the action
// operates on together with the selection observed at dispatch time.
type ExecutionContext struct {
	// Host is the open document.
	Host document.Host

	// Selection is the layer selected when the dispatch began.
	// Only meaningful when HasSelection is true.
	Selection document.LayerID

	// HasSelection reports whether a layer was selected.
	HasSelection bool

	// Logger receives handler diagnostics. Never nil after New.
	Logger *zap.Logger

	// Data holds handler-specific context data.
	Data map[string]interface{}
}

// New creates a new execution context for host.
func New(host document.Host) *ExecutionContext {
	return &ExecutionContext{
		Host:   host,
		Logger: zap.NewNop(),
		Data:   make(map[string]interface{}),
	}
}

// WithSelection returns the context with the selected layer set.
func (ctx *ExecutionContext) WithSelection(id document.LayerID) *ExecutionContext {
	ctx.Selection = id
	ctx.HasSelection = true
	return ctx
}

// WithLogger returns the context with the logger set. A nil logger is ignored.
func (ctx *ExecutionContext) WithLogger(logger *zap.Logger) *ExecutionContext {
	if logger != nil {
		ctx.Logger = logger
	}
	return ctx
}

// RequireSelection returns the selected layer, or document.ErrNoSelection.
func (ctx *ExecutionContext) RequireSelection() (document.LayerID, error) {
	if err := ctx.Validate(); err != nil {
		return "", err
	}
	if !ctx.HasSelection {
		return "", document.ErrNoSelection
	}
	return ctx.Selection, nil
}

// SetData sets a context data value.
func (ctx *ExecutionContext) SetData(key string, value interface{}) {
	if ctx.Data == nil {
		ctx.Data = make(map[string]interface{})
	}
	ctx.Data[key] = value
}

// GetData retrieves a context data value.
func (ctx *ExecutionContext) GetData(key string) (interface{}, bool) {
	if ctx.Data == nil {
		return nil, false
	}
	v, ok := ctx.Data[key]
	return v, ok
}

// GetDataString retrieves a string value from context data.
func (ctx *ExecutionContext) GetDataString(key string) string {
	if v, ok := ctx.GetData(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Validate checks that the context has a document to work on.
func (ctx *ExecutionContext) Validate() error {
	if ctx.Host == nil {
		return ErrMissingHost
	}
	return nil
}
