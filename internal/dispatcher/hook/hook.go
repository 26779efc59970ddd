package hook

import (
	"github.com/dshills/layerkeys/internal/dispatcher/execctx"
	"github.com/dshills/layerkeys/internal/dispatcher/handler"
	"github.com/dshills/layerkeys/internal/input"
)

// Hook is the base interface for all dispatch hooks.
type Hook interface {
	// Name returns a unique identifier for this hook.
	Name() string

	// Priority returns the hook priority.
	// Higher values run first for pre-hooks, last for post-hooks.
	Priority() int
}

// PreDispatchHook is called before an action is dispatched.
type PreDispatchHook interface {
	Hook

	// PreDispatch may modify the action or context.
	// Returns false to cancel the dispatch.
	PreDispatch(action *input.Action, ctx *execctx.ExecutionContext) bool
}

// PostDispatchHook is called after an action is dispatched.
type PostDispatchHook interface {
	Hook

	// PostDispatch may inspect or modify the result.
	PostDispatch(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result)
}

// PreFunc is the function form of PreDispatchHook.PreDispatch.
type PreFunc func(action *input.Action, ctx *execctx.ExecutionContext) bool

// PostFunc is the function form of PostDispatchHook.PostDispatch.
type PostFunc func(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result)

// FuncHook wraps plain functions as a hook. Either function may be nil.
type FuncHook struct {
	name     string
	priority int
	pre      PreFunc
	post     PostFunc
}

// NewPreDispatchFunc creates a hook that only runs before dispatch.
func NewPreDispatchFunc(name string, priority int, fn PreFunc) *FuncHook {
	return &FuncHook{name: name, priority: priority, pre: fn}
}

// NewPostDispatchFunc creates a hook that only runs after dispatch.
func NewPostDispatchFunc(name string, priority int, fn PostFunc) *FuncHook {
	return &FuncHook{name: name, priority: priority, post: fn}
}

// Name implements Hook.
func (f *FuncHook) Name() string { return f.name }

// Priority implements Hook.
func (f *FuncHook) Priority() int { return f.priority }

// PreDispatch implements PreDispatchHook.
func (f *FuncHook) PreDispatch(action *input.Action, ctx *execctx.ExecutionContext) bool {
	if f.pre == nil {
		return true
	}
	return f.pre(action, ctx)
}

// PostDispatch implements PostDispatchHook.
func (f *FuncHook) PostDispatch(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result) {
	if f.post != nil {
		f.post(action, ctx, result)
	}
}
