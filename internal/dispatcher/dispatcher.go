// Package dispatcher routes actions to handlers and coordinates execution.
package dispatcher

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dshills/layerkeys/internal/dispatcher/execctx"
	"github.com/dshills/layerkeys/internal/dispatcher/handler"
	"github.com/dshills/layerkeys/internal/dispatcher/hook"
	"github.com/dshills/layerkeys/internal/document"
	"github.com/dshills/layerkeys/internal/input"
)

// Dispatcher routes actions to handlers and coordinates execution.
type Dispatcher struct {
	mu sync.RWMutex

	registry *Registry
	host     document.Host
	logger   *zap.Logger

	config  Config
	metrics *Metrics
	hooks   *hook.Manager
}

// New creates a dispatcher over registry. The registry is shared by
// reference; callers normally fill and seal it before the first dispatch.
func New(registry *Registry, config Config) *Dispatcher {
	if registry == nil {
		registry = NewRegistry()
	}
	d := &Dispatcher{
		registry: registry,
		logger:   zap.NewNop(),
		config:   config,
		hooks:    hook.NewManager(),
	}
	if config.EnableMetrics {
		d.metrics = NewMetrics()
	}
	if len(config.DisabledActions) > 0 {
		d.hooks.RegisterPre(hook.NewDisabledActionsHook(config.DisabledActions))
	}
	return d
}

// NewWithDefaults creates a dispatcher with an empty registry and the
// default configuration.
func NewWithDefaults() *Dispatcher {
	return New(NewRegistry(), DefaultConfig())
}

// SetHost sets the document actions operate on. A nil host means no
// document is open.
func (d *Dispatcher) SetHost(host document.Host) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.host = host
}

// Host returns the current document, or nil.
func (d *Dispatcher) Host() document.Host {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.host
}

// SetLogger sets the logger handed to handlers. Nil restores the no-op logger.
func (d *Dispatcher) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.logger = logger
}

// Dispatch executes an action synchronously.
//
// An unknown action name yields ErrUnknownAction and a missing document
// yields document.ErrNoActiveDocument; in both cases the document is
// untouched. The action name is checked first.
func (d *Dispatcher) Dispatch(action input.Action) handler.Result {
	start := time.Now()

	d.mu.RLock()
	host, logger := d.host, d.logger
	d.mu.RUnlock()

	ctx := execctx.New(host).WithLogger(logger)
	result := d.dispatch(action, ctx)

	d.hooks.RunPostDispatch(&action, ctx, &result)

	if d.metrics != nil {
		d.metrics.RecordDispatch(action.Name, time.Since(start), result.Status)
	}
	return result
}

func (d *Dispatcher) dispatch(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	h := d.registry.Lookup(action.Name)
	if h == nil {
		return handler.Error(fmt.Errorf("%w: %q", ErrUnknownAction, action.Name))
	}

	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}
	sel, ok, err := ctx.Host.Selection()
	if err != nil {
		return handler.Error(err)
	}
	if ok {
		ctx.WithSelection(sel)
	}

	if !d.hooks.RunPreDispatch(&action, ctx) {
		msg := ctx.GetDataString(hook.CancelReasonKey)
		if msg == "" {
			msg = ErrActionCancelled.Error()
		}
		return handler.CancelledWithMessage(msg)
	}

	if d.config.RecoverFromPanic {
		return d.executeWithRecovery(h, action, ctx)
	}
	return h.Handle(action, ctx)
}

// executeWithRecovery executes a handler with panic recovery.
func (d *Dispatcher) executeWithRecovery(h handler.Handler, action input.Action, ctx *execctx.ExecutionContext) (result handler.Result) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)
			ctx.Logger.Error("handler panic",
				zap.String("action", action.Name),
				zap.Any("panic", r),
				zap.ByteString("stack", stack[:n]),
			)

			result = handler.Error(fmt.Errorf("%w in %s: %v", ErrPanic, action.Name, r))
			if d.metrics != nil {
				d.metrics.RecordPanic(action.Name)
			}
		}
	}()

	return h.Handle(action, ctx)
}

// DispatchName dispatches the action with the given name and no arguments.
func (d *Dispatcher) DispatchName(name string, source input.ActionSource) handler.Result {
	return d.Dispatch(input.NewAction(name, source))
}

// Actions lists every action name the dispatcher can invoke.
func (d *Dispatcher) Actions() []string {
	return d.registry.Actions()
}

// Registry returns the handler registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Metrics returns the metrics collector (nil when disabled).
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Config returns the dispatcher configuration.
func (d *Dispatcher) Config() Config {
	return d.config
}

// HookManager returns the hook manager.
func (d *Dispatcher) HookManager() *hook.Manager {
	return d.hooks
}
