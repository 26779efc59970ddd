package hook

import (
	"time"

	"go.uber.org/zap"

	"github.com/dshills/layerkeys/internal/dispatcher/execctx"
	"github.com/dshills/layerkeys/internal/dispatcher/handler"
	"github.com/dshills/layerkeys/internal/input"
)

// Standard hook priorities.
const (
	PriorityLogging    = 1000 // Runs first (pre) / last (post)
	PriorityValidation = 800  // Filter before any work happens
)

// Context data keys written by the built-in hooks.
const (
	// CancelReasonKey holds the reason a pre-hook cancelled the dispatch.
	CancelReasonKey = "hook.cancel_reason"

	startKey = "hook.logging_start"
)

// LoggingHook writes one structured log entry per dispatch.
type LoggingHook struct {
	logger *zap.Logger
}

// NewLoggingHook creates a logging hook. A nil logger disables output.
func NewLoggingHook(logger *zap.Logger) *LoggingHook {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggingHook{logger: logger}
}

// Name implements Hook.
func (h *LoggingHook) Name() string { return "logging" }

// Priority implements Hook.
func (h *LoggingHook) Priority() int { return PriorityLogging }

// PreDispatch records the start time.
func (h *LoggingHook) PreDispatch(action *input.Action, ctx *execctx.ExecutionContext) bool {
	ctx.SetData(startKey, time.Now())
	return true
}

// PostDispatch logs the action with its outcome. Expected document
// conditions log at warn, anything else that failed at error.
func (h *LoggingHook) PostDispatch(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result) {
	fields := []zap.Field{
		zap.String("action", action.Name),
		zap.Stringer("source", action.Source),
		zap.Stringer("status", result.Status),
	}
	if action.Args.Chord != "" {
		fields = append(fields, zap.String("chord", action.Args.Chord))
	}
	if v, ok := ctx.GetData(startKey); ok {
		if start, ok := v.(time.Time); ok {
			fields = append(fields, zap.Duration("duration", time.Since(start)))
		}
	}
	if len(result.Layers) > 0 {
		fields = append(fields, zap.Int("layers", len(result.Layers)))
	}

	switch {
	case result.Status != handler.StatusError:
		h.logger.Debug("dispatch complete", fields...)
	case result.IsRecoverable():
		h.logger.Warn("dispatch rejected", append(fields, zap.Error(result.Error))...)
	default:
		h.logger.Error("dispatch failed", append(fields, zap.Error(result.Error))...)
	}
}

// ActionFilterHook allows or blocks actions based on a filter function.
type ActionFilterHook struct {
	name     string
	priority int
	filter   func(action *input.Action, ctx *execctx.ExecutionContext) (allow bool, reason string)
}

// NewActionFilterHook creates an action filter hook.
func NewActionFilterHook(name string, priority int, filter func(*input.Action, *execctx.ExecutionContext) (bool, string)) *ActionFilterHook {
	return &ActionFilterHook{
		name:     name,
		priority: priority,
		filter:   filter,
	}
}

// NewDisabledActionsHook blocks every action named in disabled.
func NewDisabledActionsHook(disabled []string) *ActionFilterHook {
	set := make(map[string]struct{}, len(disabled))
	for _, name := range disabled {
		set[name] = struct{}{}
	}
	return NewActionFilterHook("disabled-actions", PriorityValidation, func(action *input.Action, _ *execctx.ExecutionContext) (bool, string) {
		if _, ok := set[action.Name]; ok {
			return false, "action " + action.Name + " is disabled"
		}
		return true, ""
	})
}

// Name implements Hook.
func (h *ActionFilterHook) Name() string { return h.name }

// Priority implements Hook.
func (h *ActionFilterHook) Priority() int { return h.priority }

// PreDispatch applies the filter. The reason for a rejection is stored on
// the context under CancelReasonKey.
func (h *ActionFilterHook) PreDispatch(action *input.Action, ctx *execctx.ExecutionContext) bool {
	if h.filter == nil {
		return true
	}
	allow, reason := h.filter(action, ctx)
	if !allow && reason != "" {
		ctx.SetData(CancelReasonKey, reason)
	}
	return allow
}
