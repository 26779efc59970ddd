// Package hook provides pre/post dispatch hooks for the dispatcher.
//
// Hooks intercept every dispatch for cross-cutting concerns such as
// structured logging and action filtering. Each hook has a name, which is
// unique within a Manager, and a priority:
//
//   - Pre-hooks run from the highest priority to the lowest. Any pre-hook
//     may cancel the dispatch by returning false.
//   - Post-hooks run from the lowest priority to the highest, so the most
//     important hooks observe the final result.
//
// Typical setup:
//
//	manager := hook.NewManager()
//	manager.Register(hook.NewLoggingHook(logger))
//	manager.RegisterPre(hook.NewActionFilterHook("disabled", hook.PriorityValidation, filter))
//
// All types in this package are safe for concurrent use.
package hook
