// Package dispatcher routes actions to handlers and coordinates execution.
//
// Actions reach the dispatcher by name, whether they come from a key
// chord, a menu entry or the command line. The dispatcher looks the name
// up in a Registry, builds an execctx.ExecutionContext for the open
// document and runs the handler.
//
// # Registry
//
// A Registry is filled once at startup and then sealed:
//
//	reg := dispatcher.NewRegistry()
//	if err := handlers.RegisterAll(reg, deps); err != nil { ... }
//	reg.Seal()
//	d := dispatcher.New(reg, dispatcher.DefaultConfig())
//
// Names are routed by namespace prefix first ("mask" for "mask.toggle"),
// then by exact registration.
//
// # Dispatch
//
// When an action is dispatched:
//
//  1. The name is looked up; unknown names fail with ErrUnknownAction.
//  2. The document and its selection are read into the context; a missing
//     document fails with document.ErrNoActiveDocument.
//  3. Pre-dispatch hooks run and may cancel the action.
//  4. The handler runs, with panic recovery when configured.
//  5. Post-dispatch hooks run; they see every result, including failures.
//  6. Metrics are recorded when enabled.
//
// Failures are reported in the returned handler.Result and never abort the
// caller. The dispatcher does not retry.
package dispatcher
