package dispatcher

import (
	"errors"

	"github.com/dshills/layerkeys/internal/dispatcher/handler"
)

// Dispatcher errors.
var (
	// ErrUnknownAction indicates no handler is registered for an action name.
	ErrUnknownAction = handler.ErrUnknownAction

	// ErrRegistrySealed indicates a registration after Seal.
	ErrRegistrySealed = errors.New("dispatcher: registry is sealed")

	// ErrActionCancelled indicates the action was cancelled by a hook.
	ErrActionCancelled = errors.New("dispatcher: action cancelled by hook")

	// ErrPanic indicates the handler panicked.
	ErrPanic = errors.New("dispatcher: handler panic")

	// ErrInvalidAction indicates a malformed action name or handler.
	ErrInvalidAction = errors.New("dispatcher: invalid action")
)
