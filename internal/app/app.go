// Package app wires the dispatcher, the keymaps and a document host into a
// running layerkeys instance. It is shared by the terminal session and the
// command line.
package app

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/dshills/layerkeys/internal/config"
	"github.com/dshills/layerkeys/internal/dispatcher"
	"github.com/dshills/layerkeys/internal/dispatcher/handler"
	"github.com/dshills/layerkeys/internal/dispatcher/handlers"
	"github.com/dshills/layerkeys/internal/dispatcher/hook"
	"github.com/dshills/layerkeys/internal/document"
	"github.com/dshills/layerkeys/internal/input"
	"github.com/dshills/layerkeys/internal/input/key"
	"github.com/dshills/layerkeys/internal/input/keymap"
	"github.com/dshills/layerkeys/internal/input/palette"
	"github.com/dshills/layerkeys/internal/logging"
)

// UserKeymapName is the registry name of the keymap loaded from
// keymap.file. It outranks the defaults.
const (
	UserKeymapName     = "user"
	userKeymapPriority = 100

	launcherHistory = 50
)

// App is the central coordinator for one document.
type App struct {
	mu sync.Mutex

	cfg    config.Config
	logger *zap.Logger
	host   document.Host

	dispatcher *dispatcher.Dispatcher
	keymaps    *keymap.Registry
	resolver   *input.Resolver
	launcher   *palette.Palette

	stopWatch func()
}

// New builds an App operating on host. A nil logger disables logging.
func New(host document.Host, cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &App{
		cfg:    cfg,
		logger: logger,
		host:   host,
	}
	if err := a.bootstrap(); err != nil {
		return nil, err
	}
	return a, nil
}

// bootstrap initializes components in dependency order.
func (a *App) bootstrap() error {
	// 1. Handlers
	flatten, err := a.cfg.Flatten.ChannelSet()
	if err != nil {
		return &InitError{Component: "handlers", Err: err}
	}
	bakeCfg, err := a.cfg.Bake.Settings()
	if err != nil {
		return &InitError{Component: "handlers", Err: err}
	}
	registry, err := handlers.NewRegistry(handlers.Options{
		FlattenChannels: flatten,
		Bake:            bakeCfg,
	})
	if err != nil {
		return &InitError{Component: "handlers", Err: err}
	}

	// 2. Dispatcher
	a.dispatcher = dispatcher.New(registry, a.cfg.Dispatcher.Settings())
	a.dispatcher.SetHost(a.host)
	a.dispatcher.SetLogger(logging.Component(a.logger, "handler"))
	a.dispatcher.HookManager().Register(hook.NewLoggingHook(logging.Component(a.logger, "dispatcher")))

	// 3. Keymaps
	a.keymaps = keymap.NewRegistry()
	if err := keymap.LoadDefaults(a.keymaps); err != nil {
		return &InitError{Component: "keymaps", Err: err}
	}
	if a.cfg.Keymap.File != "" {
		if err := a.ReloadKeymap(); err != nil {
			return &InitError{Component: "keymaps", Err: err}
		}
	}
	a.resolver = input.NewResolver(a.keymaps)

	// 4. Launcher
	a.launcher = palette.New(keymap.Menu(a.keymaps), launcherHistory)
	return nil
}

// ReloadKeymap reads keymap.file and swaps it in for the current user
// keymap. On failure the previous bindings stay active.
func (a *App) ReloadKeymap() error {
	path := a.cfg.Keymap.File
	if path == "" {
		return nil
	}
	km, err := keymap.NewLoader().LoadFile(path)
	if err != nil {
		return err
	}
	km.Priority = userKeymapPriority
	if err := a.keymaps.Replace(UserKeymapName, km); err != nil {
		return err
	}
	if a.launcher != nil {
		a.launcher.SetMenu(keymap.Menu(a.keymaps))
	}
	a.logger.Info("keymap loaded",
		zap.String("path", path),
		zap.Int("bindings", len(km.Bindings)),
	)
	return nil
}

// WatchKeymap reloads keymap.file whenever it changes, until Close.
// onReload, if non-nil, runs after every reload attempt.
func (a *App) WatchKeymap(onReload func(error)) error {
	if a.cfg.Keymap.File == "" {
		return nil
	}
	stop, err := config.Watch(a.cfg.Keymap.File, logging.Component(a.logger, "watcher"), func(string) {
		err := a.ReloadKeymap()
		if err != nil {
			a.logger.Warn("keymap reload failed", zap.Error(err))
		}
		if onReload != nil {
			onReload(err)
		}
	})
	if err != nil {
		return fmt.Errorf("watching keymap: %w", err)
	}
	a.mu.Lock()
	a.stopWatch = stop
	a.mu.Unlock()
	return nil
}

// Close releases background resources.
func (a *App) Close() {
	a.mu.Lock()
	stop := a.stopWatch
	a.stopWatch = nil
	a.mu.Unlock()
	if stop != nil {
		stop()
	}
}

// HandleChord resolves chord through the keymaps and dispatches the bound
// action. An unbound chord is reported as dispatcher.ErrUnknownAction.
func (a *App) HandleChord(chord key.Chord) handler.Result {
	action, err := a.resolver.Resolve(chord)
	if err != nil {
		if errors.Is(err, input.ErrUnboundChord) {
			return handler.Error(fmt.Errorf("%w: %w", dispatcher.ErrUnknownAction, err))
		}
		return handler.Error(err)
	}
	return a.dispatcher.Dispatch(action)
}

// HandleSpec parses a chord such as "Ctrl+Shift+M" and handles it.
func (a *App) HandleSpec(spec string) handler.Result {
	chord, err := key.Parse(spec)
	if err != nil {
		return handler.Error(err)
	}
	return a.HandleChord(chord)
}

// DispatchName runs an action by id, e.g. from a menu. Successful
// launches are remembered by the launcher.
func (a *App) DispatchName(name string, source input.ActionSource) handler.Result {
	result := a.dispatcher.DispatchName(name, source)
	if !result.IsError() {
		a.launcher.Record(name)
	}
	return result
}

// Search looks up actions in the launcher, best match first.
func (a *App) Search(query string, limit int) []palette.Match {
	return a.launcher.Search(query, limit)
}

// Invoke runs token as an action id when one is registered and as a chord
// otherwise. It backs command-line use where both forms are accepted.
func (a *App) Invoke(token string, source input.ActionSource) handler.Result {
	if a.dispatcher.Registry().Has(token) {
		return a.DispatchName(token, source)
	}
	if _, err := key.Parse(token); err != nil {
		return handler.Error(fmt.Errorf("%w: %q", dispatcher.ErrUnknownAction, token))
	}
	return a.HandleSpec(token)
}

// Menu returns the bound actions grouped by category, labelled with chords.
func (a *App) Menu() []keymap.MenuCategory {
	return keymap.Menu(a.keymaps)
}

// Actions lists every dispatchable action id.
func (a *App) Actions() []string {
	return a.dispatcher.Actions()
}

// Host returns the document the app operates on.
func (a *App) Host() document.Host { return a.host }

// Keymaps returns the keymap registry.
func (a *App) Keymaps() *keymap.Registry { return a.keymaps }

// Config returns the configuration the app was built with.
func (a *App) Config() config.Config { return a.cfg }

// Logger returns the app logger.
func (a *App) Logger() *zap.Logger { return a.logger }
