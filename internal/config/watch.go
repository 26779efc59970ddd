package config

import (
	"go.uber.org/zap"

	"github.com/dshills/layerkeys/internal/config/watcher"
)

// Watch calls onChange whenever path is written, created or replaced.
// Removal is logged and otherwise ignored, so an editor that deletes and
// recreates the file triggers one reload. The returned function stops
// watching.
func Watch(path string, logger *zap.Logger, onChange func(path string)) (stop func(), err error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := watcher.New(watcher.WithLogger(logger))
	w.OnChange(func(ev watcher.Event) {
		switch ev.Op {
		case watcher.OpRemove, watcher.OpRename:
			logger.Debug("watched file went away", zap.String("path", ev.Path), zap.Stringer("op", ev.Op))
			return
		}
		onChange(ev.Path)
	})
	if err := w.Watch(path); err != nil {
		return nil, err
	}
	if err := w.Start(); err != nil {
		return nil, err
	}
	return w.Stop, nil
}
