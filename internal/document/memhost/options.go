package memhost

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Option configures a Document during creation.
type Option func(*Document)

// WithLogger sets the logger used to trace host mutations.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Document) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithIDGenerator overrides how layer and resource handles are minted.
func WithIDGenerator(gen func() string) Option {
	return func(d *Document) {
		if gen != nil {
			d.newID = gen
		}
	}
}

// WithClosed creates the document with no open texture set.
func WithClosed() Option {
	return func(d *Document) {
		d.open = false
	}
}

func defaultID() string {
	return uuid.NewString()
}
