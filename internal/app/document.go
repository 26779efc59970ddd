package app

import (
	"errors"
	"io/fs"

	"go.uber.org/zap"

	"github.com/dshills/layerkeys/internal/config"
	"github.com/dshills/layerkeys/internal/document"
	"github.com/dshills/layerkeys/internal/document/memhost"
)

// DefaultTextureSet describes the blank document opened when no snapshot
// is configured.
func DefaultTextureSet() document.TextureSetInfo {
	return document.TextureSetInfo{
		Name: "DefaultMaterial",
		Channels: document.NewChannelSet(
			document.ChannelBaseColor,
			document.ChannelHeight,
			document.ChannelMetal,
			document.ChannelRoughness,
			document.ChannelNormal,
		),
		Resolution: document.Resolution{Width: 2048, Height: 2048},
		UVTiles:    []document.UVTile{{U: 0, V: 0}},
	}
}

// OpenDocument opens the in-memory document named by cfg. A missing or
// empty document.file yields a blank DefaultTextureSet document.
func OpenDocument(cfg config.DocumentConfig, logger *zap.Logger) (*memhost.Document, error) {
	opts := []memhost.Option{memhost.WithLogger(logger)}
	if cfg.File == "" {
		return memhost.New(DefaultTextureSet(), opts...), nil
	}
	doc, err := memhost.LoadFile(cfg.File, opts...)
	if errors.Is(err, fs.ErrNotExist) {
		return memhost.New(DefaultTextureSet(), opts...), nil
	}
	if err != nil {
		return nil, &InitError{Component: "document", Err: err}
	}
	return doc, nil
}
