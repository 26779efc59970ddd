// Package bake starts mesh map bakes for the active texture set.
package bake

import (
	"fmt"
	"math/bits"

	"go.uber.org/zap"

	"github.com/dshills/layerkeys/internal/document"
)

// Config controls the bake request.
type Config struct {
	// MeshMaps lists the bakers to enable. Empty means DefaultMeshMaps.
	MeshMaps []document.MeshMap

	// SwitchToPaint switches the host back to paint mode when baking ends.
	SwitchToPaint bool
}

// DefaultConfig returns the default bake configuration.
func DefaultConfig() Config {
	return Config{
		MeshMaps:      document.DefaultMeshMaps(),
		SwitchToPaint: true,
	}
}

// Trigger queues bakes on the host.
type Trigger struct {
	host   document.Host
	cfg    Config
	logger *zap.Logger
}

// NewTrigger creates a bake trigger. A nil logger disables logging.
func NewTrigger(host document.Host, cfg Config, logger *zap.Logger) *Trigger {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(cfg.MeshMaps) == 0 {
		cfg.MeshMaps = document.DefaultMeshMaps()
	}
	return &Trigger{host: host, cfg: cfg, logger: logger}
}

// Request builds the bake request for the active texture set.
func (t *Trigger) Request() (document.BakeRequest, error) {
	info, err := t.host.TextureSet()
	if err != nil {
		return document.BakeRequest{}, err
	}
	w, err := log2(info.Resolution.Width)
	if err != nil {
		return document.BakeRequest{}, fmt.Errorf("texture set %q width: %w", info.Name, err)
	}
	h, err := log2(info.Resolution.Height)
	if err != nil {
		return document.BakeRequest{}, fmt.Errorf("texture set %q height: %w", info.Name, err)
	}

	req := document.BakeRequest{
		TextureSet:       info.Name,
		OutputWidthLog2:  w,
		OutputHeightLog2: h,
		MeshMaps:         append([]document.MeshMap(nil), t.cfg.MeshMaps...),
	}
	if t.cfg.SwitchToPaint {
		name := info.Name
		req.OnFinished = func() { t.finished(name) }
	}
	return req, nil
}

// BakeActiveTextureSet queues a bake of the active texture set and returns
// the queued request without waiting for it to finish.
func (t *Trigger) BakeActiveTextureSet() (document.BakeRequest, error) {
	req, err := t.Request()
	if err != nil {
		return document.BakeRequest{}, err
	}
	if err := t.host.Bake(req); err != nil {
		return document.BakeRequest{}, fmt.Errorf("queueing bake: %w", err)
	}
	t.logger.Info("bake queued",
		zap.String("texture_set", req.TextureSet),
		zap.Int("width_log2", req.OutputWidthLog2),
		zap.Int("height_log2", req.OutputHeightLog2),
		zap.Int("mesh_maps", len(req.MeshMaps)),
	)
	return req, nil
}

func (t *Trigger) finished(textureSet string) {
	if err := t.host.SetUIMode(document.ModePaint); err != nil {
		t.logger.Warn("switching to paint mode failed",
			zap.String("texture_set", textureSet),
			zap.Error(err),
		)
		return
	}
	t.logger.Info("bake finished", zap.String("texture_set", textureSet))
}

// log2 returns floor(log2(n)) for positive n.
func log2(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("invalid resolution %d", n)
	}
	return bits.Len(uint(n)) - 1, nil
}
