package layerstack

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/dshills/layerkeys/internal/document"
)

// MaskController manipulates layer masks.
//
// Toggle cycles a solid mask between white and black. On a generated or
// painted mask it recolors the background only; the generator and painted
// content stay in place.
type MaskController struct {
	host      document.Host
	inspector *Inspector
	logger    *zap.Logger
}

// NewMaskController creates a mask controller. A nil logger disables logging.
func NewMaskController(host document.Host, logger *zap.Logger) *MaskController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MaskController{host: host, inspector: NewInspector(host), logger: logger}
}

// State returns the mask state of a layer.
func (c *MaskController) State(id document.LayerID) (document.MaskState, error) {
	return c.inspector.MaskState(id)
}

// Ensure gives the layer a white mask if it has none.
// An existing mask is returned unchanged.
func (c *MaskController) Ensure(id document.LayerID) (document.Mask, error) {
	l, err := c.inspector.Layer(id)
	if err != nil {
		return document.Mask{}, err
	}
	if l.Mask != nil {
		return *l.Mask, nil
	}
	return c.set(id, document.Mask{Background: document.FillWhite})
}

// Toggle adds a white mask, or flips the background of the existing one.
func (c *MaskController) Toggle(id document.LayerID) (document.Mask, error) {
	return c.toggle(id, document.GeneratorNone)
}

// ToggleWithFillEffect behaves like Toggle, except that a newly created mask
// carries a fill effect.
func (c *MaskController) ToggleWithFillEffect(id document.LayerID) (document.Mask, error) {
	return c.toggle(id, document.GeneratorFillEffect)
}

func (c *MaskController) toggle(id document.LayerID, gen document.Generator) (document.Mask, error) {
	l, err := c.inspector.Layer(id)
	if err != nil {
		return document.Mask{}, err
	}
	if l.Mask == nil {
		return c.set(id, document.Mask{Background: document.FillWhite, Generator: gen})
	}

	fill := l.Mask.Background.Flip()
	if err := c.host.SetMaskBackground(id, fill); err != nil {
		return document.Mask{}, fmt.Errorf("recoloring mask: %w", err)
	}
	c.logger.Debug("mask toggled",
		zap.String("id", string(id)),
		zap.Stringer("from", l.MaskState()),
		zap.Stringer("background", fill),
	)
	return c.fetch(id)
}

// AddGenerator replaces any mask on the layer with a black mask driven by g.
// Only the ambient occlusion and curvature generators are accepted.
func (c *MaskController) AddGenerator(id document.LayerID, g document.Generator) (document.Mask, error) {
	switch g {
	case document.GeneratorAmbientOcclusion, document.GeneratorCurvature:
	default:
		return document.Mask{}, fmt.Errorf("%w: %s", document.ErrInvalidGenerator, g)
	}
	if _, err := c.inspector.Layer(id); err != nil {
		return document.Mask{}, err
	}
	return c.set(id, document.Mask{Background: document.FillBlack, Generator: g})
}

func (c *MaskController) set(id document.LayerID, m document.Mask) (document.Mask, error) {
	if err := c.host.SetMask(id, m); err != nil {
		return document.Mask{}, fmt.Errorf("setting mask: %w", err)
	}
	c.logger.Debug("mask set",
		zap.String("id", string(id)),
		zap.Stringer("background", m.Background),
		zap.Stringer("generator", m.Generator),
	)
	return c.fetch(id)
}

func (c *MaskController) fetch(id document.LayerID) (document.Mask, error) {
	l, err := c.inspector.Layer(id)
	if err != nil {
		return document.Mask{}, err
	}
	if l.Mask == nil {
		return document.Mask{}, fmt.Errorf("%w: %s", document.ErrNoMask, id)
	}
	return *l.Mask, nil
}
