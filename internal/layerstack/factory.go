package layerstack

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/dshills/layerkeys/internal/document"
)

// Factory creates new layers above the current selection.
type Factory struct {
	host   document.Host
	logger *zap.Logger
}

// NewFactory creates a layer factory. A nil logger disables logging.
func NewFactory(host document.Host, logger *zap.Logger) *Factory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Factory{host: host, logger: logger}
}

// Create inserts a layer of the given kind with the given active channels
// directly above the selection, or at the top when nothing is selected, and
// selects it. The channel set must be a subset of the texture set's channels;
// an empty set is valid.
func (f *Factory) Create(kind document.LayerKind, channels document.ChannelSet, name string) (document.Layer, error) {
	info, err := f.host.TextureSet()
	if err != nil {
		return document.Layer{}, err
	}
	if !channels.IsSubsetOf(info.Channels) {
		return document.Layer{}, fmt.Errorf("%w: %s not in texture set %q",
			document.ErrUnsupportedChannel, channels&^info.Channels, info.Name)
	}

	id, err := f.host.InsertLayer(document.LayerSpec{
		Kind:     kind,
		Name:     name,
		Channels: channels,
	}, document.AboveSelection)
	if err != nil {
		return document.Layer{}, fmt.Errorf("inserting layer: %w", err)
	}

	l, err := f.host.Layer(id)
	if err != nil {
		return document.Layer{}, fmt.Errorf("fetching new layer: %w", err)
	}
	f.logger.Debug("layer created",
		zap.String("id", string(l.ID)),
		zap.String("name", l.Name),
		zap.Stringer("channels", l.Channels),
	)
	return l, nil
}

// Paint creates a paint layer with every texture-set channel active.
func (f *Factory) Paint() (document.Layer, error) {
	info, err := f.host.TextureSet()
	if err != nil {
		return document.Layer{}, err
	}
	return f.Create(document.KindPaint, info.Channels, NamePaint)
}

// Fill creates a fill layer with the given channels active.
func (f *Factory) Fill(channels document.ChannelSet, name string) (document.Layer, error) {
	return f.Create(document.KindFill, channels, name)
}

// FillAll creates a fill layer with every texture-set channel active.
func (f *Factory) FillAll() (document.Layer, error) {
	info, err := f.host.TextureSet()
	if err != nil {
		return document.Layer{}, err
	}
	return f.Create(document.KindFill, info.Channels, NameFill)
}
