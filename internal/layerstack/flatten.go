package layerstack

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/dshills/layerkeys/internal/document"
)

// DefaultFlattenChannels is the channel set flattened when none is configured.
func DefaultFlattenChannels() document.ChannelSet {
	return document.NewChannelSet(
		document.ChannelBaseColor,
		document.ChannelMetal,
		document.ChannelRoughness,
		document.ChannelHeight,
	)
}

// Flattener merges the visible stack into one fill layer per channel.
type Flattener struct {
	host      document.Host
	inspector *Inspector
	logger    *zap.Logger
}

// NewFlattener creates a flattener. A nil logger disables logging.
func NewFlattener(host document.Host, logger *zap.Logger) *Flattener {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Flattener{host: host, inspector: NewInspector(host), logger: logger}
}

type mergedChannel struct {
	channel  document.Channel
	resource document.ResourceID
}

// FlattenVisible creates, at the top of the stack, one fill layer per
// supported channel that the texture set has and that carries visible
// content. Each layer has only its own channel active and the merged
// result as source. Normal is never flattened. Source layers are left
// untouched.
//
// All merges happen before the first insert. If an insert fails, the layers
// created so far are removed and the previous selection is restored.
func (f *Flattener) FlattenVisible(supported document.ChannelSet) ([]document.Layer, error) {
	supported = supported.Without(document.ChannelNormal)

	visible, err := f.inspector.VisibleChannels()
	if err != nil {
		return nil, err
	}
	targets := supported.Intersect(visible)
	if targets.IsEmpty() {
		return nil, document.ErrNothingVisible
	}

	merged := make([]mergedChannel, 0, targets.Len())
	for _, ch := range targets.Channels() {
		res, err := f.host.FlattenChannel(ch)
		if err != nil {
			return nil, fmt.Errorf("flattening %s: %w", ch, err)
		}
		merged = append(merged, mergedChannel{channel: ch, resource: res})
	}

	prev, hadSelection, err := f.host.Selection()
	if err != nil {
		return nil, err
	}

	created := make([]document.LayerID, 0, len(merged))
	for _, m := range merged {
		id, err := f.host.InsertLayer(document.LayerSpec{
			Kind:     document.KindFill,
			Name:     StackLayerName(m.channel),
			Channels: document.NewChannelSet(m.channel),
			Sources:  map[document.Channel]document.ResourceID{m.channel: m.resource},
		}, document.Top)
		if err != nil {
			f.rollback(created, prev, hadSelection)
			return nil, fmt.Errorf("inserting %s: %w", StackLayerName(m.channel), err)
		}
		created = append(created, id)
	}

	out := make([]document.Layer, 0, len(created))
	for _, id := range created {
		l, err := f.inspector.Layer(id)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	f.logger.Debug("stack flattened",
		zap.Stringer("channels", targets),
		zap.Int("layers", len(out)),
	)
	return out, nil
}

func (f *Flattener) rollback(created []document.LayerID, prev document.LayerID, hadSelection bool) {
	for i := len(created) - 1; i >= 0; i-- {
		if err := f.host.DeleteLayer(created[i]); err != nil {
			f.logger.Warn("flatten rollback failed",
				zap.String("id", string(created[i])),
				zap.Error(err),
			)
		}
	}
	if hadSelection {
		if err := f.host.Select(prev); err != nil {
			f.logger.Warn("restoring selection failed", zap.Error(err))
		}
	}
}
