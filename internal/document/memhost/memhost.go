package memhost

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/dshills/layerkeys/internal/document"
)

type layerState struct {
	id       document.LayerID
	kind     document.LayerKind
	name     string
	channels document.ChannelSet
	visible  bool
	mask     *document.Mask
	sources  map[document.Channel]document.ResourceID
}

func (l *layerState) snapshot(pos int) document.Layer {
	out := document.Layer{
		ID:       l.id,
		Kind:     l.kind,
		Name:     l.name,
		Position: pos,
		Channels: l.channels,
		Visible:  l.visible,
	}
	if l.mask != nil {
		m := *l.mask
		out.Mask = &m
	}
	if len(l.sources) > 0 {
		out.Sources = make(map[document.Channel]document.ResourceID, len(l.sources))
		for ch, res := range l.sources {
			out.Sources[ch] = res
		}
	}
	return out
}

// Document is an in-memory texture-set document.
// It is safe for concurrent use.
type Document struct {
	mu sync.Mutex

	open      bool
	info      document.TextureSetInfo
	layers    []*layerState // top first
	selected  document.LayerID
	mode      document.UIMode
	resources map[document.ResourceID]document.Channel
	pending   []document.BakeRequest
	baked     []document.BakeRequest

	newID  func() string
	logger *zap.Logger
}

// Compile-time interface check.
var _ document.Host = (*Document)(nil)

// New creates an open document for the given texture set with an empty stack.
func New(info document.TextureSetInfo, opts ...Option) *Document {
	d := &Document{
		open:      true,
		info:      info,
		mode:      document.ModePaint,
		resources: make(map[document.ResourceID]document.Channel),
		newID:     defaultID,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Open marks the document as open.
func (d *Document) Open() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.open = true
}

// Close marks the document as closed. Reads and writes then fail with
// document.ErrNoActiveDocument.
func (d *Document) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.open = false
}

// TextureSet implements document.Reader.
func (d *Document) TextureSet() (document.TextureSetInfo, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.open {
		return document.TextureSetInfo{}, document.ErrNoActiveDocument
	}
	info := d.info
	info.UVTiles = append([]document.UVTile(nil), d.info.UVTiles...)
	return info, nil
}

// Layers implements document.Reader.
func (d *Document) Layers() ([]document.Layer, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.open {
		return nil, document.ErrNoActiveDocument
	}
	out := make([]document.Layer, len(d.layers))
	for i, l := range d.layers {
		out[i] = l.snapshot(i)
	}
	return out, nil
}

// Layer implements document.Reader.
func (d *Document) Layer(id document.LayerID) (document.Layer, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.open {
		return document.Layer{}, document.ErrNoActiveDocument
	}
	i := d.indexLocked(id)
	if i < 0 {
		return document.Layer{}, fmt.Errorf("%w: %s", document.ErrLayerNotFound, id)
	}
	return d.layers[i].snapshot(i), nil
}

// Selection implements document.Reader.
func (d *Document) Selection() (document.LayerID, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.open {
		return "", false, document.ErrNoActiveDocument
	}
	if d.selected == "" || d.indexLocked(d.selected) < 0 {
		return "", false, nil
	}
	return d.selected, true, nil
}

// VisibleChannels implements document.Reader. A layer contributes its active
// channels when it is visible and not hidden by a solid black mask.
func (d *Document) VisibleChannels() (document.ChannelSet, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.open {
		return 0, document.ErrNoActiveDocument
	}
	var set document.ChannelSet
	for _, l := range d.layers {
		if !l.visible || document.StateOf(l.mask) == document.SolidBlack {
			continue
		}
		set |= l.channels
	}
	return set.Intersect(d.info.Channels), nil
}

// InsertLayer implements document.Writer.
func (d *Document) InsertLayer(spec document.LayerSpec, at document.Placement) (document.LayerID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.open {
		return "", document.ErrNoActiveDocument
	}
	if !spec.Channels.IsSubsetOf(d.info.Channels) {
		return "", fmt.Errorf("%w: %s", document.ErrUnsupportedChannel, (spec.Channels &^ d.info.Channels).String())
	}

	l := &layerState{
		id:       document.LayerID(d.newID()),
		kind:     spec.Kind,
		name:     spec.Name,
		channels: spec.Channels,
		visible:  true,
	}
	if len(spec.Sources) > 0 {
		l.sources = make(map[document.Channel]document.ResourceID, len(spec.Sources))
		for ch, res := range spec.Sources {
			l.sources[ch] = res
		}
	}

	pos := 0
	if at == document.AboveSelection {
		if i := d.indexLocked(d.selected); i >= 0 {
			pos = i
		}
	}
	d.layers = append(d.layers, nil)
	copy(d.layers[pos+1:], d.layers[pos:])
	d.layers[pos] = l
	d.selected = l.id

	d.logger.Debug("layer inserted",
		zap.String("id", string(l.id)),
		zap.String("name", l.name),
		zap.Stringer("kind", l.kind),
		zap.Int("position", pos),
	)
	return l.id, nil
}

// DeleteLayer implements document.Writer.
func (d *Document) DeleteLayer(id document.LayerID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	i, err := d.lookupLocked(id)
	if err != nil {
		return err
	}
	d.layers = append(d.layers[:i], d.layers[i+1:]...)
	if d.selected == id {
		d.selected = ""
		if len(d.layers) > 0 {
			if i >= len(d.layers) {
				i = len(d.layers) - 1
			}
			d.selected = d.layers[i].id
		}
	}
	d.logger.Debug("layer deleted", zap.String("id", string(id)))
	return nil
}

// Select implements document.Writer.
func (d *Document) Select(id document.LayerID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, err := d.lookupLocked(id); err != nil {
		return err
	}
	d.selected = id
	return nil
}

// SetMask implements document.Writer.
func (d *Document) SetMask(id document.LayerID, m document.Mask) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	i, err := d.lookupLocked(id)
	if err != nil {
		return err
	}
	d.layers[i].mask = &m
	d.logger.Debug("mask set",
		zap.String("id", string(id)),
		zap.Stringer("background", m.Background),
		zap.Stringer("generator", m.Generator),
	)
	return nil
}

// SetMaskBackground implements document.Writer.
func (d *Document) SetMaskBackground(id document.LayerID, fill document.MaskFill) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	i, err := d.lookupLocked(id)
	if err != nil {
		return err
	}
	if d.layers[i].mask == nil {
		return fmt.Errorf("%w: %s", document.ErrNoMask, id)
	}
	d.layers[i].mask.Background = fill
	d.logger.Debug("mask background set", zap.String("id", string(id)), zap.Stringer("fill", fill))
	return nil
}

// FlattenChannel implements document.Writer.
func (d *Document) FlattenChannel(ch document.Channel) (document.ResourceID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.open {
		return "", document.ErrNoActiveDocument
	}
	if !d.info.Channels.Has(ch) {
		return "", fmt.Errorf("%w: %s", document.ErrUnsupportedChannel, ch)
	}
	res := document.ResourceID(fmt.Sprintf("flatten-%s-%s", ch, d.newID()))
	d.resources[res] = ch
	return res, nil
}

// Bake implements document.Writer. The request is queued and the document
// switches to bake mode until CompleteBakes runs.
func (d *Document) Bake(req document.BakeRequest) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.open {
		return document.ErrNoActiveDocument
	}
	d.pending = append(d.pending, req)
	d.mode = document.ModeBake
	d.logger.Debug("bake queued",
		zap.String("texture_set", req.TextureSet),
		zap.Int("maps", len(req.MeshMaps)),
	)
	return nil
}

// SetUIMode implements document.Writer.
func (d *Document) SetUIMode(mode document.UIMode) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.open {
		return document.ErrNoActiveDocument
	}
	d.mode = mode
	return nil
}

// UIMode returns the current UI mode.
func (d *Document) UIMode() document.UIMode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mode
}

// PendingBakes returns the queued bake requests.
func (d *Document) PendingBakes() []document.BakeRequest {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]document.BakeRequest(nil), d.pending...)
}

// CompleteBakes finishes every queued bake and runs the completion
// callbacks outside the document lock. It returns the number completed.
func (d *Document) CompleteBakes() int {
	d.mu.Lock()
	done := d.pending
	d.pending = nil
	d.baked = append(d.baked, done...)
	d.mu.Unlock()

	for _, req := range done {
		if req.OnFinished != nil {
			req.OnFinished()
		}
	}
	return len(done)
}

// CompletedBakes returns the bake requests finished so far.
func (d *Document) CompletedBakes() []document.BakeRequest {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]document.BakeRequest(nil), d.baked...)
}

// Resource reports the channel a flattened resource was produced from.
func (d *Document) Resource(id document.ResourceID) (document.Channel, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	ch, ok := d.resources[id]
	return ch, ok
}

// SetVisible shows or hides a layer.
func (d *Document) SetVisible(id document.LayerID, visible bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	i, err := d.lookupLocked(id)
	if err != nil {
		return err
	}
	d.layers[i].visible = visible
	return nil
}

// PaintMask marks a layer's mask as holding painted content.
func (d *Document) PaintMask(id document.LayerID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	i, err := d.lookupLocked(id)
	if err != nil {
		return err
	}
	if d.layers[i].mask == nil {
		return fmt.Errorf("%w: %s", document.ErrNoMask, id)
	}
	d.layers[i].mask.Painted = true
	return nil
}

// ClearSelection deselects every layer.
func (d *Document) ClearSelection() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.selected = ""
}

func (d *Document) indexLocked(id document.LayerID) int {
	if id == "" {
		return -1
	}
	for i, l := range d.layers {
		if l.id == id {
			return i
		}
	}
	return -1
}

func (d *Document) lookupLocked(id document.LayerID) (int, error) {
	if !d.open {
		return -1, document.ErrNoActiveDocument
	}
	i := d.indexLocked(id)
	if i < 0 {
		return -1, fmt.Errorf("%w: %s", document.ErrLayerNotFound, id)
	}
	return i, nil
}
