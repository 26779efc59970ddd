package layerstack

import (
	"fmt"

	"github.com/dshills/layerkeys/internal/document"
)

// Inspector answers read-only questions about the active document.
type Inspector struct {
	host document.Reader
}

// NewInspector creates an inspector over host.
func NewInspector(host document.Reader) *Inspector {
	return &Inspector{host: host}
}

// TextureSet returns the active texture set.
func (i *Inspector) TextureSet() (document.TextureSetInfo, error) {
	return i.host.TextureSet()
}

// SelectedID returns the selected layer handle.
// It fails with document.ErrNoSelection when nothing is selected.
func (i *Inspector) SelectedID() (document.LayerID, error) {
	id, ok, err := i.host.Selection()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", document.ErrNoSelection
	}
	return id, nil
}

// Selected returns a fresh snapshot of the selected layer.
func (i *Inspector) Selected() (document.Layer, error) {
	id, err := i.SelectedID()
	if err != nil {
		return document.Layer{}, err
	}
	return i.Layer(id)
}

// Layer returns a fresh snapshot of the layer with the given handle.
func (i *Inspector) Layer(id document.LayerID) (document.Layer, error) {
	l, err := i.host.Layer(id)
	if err != nil {
		return document.Layer{}, fmt.Errorf("fetching layer %s: %w", id, err)
	}
	return l, nil
}

// MaskState returns the mask state of a layer.
func (i *Inspector) MaskState(id document.LayerID) (document.MaskState, error) {
	l, err := i.Layer(id)
	if err != nil {
		return document.NoMask, err
	}
	return l.MaskState(), nil
}

// ActiveChannels returns the active channels of a layer.
func (i *Inspector) ActiveChannels(id document.LayerID) (document.ChannelSet, error) {
	l, err := i.Layer(id)
	if err != nil {
		return 0, err
	}
	return l.Channels, nil
}

// VisibleChannels returns the channels with visible content that the
// texture set supports.
func (i *Inspector) VisibleChannels() (document.ChannelSet, error) {
	info, err := i.host.TextureSet()
	if err != nil {
		return 0, err
	}
	visible, err := i.host.VisibleChannels()
	if err != nil {
		return 0, err
	}
	return visible.Intersect(info.Channels), nil
}

// Count returns how many layers of the given kind the stack holds.
func (i *Inspector) Count(kind document.LayerKind) (int, error) {
	layers, err := i.host.Layers()
	if err != nil {
		return 0, err
	}
	n := 0
	for _, l := range layers {
		if l.Kind == kind {
			n++
		}
	}
	return n, nil
}
