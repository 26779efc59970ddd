package document

import "fmt"

// LayerID is an opaque handle to a layer issued by the host.
type LayerID string

// ResourceID identifies a host resource, such as a merged channel texture.
type ResourceID string

// LayerKind is the variant of a layer.
type LayerKind uint8

const (
	// KindPaint is a layer holding painted strokes.
	KindPaint LayerKind = iota
	// KindFill is a layer filled with uniform or sourced content.
	KindFill
	// KindReference is a channel-less marker layer.
	KindReference
)

// String returns the kind name.
func (k LayerKind) String() string {
	switch k {
	case KindPaint:
		return "paint"
	case KindFill:
		return "fill"
	case KindReference:
		return "reference"
	default:
		return fmt.Sprintf("LayerKind(%d)", uint8(k))
	}
}

// ParseLayerKind parses a kind name as returned by String.
func ParseLayerKind(s string) (LayerKind, error) {
	switch s {
	case "paint":
		return KindPaint, nil
	case "fill":
		return KindFill, nil
	case "reference":
		return KindReference, nil
	default:
		return 0, fmt.Errorf("unknown layer kind %q", s)
	}
}

// Layer is a snapshot of a layer as reported by the host.
// It is a value; mutating it does not change the document.
type Layer struct {
	// ID is the host handle of the layer.
	ID LayerID

	// Kind is the layer variant.
	Kind LayerKind

	// Name is the display name.
	Name string

	// Position is the ordinal position in the stack, 0 being the top.
	Position int

	// Channels is the set of active channels.
	Channels ChannelSet

	// Visible reports whether the layer contributes to the composite.
	Visible bool

	// Mask is the layer mask, nil when the layer has none.
	Mask *Mask

	// Sources holds per-channel content resources (flattened layers).
	Sources map[Channel]ResourceID
}

// HasMask reports whether the layer owns a mask.
func (l Layer) HasMask() bool {
	return l.Mask != nil
}

// MaskState returns the derived state of the layer mask.
func (l Layer) MaskState() MaskState {
	return StateOf(l.Mask)
}

// Placement says where a new layer goes.
type Placement uint8

const (
	// AboveSelection inserts directly above the selected layer, or at the
	// top when nothing is selected.
	AboveSelection Placement = iota
	// Top inserts at the top of the stack.
	Top
)

// String returns the placement name.
func (p Placement) String() string {
	if p == Top {
		return "top"
	}
	return "above-selection"
}

// LayerSpec describes a layer to insert.
type LayerSpec struct {
	Kind     LayerKind
	Name     string
	Channels ChannelSet
	Sources  map[Channel]ResourceID
}
