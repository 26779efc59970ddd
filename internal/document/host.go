package document

// Reader is the read side of the host document.
type Reader interface {
	// TextureSet describes the active texture set.
	// Returns ErrNoActiveDocument when no document is open.
	TextureSet() (TextureSetInfo, error)

	// Layers returns the stack, top first.
	Layers() ([]Layer, error)

	// Layer returns the layer with the given handle.
	// Returns ErrLayerNotFound when the handle is stale.
	Layer(id LayerID) (Layer, error)

	// Selection returns the selected layer; ok is false when none is selected.
	Selection() (id LayerID, ok bool, err error)

	// VisibleChannels returns the channels with visible contributing content.
	VisibleChannels() (ChannelSet, error)
}

// Writer is the write side of the host document.
type Writer interface {
	// InsertLayer inserts a layer and makes it the selection.
	InsertLayer(spec LayerSpec, at Placement) (LayerID, error)

	// DeleteLayer removes a layer.
	DeleteLayer(id LayerID) error

	// Select makes id the selected layer.
	Select(id LayerID) error

	// SetMask adds a mask, or replaces the existing one entirely.
	SetMask(id LayerID, m Mask) error

	// SetMaskBackground recolors the base fill of an existing mask,
	// leaving generator and painted content in place where the host can.
	SetMaskBackground(id LayerID, fill MaskFill) error

	// FlattenChannel merges the visible stack for one channel and returns
	// the resulting resource.
	FlattenChannel(ch Channel) (ResourceID, error)

	// Bake queues a mesh map bake and returns without waiting for it.
	Bake(req BakeRequest) error

	// SetUIMode switches the host UI mode.
	SetUIMode(mode UIMode) error
}

// Host is the full document interface.
type Host interface {
	Reader
	Writer
}
