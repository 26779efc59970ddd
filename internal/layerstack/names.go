package layerstack

import "github.com/dshills/layerkeys/internal/document"

// Default layer names.
const (
	NamePaint         = "New Paint layer"
	NameFillBaseColor = "New Base color Fill layer"
	NameFillHeight    = "New Height Fill layer"
	NameFill          = "New Fill layer"
	NameFillEmpty     = "New Empty Fill layer"

	stackLayerPrefix     = "Stack layer - "
	referencePointPrefix = "Reference point"
)

// StackLayerName returns the name given to the flattened layer of ch.
func StackLayerName(ch document.Channel) string {
	return stackLayerPrefix + ch.String()
}
