package document

import "fmt"

// Resolution is a texture set resolution in pixels.
type Resolution struct {
	Width  int
	Height int
}

// String returns "WxH".
func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// UVTile is a UDIM tile coordinate.
type UVTile struct {
	U int
	V int
}

// TextureSetInfo describes the active texture set.
type TextureSetInfo struct {
	// Name is the texture set (material) name.
	Name string

	// Channels is the set of channels the texture set supports.
	Channels ChannelSet

	// Resolution is the document resolution.
	Resolution Resolution

	// UVTiles lists the UV tiles covered by the texture set.
	UVTiles []UVTile
}

// MeshMap is a mesh map produced by the bake engine.
type MeshMap uint8

const (
	MeshMapNormal MeshMap = iota
	MeshMapWorldSpaceNormal
	MeshMapID
	MeshMapAmbientOcclusion
	MeshMapCurvature
	MeshMapPosition
	MeshMapThickness
	MeshMapHeight
	MeshMapOpacity
	MeshMapBentNormals

	meshMapCount
)

var meshMapNames = [...]string{
	MeshMapNormal:           "Normal",
	MeshMapWorldSpaceNormal: "WorldSpaceNormal",
	MeshMapID:               "ID",
	MeshMapAmbientOcclusion: "AmbientOcclusion",
	MeshMapCurvature:        "Curvature",
	MeshMapPosition:         "Position",
	MeshMapThickness:        "Thickness",
	MeshMapHeight:           "Height",
	MeshMapOpacity:          "Opacity",
	MeshMapBentNormals:      "BentNormals",
}

// String returns the mesh map name.
func (m MeshMap) String() string {
	if m < meshMapCount {
		return meshMapNames[m]
	}
	return fmt.Sprintf("MeshMap(%d)", uint8(m))
}

// ParseMeshMap parses a mesh map name.
func ParseMeshMap(name string) (MeshMap, error) {
	for i, n := range meshMapNames {
		if n == name {
			return MeshMap(i), nil
		}
	}
	return 0, fmt.Errorf("unknown mesh map %q", name)
}

// DefaultMeshMaps is the mesh map list baked when none is configured.
func DefaultMeshMaps() []MeshMap {
	return []MeshMap{
		MeshMapNormal,
		MeshMapWorldSpaceNormal,
		MeshMapID,
		MeshMapAmbientOcclusion,
		MeshMapCurvature,
		MeshMapPosition,
		MeshMapThickness,
	}
}

// BakeRequest asks the host to bake mesh maps for a texture set.
type BakeRequest struct {
	// TextureSet is the name of the texture set to bake.
	TextureSet string

	// OutputWidthLog2 and OutputHeightLog2 are the output size as powers of two.
	OutputWidthLog2  int
	OutputHeightLog2 int

	// MeshMaps lists the bakers to enable.
	MeshMaps []MeshMap

	// OnFinished, when set, is called by the host once baking ends.
	OnFinished func()
}

// UIMode is a host UI mode.
type UIMode uint8

const (
	// ModePaint is the painting view.
	ModePaint UIMode = iota + 1
	// ModeBake is the baking view.
	ModeBake
)

// String returns the mode name.
func (m UIMode) String() string {
	switch m {
	case ModePaint:
		return "paint"
	case ModeBake:
		return "bake"
	default:
		return "unknown"
	}
}
