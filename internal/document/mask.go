package document

// MaskFill is the base fill of a mask.
type MaskFill uint8

const (
	// FillWhite reveals the layer.
	FillWhite MaskFill = iota
	// FillBlack hides the layer.
	FillBlack
)

// String returns "white" or "black".
func (f MaskFill) String() string {
	if f == FillBlack {
		return "black"
	}
	return "white"
}

// Flip returns the opposite fill.
func (f MaskFill) Flip() MaskFill {
	if f == FillBlack {
		return FillWhite
	}
	return FillBlack
}

// Generator is a procedural effect attached to a mask.
type Generator uint8

const (
	// GeneratorNone means no generator.
	GeneratorNone Generator = iota
	// GeneratorAmbientOcclusion drives the mask from the ambient occlusion map.
	GeneratorAmbientOcclusion
	// GeneratorCurvature drives the mask from the curvature map.
	GeneratorCurvature
	// GeneratorFillEffect is a fill effect stacked on the mask.
	GeneratorFillEffect
)

// String returns the generator name.
func (g Generator) String() string {
	switch g {
	case GeneratorAmbientOcclusion:
		return "ambient-occlusion"
	case GeneratorCurvature:
		return "curvature"
	case GeneratorFillEffect:
		return "fill-effect"
	default:
		return "none"
	}
}

// ParseGenerator parses a name as returned by String.
func ParseGenerator(s string) (Generator, error) {
	switch s {
	case "", "none":
		return GeneratorNone, nil
	case "ambient-occlusion", "ao":
		return GeneratorAmbientOcclusion, nil
	case "curvature":
		return GeneratorCurvature, nil
	case "fill-effect":
		return GeneratorFillEffect, nil
	default:
		return GeneratorNone, ErrInvalidGenerator
	}
}

// Mask is a layer mask.
type Mask struct {
	// Background is the base fill under any generated or painted content.
	Background MaskFill

	// Generator is the attached procedural generator, if any.
	Generator Generator

	// Painted reports whether the operator painted into the mask.
	Painted bool
}

// MaskState classifies a mask for the toggle logic.
type MaskState uint8

const (
	// NoMask means the layer has no mask.
	NoMask MaskState = iota
	// SolidWhite is a flat white mask.
	SolidWhite
	// SolidBlack is a flat black mask.
	SolidBlack
	// Generated is a mask driven by a generator.
	Generated
	// Painted is a mask holding painted content.
	Painted
)

// String returns the state name.
func (s MaskState) String() string {
	switch s {
	case NoMask:
		return "no-mask"
	case SolidWhite:
		return "solid-white"
	case SolidBlack:
		return "solid-black"
	case Generated:
		return "generated"
	case Painted:
		return "painted"
	default:
		return "unknown"
	}
}

// StateOf classifies m. A generator takes precedence over painted content.
func StateOf(m *Mask) MaskState {
	switch {
	case m == nil:
		return NoMask
	case m.Generator != GeneratorNone:
		return Generated
	case m.Painted:
		return Painted
	case m.Background == FillBlack:
		return SolidBlack
	default:
		return SolidWhite
	}
}
