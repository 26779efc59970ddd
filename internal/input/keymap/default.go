package keymap

// Menu categories.
const (
	CategoryPaint = "Paint"
	CategoryFill  = "Fill"
	CategoryMask  = "Mask"
	CategoryStack = "Stack"
	CategoryBake  = "Bake"
)

// DefaultKeymapName is the name of the built-in keymap.
const DefaultKeymapName = "default"

// LoadDefaults registers the default keymap.
func LoadDefaults(r *Registry) error {
	return r.Register(DefaultKeymap())
}

// DefaultKeymap returns the built-in shortcut bindings.
func DefaultKeymap() *Keymap {
	return &Keymap{
		Name:   DefaultKeymapName,
		Source: "default",
		Bindings: []Binding{
			{Keys: "Ctrl+P", Action: "layer.newPaint", Description: "New Paint Layer", Category: CategoryPaint},

			{Keys: "Ctrl+F", Action: "layer.newFillBaseColor", Description: "New Fill Layer with Base Color", Category: CategoryFill},
			{Keys: "Ctrl+Alt+F", Action: "layer.newFillHeight", Description: "New Fill Layer with Height", Category: CategoryFill},
			{Keys: "Ctrl+Shift+F", Action: "layer.newFillAll", Description: "New Fill Layer with All Channels", Category: CategoryFill},
			{Keys: "Alt+F", Action: "layer.newFillEmpty", Description: "New Empty Fill Layer", Category: CategoryFill},

			{Keys: "Ctrl+M", Action: "mask.toggle", Description: "Toggle Mask", Category: CategoryMask},
			{Keys: "Shift+M", Action: "mask.toggleFillEffect", Description: "Toggle Mask with Fill Effect", Category: CategoryMask},
			{Keys: "Ctrl+Shift+M", Action: "mask.addAOGenerator", Description: "Add AO Generator Mask", Category: CategoryMask},
			{Keys: "Ctrl+Alt+M", Action: "mask.addCurvatureGenerator", Description: "Add Curvature Generator Mask", Category: CategoryMask},

			{Keys: "Ctrl+Shift+G", Action: "stack.flattenVisible", Description: "Create New Layer from Visible Stack", Category: CategoryStack},
			{Keys: "Ctrl+R", Action: "layer.referencePoint", Description: "Create Reference Point", Category: CategoryStack},

			{Keys: "Ctrl+B", Action: "bake.textureSet", Description: "Bake Texture Set", Category: CategoryBake},
		},
	}
}
