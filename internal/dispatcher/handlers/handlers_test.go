package handlers_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dshills/layerkeys/internal/dispatcher"
	"github.com/dshills/layerkeys/internal/dispatcher/handlers"
	"github.com/dshills/layerkeys/internal/dispatcher/handlers/bake"
	"github.com/dshills/layerkeys/internal/dispatcher/handlers/layer"
	"github.com/dshills/layerkeys/internal/dispatcher/handlers/mask"
	"github.com/dshills/layerkeys/internal/dispatcher/handlers/stack"
	"github.com/dshills/layerkeys/internal/input/keymap"
)

func TestNewRegistryHoldsEveryAction(t *testing.T) {
	reg, err := handlers.NewRegistry(handlers.DefaultOptions())
	require.NoError(t, err)
	require.True(t, reg.Sealed())

	want := []string{
		bake.ActionTextureSet,
		layer.ActionNewFillAll,
		layer.ActionNewFillBaseColor,
		layer.ActionNewFillEmpty,
		layer.ActionNewFillHeight,
		layer.ActionNewPaint,
		layer.ActionReferencePoint,
		mask.ActionAddAOGenerator,
		mask.ActionAddCurvatureGenerator,
		mask.ActionToggle,
		mask.ActionToggleFillEffect,
		stack.ActionFlattenVisible,
	}
	require.Equal(t, want, reg.Actions())
	require.Equal(t, []string{"bake", "layer", "mask", "stack"}, reg.Namespaces())
}

func TestDefaultKeymapMatchesActions(t *testing.T) {
	reg, err := handlers.NewRegistry(handlers.DefaultOptions())
	require.NoError(t, err)

	for _, b := range keymap.DefaultKeymap().Bindings {
		require.True(t, reg.Has(b.Action), "default binding %s -> %s has no handler", b.Keys, b.Action)
	}
}

func TestRegisterAllOnSealedRegistry(t *testing.T) {
	reg := dispatcher.NewRegistry()
	reg.Seal()

	err := handlers.RegisterAll(reg, handlers.DefaultOptions())
	require.True(t, errors.Is(err, dispatcher.ErrRegistrySealed), "error = %v", err)
}
