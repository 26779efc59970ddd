package mask_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dshills/layerkeys/internal/dispatcher/execctx"
	"github.com/dshills/layerkeys/internal/dispatcher/handler"
	"github.com/dshills/layerkeys/internal/dispatcher/handlers/mask"
	"github.com/dshills/layerkeys/internal/document"
	"github.com/dshills/layerkeys/internal/document/memhost"
	"github.com/dshills/layerkeys/internal/input"
)

func setup(t *testing.T) (*memhost.Document, document.LayerID) {
	t.Helper()
	host := memhost.New(document.TextureSetInfo{
		Name:     "body",
		Channels: document.NewChannelSet(document.ChannelBaseColor),
	})
	id, err := host.InsertLayer(document.LayerSpec{Kind: document.KindFill, Name: "fill"}, document.AboveSelection)
	require.NoError(t, err)
	return host, id
}

func run(host *memhost.Document, id document.LayerID, name string) handler.Result {
	ctx := execctx.New(host)
	if id != "" {
		ctx.WithSelection(id)
	}
	return mask.NewHandler().HandleAction(input.Action{Name: name}, ctx)
}

func TestHandlerActions(t *testing.T) {
	h := mask.NewHandler()
	require.Equal(t, "mask", h.Namespace())
	require.ElementsMatch(t, []string{
		mask.ActionToggle, mask.ActionToggleFillEffect,
		mask.ActionAddAOGenerator, mask.ActionAddCurvatureGenerator,
	}, h.Actions())
}

func TestToggleCycle(t *testing.T) {
	host, id := setup(t)

	want := []string{"solid-white", "solid-black", "solid-white"}
	for i, state := range want {
		result := run(host, id, mask.ActionToggle)
		require.True(t, result.IsOK(), "step %d: %v", i, result.Error)
		require.Equal(t, state, result.GetDataString(mask.DataState), "step %d", i)
	}
}

func TestToggleFillEffect(t *testing.T) {
	host, id := setup(t)

	result := run(host, id, mask.ActionToggleFillEffect)
	require.True(t, result.IsOK())
	require.Equal(t, "generated", result.GetDataString(mask.DataState))

	l, err := host.Layer(id)
	require.NoError(t, err)
	require.Equal(t, document.GeneratorFillEffect, l.Mask.Generator)
	require.Equal(t, document.FillWhite, l.Mask.Background)
}

func TestAddGenerators(t *testing.T) {
	tests := []struct {
		action string
		want   document.Generator
	}{
		{mask.ActionAddAOGenerator, document.GeneratorAmbientOcclusion},
		{mask.ActionAddCurvatureGenerator, document.GeneratorCurvature},
	}

	for _, tc := range tests {
		t.Run(tc.action, func(t *testing.T) {
			host, id := setup(t)
			// Start from a white solid mask; the generator replaces it.
			require.True(t, run(host, id, mask.ActionToggle).IsOK())

			result := run(host, id, tc.action)
			require.True(t, result.IsOK(), "error: %v", result.Error)

			l, err := host.Layer(id)
			require.NoError(t, err)
			require.Equal(t, document.Mask{Background: document.FillBlack, Generator: tc.want}, *l.Mask)
		})
	}
}

func TestNoSelection(t *testing.T) {
	host, _ := setup(t)
	for _, name := range mask.NewHandler().Actions() {
		result := run(host, "", name)
		require.ErrorIs(t, result.Error, document.ErrNoSelection, name)
		require.True(t, result.IsRecoverable(), name)
	}
}
