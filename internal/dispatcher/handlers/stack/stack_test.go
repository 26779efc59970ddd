package stack_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dshills/layerkeys/internal/dispatcher/execctx"
	"github.com/dshills/layerkeys/internal/dispatcher/handler"
	"github.com/dshills/layerkeys/internal/dispatcher/handlers/stack"
	"github.com/dshills/layerkeys/internal/document"
	"github.com/dshills/layerkeys/internal/document/memhost"
	"github.com/dshills/layerkeys/internal/input"
	"github.com/dshills/layerkeys/internal/layerstack"
)

func newHost(t *testing.T, active document.ChannelSet) *memhost.Document {
	t.Helper()
	host := memhost.New(document.TextureSetInfo{
		Name: "body",
		Channels: document.NewChannelSet(
			document.ChannelBaseColor, document.ChannelHeight,
			document.ChannelRoughness, document.ChannelNormal,
		),
	})
	if !active.IsEmpty() {
		_, err := host.InsertLayer(document.LayerSpec{Kind: document.KindPaint, Name: "src", Channels: active}, document.AboveSelection)
		require.NoError(t, err)
	}
	return host
}

func flatten(host *memhost.Document, h *stack.Handler, args input.ActionArgs) handler.Result {
	return h.HandleAction(input.Action{Name: stack.ActionFlattenVisible, Args: args}, execctx.New(host))
}

func names(t *testing.T, host *memhost.Document) []string {
	t.Helper()
	layers, err := host.Layers()
	require.NoError(t, err)
	out := make([]string, len(layers))
	for i, l := range layers {
		out[i] = l.Name
	}
	return out
}

func TestNewHandlerDefault(t *testing.T) {
	h := stack.NewHandler(0)
	require.Equal(t, layerstack.DefaultFlattenChannels(), h.Supported())
	require.Equal(t, "stack", h.Namespace())
	require.True(t, h.CanHandle(stack.ActionFlattenVisible))
	require.False(t, h.CanHandle("stack.other"))
}

func TestFlattenNeverActivatesNormal(t *testing.T) {
	host := newHost(t, document.NewChannelSet(document.ChannelBaseColor, document.ChannelNormal, document.ChannelHeight))
	h := stack.NewHandler(document.NewChannelSet(document.ChannelBaseColor, document.ChannelNormal, document.ChannelHeight))

	result := flatten(host, h, input.ActionArgs{})
	require.True(t, result.IsOK(), "error: %v", result.Error)
	require.Len(t, result.Layers, 2)

	for _, id := range result.Layers {
		l, err := host.Layer(id)
		require.NoError(t, err)
		require.False(t, l.Channels.Has(document.ChannelNormal), "layer %s activates Normal", l.Name)
		require.Equal(t, 1, l.Channels.Len())
	}
	require.Contains(t, names(t, host), "Stack layer - BaseColor")
	require.Contains(t, names(t, host), "Stack layer - Height")
}

func TestFlattenNothingVisible(t *testing.T) {
	host := newHost(t, document.NewChannelSet(document.ChannelNormal))

	result := flatten(host, stack.NewHandler(0), input.ActionArgs{})
	require.ErrorIs(t, result.Error, document.ErrNothingVisible)
	require.True(t, result.IsRecoverable())
	require.Len(t, names(t, host), 1)
}

func TestFlattenChannelsArgument(t *testing.T) {
	host := newHost(t, document.NewChannelSet(document.ChannelBaseColor, document.ChannelRoughness))

	result := flatten(host, stack.NewHandler(0), input.ActionArgs{
		Extra: map[string]interface{}{stack.ArgChannels: []interface{}{"Roughness"}},
	})
	require.True(t, result.IsOK(), "error: %v", result.Error)
	require.Len(t, result.Layers, 1)
	l, err := host.Layer(result.Layers[0])
	require.NoError(t, err)
	require.Equal(t, "Stack layer - Roughness", l.Name)

	bad := flatten(host, stack.NewHandler(0), input.ActionArgs{
		Extra: map[string]interface{}{stack.ArgChannels: []string{"Glitter"}},
	})
	require.ErrorIs(t, bad.Error, document.ErrUnsupportedChannel)
}
