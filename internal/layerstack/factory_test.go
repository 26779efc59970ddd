package layerstack_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dshills/layerkeys/internal/document"
	"github.com/dshills/layerkeys/internal/layerstack"
)

func TestFactoryCreateAboveSelection(t *testing.T) {
	h := newHost(t)
	bottom := insert(t, h, document.KindFill, document.ChannelBaseColor)
	top := insert(t, h, document.KindFill, document.ChannelBaseColor)
	require.NoError(t, h.Select(bottom))

	f := layerstack.NewFactory(h, nil)
	l, err := f.Fill(document.NewChannelSet(document.ChannelHeight), layerstack.NameFillHeight)
	require.NoError(t, err)
	require.Equal(t, layerstack.NameFillHeight, l.Name)
	require.Equal(t, document.KindFill, l.Kind)
	require.Equal(t, 1, l.Position)

	layers, err := h.Layers()
	require.NoError(t, err)
	require.Equal(t, []document.LayerID{top, l.ID, bottom}, []document.LayerID{layers[0].ID, layers[1].ID, layers[2].ID})

	sel, ok, err := h.Selection()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, l.ID, sel)
}

func TestFactoryEmptyStack(t *testing.T) {
	h := newHost(t)
	f := layerstack.NewFactory(h, nil)

	l, err := f.Fill(document.NewChannelSet(document.ChannelBaseColor), layerstack.NameFillBaseColor)
	require.NoError(t, err)
	require.Equal(t, 0, l.Position)
	require.Equal(t, 1, layerCount(t, h))
}

func TestFactoryEmptyChannelSet(t *testing.T) {
	h := newHost(t)
	f := layerstack.NewFactory(h, nil)

	l, err := f.Fill(0, layerstack.NameFillEmpty)
	require.NoError(t, err)
	require.True(t, l.Channels.IsEmpty())
	require.Equal(t, layerstack.NameFillEmpty, l.Name)
}

func TestFactoryUnsupportedChannel(t *testing.T) {
	h := newHost(t)
	insert(t, h, document.KindFill, document.ChannelBaseColor)
	f := layerstack.NewFactory(h, nil)

	_, err := f.Fill(document.NewChannelSet(document.ChannelBaseColor, document.ChannelEmissive), layerstack.NameFill)
	require.ErrorIs(t, err, document.ErrUnsupportedChannel)
	require.Equal(t, 1, layerCount(t, h))
}

func TestFactoryPaintActivatesAllChannels(t *testing.T) {
	h := newHost(t)
	f := layerstack.NewFactory(h, nil)

	l, err := f.Paint()
	require.NoError(t, err)
	require.Equal(t, document.KindPaint, l.Kind)
	require.Equal(t, layerstack.NamePaint, l.Name)
	require.Equal(t, pbrChannels, l.Channels)

	all, err := f.FillAll()
	require.NoError(t, err)
	require.Equal(t, pbrChannels, all.Channels)
	require.Equal(t, layerstack.NameFill, all.Name)
}
