package memhost_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dshills/layerkeys/internal/document"
	"github.com/dshills/layerkeys/internal/document/memhost"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newDoc(t *testing.T, opts ...memhost.Option) *memhost.Document {
	t.Helper()
	info := document.TextureSetInfo{
		Name: "DefaultMaterial",
		Channels: document.NewChannelSet(
			document.ChannelBaseColor,
			document.ChannelHeight,
			document.ChannelMetal,
			document.ChannelRoughness,
			document.ChannelNormal,
		),
		Resolution: document.Resolution{Width: 2048, Height: 1024},
	}
	opts = append([]memhost.Option{memhost.WithIDGenerator(sequentialIDs())}, opts...)
	return memhost.New(info, opts...)
}

func TestInsertAboveSelection(t *testing.T) {
	d := newDoc(t)

	bottom, err := d.InsertLayer(document.LayerSpec{Kind: document.KindFill, Name: "bottom"}, document.AboveSelection)
	require.NoError(t, err)
	top, err := d.InsertLayer(document.LayerSpec{Kind: document.KindFill, Name: "top"}, document.Top)
	require.NoError(t, err)

	require.NoError(t, d.Select(bottom))
	mid, err := d.InsertLayer(document.LayerSpec{Kind: document.KindPaint, Name: "mid"}, document.AboveSelection)
	require.NoError(t, err)

	layers, err := d.Layers()
	require.NoError(t, err)
	require.Len(t, layers, 3)
	require.Equal(t, top, layers[0].ID)
	require.Equal(t, mid, layers[1].ID)
	require.Equal(t, bottom, layers[2].ID)
	for i, l := range layers {
		require.Equal(t, i, l.Position)
	}

	sel, ok, err := d.Selection()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, mid, sel)
}

func TestInsertWithoutSelection(t *testing.T) {
	d := newDoc(t)

	_, err := d.InsertLayer(document.LayerSpec{Kind: document.KindFill, Name: "first"}, document.AboveSelection)
	require.NoError(t, err)
	_, err = d.InsertLayer(document.LayerSpec{Kind: document.KindFill, Name: "second"}, document.AboveSelection)
	require.NoError(t, err)

	d.ClearSelection()
	_, ok, err := d.Selection()
	require.NoError(t, err)
	require.False(t, ok)

	id, err := d.InsertLayer(document.LayerSpec{Kind: document.KindPaint, Name: "third"}, document.AboveSelection)
	require.NoError(t, err)

	layers, err := d.Layers()
	require.NoError(t, err)
	require.Equal(t, id, layers[0].ID)
}

func TestInsertUnsupportedChannel(t *testing.T) {
	d := newDoc(t)
	_, err := d.InsertLayer(document.LayerSpec{
		Kind:     document.KindFill,
		Channels: document.NewChannelSet(document.ChannelEmissive),
	}, document.Top)
	require.ErrorIs(t, err, document.ErrUnsupportedChannel)

	layers, err := d.Layers()
	require.NoError(t, err)
	require.Empty(t, layers)
}

func TestClosedDocument(t *testing.T) {
	d := newDoc(t, memhost.WithClosed())

	_, err := d.TextureSet()
	require.ErrorIs(t, err, document.ErrNoActiveDocument)
	_, err = d.Layers()
	require.ErrorIs(t, err, document.ErrNoActiveDocument)
	_, err = d.InsertLayer(document.LayerSpec{}, document.Top)
	require.ErrorIs(t, err, document.ErrNoActiveDocument)

	d.Open()
	_, err = d.TextureSet()
	require.NoError(t, err)
}

func TestLayerSnapshotIsolation(t *testing.T) {
	d := newDoc(t)
	id, err := d.InsertLayer(document.LayerSpec{Kind: document.KindFill}, document.Top)
	require.NoError(t, err)
	require.NoError(t, d.SetMask(id, document.Mask{Background: document.FillWhite}))

	l, err := d.Layer(id)
	require.NoError(t, err)
	l.Mask.Background = document.FillBlack

	again, err := d.Layer(id)
	require.NoError(t, err)
	require.Equal(t, document.FillWhite, again.Mask.Background)
}

func TestStaleHandle(t *testing.T) {
	d := newDoc(t)
	id, err := d.InsertLayer(document.LayerSpec{Kind: document.KindFill}, document.Top)
	require.NoError(t, err)
	require.NoError(t, d.DeleteLayer(id))

	_, err = d.Layer(id)
	require.ErrorIs(t, err, document.ErrLayerNotFound)
	require.ErrorIs(t, d.SetMask(id, document.Mask{}), document.ErrLayerNotFound)

	_, ok, err := d.Selection()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMaskBackgroundKeepsContent(t *testing.T) {
	d := newDoc(t)
	id, err := d.InsertLayer(document.LayerSpec{Kind: document.KindPaint}, document.Top)
	require.NoError(t, err)

	require.ErrorIs(t, d.SetMaskBackground(id, document.FillBlack), document.ErrNoMask)

	require.NoError(t, d.SetMask(id, document.Mask{Background: document.FillBlack, Generator: document.GeneratorCurvature}))
	require.NoError(t, d.SetMaskBackground(id, document.FillWhite))

	l, err := d.Layer(id)
	require.NoError(t, err)
	require.Equal(t, document.Mask{Background: document.FillWhite, Generator: document.GeneratorCurvature}, *l.Mask)
}

func TestVisibleChannels(t *testing.T) {
	d := newDoc(t)
	_, err := d.InsertLayer(document.LayerSpec{
		Kind:     document.KindFill,
		Channels: document.NewChannelSet(document.ChannelBaseColor),
	}, document.Top)
	require.NoError(t, err)
	height, err := d.InsertLayer(document.LayerSpec{
		Kind:     document.KindFill,
		Channels: document.NewChannelSet(document.ChannelHeight),
	}, document.Top)
	require.NoError(t, err)
	rough, err := d.InsertLayer(document.LayerSpec{
		Kind:     document.KindFill,
		Channels: document.NewChannelSet(document.ChannelRoughness),
	}, document.Top)
	require.NoError(t, err)

	require.NoError(t, d.SetVisible(height, false))
	require.NoError(t, d.SetMask(rough, document.Mask{Background: document.FillBlack}))

	got, err := d.VisibleChannels()
	require.NoError(t, err)
	require.Equal(t, document.NewChannelSet(document.ChannelBaseColor), got)
}

func TestFlattenChannel(t *testing.T) {
	d := newDoc(t)

	res, err := d.FlattenChannel(document.ChannelMetal)
	require.NoError(t, err)
	ch, ok := d.Resource(res)
	require.True(t, ok)
	require.Equal(t, document.ChannelMetal, ch)

	_, err = d.FlattenChannel(document.ChannelEmissive)
	require.ErrorIs(t, err, document.ErrUnsupportedChannel)
}

func TestBakeQueue(t *testing.T) {
	d := newDoc(t)
	finished := 0
	require.NoError(t, d.Bake(document.BakeRequest{
		TextureSet: "DefaultMaterial",
		OnFinished: func() { finished++ },
	}))

	require.Equal(t, document.ModeBake, d.UIMode())
	require.Len(t, d.PendingBakes(), 1)
	require.Zero(t, finished)

	require.Equal(t, 1, d.CompleteBakes())
	require.Equal(t, 1, finished)
	require.Empty(t, d.PendingBakes())
	require.Len(t, d.CompletedBakes(), 1)
	require.Zero(t, d.CompleteBakes())
}

const snapshotYAML = `
texture_set:
  name: Body
  channels: [BaseColor, Height, Metallic, Roughness, Normal]
  width: 4096
  height: 4096
  uv_tiles: [[1, 1], [2, 1]]
selection: paint
layers:
  - id: paint
    kind: paint
    name: Details
    channels: [BaseColor, Height]
    mask:
      background: black
      generator: curvature
  - id: base
    kind: fill
    name: Base
    channels: [BaseColor, Roughness]
    hidden: true
`

func TestSnapshotRoundTrip(t *testing.T) {
	d, err := memhost.Load(strings.NewReader(snapshotYAML), memhost.WithIDGenerator(sequentialIDs()))
	require.NoError(t, err)

	info, err := d.TextureSet()
	require.NoError(t, err)
	require.Equal(t, "Body", info.Name)
	require.True(t, info.Channels.Has(document.ChannelMetal))
	require.Equal(t, document.Resolution{Width: 4096, Height: 4096}, info.Resolution)
	require.Len(t, info.UVTiles, 2)

	l, err := d.Layer("paint")
	require.NoError(t, err)
	require.Equal(t, document.Generated, l.MaskState())
	base, err := d.Layer("base")
	require.NoError(t, err)
	require.False(t, base.Visible)

	var buf bytes.Buffer
	require.NoError(t, d.Save(&buf))

	again, err := memhost.Load(&buf)
	require.NoError(t, err)
	require.Equal(t, d.Snapshot(), again.Snapshot())
}

func TestSnapshotErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad channel", "texture_set: {name: x, channels: [Sparkle]}\nlayers: []\n"},
		{"bad kind", "texture_set: {name: x, channels: [BaseColor]}\nlayers: [{id: a, kind: smart, channels: []}]\n"},
		{"duplicate id", "texture_set: {name: x, channels: [BaseColor]}\nlayers: [{id: a, kind: fill}, {id: a, kind: fill}]\n"},
		{"missing selection", "texture_set: {name: x, channels: [BaseColor]}\nselection: nope\nlayers: []\n"},
		{"bad generator", "texture_set: {name: x, channels: [BaseColor]}\nlayers: [{id: a, kind: fill, mask: {background: black, generator: noise}}]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := memhost.Load(strings.NewReader(tt.yaml))
			require.Error(t, err)
		})
	}
}
