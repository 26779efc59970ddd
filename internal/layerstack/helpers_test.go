package layerstack_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dshills/layerkeys/internal/document"
	"github.com/dshills/layerkeys/internal/document/memhost"
)

var pbrChannels = document.NewChannelSet(
	document.ChannelBaseColor,
	document.ChannelHeight,
	document.ChannelMetal,
	document.ChannelRoughness,
	document.ChannelNormal,
)

func newHost(t *testing.T) *memhost.Document {
	t.Helper()
	n := 0
	return memhost.New(document.TextureSetInfo{
		Name:       "DefaultMaterial",
		Channels:   pbrChannels,
		Resolution: document.Resolution{Width: 2048, Height: 2048},
	}, memhost.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}))
}

func insert(t *testing.T, h document.Host, kind document.LayerKind, channels ...document.Channel) document.LayerID {
	t.Helper()
	id, err := h.InsertLayer(document.LayerSpec{
		Kind:     kind,
		Name:     "fixture",
		Channels: document.NewChannelSet(channels...),
	}, document.AboveSelection)
	require.NoError(t, err)
	return id
}

func layerCount(t *testing.T, h document.Reader) int {
	t.Helper()
	layers, err := h.Layers()
	require.NoError(t, err)
	return len(layers)
}

var errInjected = errors.New("injected failure")

// flakyHost fails InsertLayer once a given number of inserts succeeded.
type flakyHost struct {
	*memhost.Document
	okInserts int
}

func (h *flakyHost) InsertLayer(spec document.LayerSpec, at document.Placement) (document.LayerID, error) {
	if h.okInserts == 0 {
		return "", errInjected
	}
	h.okInserts--
	return h.Document.InsertLayer(spec, at)
}
