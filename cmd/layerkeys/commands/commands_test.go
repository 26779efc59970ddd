package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dshills/layerkeys/internal/document"
	"github.com/dshills/layerkeys/internal/document/memhost"
)

// execute runs the CLI against an empty config file so the caller's
// environment and working directory do not leak in.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "layerkeys.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[logging]\nlevel = \"error\"\n"), 0o644))

	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestDispatchWritesDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.yaml")

	_, stderr, err := execute(t, "dispatch", "--document", path, "Ctrl+F", "mask.toggle", "Ctrl+M")
	require.NoError(t, err)
	require.Contains(t, stderr, "Ctrl+F:")

	doc, err := memhost.LoadFile(path)
	require.NoError(t, err)
	layers, err := doc.Layers()
	require.NoError(t, err)
	require.Len(t, layers, 1)
	require.Equal(t, document.SolidBlack, layers[0].MaskState())
}

func TestDispatchToStdout(t *testing.T) {
	stdout, _, err := execute(t, "dispatch", "layer.newPaint")
	require.NoError(t, err)
	require.Contains(t, stdout, "texture_set:")
	require.Contains(t, stdout, "kind: paint")
}

func TestDispatchCompletesBake(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.yaml")

	_, _, err := execute(t, "dispatch", "--document", path, "bake.textureSet")
	require.NoError(t, err)

	doc, err := memhost.LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, document.ModePaint, doc.UIMode())
}

func TestDispatchStopsOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.yaml")

	_, _, err := execute(t, "dispatch", "--document", path, "layer.newPaint", "layer.bogus")
	require.Error(t, err)
	require.Contains(t, err.Error(), "layer.bogus")

	_, statErr := os.Stat(path)
	require.True(t, os.IsNotExist(statErr), "document should not be written")
}

func TestBindings(t *testing.T) {
	stdout, _, err := execute(t, "bindings")
	require.NoError(t, err)
	require.Contains(t, stdout, "Mask\n")
	require.Contains(t, stdout, "Toggle Mask (Ctrl+M)")

	stdout, _, err = execute(t, "bindings", "--actions")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 12)
	require.Equal(t, "bake.textureSet", lines[0])
}

func TestBindingsSearch(t *testing.T) {
	stdout, _, err := execute(t, "bindings", "--search", "curv")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 1)
	require.True(t, strings.HasPrefix(lines[0], "mask.addCurvatureGenerator"), lines[0])
}

func TestConfigCommand(t *testing.T) {
	stdout, _, err := execute(t, "config")
	require.NoError(t, err)
	require.Contains(t, stdout, "[logging]")
	require.Contains(t, stdout, "error")
	require.Contains(t, stdout, "switch_to_paint = true")
}

func TestBadConfig(t *testing.T) {
	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.toml"), "bindings"})
	require.Error(t, root.Execute())
}

func TestVersion(t *testing.T) {
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.toml"), "version"})
	require.NoError(t, root.Execute())
	require.True(t, strings.HasPrefix(out.String(), "layerkeys dev"), out.String())
}
