package handlers

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/jiraseed/internal/config"
)

func TestExportDataset_Stdout(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	require.NoError(t, ExportDataset("", &buf))

	ds, err := config.LoadFromBytes(buf.Bytes())
	require.NoError(t, err)
	assert.Len(t, ds.Projects, 3)
}

func TestExportDataset_File(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "dataset.yaml")
	var buf bytes.Buffer

	require.NoError(t, ExportDataset(path, &buf))
	assert.Contains(t, buf.String(), path)

	ds, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "UP", ds.Anchor)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestExportDataset_UnwritablePath(t *testing.T) {
	t.Parallel()
	err := ExportDataset(filepath.Join(t.TempDir(), "missing", "dataset.yaml"), &bytes.Buffer{})
	require.Error(t, err)
}
