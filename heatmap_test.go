package deployhelper

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeatmapImageDimensions(t *testing.T) {
	g := smallGrid()
	scheme := DefaultHeatScheme()
	scheme.Scale = 4

	im := HeatmapImage(g, nil, nil, scheme)
	bnds := im.Bounds()
	assert.Equal(t, 12, bnds.Dx(), "3 columns x 1 inch x 4 px")
	assert.Equal(t, 8, bnds.Dy())
}

func TestSaveHeatmap(t *testing.T) {
	pieces := []*TerrainPiece{rectPiece("crate", 0.5, 0.5, 1, 1)}
	fpath := filepath.Join(t.TempDir(), "heat.png")

	require.NoError(t, SaveHeatmap(fpath, smallGrid(), pieces, testSources, nil))

	info, err := os.Stat(fpath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
