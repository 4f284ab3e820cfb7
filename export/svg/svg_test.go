package svg

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pnre/maze-engine/game/maze"
)

func TestExportGeneratedMaze(t *testing.T) {
	res := maze.GeneratePerfect(rand.New(rand.NewSource(42)), 5, 5, false)

	out, err := Export(res.Map, DefaultOptions())
	require.NoError(t, err)

	doc := string(out)
	require.True(t, strings.HasPrefix(doc, "<?xml"))
	require.Contains(t, doc, "<svg")
	require.Contains(t, doc, "</svg>")
	require.Contains(t, doc, startFill)
	require.Contains(t, doc, endFill)
}

func TestExportNilMap(t *testing.T) {
	_, err := Export(nil, DefaultOptions())
	require.Error(t, err)
}
