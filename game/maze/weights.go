package maze

import (
	"math"
	"math/rand"

	"github.com/pnre/maze-engine/game/mapgraph"
)

// RandomizeWeights picks up to floor(10*complexity) random path cells
// and, along a random cardinal direction for a random length in [1,5],
// stamps a weight drawn uniformly from a range of size
// ceil(complexity*|[1,9]|/2) centred on the default weight (the
// §4.2). Weights bias Dijkstra/A* and attenuate character speed.
func RandomizeWeights(rng *rand.Rand, m *mapgraph.Map, complexity float64) {
	pathCells := make([]int, 0, len(m.Cells))
	for i := range m.Cells {
		if m.Cells[i].Type == mapgraph.Path {
			pathCells = append(pathCells, i)
		}
	}
	if len(pathCells) == 0 {
		return
	}

	strokes := int(math.Floor(10 * complexity))
	rangeSize := int(math.Ceil(complexity * 9 / 2))
	if rangeSize < 1 {
		rangeSize = 1
	}

	dirs := [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

	for s := 0; s < strokes; s++ {
		start := pathCells[rng.Intn(len(pathCells))]
		d := dirs[rng.Intn(len(dirs))]
		length := 1 + rng.Intn(5)

		weight := randomWeightAround(rng, mapgraph.DefaultWeight, rangeSize)

		cur := start
		for step := 0; step < length; step++ {
			m.Cells[cur].Weight = weight
			loc := m.Cells[cur].Location
			nx, ny := loc.X+d[0], loc.Y+d[1]
			if !m.InBounds(nx, ny) {
				break
			}
			n := m.Index(nx, ny)
			if m.Cells[n].Type != mapgraph.Path {
				break
			}
			cur = n
		}
	}
}

// randomWeightAround draws a weight uniformly from [center-range/2,
// center+range/2], clamped to the valid [1,9] band.
func randomWeightAround(rng *rand.Rand, center, rangeSize int) int {
	lo := center - rangeSize/2
	hi := center + rangeSize/2
	if lo < 1 {
		lo = 1
	}
	if hi > 9 {
		hi = 9
	}
	if hi < lo {
		hi = lo
	}
	return lo + rng.Intn(hi-lo+1)
}
