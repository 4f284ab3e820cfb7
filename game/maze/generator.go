// Package maze procedurally generates map graphs: a "perfect" maze via
// randomized DFS backtracking carve, and a "braided" variant that adds
// loops by knocking out a fraction of dead-end walls.
package maze

import (
	"math/rand"

	"github.com/pnre/maze-engine/game/mapgraph"
	"github.com/pnre/maze-engine/internal/containers"
)

// MinMazeDimension is the smallest logical width/height a generated
// maze supports; the resulting grid is (2*MinMazeDimension+1) on a
// side, so generated maps are always at least 9 cells square.
const MinMazeDimension = 4

// Result bundles a generated map with the dead-end cells the carve
// recorded; the braided variant consumes this list directly.
type Result struct {
	Map      *mapgraph.Map
	DeadEnds []int
}

// GeneratePerfect carves a perfect (uniquely-connected, acyclic) maze
// of logical size width x height (grid size 2*width+1 x 2*height+1)
// using randomized DFS backtracking.
func GeneratePerfect(rng *rand.Rand, width, height int, startOnX bool) Result {
	if width < MinMazeDimension {
		width = MinMazeDimension
	}
	if height < MinMazeDimension {
		height = MinMazeDimension
	}

	gridW, gridH := 2*width+1, 2*height+1
	m := mapgraph.NewMap(gridW, gridH)
	for i := range m.Cells {
		m.Cells[i].Type = mapgraph.Wall
	}

	deadEnds := carve(rng, m)
	placeEntranceExit(m, startOnX, rng)
	m.Connect()

	return Result{Map: m, DeadEnds: deadEnds}
}

// GenerateBraided runs GeneratePerfect, then for each recorded
// dead-end with probability p (default 0.2) knocks out exactly one
// adjacent wall that is not on the outer border, chosen uniformly
// among the candidates.
func GenerateBraided(rng *rand.Rand, width, height int, startOnX bool, p float64) Result {
	res := GeneratePerfect(rng, width, height, startOnX)
	m := res.Map

	for _, cell := range res.DeadEnds {
		if rng.Float64() >= p {
			continue
		}
		braidOne(rng, m, cell)
	}

	// Re-run Connect: braiding only flips Wall->Path on cells whose
	// distance-2 neighbours are already Path, so a second full pass
	// correctly symmetrizes the new adjacency.
	m.Connect()
	return res
}

// DefaultBraidProbability is the default braid acceptance probability.
const DefaultBraidProbability = 0.2

func carve(rng *rand.Rand, m *mapgraph.Map) []int {
	start := m.Index(1, 1)
	m.Cells[start].Type = mapgraph.Path
	current := start

	stack := containers.NewStack[int]()
	var deadEnds []int

	for {
		candidates := wallNeighborsAtDistance2(m, current)
		if len(candidates) > 0 {
			choice := candidates[rng.Intn(len(candidates))]
			mid := m.Index((m.Cells[current].Location.X+m.Cells[choice].Location.X)/2,
				(m.Cells[current].Location.Y+m.Cells[choice].Location.Y)/2)
			m.Cells[mid].Type = mapgraph.Path
			m.Cells[choice].Type = mapgraph.Path
			stack.Push(current)
			current = choice
			continue
		}

		deadEnds = append(deadEnds, current)
		popped, ok := stack.Pop()
		if !ok {
			break
		}
		current = popped
	}

	return deadEnds
}

// wallNeighborsAtDistance2 returns the indices of cells at grid distance
// 2 from idx (the corridor lattice spacing) that are still walls and lie
// strictly inside the outer border.
func wallNeighborsAtDistance2(m *mapgraph.Map, idx int) []int {
	loc := m.Cells[idx].Location
	var out []int
	for _, d := range [4][2]int{{0, -2}, {2, 0}, {0, 2}, {-2, 0}} {
		nx, ny := loc.X+d[0], loc.Y+d[1]
		if nx <= 0 || nx >= m.Width-1 || ny <= 0 || ny >= m.Height-1 {
			continue
		}
		n := m.Index(nx, ny)
		if m.Cells[n].Type == mapgraph.Wall {
			out = append(out, n)
		}
	}
	return out
}

// braidOne knocks out one eligible adjacent wall of the dead-end at
// cellIdx, chosen uniformly among walls at grid distance 1 that are not
// on the outer border.
func braidOne(rng *rand.Rand, m *mapgraph.Map, cellIdx int) {
	loc := m.Cells[cellIdx].Location
	var candidates []int
	for _, d := range [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}} {
		nx, ny := loc.X+d[0], loc.Y+d[1]
		if nx <= 0 || nx >= m.Width-1 || ny <= 0 || ny >= m.Height-1 {
			continue
		}
		n := m.Index(nx, ny)
		if m.Cells[n].Type == mapgraph.Wall {
			candidates = append(candidates, n)
		}
	}
	if len(candidates) == 0 {
		return
	}
	m.Cells[candidates[rng.Intn(len(candidates))]].Type = mapgraph.Path
}

// placeEntranceExit picks the start/exit cells on the border and
// carves one extra adjacent path cell so the character has a valid
// first step.
func placeEntranceExit(m *mapgraph.Map, startOnX bool, rng *rand.Rand) {
	if startOnX {
		row1 := randomInteriorOdd(rng, m.Height)
		row2 := randomInteriorOdd(rng, m.Height)
		start := m.Index(0, row1)
		end := m.Index(m.Width-1, row2)
		m.Cells[start].Type = mapgraph.Path
		m.Cells[end].Type = mapgraph.Path
		m.Cells[m.Index(1, row1)].Type = mapgraph.Path
		m.Cells[m.Index(m.Width-2, row2)].Type = mapgraph.Path
		m.Start, m.End = start, end
		return
	}

	col1 := randomInteriorOdd(rng, m.Width)
	col2 := randomInteriorOdd(rng, m.Width)
	entrance := m.Index(col1, m.Height-1)
	exit := m.Index(col2, 0)
	m.Cells[entrance].Type = mapgraph.Path
	m.Cells[exit].Type = mapgraph.Path
	m.Cells[m.Index(col1, m.Height-2)].Type = mapgraph.Path
	m.Cells[m.Index(col2, 1)].Type = mapgraph.Path
	m.Start, m.End = entrance, exit
}

// randomInteriorOdd picks a uniform random odd coordinate in [1, span-2]
// — the corridor lattice columns/rows, excluding the corners.
func randomInteriorOdd(rng *rand.Rand, span int) int {
	count := (span - 1) / 2 // number of odd coordinates in [1, span-2]
	if count < 1 {
		count = 1
	}
	return 1 + 2*rng.Intn(count)
}
