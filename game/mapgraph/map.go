package mapgraph

import "github.com/pnre/maze-engine/internal/geometry"

// Map is a grid of cells of width W and height H. The map
// exclusively owns its cells: cells are a
// dense row-major slice and adjacency is stored as indices into it.
type Map struct {
	Width, Height int
	Cells         []Cell

	Start, End int // cell indices

	ScreenOffset geometry.Point

	// EligibleCells lists path-cell indices the power-up subsystem may
	// place on.
	EligibleCells []int

	MinPlacementInterval float64 // seconds, placement throttling
	PlacementLimit        int
	lastPlacementSec      float64
	placedCount           int

	Next *Map // singly-linked next map in the level
}

// NewMap allocates a width×height grid of Unknown cells.
func NewMap(width, height int) *Map {
	m := &Map{
		Width:  width,
		Height: height,
		Cells:  make([]Cell, width*height),
		Start:  NoIndex,
		End:    NoIndex,
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			m.Cells[m.Index(x, y)] = newCell(geometry.IntPoint{X: x, Y: y})
		}
	}
	return m
}

// Index returns the row-major index of (x, y). Callers must ensure the
// coordinates are in bounds; use At/InBounds for bounds-checked access.
func (m *Map) Index(x, y int) int {
	return y*m.Width + x
}

// InBounds reports whether (x, y) is within the grid.
func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// At returns the cell at (x, y) and true, or nil and false if out of
// bounds; callers treat the absent cell as a wall.
func (m *Map) At(x, y int) (*Cell, bool) {
	if !m.InBounds(x, y) {
		return nil, false
	}
	return &m.Cells[m.Index(x, y)], true
}

// CellAt returns a pointer to the cell at idx.
func (m *Map) CellAt(idx int) *Cell {
	return &m.Cells[idx]
}

// OnStartEndBand reports whether (x, y) sits on the start or end cell's
// row/column — wrap edges are never installed across this band, and
// character wrap never lands on it.
func (m *Map) OnStartEndBand(x, y int) bool {
	for _, special := range []int{m.Start, m.End} {
		if special == NoIndex {
			continue
		}
		loc := m.Cells[special].Location
		if loc.X == x || loc.Y == y {
			return true
		}
	}
	return false
}

// link sets up (or tears down) a symmetric adjacency between a and b in
// direction d (from a's perspective).
func (m *Map) link(aIdx, bIdx int, d geometry.Direction) {
	m.Cells[aIdx].setNeighbor(d, bIdx)
	m.Cells[bIdx].setNeighbor(d.Opposite(), aIdx)
}

// Connect visits every path cell and links it to its north/west
// neighbour (a full pass completes east/south symmetrically via link's
// two-sided update), then installs wrap edges on the outer border
// excluding the start/end row/column.
func (m *Map) Connect() {
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			idx := m.Index(x, y)
			if !m.Cells[idx].IsPath() {
				continue
			}
			if nx, ny := x, y-1; m.InBounds(nx, ny) {
				if n := m.Index(nx, ny); m.Cells[n].IsPath() {
					m.link(idx, n, geometry.DirNorth)
				}
			}
			if nx, ny := x-1, y; m.InBounds(nx, ny) {
				if n := m.Index(nx, ny); m.Cells[n].IsPath() {
					m.link(idx, n, geometry.DirWest)
				}
			}
		}
	}
	m.connectWrapEdges()
}

// connectWrapEdges installs the toroidal wrap adjacency between mirrored
// border path cells, skipping the start/end band.
func (m *Map) connectWrapEdges() {
	for x := 0; x < m.Width; x++ {
		m.maybeWrap(x, 0, x, m.Height-1, geometry.DirNorth)
	}
	for y := 0; y < m.Height; y++ {
		m.maybeWrap(0, y, m.Width-1, y, geometry.DirWest)
	}
}

func (m *Map) maybeWrap(x1, y1, x2, y2 int, dFromFirst geometry.Direction) {
	if m.OnStartEndBand(x1, y1) || m.OnStartEndBand(x2, y2) {
		return
	}
	a, b := m.Index(x1, y1), m.Index(x2, y2)
	if a == b {
		return
	}
	if !m.Cells[a].IsPath() || !m.Cells[b].IsPath() {
		return
	}
	// The cell at the "low" edge (row 0 / column 0) wraps to its mirror
	// as if its neighbour in dFromFirst lies beyond the opposite edge.
	m.link(a, b, dFromFirst)
}

// ConnectCell is the incremental variant used when a wall is broken by a
// power-granted ability at runtime.
// allDirections is true for this incremental case (check and link all
// four neighbours of idx), false only makes sense during the initial
// full-grid Connect pass, which does not call this method.
func (m *Map) ConnectCell(idx int, allDirections bool) {
	if !m.Cells[idx].IsPath() {
		return
	}
	x, y := m.Cells[idx].Location.X, m.Cells[idx].Location.Y
	dirs := geometry.Directions[:]
	if !allDirections {
		dirs = []geometry.Direction{geometry.DirNorth, geometry.DirWest}
	}
	for _, d := range dirs {
		off := d.Offset()
		nx, ny := x+off.X, y+off.Y
		if !m.InBounds(nx, ny) {
			continue
		}
		n := m.Index(nx, ny)
		if m.Cells[n].IsPath() {
			m.link(idx, n, d)
		}
	}
	m.connectWrapEdges()
}

// ClearGraph resets parent to NoIndex, colour to White, and distance to
// a caller-supplied "infinity" sentinel on every cell. Callers MUST
// invoke it before each new search.
func (m *Map) ClearGraph(infinity int) {
	for i := range m.Cells {
		m.Cells[i].Parent = NoIndex
		m.Cells[i].Color = White
		m.Cells[i].Distance = infinity
	}
}

// Neighbors returns the valid neighbor indices of idx in N, E, S, W
// order, skipping absent slots — the tie-break order BFS expands in
// (and Dijkstra/A* relax in).
func (m *Map) Neighbors(idx int) []int {
	c := &m.Cells[idx]
	out := make([]int, 0, 4)
	for _, d := range geometry.Directions {
		if n := c.NeighborIndex(d); n != NoIndex {
			out = append(out, n)
		}
	}
	return out
}

// Bounds returns the map's pixel-space rectangle given a cell size, used
// to clamp AI target windows and to test toroidal wrap crossings.
func (m *Map) Bounds(cellSize geometry.Size) geometry.Rect {
	return geometry.Rect{
		Origin: m.ScreenOffset,
		Size: geometry.Size{
			Width:  float64(m.Width) * cellSize.Width,
			Height: float64(m.Height) * cellSize.Height,
		},
	}
}

// PlacementAllowed reports whether the power-up subsystem may place a
// new instance on this map at time nowSec, per its throttling
// parameters.
func (m *Map) PlacementAllowed(nowSec float64) bool {
	if nowSec-m.lastPlacementSec < m.MinPlacementInterval {
		return false
	}
	return m.PlacementLimit == 0 || m.placedCount < m.PlacementLimit
}

// RecordPlacement updates the map's placement bookkeeping after a
// successful placement.
func (m *Map) RecordPlacement(nowSec float64) {
	m.lastPlacementSec = nowSec
	m.placedCount++
}

// RecordRemoval decrements the map's placed-instance count (decay or
// acquisition consuming a placed power-up).
func (m *Map) RecordRemoval() {
	if m.placedCount > 0 {
		m.placedCount--
	}
}
