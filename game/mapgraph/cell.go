// Package mapgraph implements the grid-of-cells graph model: cells with
// 4-neighbour adjacency, graph-search scratch fields, and the toroidal
// wrap edges that make border cells (other than the start/end band)
// adjacent to their mirror on the opposite border.
package mapgraph

import "github.com/pnre/maze-engine/internal/geometry"

// CellType is the type of a grid location.
type CellType int

const (
	Unknown CellType = iota
	Path
	Wall
)

// Color is a graph-search scratch color (BFS/Dijkstra/A*).
type Color int

const (
	White Color = iota
	Gray
	Black
)

// DefaultWeight is the weight assigned to a cell unless randomize_weights
// (game/maze) stamps a different one. Weight biases Dijkstra/A* cost and
// attenuates character speed.
const DefaultWeight = 5

// NoIndex is the sentinel for "no such cell" used for unset adjacency,
// absent parent, and absent neighbors.
const NoIndex = -1

// PowerUpSlot is the cell's power-up placement scratch state. It holds
// only an opaque template identifier and a placement timestamp so that
// mapgraph has no dependency on the powerup package (which instead
// depends on mapgraph); the powerup package interprets TemplateID.
type PowerUpSlot struct {
	TemplateID  string
	PlacedAtSec float64 // seconds since an arbitrary epoch chosen by the caller
	Occupied    bool
}

// Cell is one grid location.
type Cell struct {
	Type      CellType
	Location  geometry.IntPoint
	Neighbors [4]int // indexed by direction: N, E, S, W; NoIndex if absent

	// Graph-search fields, reset by Map.ClearGraph before each search.
	Parent   int
	Color    Color
	Distance int
	Weight   int

	PowerUp PowerUpSlot
}

// newCell returns a cell at loc with no adjacency and default weight.
func newCell(loc geometry.IntPoint) Cell {
	return Cell{
		Type:     Unknown,
		Location: loc,
		Neighbors: [4]int{
			NoIndex, NoIndex, NoIndex, NoIndex,
		},
		Parent:   NoIndex,
		Color:    White,
		Distance: 0,
		Weight:   DefaultWeight,
	}
}

// dirSlot maps a geometry.Direction to its Neighbors slot, 0-based in
// N, E, S, W order.
func dirSlot(d geometry.Direction) int {
	switch d {
	case geometry.DirNorth:
		return 0
	case geometry.DirEast:
		return 1
	case geometry.DirSouth:
		return 2
	case geometry.DirWest:
		return 3
	default:
		return -1
	}
}

// NeighborIndex returns the cell index adjacent to c in direction d, or
// NoIndex if there is none.
func (c *Cell) NeighborIndex(d geometry.Direction) int {
	slot := dirSlot(d)
	if slot < 0 {
		return NoIndex
	}
	return c.Neighbors[slot]
}

func (c *Cell) setNeighbor(d geometry.Direction, idx int) {
	if slot := dirSlot(d); slot >= 0 {
		c.Neighbors[slot] = idx
	}
}

// IsPath reports whether the cell can be entered.
func (c *Cell) IsPath() bool {
	return c.Type == Path
}
