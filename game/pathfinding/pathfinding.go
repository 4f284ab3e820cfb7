// Package pathfinding implements BFS, Dijkstra, and A* over a
// game/mapgraph.Map, plus path reconstruction from the parent pointers
// they leave behind.
package pathfinding

import "github.com/pnre/maze-engine/game/mapgraph"

// Infinity is the "unreached" distance sentinel used to seed
// Map.ClearGraph before a search. It is kept well below MaxInt so that
// Distance + Weight additions during relaxation cannot overflow.
const Infinity = 1 << 30

// Method names a pathfinding algorithm, looked up case-insensitively by
// character configuration.
type Method int

const (
	BFS Method = iota
	Dijkstra
	AStar
)

// MethodByName resolves a configuration string to a Method, defaulting
// to BFS when unset or unrecognised.
func MethodByName(name string) Method {
	switch lower(name) {
	case "dijkstra":
		return Dijkstra
	case "astar", "a*":
		return AStar
	default:
		return BFS
	}
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// Run executes the named method from source to target and returns the
// reconstructed path (source..target inclusive), or nil if target is
// unreachable.
func Run(method Method, m *mapgraph.Map, source, target int) []int {
	switch method {
	case Dijkstra:
		RunDijkstra(m, source)
	case AStar:
		RunAStar(m, source, target, ManhattanHeuristic)
	default:
		RunBFS(m, source)
	}
	return ReconstructPath(m, source, target)
}

// Heuristic estimates the cost from a to b (A*'s pluggable h function).
type Heuristic func(m *mapgraph.Map, a, b int) int

// ManhattanHeuristic is the supplied Manhattan-distance heuristic for
// the grid.
func ManhattanHeuristic(m *mapgraph.Map, a, b int) int {
	la := m.Cells[a].Location
	lb := m.Cells[b].Location
	dx := la.X - lb.X
	if dx < 0 {
		dx = -dx
	}
	dy := la.Y - lb.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}
