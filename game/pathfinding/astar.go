package pathfinding

import (
	"github.com/pnre/maze-engine/game/mapgraph"
	"github.com/pnre/maze-engine/internal/containers"
)

// RunAStar computes a shortest path from source to target using a
// min-heap keyed by f = g + h(neighbour, goal), h pluggable (Manhattan
// supplied by default). It maintains a side map from cell index to heap
// node pointer, allowing decrease-key without a search, and terminates
// as soon as target is extracted. f(n) = g(n) + h(n, goal).
func RunAStar(m *mapgraph.Map, source, target int, h Heuristic) {
	m.ClearGraph(Infinity)

	g := make([]int, len(m.Cells))
	for i := range g {
		g[i] = Infinity
	}
	g[source] = 0

	heap := containers.NewHeap[*weightedNode](byCost)
	nodeOf := make(map[int]*weightedNode, len(m.Cells))

	m.Cells[source].Color = mapgraph.Gray
	start := &weightedNode{cell: source, cost: h(m, source, target)}
	nodeOf[source] = start
	heap.Push(start)

	for heap.Len() > 0 {
		cur, _ := heap.ExtractMin()
		if cur.cell == target {
			m.Cells[target].Distance = g[target]
			return
		}
		if m.Cells[cur.cell].Color == mapgraph.Black {
			continue
		}
		m.Cells[cur.cell].Color = mapgraph.Black
		delete(nodeOf, cur.cell)

		for _, n := range m.Neighbors(cur.cell) {
			if m.Cells[n].Color == mapgraph.Black {
				continue
			}
			candidate := g[cur.cell] + m.Cells[n].Weight
			if candidate >= g[n] {
				continue
			}
			g[n] = candidate
			m.Cells[n].Parent = cur.cell
			f := candidate + h(m, n, target)

			if node, exists := nodeOf[n]; exists {
				node.cost = f
				heap.Fix(node.HeapIndex())
			} else {
				m.Cells[n].Color = mapgraph.Gray
				node = &weightedNode{cell: n, cost: f}
				nodeOf[n] = node
				heap.Push(node)
			}
		}
	}

	m.Cells[target].Distance = g[target]
}
