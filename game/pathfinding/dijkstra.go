package pathfinding

import (
	"github.com/pnre/maze-engine/game/mapgraph"
	"github.com/pnre/maze-engine/internal/containers"
)

// weightedNode is a heap entry for Dijkstra/A*: it knows its own index
// in the heap's backing array (for O(log n) decrease-key) and the cell
// it represents (for the side map from cell index to heap node).
type weightedNode struct {
	cell  int
	cost  int // Dijkstra: accumulated distance; A*: f = g + h
	index int
}

func (n *weightedNode) HeapIndex() int     { return n.index }
func (n *weightedNode) SetHeapIndex(i int) { n.index = i }

func byCost(a, b *weightedNode) bool { return a.cost < b.cost }

// RunDijkstra computes shortest weighted distances from source to
// every reachable cell, cost = sum of weights of entered cells. On
// relaxation, a newly reached cell is inserted once; revisits use the
// heap's decrease-key.
func RunDijkstra(m *mapgraph.Map, source int) {
	m.ClearGraph(Infinity)

	heap := containers.NewHeap[*weightedNode](byCost)
	nodeOf := make(map[int]*weightedNode, len(m.Cells))

	m.Cells[source].Distance = 0
	m.Cells[source].Color = mapgraph.Gray
	start := &weightedNode{cell: source, cost: 0}
	nodeOf[source] = start
	heap.Push(start)

	for heap.Len() > 0 {
		cur, _ := heap.ExtractMin()
		if m.Cells[cur.cell].Color == mapgraph.Black {
			continue
		}
		m.Cells[cur.cell].Color = mapgraph.Black
		delete(nodeOf, cur.cell)

		for _, n := range m.Neighbors(cur.cell) {
			if m.Cells[n].Color == mapgraph.Black {
				continue
			}
			candidate := m.Cells[cur.cell].Distance + m.Cells[n].Weight
			if candidate >= m.Cells[n].Distance {
				continue
			}
			m.Cells[n].Distance = candidate
			m.Cells[n].Parent = cur.cell

			if node, exists := nodeOf[n]; exists {
				node.cost = candidate
				heap.Fix(node.HeapIndex())
			} else {
				m.Cells[n].Color = mapgraph.Gray
				node = &weightedNode{cell: n, cost: candidate}
				nodeOf[n] = node
				heap.Push(node)
			}
		}
	}
}
