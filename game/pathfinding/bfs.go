package pathfinding

import (
	"github.com/pnre/maze-engine/game/mapgraph"
	"github.com/pnre/maze-engine/internal/containers"
)

// RunBFS performs a standard colour-coded BFS from source over path
// cells, populating Parent/Distance/Color on every reached cell.
// Neighbours are visited in N, E, S, W order (mapgraph.Map.Neighbors).
func RunBFS(m *mapgraph.Map, source int) {
	m.ClearGraph(Infinity)

	m.Cells[source].Color = mapgraph.Gray
	m.Cells[source].Distance = 0

	q := containers.NewQueue[int]()
	q.Push(source)

	for !q.Empty() {
		cur, _ := q.Pop()
		for _, n := range m.Neighbors(cur) {
			if m.Cells[n].Color != mapgraph.White {
				continue
			}
			m.Cells[n].Color = mapgraph.Gray
			m.Cells[n].Parent = cur
			m.Cells[n].Distance = m.Cells[cur].Distance + 1
			q.Push(n)
		}
		m.Cells[cur].Color = mapgraph.Black
	}
}
