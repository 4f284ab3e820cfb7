package pathfinding

import (
	"github.com/pnre/maze-engine/game/mapgraph"
	"github.com/pnre/maze-engine/internal/containers"
)

// ReconstructPath walks parent links from target back to source, pushing
// each cell onto a LIFO stack, then pops the whole stack so the caller
// receives cells in travel order: source, ..., target. Returns nil if
// target was never reached (its Parent chain does not lead to source
// and it is not itself the source).
func ReconstructPath(m *mapgraph.Map, source, target int) []int {
	if source == target {
		return []int{source}
	}

	stack := containers.NewStack[int]()
	cur := target
	for {
		stack.Push(cur)
		if cur == source {
			break
		}
		parent := m.Cells[cur].Parent
		if parent == mapgraph.NoIndex {
			return nil // target unreachable from source
		}
		cur = parent
	}

	path := make([]int, 0, stack.Len())
	for !stack.Empty() {
		v, _ := stack.Pop()
		path = append(path, v)
	}
	return path
}
