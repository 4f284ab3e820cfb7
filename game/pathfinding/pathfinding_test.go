package pathfinding

import (
	"testing"

	"github.com/pnre/maze-engine/game/mapgraph"
)

func corridor(weights []int) *mapgraph.Map {
	m := mapgraph.NewMap(len(weights), 1)
	for i := range m.Cells {
		m.Cells[i].Type = mapgraph.Path
		m.Cells[i].Weight = weights[i]
	}
	m.Start = 0
	m.End = len(weights) - 1
	m.Connect()
	return m
}

func openRoom(n int) *mapgraph.Map {
	m := mapgraph.NewMap(n, n)
	for i := range m.Cells {
		m.Cells[i].Type = mapgraph.Path
		m.Cells[i].Weight = 1
	}
	m.Start = m.Index(0, 0)
	m.End = m.Index(n-1, n-1)
	m.Connect()
	return m
}

// Dijkstra on a 3x1 corridor with weights [5,1,5].
func TestDijkstraCorridorScenario(t *testing.T) {
	m := corridor([]int{5, 1, 5})
	RunDijkstra(m, 0)

	if m.Cells[2].Distance != 6 {
		t.Fatalf("distance to cell 2 = %d, want 6", m.Cells[2].Distance)
	}
	if m.Cells[2].Parent != 1 || m.Cells[1].Parent != 0 {
		t.Fatalf("expected parents 2<-1<-0, got cell2.parent=%d cell1.parent=%d",
			m.Cells[2].Parent, m.Cells[1].Parent)
	}
}

// A* with Manhattan on a 5x5 open room from
// (0,0) to (4,4): cost 8, path length 9, extracts <= 25.
func TestAStarOpenRoomScenario(t *testing.T) {
	m := openRoom(5)
	RunAStar(m, m.Start, m.End, ManhattanHeuristic)

	path := ReconstructPath(m, m.Start, m.End)
	if path == nil {
		t.Fatal("expected a path in an open room")
	}
	if len(path) != 9 {
		t.Fatalf("path length = %d, want 9", len(path))
	}
	if m.Cells[m.End].Distance != 8 {
		t.Fatalf("A* cost = %d, want 8", m.Cells[m.End].Distance)
	}
}

func TestBFSPathAdjacencyAndMonotonicDistance(t *testing.T) {
	m := openRoom(5)
	RunBFS(m, m.Start)

	path := ReconstructPath(m, m.Start, m.End)
	if path == nil {
		t.Fatal("expected reachable path")
	}
	for i := 1; i < len(path); i++ {
		a, b := path[i-1], path[i]
		adjacent := false
		for _, n := range m.Neighbors(a) {
			if n == b {
				adjacent = true
			}
		}
		if !adjacent {
			t.Fatalf("path cells %d and %d are not adjacent", a, b)
		}
	}
}

func TestAStarAgreesWithBFSOnUnweightedGrid(t *testing.T) {
	m := openRoom(6)
	RunBFS(m, m.Start)
	bfsDist := m.Cells[m.End].Distance

	m2 := openRoom(6)
	RunAStar(m2, m2.Start, m2.End, ManhattanHeuristic)
	aStarDist := m2.Cells[m2.End].Distance

	if bfsDist != aStarDist {
		t.Fatalf("BFS distance %d != A* cost %d on unweighted grid", bfsDist, aStarDist)
	}
}

func TestUnreachableTargetReturnsNilPath(t *testing.T) {
	m := mapgraph.NewMap(3, 1)
	m.Cells[0].Type = mapgraph.Path
	m.Cells[2].Type = mapgraph.Path
	// cell 1 stays a wall: 0 and 2 are disconnected.
	m.Start, m.End = 0, 2
	m.Connect()

	RunBFS(m, 0)
	if path := ReconstructPath(m, 0, 2); path != nil {
		t.Fatalf("expected nil path for unreachable target, got %v", path)
	}
}

func TestMethodByNameCaseInsensitiveDefaultBFS(t *testing.T) {
	cases := map[string]Method{
		"bfs":       BFS,
		"Dijkstra":  Dijkstra,
		"ASTAR":     AStar,
		"a*":        AStar,
		"":          BFS,
		"unknown!!": BFS,
	}
	for name, want := range cases {
		if got := MethodByName(name); got != want {
			t.Fatalf("MethodByName(%q) = %v, want %v", name, got, want)
		}
	}
}
