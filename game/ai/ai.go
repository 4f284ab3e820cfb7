// Package ai implements the opponents' decision layer: the chase/exit
// target-selection windows, the pluggable chasing strategies, the
// wander-toward-exit fallback, and the path-following controller that
// drives an AI character once per redraw tick.
package ai

import (
	"github.com/pnre/maze-engine/game/kinematics"
	"github.com/pnre/maze-engine/game/mapgraph"
	"github.com/pnre/maze-engine/game/pathfinding"
	"github.com/pnre/maze-engine/internal/containers"
	"github.com/pnre/maze-engine/internal/geometry"
)

// SetPathTo computes a fresh path from the character's location to
// target (using its configured pathfinding method) and installs it as
// the character's path stack, head = first cell to travel to. The
// character then starts following it.
func SetPathTo(ctx *kinematics.Context, c *kinematics.Character, target geometry.IntPoint) {
	m := c.Map
	if !m.InBounds(target.X, target.Y) {
		return
	}

	c.ClearPath()

	method := pathfinding.MethodByName(c.StringConfig(kinematics.KeyPathFindingMethod))
	source := m.Index(c.Location.X, c.Location.Y)
	path := pathfinding.Run(method, m, source, m.Index(target.X, target.Y))

	c.Path = containers.NewStack[int]()
	// Skip the source cell; push in reverse so pops come in travel
	// order.
	for i := len(path) - 1; i >= 1; i-- {
		c.Path.Push(path[i])
	}

	c.DecideDirectionAI()
}

// Chaser is a pluggable chasing strategy: TryChase reports whether it
// produced a path; a false return makes the caller fall back to direct
// pursuit.
type Chaser interface {
	TryChase(ctx *kinematics.Context, chaser, target *kinematics.Character) bool
}

// ChaserByName resolves a configuration string to a strategy,
// case-insensitively; nil when unset or unknown (direct pursuit).
func ChaserByName(name string) Chaser {
	switch lower(name) {
	case "predict_position":
		return PredictChaser{}
	case "trap":
		return TrapChaser{}
	default:
		return nil
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

// PredictChaser projects the target's current direction ahead a random
// 4-8 cells (stopping at the first wall) and path-finds to the
// projection; if the projection shares an axis with the chaser, or the
// chaser is within Manhattan distance 1 of the target, it aims at the
// target directly.
type PredictChaser struct{}

func (PredictChaser) TryChase(ctx *kinematics.Context, chaser, target *kinematics.Character) bool {
	if target.Direction == geometry.DirNone {
		return false
	}
	if chaser.Map != target.Map {
		return false
	}

	m := target.Map
	off := target.Direction.Offset()
	farthest := target.Location

	maxDistance := 4 + ctx.RNG.Intn(5)
	for {
		next := geometry.IntPoint{X: farthest.X + off.X, Y: farthest.Y + off.Y}
		if cell, ok := m.At(next.X, next.Y); !ok || !cell.IsPath() {
			break
		}
		farthest = next
		maxDistance--
		if maxDistance == 0 {
			break
		}
	}

	if farthest.X == chaser.Location.X || farthest.Y == chaser.Location.Y ||
		geometry.ManhattanDistance(chaser.Location, target.Location) <= 1 {
		farthest = target.Location
	}

	SetPathTo(ctx, chaser, farthest)
	return true
}

// TrapChaser coordinates with a third AI on the same map to cut the
// target off: pick one of three offsets at distance 2 ahead of the
// target, mirror the third character through it (2·P − third), and
// path-find there.
type TrapChaser struct{}

func (TrapChaser) TryChase(ctx *kinematics.Context, chaser, target *kinematics.Character) bool {
	var third *kinematics.Character
	for _, enemy := range ctx.Enemies {
		if enemy != chaser && enemy.Map == chaser.Map {
			third = enemy
			break
		}
	}
	if third == nil {
		return false
	}

	var offsets [3]geometry.IntPoint
	switch target.Direction {
	case geometry.DirNorth:
		offsets = [3]geometry.IntPoint{{X: -2, Y: -2}, {X: 2, Y: -2}, {X: 0, Y: -2}}
	case geometry.DirSouth:
		offsets = [3]geometry.IntPoint{{X: -2, Y: 2}, {X: 2, Y: 2}, {X: 0, Y: 2}}
	case geometry.DirEast:
		offsets = [3]geometry.IntPoint{{X: 2, Y: 0}, {X: 2, Y: 2}, {X: 2, Y: -2}}
	case geometry.DirWest:
		offsets = [3]geometry.IntPoint{{X: -2, Y: 0}, {X: -2, Y: 2}, {X: -2, Y: -2}}
	default:
		return false
	}

	m := chaser.Map
	off := offsets[ctx.RNG.Intn(3)]
	pivot := geometry.IntPoint{X: target.Location.X + off.X, Y: target.Location.Y + off.Y}
	if !m.InBounds(pivot.X, pivot.Y) {
		return false
	}

	destination := geometry.IntPoint{
		X: 2*pivot.X - third.Location.X,
		Y: 2*pivot.Y - third.Location.Y,
	}
	if !m.InBounds(destination.X, destination.Y) {
		return false
	}

	// If the mirrored point is a wall, random-walk outwards until a
	// path cell turns up.
	distance := 1
	for {
		if cell, ok := m.At(destination.X, destination.Y); ok && cell.IsPath() {
			break
		}
		step := geometry.Directions[ctx.RNG.Intn(4)].Offset()
		destination.X += step.X * distance
		destination.Y += step.Y * distance
		distance++
		if !m.InBounds(destination.X, destination.Y) {
			return false
		}
	}

	SetPathTo(ctx, chaser, destination)
	return true
}

// FindNearestPathLocation searches outward from source (8-connected
// ring by ring) for the nearest path cell; returns source itself when
// it already is one, or (IntPoint{}, false) when the map has none.
func FindNearestPathLocation(m *mapgraph.Map, source geometry.IntPoint) (geometry.IntPoint, bool) {
	if cell, ok := m.At(source.X, source.Y); ok && cell.IsPath() {
		return source, true
	}

	visited := map[geometry.IntPoint]bool{source: true}
	q := containers.NewQueue[geometry.IntPoint]()
	q.Push(source)

	for !q.Empty() {
		cur, _ := q.Pop()
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				next := geometry.IntPoint{X: cur.X + dx, Y: cur.Y + dy}
				if visited[next] || !m.InBounds(next.X, next.Y) {
					continue
				}
				visited[next] = true
				if m.Cells[m.Index(next.X, next.Y)].IsPath() {
					return next, true
				}
				q.Push(next)
			}
		}
	}

	return geometry.IntPoint{}, false
}
