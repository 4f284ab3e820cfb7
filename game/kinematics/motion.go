package kinematics

import (
	"math"

	"github.com/pnre/maze-engine/game/eventbus"
	"github.com/pnre/maze-engine/game/mapgraph"
	"github.com/pnre/maze-engine/internal/geometry"
)

// CollisionThreshold is the minimum fractional rectangle overlap that
// counts as a crash.
const CollisionThreshold = 0.6

// cellIsPath reports whether loc is an in-bounds path cell; out of
// bounds reads as a wall.
func cellIsPath(m *mapgraph.Map, loc geometry.IntPoint) bool {
	cell, ok := m.At(loc.X, loc.Y)
	return ok && cell.IsPath()
}

// onBorders reports whether loc lies on the map's outermost row or
// column — border walls are never breakable.
func onBorders(m *mapgraph.Map, loc geometry.IntPoint) bool {
	return loc.X == 0 || loc.Y == 0 || loc.X == m.Width-1 || loc.Y == m.Height-1
}

// Speed returns the character's current speed: the configured base
// modified by the weight of the cell it stands on.
func (c *Character) Speed() float64 {
	base := c.FloatConfig(KeySpeed)

	cell, ok := c.Map.At(c.Location.X, c.Location.Y)
	if !ok {
		return base
	}

	switch w := cell.Weight; {
	case w == mapgraph.DefaultWeight:
		return base
	case w < mapgraph.DefaultWeight:
		return base + float64(mapgraph.DefaultWeight-w)*1.5
	default:
		return base / (float64(w-mapgraph.DefaultWeight) * 1.5)
	}
}

// UpdateDirectionAndLastPosition reconciles the buffered turn with the
// active direction and arms a fresh motion segment when the previous
// one completed.
func (c *Character) UpdateDirectionAndLastPosition() {
	if c.NextDirection == c.Direction {
		c.NextDirection = geometry.DirNone
	} else if c.Direction == geometry.DirNone {
		c.Direction = c.NextDirection
	}

	if c.LastPosition.IsNull() {
		c.LastPosition = c.Position
		c.Ratio = 0
	}
}

// MoveToCell advances the interpolation ratio by one tick's worth of
// speed and lerps the position from the segment origin toward dest.
func (c *Character) MoveToCell(ctx *Context, dest geometry.Point) {
	c.Ratio += c.Speed() * ctx.TickPeriod
	c.Ratio = math.Min(1, math.Max(0, c.Ratio))

	c.Position = c.LastPosition.Lerp(dest, c.Ratio)
}

// Turn honours a buffered turn request: a reverse immediately, a 90°
// turn only once the character has crossed into a new cell and the
// candidate neighbour is enterable. On commit the position snaps to
// the new cell and then advances one full cell along the new direction
// so its first segment is not a partial one.
func (c *Character) Turn() {
	if c.NextDirection == geometry.DirNone {
		return
	}

	if c.NextDirection == c.Direction.Opposite() {
		c.commitNextDirection()
		return
	}

	newPoint := c.Location
	if c.Direction == geometry.DirEast || c.Direction == geometry.DirSouth {
		newPoint = PositionToLocation(c.Position)
	}

	cellToCheck := geometry.IntPoint{
		X: newPoint.X + c.NextDirection.Offset().X,
		Y: newPoint.Y + c.NextDirection.Offset().Y,
	}

	horizontal := c.Direction == geometry.DirWest || c.Direction == geometry.DirEast
	crossed := (horizontal && c.Location.X != int(math.Floor(c.Position.X/CellSize.Width))) ||
		(!horizontal && c.Location.Y != int(math.Floor(c.Position.Y/CellSize.Height)))
	if !crossed {
		return
	}

	breaksWalls := c.BoolConfig(KeyBreaksWalls)

	if cellIsPath(c.Map, cellToCheck) || (breaksWalls && !onBorders(c.Map, cellToCheck)) {
		committed := c.NextDirection
		c.commitNextDirection()

		c.Position = LocationToPosition(newPoint)
		off := committed.Offset()
		c.Position.X += float64(off.X) * CellSize.Width
		c.Position.Y += float64(off.Y) * CellSize.Height
	}
}

// WallCheck stops the character when the cell it is entering is a wall:
// a wall-breaker converts the wall to path (and the map re-connects the
// cell incrementally), anyone else snaps back to the last valid path
// cell along the motion axis. Off-map movements likewise snap back.
func (c *Character) WallCheck(ctx *Context) {
	location := c.Location
	point := PositionToLocation(c.Position)

	if c.Direction == geometry.DirEast {
		location.X = point.X
		point.X++
	}
	if c.Direction == geometry.DirSouth {
		location.Y = point.Y
		point.Y++
	}

	dir := c.Direction
	if c.NextDirection != geometry.DirNone {
		dir = c.NextDirection
	}
	cellToCheck := geometry.IntPoint{
		X: c.Location.X + dir.Offset().X,
		Y: c.Location.Y + dir.Offset().Y,
	}

	breaksWalls := c.BoolConfig(KeyBreaksWalls)

	if cell, ok := c.Map.At(point.X, point.Y); ok && !cell.IsPath() {

		if breaksWalls && !onBorders(c.Map, point) {
			cell.Type = mapgraph.Path
			ctx.playSFX(SampleWall)
			c.Map.ConnectCell(c.Map.Index(point.X, point.Y), true)
			return
		}

		c.Position = LocationToPosition(location)
		if c.IsUser {
			c.LastPosition = geometry.Null
		}

		if c.NextDirection != geometry.DirNone &&
			(cellIsPath(c.Map, cellToCheck) || breaksWalls) {
			c.commitNextDirection()
		}

	} else if !ok {

		if cellIsPath(c.Map, location) {
			c.Position = LocationToPosition(location)
		} else {
			c.Position = c.LastPosition
		}
		if c.IsUser {
			c.LastPosition = geometry.Null
		}

	}
}

// TorusWrap warps a character crossing the map's outer extents to the
// opposite edge, provided the landing cell is off the start/end band;
// the warped character fades back in from alpha 0.
func (c *Character) TorusWrap() {
	m := c.Map
	location := PositionToLocation(c.Position)

	if !cellIsPath(m, location) {
		return
	}
	startLoc := m.Cells[m.Start].Location
	endLoc := m.Cells[m.End].Location
	if location == startLoc || location == endLoc {
		return
	}

	width := float64(m.Width-1) * CellSize.Width
	height := float64(m.Height-1) * CellSize.Height

	candidate := c.Position
	changed := false

	switch {
	case candidate.X <= 0:
		candidate.X = width
		changed = true
	case candidate.X >= width:
		candidate.X = 0
		changed = true
	case candidate.Y <= 0:
		candidate.Y = height
		changed = true
	case candidate.Y >= height:
		candidate.Y = 0
		changed = true
	}
	if !changed {
		return
	}

	landing := PositionToLocation(candidate)
	if m.OnStartEndBand(landing.X, landing.Y) {
		return
	}
	if cellIsPath(m, landing) {
		c.SetLocation(landing, false)
		c.SetAlpha(0)
	}
}

// Die takes a life from the character and ends the game when none
// remain.
func (c *Character) Die(ctx *Context) {
	c.Lives--
	if c.Lives <= 0 {
		ctx.Bus.Publish(eventbus.GameLost, nil)
	}
}

// CollisionCheck resolves crashes between c and every other character
// on the same map whose bounding rectangle overlaps c's by at least
// the collision threshold.
func (c *Character) CollisionCheck(ctx *Context) {
	ignoresA := c.BoolConfig(KeyIgnoresCollisions)
	rectA := geometry.RectMake(c.Position.X, c.Position.Y, CellSize.Width, CellSize.Height)

	for _, other := range ctx.Characters() {
		if other == c || other.Map != c.Map || !other.Located() {
			continue
		}

		ignoresB := other.BoolConfig(KeyIgnoresCollisions)
		if ignoresA && ignoresB {
			continue
		}

		rectB := geometry.RectMake(other.Position.X, other.Position.Y, CellSize.Width, CellSize.Height)
		if rectA.IntersectionFraction(rectB) < CollisionThreshold {
			continue
		}

		if !ignoresA && c.IsUser {
			c.Die(ctx)
		} else if !ignoresB && other.IsUser {
			other.Die(ctx)
		}

		ctx.playSFX(SampleCrash)

		switch {
		case ignoresA && !ignoresB:
			other.SetRandomPosition(ctx)
			other.SetAlpha(0)
		case !ignoresA && ignoresB:
			c.SetRandomPosition(ctx)
			c.SetAlpha(0)
		default:
			c.SetRandomPosition(ctx)
			other.SetRandomPosition(ctx)
			c.SetAlpha(0)
			other.SetAlpha(0)
		}
	}
}

// Move finalises one motion tick: wrap, collisions, location update,
// power-up acquisition, walking-animation gating, and the end-cell
// check that advances maps or ends the level.
func (c *Character) Move(ctx *Context, lastPosition geometry.Point) {
	c.TorusWrap()
	c.CollisionCheck(ctx)

	c.Location = PositionToLocation(c.Position)

	if ctx.OnEnterCell != nil && c.Map.InBounds(c.Location.X, c.Location.Y) {
		ctx.OnEnterCell(ctx, c, c.Map.Index(c.Location.X, c.Location.Y))
	}

	anim := c.CurrentAnimation()
	if anim != nil && ctx.Scheduler != nil {
		if lastPosition != c.Position {
			ctx.Scheduler.Start(anim)
		} else {
			ctx.Scheduler.Stop(anim)
		}
	}

	endPos := LocationToPosition(c.Map.Cells[c.Map.End].Location)
	if c.Position == endPos {
		if anim != nil && ctx.Scheduler != nil {
			ctx.Scheduler.Stop(anim)
		}
		c.GotoNextMap(ctx)
	}
}

// GotoNextMap advances the character to its map's successor; on the
// last map of the level, LevelNext fires with the character as subject.
func (c *Character) GotoNextMap(ctx *Context) {
	next := c.Map.Next

	if next != nil {
		if c.IsUser {
			ctx.Bus.Publish(eventbus.MapNext, nil)
		} else {
			c.SetMap(next)
		}
		return
	}

	ctx.Bus.Publish(eventbus.LevelNext, c)
}

// UserController steers the user character from the buffered input
// direction the engine collected since the previous tick.
type UserController struct{}

// Control implements the user's per-tick motion; power-up trigger
// keys are handled by the engine's key handler, not here.
func (UserController) Control(ctx *Context, c *Character) {
	if !c.Located() {
		return
	}

	last := c.Position

	if ctx.InputDirection != geometry.DirNone {
		c.NextDirection = ctx.InputDirection
	}

	c.UpdateDirectionAndLastPosition()

	next := c.LastPosition
	off := c.Direction.Offset()
	next.X += float64(off.X) * CellSize.Width
	next.Y += float64(off.Y) * CellSize.Height

	c.MoveToCell(ctx, next)
	c.WallCheck(ctx)
	c.Turn()
	c.Move(ctx, last)

	if c.Position == next {
		c.LastPosition = geometry.Null
	}
}
