package ai

import (
	"github.com/pnre/maze-engine/game/kinematics"
	"github.com/pnre/maze-engine/internal/geometry"
)

// Controller drives one AI character per redraw tick: follow the
// current path, and at each pop of the path stack re-evaluate whether
// a chase or exit target has become visible.
type Controller struct{}

// rectCentered builds one of the two target-selection windows: a
// rectangle of size cells centred on the character's position, clamped
// to the map.
func rectCentered(c *kinematics.Character, size geometry.IntSize) geometry.Rect {
	pixel := geometry.Size{
		Width:  float64(size.Width) * kinematics.CellSize.Width,
		Height: float64(size.Height) * kinematics.CellSize.Height,
	}
	bounds := c.Map.Bounds(kinematics.CellSize)
	return geometry.CenteredOn(c.Position, pixel).Clamp(bounds)
}

// rectsCheck runs the target-selection window test and commits to a
// chase or exit path when one applies. Returns false when neither did
// (the character should wander).
func rectsCheck(ctx *kinematics.Context, c *kinematics.Character) bool {
	chaseRect := rectCentered(c, c.SizeConfig(kinematics.KeyChaseRectSize))
	exitRect := rectCentered(c, c.SizeConfig(kinematics.KeyExitSearchRectSize))

	chaser := ChaserByName(c.StringConfig(kinematics.KeyChasingMethod))
	user := ctx.User

	exitPos := kinematics.LocationToPosition(c.Map.Cells[c.Map.End].Location)

	userVisible := user != nil && c.Map == user.Map && chaseRect.Contains(user.Position)
	exitVisible := exitRect.Contains(exitPos)

	chase := func() {
		if chaser == nil || !chaser.TryChase(ctx, c, user) {
			SetPathTo(ctx, c, user.Location)
		}
	}
	goExit := func() {
		SetPathTo(ctx, c, c.Map.Cells[c.Map.End].Location)
	}

	if c.BoolConfig(kinematics.KeyChaseUser) {
		switch {
		case userVisible:
			chase()
		case exitVisible:
			goExit()
		default:
			return false
		}
	} else {
		switch {
		case exitVisible:
			goExit()
		case userVisible:
			chase()
		default:
			return false
		}
	}

	return true
}

// wander aims the character at the corner of its exit-search window
// nearest the exit: clamp that corner to a valid map cell by random
// cardinal walk, search outward for the nearest path cell, and
// path-find to it.
func wander(ctx *kinematics.Context, c *kinematics.Character) {
	exitRect := rectCentered(c, c.SizeConfig(kinematics.KeyExitSearchRectSize))
	exitPos := kinematics.LocationToPosition(c.Map.Cells[c.Map.End].Location)

	corner := exitRect.ClosestCorner(exitPos)
	candidate := kinematics.PositionToLocation(corner)

	for !c.Map.InBounds(candidate.X, candidate.Y) && candidate != c.Location {
		step := geometry.Directions[ctx.RNG.Intn(4)].Offset()
		candidate = geometry.IntPoint{X: candidate.X + step.X, Y: candidate.Y + step.Y}
	}

	nearest, ok := FindNearestPathLocation(c.Map, candidate)
	if ok && nearest != c.Location {
		SetPathTo(ctx, c, nearest)
		return
	}

	c.DecideDirectionAI()
}

// Control implements kinematics.Controller.
func (Controller) Control(ctx *kinematics.Context, c *kinematics.Character) {
	if !c.Located() {
		return
	}

	// The previous path was followed to its last cell.
	if c.Path != nil && c.Path.Empty() {
		c.ClearPath()
	}

	if c.Path == nil {
		if !rectsCheck(ctx, c) {
			wander(ctx, c)
		}
		return
	}

	next, ok := c.Path.Peek()
	if !ok {
		return
	}

	last := c.Position

	c.UpdateDirectionAndLastPosition()
	c.MoveToCell(ctx, kinematics.LocationToPosition(c.Map.Cells[next].Location))
	c.WallCheck(ctx)
	c.Move(ctx, last)

	// Reached the next cell of the path: pop it, then re-evaluate
	// whether a better target has become visible.
	if c.Ratio >= 1 {
		if c.Path != nil {
			c.Path.Pop()
		}
		if c.Path != nil && !rectsCheck(ctx, c) {
			c.DecideDirectionAI()
			c.LastPosition = geometry.Null
		}
	}
}
