// Package kinematics implements character state and motion: continuous
// sub-cell interpolation between grid cells, the turn-at-junction rule,
// wall interaction (snap-back or wall-breaking), toroidal wrap, and
// pairwise collision resolution.
package kinematics

import (
	"github.com/google/uuid"

	"github.com/pnre/maze-engine/game/animation"
	"github.com/pnre/maze-engine/game/config"
	"github.com/pnre/maze-engine/game/mapgraph"
	"github.com/pnre/maze-engine/internal/containers"
	"github.com/pnre/maze-engine/internal/geometry"
)

// CellSize is the pixel size of one grid cell. Character positions are
// top-left pixel coordinates in map space.
var CellSize = geometry.Size{Width: 32, Height: 32}

// Character configuration keys consumed by the engine. Power-up effect
// dictionaries write these same keys as overrides.
const (
	KeySpeed              = "speed"
	KeyAlpha              = "alpha"
	KeyBreaksWalls        = "breaks_walls"
	KeyIgnoresCollisions  = "ignores_collisions"
	KeyLives              = "lives"
	KeyChaseRectSize      = "chase_rect_size"
	KeyExitSearchRectSize = "exit_search_rect_size"
	KeyChaseUser          = "chase_user"
	KeyVisibleAreaSize    = "visible_area_size"
	KeyPathFindingMethod  = "path_finding_method"
	KeyChasingMethod      = "chasing_method"
)

// DefaultSpeed is the base speed used when the configuration carries
// none.
const DefaultSpeed = 3.5

// DefaultLives is the user's starting lives when unconfigured.
const DefaultLives = 5

// MaxLives bounds the lives counter.
const MaxLives = 255

// InfiniteAreaSize marks a visible area with no fog.
var InfiniteAreaSize = geometry.IntSize{Width: 1 << 30, Height: 1 << 30}

// Controller decides a character's movements once per redraw tick.
// The user controller reads buffered input from the Context; AI
// controllers live in game/ai.
type Controller interface {
	Control(ctx *Context, c *Character)
}

// Character is one moving entity: the user or an AI
// opponent.
type Character struct {
	ID     string
	IsUser bool

	// Position is the continuous top-left pixel position; LastPosition
	// is the segment origin, Null while a new segment is being armed.
	Position     geometry.Point
	LastPosition geometry.Point

	// Location is the integer grid coordinate (floor of position over
	// cell size); located is false until the character is placed.
	Location geometry.IntPoint
	located  bool

	Direction     geometry.Direction
	NextDirection geometry.Direction

	// Ratio is the interpolation progress of the current segment.
	Ratio float64

	Map *mapgraph.Map

	// Path is the stack of cell indices the character is following
	// (AI route, or the user's projected route display).
	Path *containers.Stack[int]

	Lives int

	Config        config.Dictionary
	DefaultConfig config.Dictionary

	Controller Controller

	// Animations holds the four directional walking animations,
	// indexed N, E, S, W.
	Animations [4]*animation.Animation
}

// New creates a character from its configuration dictionary, filling in
// every missing key with its documented default and snapshotting the
// result as the pristine default config.
func New(isUser bool, cfg config.Dictionary) *Character {
	c := &Character{
		ID:            uuid.NewString(),
		IsUser:        isUser,
		Position:      geometry.Null,
		LastPosition:  geometry.Null,
		Direction:     geometry.DirNone,
		NextDirection: geometry.DirNone,
		Config:        cfg.Clone(),
	}

	if _, ok := c.Config.Get(KeySpeed); !ok {
		c.Config.Set(KeySpeed, config.FloatValue(DefaultSpeed))
	}
	if _, ok := c.Config.Get(KeyAlpha); !ok {
		c.Config.Set(KeyAlpha, config.FloatValue(1))
	}
	if _, ok := c.Config.Get(KeyBreaksWalls); !ok {
		c.Config.Set(KeyBreaksWalls, config.IntValue(0))
	}
	if _, ok := c.Config.Get(KeyIgnoresCollisions); !ok {
		c.Config.Set(KeyIgnoresCollisions, config.IntValue(0))
	}

	if !isUser {
		if v, ok := c.Config.Get(KeyChaseRectSize); !ok || sizeIsZero(v) {
			c.Config.Set(KeyChaseRectSize, config.SizeValue(geometry.IntSize{Width: 2, Height: 2}))
		}
		if v, ok := c.Config.Get(KeyExitSearchRectSize); !ok || sizeIsZero(v) {
			c.Config.Set(KeyExitSearchRectSize, config.SizeValue(geometry.IntSize{Width: 2, Height: 2}))
		}
		if _, ok := c.Config.Get(KeyChaseUser); !ok {
			c.Config.Set(KeyChaseUser, config.IntValue(1))
		}
	} else {
		if v, ok := c.Config.Get(KeyVisibleAreaSize); !ok || sizeIsZero(v) {
			c.Config.Set(KeyVisibleAreaSize, config.SizeValue(InfiniteAreaSize))
		}
		lives := int64(DefaultLives)
		if v, ok := c.Config.Get(KeyLives); ok && v.Kind == config.KindInt && v.Int >= 0 && v.Int <= MaxLives {
			lives = v.Int
		}
		c.Lives = int(lives)
	}

	c.DefaultConfig = c.Config.Snapshot()

	dirKeys := [4]string{"walk-n", "walk-e", "walk-s", "walk-w"}
	for i := range c.Animations {
		c.Animations[i] = animation.New(animation.Forever, spriteFrames, nil, c.ID+"-"+dirKeys[i])
	}

	return c
}

// spriteFrames is the walking-cycle frame count per facing direction
// (sprite sheets are 4 rows of 3 columns).
const spriteFrames = 3

func sizeIsZero(v config.Value) bool {
	return v.Kind != config.KindSize || (v.Size.Width == 0 && v.Size.Height == 0)
}

// Located reports whether the character has been placed on a map.
func (c *Character) Located() bool {
	return c.located
}

// Alpha returns the character's current opacity from its live config.
func (c *Character) Alpha() float64 {
	if v, ok := c.Config.Get(KeyAlpha); ok && v.Kind == config.KindFloat {
		return v.Float
	}
	return 0
}

// SetAlpha writes the character's opacity into its live config.
func (c *Character) SetAlpha(alpha float64) {
	c.Config.Set(KeyAlpha, config.FloatValue(alpha))
}

// BoolConfig reads a boolean flag from the live config.
func (c *Character) BoolConfig(key string) bool {
	v, ok := c.Config.Get(key)
	return ok && v.AsBool()
}

// FloatConfig reads a float from the live config, zero when absent.
func (c *Character) FloatConfig(key string) float64 {
	if v, ok := c.Config.Get(key); ok {
		switch v.Kind {
		case config.KindFloat:
			return v.Float
		case config.KindInt:
			return float64(v.Int)
		}
	}
	return 0
}

// SizeConfig reads a cell-denominated size from the live config.
func (c *Character) SizeConfig(key string) geometry.IntSize {
	if v, ok := c.Config.Get(key); ok && v.Kind == config.KindSize {
		return v.Size
	}
	return geometry.IntSize{}
}

// StringConfig reads a string from the live config, empty when absent.
func (c *Character) StringConfig(key string) string {
	if v, ok := c.Config.Get(key); ok && v.Kind == config.KindString {
		return v.Str
	}
	return ""
}

// ClearPath drops the path the character was following and forgets the
// buffered turn derived from it.
func (c *Character) ClearPath() {
	c.Path = nil
	c.NextDirection = geometry.DirNone
}

// LocationToPosition converts a grid location to its top-left pixel
// position.
func LocationToPosition(loc geometry.IntPoint) geometry.Point {
	return geometry.Point{
		X: float64(loc.X) * CellSize.Width,
		Y: float64(loc.Y) * CellSize.Height,
	}
}

// PositionToLocation converts a continuous position to the grid
// location containing it.
func PositionToLocation(pos geometry.Point) geometry.IntPoint {
	return geometry.IntPoint{
		X: int(pos.X / CellSize.Width),
		Y: int(pos.Y / CellSize.Height),
	}
}

// SetLocation teleports the character to a grid cell: the path being
// followed loses validity, position and last position snap to the cell
// origin, and the facing is optionally cleared.
func (c *Character) SetLocation(loc geometry.IntPoint, clearDirection bool) {
	c.ClearPath()

	c.Position = LocationToPosition(loc)
	c.Location = loc
	c.LastPosition = c.Position
	c.located = true
	c.Ratio = 0

	if clearDirection {
		c.Direction = geometry.DirNone
		c.NextDirection = geometry.DirNone
	}
}

// SetMap moves the character to a map, placed on its start cell.
func (c *Character) SetMap(m *mapgraph.Map) {
	c.Map = m
	c.SetLocation(m.Cells[m.Start].Location, true)
}

// DirectionTo returns the cardinal direction from the character's
// location toward loc, preferring the horizontal axis.
func (c *Character) DirectionTo(loc geometry.IntPoint) geometry.Direction {
	switch {
	case loc.X < c.Location.X:
		return geometry.DirWest
	case loc.X > c.Location.X:
		return geometry.DirEast
	case loc.Y < c.Location.Y:
		return geometry.DirNorth
	case loc.Y > c.Location.Y:
		return geometry.DirSouth
	default:
		return geometry.DirNone
	}
}

// commitNextDirection promotes the buffered turn to the active
// direction and nulls the segment origin so the next motion step arms
// a fresh segment.
func (c *Character) commitNextDirection() {
	if c.NextDirection == geometry.DirNone {
		return
	}
	c.Direction = c.NextDirection
	c.NextDirection = geometry.DirNone
	c.LastPosition = geometry.Null
}

// DecideDirectionUser points a freshly placed user down the start
// cell's single corridor.
func (c *Character) DecideDirectionUser() {
	start := c.Map.CellAt(c.Map.Start)
	for _, d := range geometry.Directions {
		if n := start.NeighborIndex(d); n != mapgraph.NoIndex {
			c.NextDirection = c.DirectionTo(c.Map.Cells[n].Location)
			return
		}
	}
}

// DecideDirectionAI buffers and immediately commits the turn toward
// the next cell of the path stack.
func (c *Character) DecideDirectionAI() {
	if c.Path == nil {
		return
	}
	next, ok := c.Path.Peek()
	if !ok {
		return
	}
	c.NextDirection = c.DirectionTo(c.Map.Cells[next].Location)
	c.commitNextDirection()
}

// CurrentAnimation returns the directional animation matching the
// character's facing, nil while it has none.
func (c *Character) CurrentAnimation() *animation.Animation {
	switch c.Direction {
	case geometry.DirNorth:
		return c.Animations[0]
	case geometry.DirEast:
		return c.Animations[1]
	case geometry.DirSouth:
		return c.Animations[2]
	case geometry.DirWest:
		return c.Animations[3]
	default:
		return nil
	}
}

// StopAnimations halts all four directional animations.
func (c *Character) StopAnimations(s *animation.Scheduler) {
	for _, a := range c.Animations {
		s.Stop(a)
	}
}

// RandomPathCell returns a uniformly random path cell of m that is not
// the exit cell.
func RandomPathCell(rng Rand, m *mapgraph.Map) int {
	var paths []int
	for i := range m.Cells {
		if m.Cells[i].IsPath() && i != m.End {
			paths = append(paths, i)
		}
	}
	if len(paths) == 0 {
		return mapgraph.NoIndex
	}
	return paths[rng.Intn(len(paths))]
}

// SetRandomPosition teleports the character to a random path cell and
// re-arms its steering.
func (c *Character) SetRandomPosition(ctx *Context) {
	idx := RandomPathCell(ctx.RNG, c.Map)
	if idx == mapgraph.NoIndex {
		return
	}
	c.SetLocation(c.Map.Cells[idx].Location, true)

	if c.IsUser {
		c.DecideDirectionUser()
	} else {
		c.DecideDirectionAI()
	}
}
