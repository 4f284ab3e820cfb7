package kinematics

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pnre/maze-engine/game/animation"
	"github.com/pnre/maze-engine/game/config"
	"github.com/pnre/maze-engine/game/eventbus"
	"github.com/pnre/maze-engine/game/mapgraph"
	"github.com/pnre/maze-engine/internal/geometry"
)

// openRoom builds a w×h map of path cells with start at (0, h/2) and
// end at (w-1, h/2), connected.
func openRoom(w, h int) *mapgraph.Map {
	m := mapgraph.NewMap(w, h)
	for i := range m.Cells {
		m.Cells[i].Type = mapgraph.Path
	}
	m.Start = m.Index(0, h/2)
	m.End = m.Index(w-1, h/2)
	m.Connect()
	return m
}

func testContext(user *Character, enemies ...*Character) *Context {
	bus := eventbus.New()
	return &Context{
		Bus:        bus,
		Scheduler:  animation.NewScheduler(bus),
		RNG:        rand.New(rand.NewSource(7)),
		TickPeriod: 1.0 / 60,
		User:       user,
		Enemies:    enemies,
	}
}

func TestNewCharacterDefaults(t *testing.T) {
	user := New(true, config.NewDictionary())

	require.InDelta(t, DefaultSpeed, user.FloatConfig(KeySpeed), 1e-9)
	require.InDelta(t, 1.0, user.Alpha(), 1e-9)
	require.False(t, user.BoolConfig(KeyBreaksWalls))
	require.False(t, user.BoolConfig(KeyIgnoresCollisions))
	require.Equal(t, DefaultLives, user.Lives)
	require.Equal(t, InfiniteAreaSize, user.SizeConfig(KeyVisibleAreaSize))

	enemy := New(false, config.NewDictionary())
	require.Equal(t, geometry.IntSize{Width: 2, Height: 2}, enemy.SizeConfig(KeyChaseRectSize))
	require.Equal(t, geometry.IntSize{Width: 2, Height: 2}, enemy.SizeConfig(KeyExitSearchRectSize))
	require.True(t, enemy.BoolConfig(KeyChaseUser))

	// The default snapshot is an independent deep copy.
	user.Config.Set(KeySpeed, config.FloatValue(99))
	v, _ := user.DefaultConfig.Get(KeySpeed)
	require.InDelta(t, DefaultSpeed, v.Float, 1e-9)
}

func TestLivesClampedFromConfig(t *testing.T) {
	cfg := config.NewDictionary()
	cfg.Set(KeyLives, config.IntValue(300))
	user := New(true, cfg)
	require.Equal(t, DefaultLives, user.Lives, "out-of-range lives falls back to the default")

	cfg2 := config.NewDictionary()
	cfg2.Set(KeyLives, config.IntValue(2))
	require.Equal(t, 2, New(true, cfg2).Lives)
}

func TestSpeedFollowsCellWeight(t *testing.T) {
	m := openRoom(5, 5)
	c := New(true, config.NewDictionary())
	c.SetMap(m)

	cell, _ := m.At(c.Location.X, c.Location.Y)

	cell.Weight = mapgraph.DefaultWeight
	require.InDelta(t, 3.5, c.Speed(), 1e-9)

	cell.Weight = 3
	require.InDelta(t, 3.5+2*1.5, c.Speed(), 1e-9, "lighter cells are faster")

	cell.Weight = 9
	require.InDelta(t, 3.5/(4*1.5), c.Speed(), 1e-9, "heavier cells are slower")
}

func TestCollisionThresholds(t *testing.T) {
	cases := []struct {
		name   string
		bx     float64
		crash  bool
	}{
		{"no overlap", 20, false},
		{"40 percent overlap", 19, false},
		{"62.5 percent overlap", 12, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := openRoom(9, 9)

			user := New(true, config.NewDictionary())
			user.SetMap(m)
			user.SetLocation(geometry.IntPoint{X: 0, Y: 0}, true)
			user.Position = geometry.Point{X: 0, Y: 0}

			enemy := New(false, config.NewDictionary())
			enemy.SetMap(m)
			enemy.SetLocation(geometry.IntPoint{X: 0, Y: 0}, true)
			enemy.Position = geometry.Point{X: tc.bx, Y: 0}

			ctx := testContext(user, enemy)
			livesBefore := user.Lives

			user.CollisionCheck(ctx)

			if tc.crash {
				require.Equal(t, livesBefore-1, user.Lives, "user loses a life on crash")
				require.Zero(t, user.Alpha(), "teleported characters fade back in")
				require.Zero(t, enemy.Alpha())
			} else {
				require.Equal(t, livesBefore, user.Lives)
				require.Equal(t, geometry.Point{X: tc.bx, Y: 0}, enemy.Position)
			}
		})
	}
}

func TestCollisionIgnoredByBoth(t *testing.T) {
	m := openRoom(9, 9)

	user := New(true, config.NewDictionary())
	user.Config.Set(KeyIgnoresCollisions, config.IntValue(1))
	user.SetMap(m)
	user.Position = geometry.Point{X: 0, Y: 0}

	enemy := New(false, config.NewDictionary())
	enemy.Config.Set(KeyIgnoresCollisions, config.IntValue(1))
	enemy.SetMap(m)
	enemy.Position = geometry.Point{X: 1, Y: 0}

	ctx := testContext(user, enemy)
	user.CollisionCheck(ctx)

	require.Equal(t, geometry.Point{X: 0, Y: 0}, user.Position)
	require.Equal(t, geometry.Point{X: 1, Y: 0}, enemy.Position)
	require.Equal(t, DefaultLives, user.Lives)
}

func TestCollisionOneIgnoresTeleportsOnlyOther(t *testing.T) {
	m := openRoom(9, 9)

	user := New(true, config.NewDictionary())
	user.Config.Set(KeyIgnoresCollisions, config.IntValue(1))
	user.SetMap(m)
	user.Position = geometry.Point{X: 0, Y: 0}

	enemy := New(false, config.NewDictionary())
	enemy.SetMap(m)
	enemy.SetLocation(geometry.IntPoint{X: 0, Y: 0}, true)
	enemy.Position = geometry.Point{X: 4, Y: 0}

	ctx := testContext(user, enemy)
	user.CollisionCheck(ctx)

	require.Equal(t, geometry.Point{X: 0, Y: 0}, user.Position, "the ignoring character stays")
	require.NotEqual(t, geometry.Point{X: 4, Y: 0}, enemy.Position, "the other is teleported")
	require.Zero(t, enemy.Alpha())
	require.Equal(t, DefaultLives, user.Lives, "no life lost when the user ignores collisions")
}

func TestWallSnapBack(t *testing.T) {
	// 3-wide corridor with walls around: character walks east into the
	// wall at x=3 and must snap back to the last path cell.
	m := mapgraph.NewMap(5, 3)
	for x := 1; x <= 3; x++ {
		m.Cells[m.Index(x, 1)].Type = mapgraph.Path
	}
	m.Cells[m.Index(3, 1)].Type = mapgraph.Wall
	m.Start = m.Index(1, 1)
	m.End = m.Index(2, 1)
	m.Connect()

	c := New(true, config.NewDictionary())
	c.Map = m
	c.SetLocation(geometry.IntPoint{X: 2, Y: 1}, true)
	c.Direction = geometry.DirEast

	ctx := testContext(c)

	// Push the position into the wall cell's column.
	c.Position.X += CellSize.Width * 0.5
	c.WallCheck(ctx)

	require.Equal(t, LocationToPosition(geometry.IntPoint{X: 2, Y: 1}), c.Position,
		"the character snaps back to the last valid path cell")
}

func TestWallBreakingConvertsWallAndReconnects(t *testing.T) {
	m := mapgraph.NewMap(5, 5)
	for x := 1; x <= 3; x++ {
		for y := 1; y <= 3; y++ {
			m.Cells[m.Index(x, y)].Type = mapgraph.Path
		}
	}
	m.Cells[m.Index(2, 2)].Type = mapgraph.Wall
	m.Start = m.Index(1, 1)
	m.End = m.Index(3, 3)
	m.Connect()

	c := New(true, config.NewDictionary())
	c.Config.Set(KeyBreaksWalls, config.IntValue(1))
	c.Map = m
	c.SetLocation(geometry.IntPoint{X: 1, Y: 2}, true)
	c.Direction = geometry.DirEast

	var sfx []string
	ctx := testContext(c)
	ctx.PlaySFX = func(name string) { sfx = append(sfx, name) }

	c.Position.X += CellSize.Width * 0.5
	c.WallCheck(ctx)

	broken, _ := m.At(2, 2)
	require.True(t, broken.IsPath(), "the wall becomes a path cell")
	require.Equal(t, []string{SampleWall}, sfx)

	// Incremental reconnect installed symmetric adjacency.
	left, _ := m.At(1, 2)
	require.Equal(t, m.Index(2, 2), left.NeighborIndex(geometry.DirEast))
	require.Equal(t, m.Index(1, 2), broken.NeighborIndex(geometry.DirWest))
}

func TestBorderWallNeverBroken(t *testing.T) {
	m := mapgraph.NewMap(3, 3)
	m.Cells[m.Index(1, 1)].Type = mapgraph.Path
	m.Start = m.Index(1, 1)
	m.End = m.Index(1, 1)
	m.Connect()

	c := New(true, config.NewDictionary())
	c.Config.Set(KeyBreaksWalls, config.IntValue(1))
	c.Map = m
	c.SetLocation(geometry.IntPoint{X: 1, Y: 1}, true)
	c.Direction = geometry.DirEast

	ctx := testContext(c)
	c.Position.X += CellSize.Width * 0.5
	c.WallCheck(ctx)

	border, _ := m.At(2, 1)
	require.False(t, border.IsPath(), "border walls are not breakable")
	require.Equal(t, LocationToPosition(geometry.IntPoint{X: 1, Y: 1}), c.Position)
}

func TestTorusWrapPreservesAxisAndSkipsBand(t *testing.T) {
	// 7×7 all-path grid with entrance on the top edge at (2,0) and
	// exit on the bottom edge at (3,6), the start_on_x=false layout.
	m := mapgraph.NewMap(7, 7)
	for i := range m.Cells {
		m.Cells[i].Type = mapgraph.Path
	}
	m.Start = m.Index(2, 0)
	m.End = m.Index(3, 6)
	m.Connect()

	c := New(true, config.NewDictionary())
	c.Map = m
	c.SetLocation(geometry.IntPoint{X: 0, Y: 1}, true)
	c.Position = geometry.Point{X: 0, Y: 1 * CellSize.Height}
	c.Direction = geometry.DirWest

	c.TorusWrap()

	require.Equal(t, geometry.IntPoint{X: 6, Y: 1}, c.Location, "x wraps to the far edge")
	require.Equal(t, 1, c.Location.Y, "wrapping in x preserves y")
	require.Zero(t, c.Alpha(), "warped characters fade back in")

	// A crossing whose landing cell sits on the end column: no wrap.
	d := New(true, config.NewDictionary())
	d.Map = m
	d.SetLocation(geometry.IntPoint{X: 3, Y: 0}, true)
	d.Position = geometry.Point{X: 3 * CellSize.Width, Y: 0}

	d.TorusWrap()
	require.Equal(t, geometry.IntPoint{X: 3, Y: 0}, d.Location,
		"wrap never lands on the start/end column or row")
}

func TestTurnCommitsOnlyIntoPathCells(t *testing.T) {
	// Corridor east with a branch north at x=2.
	m := mapgraph.NewMap(5, 5)
	for x := 1; x <= 3; x++ {
		m.Cells[m.Index(x, 2)].Type = mapgraph.Path
	}
	m.Cells[m.Index(2, 1)].Type = mapgraph.Path
	m.Start = m.Index(1, 2)
	m.End = m.Index(3, 2)
	m.Connect()

	c := New(true, config.NewDictionary())
	c.Map = m
	c.SetLocation(geometry.IntPoint{X: 1, Y: 2}, true)
	c.Direction = geometry.DirEast
	c.NextDirection = geometry.DirNorth

	// Not yet into a new cell: the turn stays buffered.
	c.Turn()
	require.Equal(t, geometry.DirEast, c.Direction)
	require.Equal(t, geometry.DirNorth, c.NextDirection)

	// Crossed into x=2 where the north neighbour is a path: commit.
	c.Position.X = 2 * CellSize.Width
	c.Turn()
	require.Equal(t, geometry.DirNorth, c.Direction)
	require.Equal(t, geometry.DirNone, c.NextDirection)
	require.True(t, c.LastPosition.IsNull(), "commit arms a fresh segment")
	require.Equal(t, geometry.Point{X: 2 * CellSize.Width, Y: 1 * CellSize.Height}, c.Position,
		"position advances one full cell along the new direction")
}

func TestTurnIntoWallStaysBuffered(t *testing.T) {
	m := mapgraph.NewMap(5, 5)
	for x := 1; x <= 3; x++ {
		m.Cells[m.Index(x, 2)].Type = mapgraph.Path
	}
	m.Start = m.Index(1, 2)
	m.End = m.Index(3, 2)
	m.Connect()

	c := New(true, config.NewDictionary())
	c.Map = m
	c.SetLocation(geometry.IntPoint{X: 1, Y: 2}, true)
	c.Direction = geometry.DirEast
	c.NextDirection = geometry.DirNorth

	c.Position.X = 2 * CellSize.Width
	c.Turn()

	require.Equal(t, geometry.DirEast, c.Direction, "turning into a wall is refused")
	require.Equal(t, geometry.DirNorth, c.NextDirection, "but stays buffered")
}

func TestReverseAlwaysHonoured(t *testing.T) {
	m := openRoom(5, 5)
	c := New(true, config.NewDictionary())
	c.Map = m
	c.SetLocation(geometry.IntPoint{X: 2, Y: 2}, true)
	c.Direction = geometry.DirEast
	c.NextDirection = geometry.DirWest

	c.Turn()
	require.Equal(t, geometry.DirWest, c.Direction)
	require.Equal(t, geometry.DirNone, c.NextDirection)
}

func TestReachingExitEmitsLevelNext(t *testing.T) {
	m := openRoom(5, 5)
	c := New(true, config.NewDictionary())
	c.SetMap(m)

	ctx := testContext(c)

	var subjects []any
	ctx.Bus.Subscribe(eventbus.LevelNext, func(e eventbus.Event) {
		subjects = append(subjects, e.Subject)
	})

	c.Position = LocationToPosition(m.Cells[m.End].Location)
	c.Move(ctx, geometry.Point{})
	ctx.Bus.Drain(nil, 0)

	require.Equal(t, []any{c}, subjects, "the reaching character is the event subject")
}

func TestEnemyAdvancesToNextMapDirectly(t *testing.T) {
	m1 := openRoom(5, 5)
	m2 := openRoom(5, 5)
	m1.Next = m2

	enemy := New(false, config.NewDictionary())
	enemy.SetMap(m1)

	ctx := testContext(nil, enemy)
	enemy.GotoNextMap(ctx)

	require.Same(t, m2, enemy.Map)
	require.Equal(t, m2.Cells[m2.Start].Location, enemy.Location)
}

func TestUserControllerMovesAlongCorridor(t *testing.T) {
	m := mapgraph.NewMap(7, 3)
	for x := 1; x <= 5; x++ {
		m.Cells[m.Index(x, 1)].Type = mapgraph.Path
	}
	m.Start = m.Index(1, 1)
	m.End = m.Index(5, 1)
	m.Connect()

	c := New(true, config.NewDictionary())
	c.Controller = UserController{}
	c.SetMap(m)

	ctx := testContext(c)
	ctx.InputDirection = geometry.DirEast

	start := c.Position
	for i := 0; i < 5; i++ {
		c.Controller.Control(ctx, c)
		ctx.InputDirection = geometry.DirNone
	}

	require.Greater(t, c.Position.X, start.X, "the character advances east")
	require.Equal(t, 1*CellSize.Height, c.Position.Y, "no drift off the motion axis")

	cell, ok := m.At(c.Location.X, c.Location.Y)
	require.True(t, ok)
	require.True(t, cell.IsPath(), "a character never occupies a wall cell")
}
