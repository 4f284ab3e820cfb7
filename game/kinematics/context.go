package kinematics

import (
	"github.com/pnre/maze-engine/game/animation"
	"github.com/pnre/maze-engine/game/eventbus"
	"github.com/pnre/maze-engine/internal/geometry"
)

// Rand is the randomness the motion and AI layers draw on; satisfied
// by *math/rand.Rand seeded from the WELL-512 source, which keeps runs
// with the same seed deterministic.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Context carries the per-tick collaborators a controller needs; the
// engine populates it once per redraw tick.
type Context struct {
	Bus       *eventbus.Bus
	Scheduler *animation.Scheduler
	RNG       Rand

	// TickPeriod is the principal timer's period in seconds.
	TickPeriod float64

	User    *Character
	Enemies []*Character

	// InputDirection is the user's buffered turn request for this tick,
	// DirNone when no arrow key is down.
	InputDirection geometry.Direction

	// PlaySFX names a sample for the external audio collaborator;
	// nil when no audio sink is attached.
	PlaySFX func(name string)

	// OnEnterCell fires when a character's location lands on a cell,
	// letting the power-up subsystem attempt an acquisition.
	OnEnterCell func(ctx *Context, c *Character, cellIdx int)
}

// Audio sample identifiers the kinematics layer emits.
const (
	SampleCrash = "crash"
	SampleWall  = "wall"
)

// Characters returns the user plus every enemy, the pairing universe
// for collision checks.
func (ctx *Context) Characters() []*Character {
	out := make([]*Character, 0, len(ctx.Enemies)+1)
	if ctx.User != nil {
		out = append(out, ctx.User)
	}
	return append(out, ctx.Enemies...)
}

func (ctx *Context) playSFX(name string) {
	if ctx.PlaySFX != nil {
		ctx.PlaySFX(name)
	}
}
