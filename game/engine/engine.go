// Package engine ties the whole simulation together: the Game object
// owns the event bus, the animation scheduler, the level queue, the
// user character, the power-up manager, and the cooperative tick loop
// that advances AI, kinematics, and animations.
package engine

import (
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/pnre/maze-engine/game/animation"
	"github.com/pnre/maze-engine/game/eventbus"
	"github.com/pnre/maze-engine/game/kinematics"
	"github.com/pnre/maze-engine/game/level"
	"github.com/pnre/maze-engine/game/powerup"
	"github.com/pnre/maze-engine/internal/containers"
	"github.com/pnre/maze-engine/internal/geometry"
	"github.com/pnre/maze-engine/internal/prng"
)

// State is the game's status bitmask.
type State uint8

const (
	StateStarted State = 1 << iota
	StateRunning
	StateOver
	StateWon
)

// Timer identities: handlers distinguish tick sources by identity
// comparison on the event subject.
type Timer struct {
	Name   string
	Period float64 // seconds
}

// Tick rates of the three cooperative timers.
const (
	PrincipalHz = 60
	CharacterHz = 5
	PowerUpHz   = 1
)

// Frame counts of the global transition animations.
const (
	fadeFrames       = 30
	titleCardFrames  = 90
)

// Animation keys of the level-next fade chain.
const (
	levelNextFadeOutKey = "level-next-fade-out"
	levelNextTitleKey   = "level-next-title"
	levelNextFadeInKey  = "level-next-fade-in"
)

// Audio sample identifiers the engine emits beyond the kinematics ones.
const (
	SampleGameOver = "gameover"
	SampleGameWon  = "gamewon"
)

// Game is the top-level simulation object.
type Game struct {
	log zerolog.Logger

	bus   *eventbus.Bus
	sched *animation.Scheduler
	rng   *rand.Rand
	seed  uint64

	user     *kinematics.Character
	levels   *containers.Queue[*level.Level]
	powerups *powerup.Manager

	principalTimer *Timer
	characterTimer *Timer
	powerupTimer   *Timer

	transitionOver      *animation.Animation
	transitionWon       *animation.Animation
	transitionLevelNext *animation.Animation

	state State
	Mute  bool

	now          float64
	tickCount    uint64
	pendingInput geometry.Direction

	sfx func(name string)
}

// Option customises Game construction.
type Option func(*Game)

// WithLogger attaches a structured logger; the default is a no-op.
func WithLogger(log zerolog.Logger) Option {
	return func(g *Game) { g.log = log }
}

// WithAudioSink attaches the external audio collaborator; samples are
// named, never decoded here.
func WithAudioSink(play func(name string)) Option {
	return func(g *Game) { g.sfx = play }
}

// New assembles a game from an already-built user, level list, and
// power-up templates, seeding the WELL-512 generator that makes every
// run with the same seed deterministic.
func New(user *kinematics.Character, levels []*level.Level, templates []*powerup.Template, seed uint64, opts ...Option) *Game {
	g := &Game{
		log:            zerolog.Nop(),
		bus:            eventbus.New(),
		seed:           seed,
		rng:            rand.New(prng.NewWell512(seed)),
		user:           user,
		levels:         containers.NewQueue[*level.Level](),
		powerups:       powerup.NewManager(templates),
		principalTimer: &Timer{Name: "principal", Period: 1.0 / PrincipalHz},
		characterTimer: &Timer{Name: "characters", Period: 1.0 / CharacterHz},
		powerupTimer:   &Timer{Name: "powerups", Period: 1.0 / PowerUpHz},
	}
	for _, opt := range opts {
		opt(g)
	}

	g.sched = animation.NewScheduler(g.bus)
	for _, l := range levels {
		g.levels.Push(l)
	}

	if g.user != nil && g.user.Controller == nil {
		g.user.Controller = kinematics.UserController{}
	}

	g.transitionOver = animation.New(1, fadeFrames, animation.StepFadeOut, "game-over-fade")
	g.transitionWon = animation.New(1, fadeFrames, animation.StepFadeOut, "game-won-fade")

	g.transitionLevelNext = animation.New(1, fadeFrames, animation.StepFadeOut, levelNextFadeOutKey)
	title := animation.New(1, titleCardFrames, animation.StepCount, levelNextTitleKey)
	fadeIn := animation.New(1, fadeFrames, animation.StepFadeIn, levelNextFadeInKey)
	_ = animation.Chain(g.transitionLevelNext, title)
	_ = animation.Chain(g.transitionLevelNext, fadeIn)

	g.sched.Enlist(g.transitionOver)
	g.sched.Enlist(g.transitionWon)
	g.sched.Enlist(g.transitionLevelNext)

	g.registerHandlers()

	return g
}

// Bus exposes the internal event bus for external pumps and tests.
func (g *Game) Bus() *eventbus.Bus { return g.bus }

// Scheduler exposes the animation scheduler.
func (g *Game) Scheduler() *animation.Scheduler { return g.sched }

// User returns the player character.
func (g *Game) User() *kinematics.Character { return g.user }

// PowerUps returns the power-up manager.
func (g *Game) PowerUps() *powerup.Manager { return g.powerups }

// Seed returns the seed this game was built with, for GameReload.
func (g *Game) Seed() uint64 { return g.seed }

// Now returns the virtual clock in seconds.
func (g *Game) Now() float64 { return g.now }

// CurrentLevel returns the head of the level queue, nil when exhausted.
func (g *Game) CurrentLevel() *level.Level {
	l, _ := g.levels.Peek()
	return l
}

// LevelsRemaining returns the number of levels still queued, including
// the current one.
func (g *Game) LevelsRemaining() int { return g.levels.Len() }

// State returns the status bitmask.
func (g *Game) State() State { return g.state }

func (g *Game) IsStarted() bool { return g.state&StateStarted != 0 }
func (g *Game) IsRunning() bool { return g.state&StateRunning != 0 }
func (g *Game) IsOver() bool    { return g.state&StateOver != 0 }
func (g *Game) IsWon() bool     { return g.state&StateWon != 0 }

// IsPaused reports a started game that is not advancing.
func (g *Game) IsPaused() bool {
	return g.IsStarted() && !g.IsRunning()
}

// LivesIcons returns how many life icons the renderer should draw.
func (g *Game) LivesIcons() int {
	if g.user == nil {
		return 0
	}
	return g.user.Lives
}

func (g *Game) statusChanged() {
	g.bus.Publish(eventbus.GameStatusChanged, g)
}

func (g *Game) setState(s State) {
	g.state |= s
	g.statusChanged()
}

func (g *Game) unsetState(s State) {
	g.state &^= s
	g.statusChanged()
}

// SetPaused suspends the simulation (level.GameControl).
func (g *Game) SetPaused() { g.unsetState(StateRunning) }

// SetRunning resumes the simulation (level.GameControl).
func (g *Game) SetRunning() { g.setState(StateRunning) }

// TogglePause flips the running bit (space key).
func (g *Game) TogglePause() {
	g.state ^= StateRunning
	g.statusChanged()
}

func (g *Game) setOver(won bool) {
	g.state |= StateOver
	if won {
		g.state |= StateWon
	} else {
		g.state &^= StateWon
	}
	g.unsetState(StateRunning)
	g.statusChanged()
}

// Start sets up the first level and flips the game to started+running.
func (g *Game) Start() {
	if l := g.CurrentLevel(); l != nil {
		l.Setup(g.sched, g.rng, g.user)
		g.log.Info().Str("level", l.Name).Msg("level set up")
	}
	g.setState(StateStarted | StateRunning)
	g.unsetState(StateOver)
}

// context builds the per-tick collaborator context handed to
// controllers and the power-up manager.
func (g *Game) context() *kinematics.Context {
	var enemies []*kinematics.Character
	if l := g.CurrentLevel(); l != nil {
		enemies = l.Enemies
	}
	return &kinematics.Context{
		Bus:            g.bus,
		Scheduler:      g.sched,
		RNG:            g.rng,
		TickPeriod:     g.principalTimer.Period,
		User:           g.user,
		Enemies:        enemies,
		InputDirection: g.pendingInput,
		PlaySFX:        g.playSFX,
		OnEnterCell:    g.powerups.TryPickUp,
	}
}

func (g *Game) playSFX(name string) {
	if g.Mute || g.sfx == nil {
		return
	}
	g.sfx(name)
}

// Tick advances the virtual clock by one principal tick: it publishes
// the principal TimerTick (plus the slower character/power-up timer
// ticks on their cadence), enqueues the supplied external events, and
// drains the bus to completion. Returns the drained mask.
func (g *Game) Tick(external ...eventbus.Event) eventbus.Type {
	g.tickCount++

	events := make([]eventbus.Event, 0, len(external)+3)
	events = append(events, eventbus.Event{Type: eventbus.TimerTick, Subject: g.principalTimer, Data: -1})
	if g.tickCount%(PrincipalHz/CharacterHz) == 0 {
		events = append(events, eventbus.Event{Type: eventbus.TimerTick, Subject: g.characterTimer, Data: -1})
	}
	if g.tickCount%PrincipalHz == 0 {
		events = append(events, eventbus.Event{Type: eventbus.TimerTick, Subject: g.powerupTimer, Data: -1})
	}
	events = append(events, external...)

	mask, _, _ := g.bus.Drain(events, 0)
	return mask
}

// PressKey enqueues a KeyDown event for the next drain.
func (g *Game) PressKey(code int) {
	g.bus.PublishData(eventbus.KeyDown, nil, code)
}
