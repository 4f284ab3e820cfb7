package engine

import (
	"github.com/pnre/maze-engine/game/animation"
	"github.com/pnre/maze-engine/game/eventbus"
	"github.com/pnre/maze-engine/game/kinematics"
	"github.com/pnre/maze-engine/game/mapgraph"
	"github.com/pnre/maze-engine/game/powerup"
	"github.com/pnre/maze-engine/internal/geometry"
)

// registerHandlers wires every subsystem into the bus. Subscription
// order is load-bearing: handlers for a type run in this order on each
// drained event.
func (g *Game) registerHandlers() {
	g.bus.Subscribe(eventbus.TimerTick, g.handleRedrawTick)
	g.bus.Subscribe(eventbus.TimerTick, g.handleCharacterTick)
	g.bus.Subscribe(eventbus.TimerTick, g.handlePowerUpTick)
	g.bus.Subscribe(eventbus.KeyDown, g.handleKeyDown)
	g.bus.Subscribe(eventbus.PowerUpUse, g.handlePowerUpUse)
	g.bus.Subscribe(eventbus.MapNext, g.handleMapNext)
	g.bus.Subscribe(eventbus.LevelNext, g.handleLevelNext)
	g.bus.Subscribe(eventbus.GameStatusChanged, g.handleStatusChanged)
	g.bus.Subscribe(eventbus.AnimationBegan, g.handleAnimationBegan)
	g.bus.Subscribe(eventbus.AnimationEnded, g.handleAnimationEnded)
	g.bus.Subscribe(eventbus.GameWon, g.handleWon)
	g.bus.Subscribe(eventbus.GameLost, g.handleLost)
}

// handleRedrawTick is the principal 60 Hz handler: advance scheduled
// animations, run every character's controller when the game is
// running, sweep placed power-ups past their timeout, and ask for a
// screen redraw.
func (g *Game) handleRedrawTick(e eventbus.Event) {
	if e.Subject != g.principalTimer {
		return
	}

	g.now += g.principalTimer.Period

	g.sched.Animate()

	if !g.IsStarted() || g.IsOver() {
		return
	}

	ctx := g.context()

	if g.IsRunning() {
		if g.user != nil && g.user.Controller != nil {
			g.user.Controller.Control(ctx, g.user)
		}
		for _, enemy := range ctx.Enemies {
			if enemy.Controller != nil {
				enemy.Controller.Control(ctx, enemy)
			}
		}
	}
	g.pendingInput = geometry.DirNone

	if g.user != nil && g.user.Map != nil {
		for _, idx := range g.user.Map.EligibleCells {
			g.powerups.CheckCell(g.user.Map, idx, g.now)
		}
	}

	g.bus.Publish(eventbus.ScreenRedraw, nil)
}

// handleCharacterTick is the slow 5 Hz handler: fade characters back
// toward full opacity and advance the active walking animations.
func (g *Game) handleCharacterTick(e eventbus.Event) {
	if e.Subject != g.characterTimer {
		return
	}
	if !g.IsStarted() {
		return
	}

	step := func(c *kinematics.Character) {
		if alpha := c.Alpha(); alpha < 1 {
			alpha += 0.1
			if alpha > 1 {
				alpha = 1
			}
			c.SetAlpha(alpha)
		}
		if anim := c.CurrentAnimation(); anim != nil {
			g.sched.Step(anim)
		}
	}

	if g.user != nil {
		step(g.user)
	}
	if l := g.CurrentLevel(); l != nil {
		for _, enemy := range l.Enemies {
			step(enemy)
		}
	}
}

// handlePowerUpTick is the 1 Hz handler driving power-up durations and
// placement.
func (g *Game) handlePowerUpTick(e eventbus.Event) {
	if e.Subject != g.powerupTimer {
		return
	}
	if !g.IsStarted() {
		return
	}

	var active *mapgraph.Map
	if g.user != nil {
		active = g.user.Map
	}
	g.powerups.TickSecond(g.context(), active, g.now)
}

// handleKeyDown implements the user-visible bindings:
// arrows buffer a turn, space pauses, escape exits, 1 toggles mute,
// enter restarts after game over, letters trigger held power-ups.
func (g *Game) handleKeyDown(e eventbus.Event) {
	switch e.Data {
	case KeyUp:
		g.pendingInput = geometry.DirNorth
	case KeyDown:
		g.pendingInput = geometry.DirSouth
	case KeyLeft:
		g.pendingInput = geometry.DirWest
	case KeyRight:
		g.pendingInput = geometry.DirEast

	case KeySpace:
		g.TogglePause()

	case KeyEscape:
		g.bus.Publish(eventbus.Exit, nil)

	case Key1:
		g.Mute = !g.Mute

	case KeyEnter:
		if g.IsOver() {
			g.bus.Publish(eventbus.GameReload, nil)
		}

	default:
		if e.Data >= 'A' && e.Data <= 'Z' && g.user != nil {
			for _, status := range g.powerups.Statuses(g.user) {
				if status.Template.Trigger != byte(e.Data) {
					continue
				}
				if status.Enabled || status.Count == 0 {
					continue
				}
				g.bus.Publish(eventbus.PowerUpUse, status)
			}
		}
	}
}

func (g *Game) handlePowerUpUse(e eventbus.Event) {
	status, ok := e.Subject.(*powerup.Status)
	if !ok || status == nil {
		return
	}
	g.powerups.Enable(g.context(), status)
}

func (g *Game) handleMapNext(eventbus.Event) {
	if l := g.CurrentLevel(); l != nil {
		g.log.Info().Str("level", l.Name).Msg("map transition")
		l.HandleMapNext(g, g.sched)
	}
}

// handleLevelNext routes the level-complete event: the user with
// levels remaining starts the fade chain, the user on the last level
// wins, an AI reaching the exit first loses the game.
func (g *Game) handleLevelNext(e eventbus.Event) {
	character, ok := e.Subject.(*kinematics.Character)
	if !ok || character == nil {
		return
	}

	if character.IsUser {
		if g.levels.Len() > 1 {
			g.SetPaused()
			g.sched.Start(g.transitionLevelNext)
		} else {
			g.bus.Publish(eventbus.GameWon, nil)
		}
		return
	}

	g.bus.Publish(eventbus.GameLost, nil)
}

// handleStatusChanged freezes the character animations while paused.
func (g *Game) handleStatusChanged(eventbus.Event) {
	if !g.IsPaused() || g.IsOver() {
		return
	}
	if g.user != nil {
		g.user.StopAnimations(g.sched)
	}
	if l := g.CurrentLevel(); l != nil {
		for _, enemy := range l.Enemies {
			enemy.StopAnimations(g.sched)
		}
	}
}

// handleAnimationBegan performs the level swap when the title card of
// the level-next chain begins: pop the current level and set up the
// next while the card is on screen.
func (g *Game) handleAnimationBegan(e eventbus.Event) {
	anim, ok := e.Subject.(*animation.Animation)
	if !ok || anim == nil {
		return
	}
	if anim.Key == levelNextTitleKey {
		g.performLevelTransition()
	}
}

// handleAnimationEnded drives both the per-level map transitions and
// the global chains: the level-next chain's completion resumes play,
// the game-over/won fades hand off to the end-screen samples.
func (g *Game) handleAnimationEnded(e eventbus.Event) {
	anim, ok := e.Subject.(*animation.Animation)
	if !ok || anim == nil {
		return
	}

	if l := g.CurrentLevel(); l != nil {
		l.HandleAnimationEnded(g, g.sched, g.user, anim)
	}

	switch anim {
	case g.transitionLevelNext:
		g.SetRunning()
	case g.transitionOver:
		g.playSFX(SampleGameOver)
	case g.transitionWon:
		g.playSFX(SampleGameWon)
	}
}

func (g *Game) handleLost(eventbus.Event) {
	g.log.Info().Msg("game lost")
	g.setOver(false)
	g.sched.Start(g.transitionOver)
}

func (g *Game) handleWon(eventbus.Event) {
	g.log.Info().Msg("game won")
	g.setOver(true)
	g.sched.Start(g.transitionWon)
}

// performLevelTransition pops the finished level and installs the
// next.
func (g *Game) performLevelTransition() {
	finished, ok := g.levels.Pop()
	if !ok {
		return
	}
	finished.Uninstall(g.sched)
	for _, enemy := range finished.Enemies {
		g.powerups.Forget(enemy)
	}
	g.powerups.ResetPlacements()

	next := g.CurrentLevel()
	if next == nil {
		return
	}
	next.Setup(g.sched, g.rng, g.user)
	g.log.Info().Str("level", next.Name).Msg("level transition complete")
}
