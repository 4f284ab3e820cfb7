// Package level models one level of the game: its ordered sequence of
// maps (singly linked), the enemy roster, the complexity dial, and the
// per-level map-transition fade animations whose completion events
// carry the player from map to map.
package level

import (
	"github.com/pnre/maze-engine/game/animation"
	"github.com/pnre/maze-engine/game/kinematics"
	"github.com/pnre/maze-engine/game/mapgraph"
	"github.com/pnre/maze-engine/internal/geometry"
)

// transitionFrames is the length of each map-transition fade.
const transitionFrames = 30

// GameControl is the slice of the game state machine the level's
// transition handlers drive.
type GameControl interface {
	SetPaused()
	SetRunning()
}

// Level is an ordered sequence of maps plus its enemies.
// Each enemy Character carries its own live/default config pair, which
// is what lets power-ups temporarily override and later restore the
// per-level enemy configuration.
type Level struct {
	Name       string
	Complexity float64

	Maps    []*mapgraph.Map
	Enemies []*kinematics.Character

	// SpawnSlots are the AI spawn locations of the first map ('V' cells
	// of a map body); enemies beyond the slot count spawn on random
	// path cells.
	SpawnSlots []geometry.IntPoint

	// TransitionOut/TransitionIn are the fade pair run when the user
	// crosses to the next map of this level.
	TransitionOut *animation.Animation
	TransitionIn  *animation.Animation
}

// New links the maps into their singly-linked travel order and creates
// the per-level transition animations.
func New(name string, complexity float64, maps []*mapgraph.Map, enemies []*kinematics.Character) *Level {
	for i := 0; i+1 < len(maps); i++ {
		maps[i].Next = maps[i+1]
	}

	return &Level{
		Name:          name,
		Complexity:    complexity,
		Maps:          maps,
		Enemies:       enemies,
		TransitionOut: animation.New(1, transitionFrames, animation.StepFadeOut, name+"-map-out"),
		TransitionIn:  animation.New(1, transitionFrames, animation.StepFadeIn, name+"-map-in"),
	}
}

// First returns the level's first map, nil for an empty level.
func (l *Level) First() *mapgraph.Map {
	if len(l.Maps) == 0 {
		return nil
	}
	return l.Maps[0]
}

// Setup enlists the transition animations and places the user and
// every enemy on the first map; enemies take the map's spawn slots
// first, then random path cells.
func (l *Level) Setup(sched *animation.Scheduler, rng kinematics.Rand, user *kinematics.Character) {
	sched.Enlist(l.TransitionOut)
	sched.Enlist(l.TransitionIn)

	first := l.First()
	if first == nil {
		return
	}

	if user != nil {
		user.SetMap(first)
		user.DecideDirectionUser()
	}

	for i, enemy := range l.Enemies {
		enemy.SetMap(first)
		if i < len(l.SpawnSlots) {
			enemy.SetLocation(l.SpawnSlots[i], true)
			continue
		}
		if idx := kinematics.RandomPathCell(rng, first); idx != mapgraph.NoIndex {
			enemy.SetLocation(first.Cells[idx].Location, true)
		}
	}
}

// Uninstall delists the transition animations; called before the level
// is popped.
func (l *Level) Uninstall(sched *animation.Scheduler) {
	sched.Delist(l.TransitionOut)
	sched.Delist(l.TransitionIn)
}

// HandleMapNext pauses the game and starts the fade-out; the map switch
// itself happens when the fade-out's end event arrives.
func (l *Level) HandleMapNext(gc GameControl, sched *animation.Scheduler) {
	gc.SetPaused()
	sched.Start(l.TransitionOut)
}

// HandleAnimationEnded advances the map-transition state machine: end
// of fade-out switches the user to the next map and starts the fade-in;
// end of fade-in resumes the game.
func (l *Level) HandleAnimationEnded(gc GameControl, sched *animation.Scheduler, user *kinematics.Character, subject any) {
	switch subject {
	case l.TransitionOut:
		user.ClearPath()
		if user.Map != nil && user.Map.Next != nil {
			user.SetMap(user.Map.Next)
			user.DecideDirectionUser()
		}
		sched.Start(l.TransitionIn)

	case l.TransitionIn:
		gc.SetRunning()
	}
}
