// Package animation implements the frame-indexed animation scheduler:
// running animations advance once per redraw tick via a pluggable step
// function, and chained animations form a pipeline whose completion
// events drive game-state progress.
//
// Animations carry string keys, generated as UUIDs when the caller
// supplies none.
package animation

import (
	"errors"

	"github.com/google/uuid"

	"github.com/pnre/maze-engine/game/eventbus"
	"github.com/pnre/maze-engine/internal/containers"
)

// Status of an animation.
type Status int

const (
	Running Status = iota
	Paused
	Stopped
)

// Forever makes an animation loop until explicitly ended.
const Forever = ^uint(0)

// ErrChainSelf is returned when an animation is chained to itself.
var ErrChainSelf = errors.New("cannot chain an animation to itself")

// StepFunc advances an animation by one tick. The scheduler calls it
// once per redraw tick for every running animation.
type StepFunc func(s *Scheduler, a *Animation)

// Animation is a frame-indexed animation. The frame
// images themselves belong to the renderer; the engine tracks only the
// frame index, counters, and the overlay alpha the fade steps produce.
type Animation struct {
	FrameCount int
	Loops      uint
	Frame      int
	FramesLeft uint64
	Status     Status
	Key        string

	// Alpha is the overlay alpha the fade step functions interpolate;
	// a renderer reads it when compositing the transition overlay.
	Alpha float64

	chain   *containers.List[*Animation]
	inChain *containers.Queue[*Animation]

	step StepFunc
}

// New creates a paused animation with the given loop and frame counts.
// A nil step means the default frame-cycle step. An empty key gets a
// generated UUID.
func New(loops uint, frameCount int, step StepFunc, key string) *Animation {
	if key == "" {
		key = uuid.NewString()
	}
	a := &Animation{
		FrameCount: frameCount,
		Loops:      loops,
		FramesLeft: uint64(loops) * uint64(frameCount),
		Status:     Paused,
		Key:        key,
		step:       step,
	}
	if a.step == nil {
		a.step = StepFrameCycle
	}
	return a
}

// IsRunning reports whether a is non-nil and running.
func (a *Animation) IsRunning() bool {
	return a != nil && a.Status == Running
}

// IsStopped reports whether a is non-nil and stopped.
func (a *Animation) IsStopped() bool {
	return a != nil && a.Status == Stopped
}

// totalFrames returns loops*frames as the progress step's completion
// threshold.
func (a *Animation) totalFrames() int {
	return a.FrameCount * int(a.Loops)
}

func (a *Animation) reset() {
	a.Frame = 0
	a.FramesLeft = uint64(a.Loops) * uint64(a.FrameCount)
}

// Chained reports whether a participates in a chain.
func (a *Animation) Chained() bool {
	return a.chain != nil
}

// Chain appends tail to head's chain, creating the chain (with head as
// its first member) on first call.
func Chain(head, tail *Animation) error {
	if head == tail {
		return ErrChainSelf
	}
	if head.chain == nil {
		head.chain = containers.NewList[*Animation]()
		head.inChain = containers.NewQueue[*Animation]()
		head.chain.Append(head)
	}
	head.chain.Append(tail)
	tail.chain = head.chain
	return nil
}

// current returns the animation the scheduler should actually step for
// a chained animation: the head of the remaining-members FIFO.
func (a *Animation) current() *Animation {
	if a.chain == nil {
		return a
	}
	first := a.chain.Front()
	if first == nil {
		return a
	}
	cur, ok := first.Value.inChain.Peek()
	if !ok {
		return nil
	}
	return cur
}

// Scheduler owns the list of enlisted animations and advances them on
// each redraw tick, publishing lifecycle events on the bus.
type Scheduler struct {
	bus        *eventbus.Bus
	animations *containers.List[*Animation]
	nodes      map[*Animation]*containers.ListNode[*Animation]
}

// NewScheduler returns a scheduler publishing on bus.
func NewScheduler(bus *eventbus.Bus) *Scheduler {
	return &Scheduler{
		bus:        bus,
		animations: containers.NewList[*Animation](),
		nodes:      map[*Animation]*containers.ListNode[*Animation]{},
	}
}

// Enlist adds an animation to the scheduler's list.
func (s *Scheduler) Enlist(a *Animation) {
	if _, ok := s.nodes[a]; ok {
		return
	}
	s.nodes[a] = s.animations.Append(a)
}

// Delist removes an animation from the scheduler's list.
func (s *Scheduler) Delist(a *Animation) {
	if node, ok := s.nodes[a]; ok {
		s.animations.Remove(node)
		delete(s.nodes, a)
	}
}

// Animate advances every running enlisted animation by one tick. For a
// chained animation, the member actually stepped is the head of the
// chain's remaining FIFO.
func (s *Scheduler) Animate() {
	for node := s.animations.Front(); node != nil; node = node.Next() {
		a := node.Value
		if !a.IsRunning() {
			continue
		}
		if cur := a.current(); cur != nil {
			cur.step(s, cur)
		}
	}
}

// Step advances a single running animation by one tick, outside the
// enlisted list — used by the character-animation timer, whose
// directional animations are not enlisted on the scheduler.
func (s *Scheduler) Step(a *Animation) {
	if a.IsRunning() {
		a.step(s, a)
	}
}

// Start resets a stopped animation, (re)enqueues every chain member
// with counters reset, marks the animation running, and publishes
// AnimationBegan.
func (s *Scheduler) Start(a *Animation) {
	if a.Status == Stopped {
		a.reset()
	}

	if a.inChain != nil {
		a.inChain.Push(a)
		for node := a.chain.Front(); node != nil; node = node.Next() {
			member := node.Value
			if member == a {
				continue
			}
			a.inChain.Push(member)
			member.reset()
		}
	}

	a.Status = Running
	s.bus.Publish(eventbus.AnimationBegan, a)
}

// Stop halts the animation without emitting an event.
func (s *Scheduler) Stop(a *Animation) {
	a.Status = Stopped
}

// Pause suspends the animation; Start resumes it where it left off.
func (s *Scheduler) Pause(a *Animation) {
	a.Status = Paused
}

// End stops the animation and publishes AnimationEnded with it as
// subject.
func (s *Scheduler) End(a *Animation) {
	s.Stop(a)
	s.bus.Publish(eventbus.AnimationEnded, a)
}
