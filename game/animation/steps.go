package animation

import "github.com/pnre/maze-engine/game/eventbus"

// StepFrameCycle is the default step: advance to the next frame, wrap
// modulo the frame count, and end when the frames-left counter is
// exhausted.
func StepFrameCycle(s *Scheduler, a *Animation) {
	if a.Status != Running {
		return
	}

	a.Frame = (a.Frame + 1) % a.FrameCount

	if a.FramesLeft == 0 {
		s.End(a)
	}
	if a.FramesLeft > 0 {
		a.FramesLeft--
	}
}

// StepProgress is the completion watchdog shared by the fade and
// counting steps: end an unchained animation when its frame counter
// passes loops*frames; for a chained animation, detect completion of
// the FIFO head, pop it, and announce the next member.
func StepProgress(s *Scheduler, a *Animation) {
	if !a.Chained() {
		if a.Frame >= a.totalFrames() {
			s.End(a)
		}
		return
	}

	first := a.chain.Front().Value
	current, ok := first.inChain.Peek()
	if !ok {
		return
	}

	if current.Frame >= current.totalFrames() {
		first.inChain.Pop()

		if first.inChain.Empty() {
			s.End(first)
		} else if first != current {
			s.End(current)
		}

		if next, ok := first.inChain.Peek(); ok {
			s.bus.Publish(eventbus.AnimationBegan, next)
		}
	}
}

// StepFadeOut interpolates the overlay alpha from 0 toward 1 across
// loops*frames ticks — the scene darkens away.
func StepFadeOut(s *Scheduler, a *Animation) {
	total := float64(a.totalFrames())
	a.Alpha = float64(a.Frame) / total
	a.Frame++
	StepProgress(s, a)
}

// StepFadeIn interpolates the overlay alpha from 1 toward 0 across
// loops*frames ticks — the scene emerges.
func StepFadeIn(s *Scheduler, a *Animation) {
	total := float64(a.totalFrames())
	a.Alpha = 1 - float64(a.Frame)/total
	a.Frame++
	StepProgress(s, a)
}

// StepCount advances the frame counter and defers completion to the
// progress watchdog — used by animations that only mark time, like the
// level title card.
func StepCount(s *Scheduler, a *Animation) {
	a.Frame++
	StepProgress(s, a)
}
