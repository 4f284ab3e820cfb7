// Package eventbus implements the engine's internal event system: a
// single-threaded typed event queue drained fully on each pass, with a
// per-type subscriber table invoked in subscription order.
package eventbus

import "github.com/pnre/maze-engine/internal/containers"

// Type tags an event. Types are bit flags so a caller can subscribe to
// or observe a mask.
type Type uint32

const (
	Unknown Type = 1 << iota
	TimerTick
	KeyDown
	Exit
	PowerUpUse
	MapNext
	LevelNext
	AnimationBegan
	AnimationEnded
	GameStatusChanged
	GameReload
	GameLost
	GameWon
	ScreenRedraw
)

// String renders the type for logging.
func (t Type) String() string {
	switch t {
	case TimerTick:
		return "timer_tick"
	case KeyDown:
		return "key_down"
	case Exit:
		return "exit"
	case PowerUpUse:
		return "powerup_use"
	case MapNext:
		return "map_next"
	case LevelNext:
		return "level_next"
	case AnimationBegan:
		return "animation_began"
	case AnimationEnded:
		return "animation_ended"
	case GameStatusChanged:
		return "game_status_changed"
	case GameReload:
		return "game_reload"
	case GameLost:
		return "game_lost"
	case GameWon:
		return "game_won"
	case ScreenRedraw:
		return "screen_redraw"
	default:
		return "unknown"
	}
}

// Event carries a typed tag, an opaque subject, and an integer data
// field (a key code for KeyDown, -1 otherwise).
type Event struct {
	Type    Type
	Subject any
	Data    int
}

// Handler is an event callback. Handlers are treated as infallible: no
// error return, and the queue drain is total.
type Handler func(Event)

// Bus is the typed event queue plus its subscriber table. Single-
// threaded by contract: Publish and Drain must be called from the one
// cooperative loop.
type Bus struct {
	queue    *containers.Queue[Event]
	handlers map[Type][]Handler
}

// New returns an empty bus.
func New() *Bus {
	return &Bus{
		queue:    containers.NewQueue[Event](),
		handlers: map[Type][]Handler{},
	}
}

// Subscribe registers handler for every type set in mask, appended in
// subscription order.
func (b *Bus) Subscribe(mask Type, handler Handler) {
	for t := Type(1); t != 0 && t <= ScreenRedraw; t <<= 1 {
		if mask&t != 0 {
			b.handlers[t] = append(b.handlers[t], handler)
		}
	}
}

// Publish enqueues an event; handlers run on the next Drain pass (or
// later in the current pass if one is underway).
func (b *Bus) Publish(t Type, subject any) {
	b.queue.Push(Event{Type: t, Subject: subject, Data: -1})
}

// PublishData enqueues an event with an integer data field (key code).
func (b *Bus) PublishData(t Type, subject any, data int) {
	b.queue.Push(Event{Type: t, Subject: subject, Data: data})
}

// Drain pulls the supplied external events (keyboard, display-close,
// timer ticks — already converted by the caller, since windowing is an
// external collaborator), enqueues them, then drains the queue until
// empty, invoking each type's handlers in subscription order. Events a
// handler publishes are drained in the same pass, FIFO.
//
// The returned mask has a bit set for every type drained; if any
// drained event's type is in watch, a copy of the last such event is
// returned with ok=true.
func (b *Bus) Drain(external []Event, watch Type) (mask Type, watched Event, ok bool) {
	for _, e := range external {
		b.queue.Push(e)
	}

	for {
		event, more := b.queue.Pop()
		if !more {
			break
		}

		mask |= event.Type
		if event.Type&watch != 0 {
			watched = event
			ok = true
		}

		for _, handler := range b.handlers[event.Type] {
			handler(event)
		}
	}

	return mask, watched, ok
}

// Pending returns the number of queued, undrained events.
func (b *Bus) Pending() int {
	return b.queue.Len()
}
