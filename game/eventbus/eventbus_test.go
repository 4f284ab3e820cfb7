package eventbus

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDrainInvokesHandlersInSubscriptionOrder(t *testing.T) {
	bus := New()

	var calls []int
	for i := 0; i < 4; i++ {
		i := i
		bus.Subscribe(TimerTick, func(Event) {
			calls = append(calls, i)
		})
	}

	bus.Publish(TimerTick, nil)
	mask, _, _ := bus.Drain(nil, 0)

	require.Equal(t, TimerTick, mask)
	require.Equal(t, []int{0, 1, 2, 3}, calls, "each handler exactly once, in subscription order")
}

func TestDrainIsTotal(t *testing.T) {
	bus := New()

	count := 0
	bus.Subscribe(MapNext, func(Event) { count++ })

	for i := 0; i < 5; i++ {
		bus.Publish(MapNext, nil)
	}
	bus.Drain(nil, 0)

	if count != 5 {
		t.Fatalf("drained %d events, want 5", count)
	}
	if bus.Pending() != 0 {
		t.Fatalf("queue not empty after drain: %d pending", bus.Pending())
	}
}

func TestHandlerPublishedEventsVisibleInSamePass(t *testing.T) {
	bus := New()

	var order []Type
	bus.Subscribe(LevelNext, func(Event) {
		order = append(order, LevelNext)
		bus.Publish(GameWon, nil)
	})
	bus.Subscribe(GameWon, func(Event) {
		order = append(order, GameWon)
	})

	bus.Publish(LevelNext, nil)
	mask, _, _ := bus.Drain(nil, 0)

	require.Equal(t, []Type{LevelNext, GameWon}, order)
	require.Equal(t, LevelNext|GameWon, mask)
}

func TestDrainWatchMask(t *testing.T) {
	bus := New()

	subject := "the-user"
	bus.Publish(TimerTick, nil)
	bus.Publish(LevelNext, subject)

	mask, watched, ok := bus.Drain(nil, LevelNext|GameWon)

	require.True(t, ok)
	require.Equal(t, LevelNext, watched.Type)
	require.Equal(t, subject, watched.Subject)
	require.Equal(t, TimerTick|LevelNext, mask)
}

func TestDrainExternalEventsQueueBehindPending(t *testing.T) {
	bus := New()

	var order []Type
	bus.Subscribe(KeyDown|MapNext, func(e Event) {
		order = append(order, e.Type)
	})

	// A domain event already pending...
	bus.Publish(MapNext, nil)
	// ...still drains after the externally pulled events of this pass?
	// No: external events are enqueued at pass start, behind the
	// already-pending event, FIFO.
	_, watched, ok := bus.Drain([]Event{{Type: KeyDown, Data: 32}}, KeyDown)

	require.Equal(t, []Type{MapNext, KeyDown}, order)
	require.True(t, ok)
	require.Equal(t, 32, watched.Data)
}

func TestSubscribeMaskRegistersEachType(t *testing.T) {
	bus := New()

	seen := map[Type]int{}
	bus.Subscribe(GameLost|GameWon, func(e Event) { seen[e.Type]++ })

	bus.Publish(GameLost, nil)
	bus.Publish(GameWon, nil)
	bus.Publish(TimerTick, nil)
	bus.Drain(nil, 0)

	require.Equal(t, map[Type]int{GameLost: 1, GameWon: 1}, seen)
}
