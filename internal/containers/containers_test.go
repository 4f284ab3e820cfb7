package containers

import "testing"

func TestQueueFIFOOrder(t *testing.T) {
	q := NewQueue[int]()
	q.Push(1)
	q.Push(2)
	q.Push(3)

	for _, want := range []int{1, 2, 3} {
		got, ok := q.Pop()
		if !ok || got != want {
			t.Fatalf("Pop() = %d, %v, want %d, true", got, ok, want)
		}
	}
	if !q.Empty() {
		t.Fatalf("expected queue to be empty")
	}
}

func TestStackLIFOOrder(t *testing.T) {
	s := NewStack[int]()
	s.Push(1)
	s.Push(2)
	s.Push(3)

	for _, want := range []int{3, 2, 1} {
		got, ok := s.Pop()
		if !ok || got != want {
			t.Fatalf("Pop() = %d, %v, want %d, true", got, ok, want)
		}
	}
	if !s.Empty() {
		t.Fatalf("expected stack to be empty")
	}
}

func TestListAppendAndRemove(t *testing.T) {
	l := NewList[string]()
	a := l.Append("a")
	l.Append("b")
	c := l.Append("c")

	if l.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", l.Len())
	}

	l.Remove(a)
	if l.Front().Value != "b" {
		t.Fatalf("Front() = %v, want b", l.Front().Value)
	}

	l.Remove(c)
	if l.Back().Value != "b" {
		t.Fatalf("Back() = %v, want b", l.Back().Value)
	}
	if l.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", l.Len())
	}
}
