package containers

import (
	"math/rand"
	"testing"

	"pgregory.net/rapid"
)

type intItem struct {
	value int
	index int
}

func (n *intItem) HeapIndex() int     { return n.index }
func (n *intItem) SetHeapIndex(i int) { n.index = i }

func lessInt(a, b *intItem) bool { return a.value < b.value }

func TestHeapOrdersByExtraction(t *testing.T) {
	values := []int{5, 3, 8, 1, 9, 2, 7}
	h := NewHeap[*intItem](lessInt)
	for _, v := range values {
		h.Push(&intItem{value: v})
	}

	prev := -1 << 31
	for h.Len() > 0 {
		item, ok := h.ExtractMin()
		if !ok {
			t.Fatal("ExtractMin reported empty while Len() > 0")
		}
		if item.value < prev {
			t.Fatalf("heap order violated: got %d after %d", item.value, prev)
		}
		prev = item.value
	}
}

func TestHeapDecreaseKey(t *testing.T) {
	h := NewHeap[*intItem](lessInt)
	items := make([]*intItem, 0, 5)
	for _, v := range []int{10, 20, 30, 40, 50} {
		it := &intItem{value: v}
		items = append(items, it)
		h.Push(it)
	}

	// Decrease the last-pushed item below everything else and confirm it
	// surfaces first without a search for its position.
	items[4].value = 1
	h.Fix(items[4].HeapIndex())

	min, _ := h.ExtractMin()
	if min != items[4] {
		t.Fatalf("expected decreased-key item to extract first, got value %d", min.value)
	}
}

// TestHeapLaws: after any sequence of insert/extract-min/decrease-key,
// the reported minimum is the minimum of present keys.
func TestHeapLaws(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		h := NewHeap[*intItem](lessInt)
		present := map[*intItem]bool{}

		ops := rapid.IntRange(1, 200).Draw(rt, "ops")
		for i := 0; i < ops; i++ {
			switch rapid.IntRange(0, 2).Draw(rt, "op") {
			case 0: // push
				v := rapid.IntRange(-1000, 1000).Draw(rt, "value")
				it := &intItem{value: v}
				h.Push(it)
				present[it] = true
			case 1: // extract
				if h.Len() == 0 {
					continue
				}
				min, ok := h.ExtractMin()
				if !ok {
					rt.Fatal("ExtractMin reported empty but Len() > 0")
				}
				wantMin := minOf(present)
				if min.value != wantMin {
					rt.Fatalf("ExtractMin() = %d, want min of present %d", min.value, wantMin)
				}
				delete(present, min)
			case 2: // decrease-key
				if h.Len() == 0 {
					continue
				}
				idx := rand.Intn(h.Len())
				it := h.items[idx]
				delta := rapid.IntRange(1, 50).Draw(rt, "delta")
				it.value -= delta
				h.Fix(it.HeapIndex())
			}
		}

		if h.Len() != len(present) {
			rt.Fatalf("heap size %d != tracked size %d", h.Len(), len(present))
		}
	})
}

func minOf(present map[*intItem]bool) int {
	best := 1 << 31
	for it := range present {
		if it.value < best {
			best = it.value
		}
	}
	return best
}
