// Package containers provides the ordered/priority containers the
// pathfinding and maze-carving packages build on: an indexed binary heap
// with O(log n) decrease-key, a FIFO queue, a LIFO stack, and a doubly
// linked list (used for the animation scheduler's chain membership).
package containers

// HeapItem is anything a Heap can store. Index is maintained by the heap
// itself so that decrease-key/increase-key can locate the item in O(1)
// without a side dictionary.
type HeapItem interface {
	HeapIndex() int
	SetHeapIndex(i int)
}

// Heap is an indexed binary min-heap ordered by a caller-supplied Less.
type Heap[T HeapItem] struct {
	items []T
	less  func(a, b T) bool
}

// NewHeap creates an empty heap ordered by less.
func NewHeap[T HeapItem](less func(a, b T) bool) *Heap[T] {
	return &Heap[T]{less: less}
}

// Len returns the number of items in the heap.
func (h *Heap[T]) Len() int { return len(h.items) }

func parent(i int) int { return (i - 1) / 2 }
func left(i int) int   { return 2*i + 1 }
func right(i int) int  { return 2*i + 2 }

func (h *Heap[T]) swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.items[i].SetHeapIndex(i)
	h.items[j].SetHeapIndex(j)
}

// Push inserts item and restores the heap property.
func (h *Heap[T]) Push(item T) {
	item.SetHeapIndex(len(h.items))
	h.items = append(h.items, item)
	h.siftUp(len(h.items) - 1)
}

func (h *Heap[T]) siftUp(i int) {
	for i > 0 {
		p := parent(i)
		if !h.less(h.items[i], h.items[p]) {
			break
		}
		h.swap(i, p)
		i = p
	}
}

func (h *Heap[T]) siftDown(i int) {
	n := len(h.items)
	for {
		smallest := i
		if l := left(i); l < n && h.less(h.items[l], h.items[smallest]) {
			smallest = l
		}
		if r := right(i); r < n && h.less(h.items[r], h.items[smallest]) {
			smallest = r
		}
		if smallest == i {
			return
		}
		h.swap(i, smallest)
		i = smallest
	}
}

// Peek returns the minimum item without removing it.
func (h *Heap[T]) Peek() (T, bool) {
	var zero T
	if len(h.items) == 0 {
		return zero, false
	}
	return h.items[0], true
}

// ExtractMin removes and returns the minimum item.
func (h *Heap[T]) ExtractMin() (T, bool) {
	var zero T
	n := len(h.items)
	if n == 0 {
		return zero, false
	}
	min := h.items[0]
	last := h.items[n-1]
	h.items = h.items[:n-1]
	if n > 1 {
		h.items[0] = last
		last.SetHeapIndex(0)
		h.siftDown(0)
	}
	min.SetHeapIndex(-1)
	return min, true
}

// Fix restores the heap property for the item currently at index i,
// after its priority has changed in place. This is decrease-key (or
// increase-key) without a search: the item already knows its own index.
func (h *Heap[T]) Fix(i int) {
	if i < 0 || i >= len(h.items) {
		return
	}
	h.siftUp(i)
	h.siftDown(i)
}
