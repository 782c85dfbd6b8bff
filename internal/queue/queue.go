// Package queue provides a value-based binary heap keyed by distance,
// shared by the exact and approximate neighbor finders.
package queue

// Item is an entry in the priority queue.
type Item struct {
	Index    uint32  // Index identifies the point the entry refers to.
	Distance float32 // Distance is the entry's priority.
}

// PriorityQueue is a binary heap of Items ordered by Distance.
// Value-based storage; no pointer indirection, no allocations on Pop.
type PriorityQueue struct {
	max   bool // true = max-heap, false = min-heap
	items []Item
}

// NewMin initializes a min-heap with the given capacity.
func NewMin(capacity int) *PriorityQueue {
	return &PriorityQueue{max: false, items: make([]Item, 0, capacity)}
}

// NewMax initializes a max-heap with the given capacity.
func NewMax(capacity int) *PriorityQueue {
	return &PriorityQueue{max: true, items: make([]Item, 0, capacity)}
}

// Len returns the number of items in the queue.
func (pq *PriorityQueue) Len() int { return len(pq.items) }

// Top returns the root of the heap without removing it.
func (pq *PriorityQueue) Top() (Item, bool) {
	if len(pq.items) == 0 {
		return Item{}, false
	}
	return pq.items[0], true
}

// Push inserts an item while maintaining the heap invariant.
func (pq *PriorityQueue) Push(it Item) {
	pq.items = append(pq.items, it)
	pq.siftUp(len(pq.items) - 1)
}

// Pop removes and returns the root while maintaining the heap invariant.
func (pq *PriorityQueue) Pop() (Item, bool) {
	n := len(pq.items)
	if n == 0 {
		return Item{}, false
	}
	root := pq.items[0]
	last := pq.items[n-1]
	pq.items[n-1] = Item{}
	pq.items = pq.items[:n-1]
	if n-1 > 0 {
		pq.items[0] = last
		pq.siftDown(0)
	}
	return root, true
}

// Reset clears the queue for reuse, keeping the backing storage.
func (pq *PriorityQueue) Reset() {
	pq.items = pq.items[:0]
}

func (pq *PriorityQueue) less(i, j int) bool {
	if pq.max {
		if pq.items[i].Distance != pq.items[j].Distance {
			return pq.items[i].Distance > pq.items[j].Distance
		}
		// Equal distances: the higher index sits on top so that ties
		// are evicted in favor of lower indices.
		return pq.items[i].Index > pq.items[j].Index
	}
	if pq.items[i].Distance != pq.items[j].Distance {
		return pq.items[i].Distance < pq.items[j].Distance
	}
	return pq.items[i].Index < pq.items[j].Index
}

func (pq *PriorityQueue) siftUp(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if !pq.less(i, p) {
			return
		}
		pq.items[i], pq.items[p] = pq.items[p], pq.items[i]
		i = p
	}
}

func (pq *PriorityQueue) siftDown(i int) {
	n := len(pq.items)
	for {
		l := 2*i + 1
		if l >= n {
			return
		}
		best := l
		if r := l + 1; r < n && pq.less(r, l) {
			best = r
		}
		if !pq.less(best, i) {
			return
		}
		pq.items[i], pq.items[best] = pq.items[best], pq.items[i]
		i = best
	}
}
