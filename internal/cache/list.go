package cache

// nilHandle marks a missing neighbour in the recency list.
const nilHandle = -1

// maxPreallocate bounds the arena capacity reserved up front. Larger caches
// grow by append, which keeps insertion amortized O(1).
const maxPreallocate = 4096

// node is one slot of the recency list arena.
// prev/next are handles (slot indexes), not pointers.
type node[K comparable, V any] struct {
	key   K
	value V
	prev  int
	next  int
}

// recencyList orders entries from least recently used (head) to most
// recently used (tail). Slots live in a slice and link to each other by
// index, so a handle stays valid when the slice is reallocated.
//
// Freed slots are recycled through a free stack; a recycled slot is fully
// rewritten by push, so no state from its previous occupant survives.
type recencyList[K comparable, V any] struct {
	nodes []node[K, V]
	free  []int
	head  int
	tail  int
	size  int
}

func newRecencyList[K comparable, V any](capacity int) *recencyList[K, V] {
	return &recencyList[K, V]{
		nodes: make([]node[K, V], 0, min(capacity, maxPreallocate)),
		head:  nilHandle,
		tail:  nilHandle,
	}
}

// Len returns the number of linked entries.
func (l *recencyList[K, V]) Len() int {
	return l.size
}

// pushBack links a new entry at the MRU end and returns its handle.
func (l *recencyList[K, V]) pushBack(key K, value V) int {
	var h int
	if n := len(l.free); n > 0 {
		h = l.free[n-1]
		l.free = l.free[:n-1]
		l.nodes[h] = node[K, V]{key: key, value: value}
	} else {
		h = len(l.nodes)
		l.nodes = append(l.nodes, node[K, V]{key: key, value: value})
	}
	l.linkBack(h)
	l.size++
	return h
}

// moveToBack promotes h to the MRU end.
func (l *recencyList[K, V]) moveToBack(h int) {
	if h == l.tail {
		return
	}
	l.unlink(h)
	l.linkBack(h)
}

// popFront unlinks the LRU entry, releases its slot and returns what it held.
// ok is false when the list is empty.
func (l *recencyList[K, V]) popFront() (key K, value V, ok bool) {
	h := l.head
	if h == nilHandle {
		return key, value, false
	}
	l.unlink(h)
	key, value = l.nodes[h].key, l.nodes[h].value

	// Drop references held by the slot so evicted values can be collected.
	l.nodes[h] = node[K, V]{prev: nilHandle, next: nilHandle}
	l.free = append(l.free, h)
	l.size--
	return key, value, true
}

func (l *recencyList[K, V]) linkBack(h int) {
	n := &l.nodes[h]
	n.prev = l.tail
	n.next = nilHandle
	if l.tail != nilHandle {
		l.nodes[l.tail].next = h
	} else {
		l.head = h
	}
	l.tail = h
}

func (l *recencyList[K, V]) unlink(h int) {
	n := &l.nodes[h]
	if n.prev != nilHandle {
		l.nodes[n.prev].next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nilHandle {
		l.nodes[n.next].prev = n.prev
	} else {
		l.tail = n.prev
	}
	n.prev, n.next = nilHandle, nilHandle
}
