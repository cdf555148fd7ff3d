package cache

import "github.com/jmgilman/go/errors"

// Verify walks the whole recency list and checks it against the index.
//
// It returns an errors.CodeInternal error describing the first disagreement:
// a broken back link, a key missing from the index, an index entry pointing at
// another slot, a duplicate, or more entries than capacity.
//
// This is O(n) and meant for tests and debugging, not the lookup path.
func (c *LRU[K, V]) Verify() error {
	l := c.order
	seen := make(map[K]struct{}, len(c.index))

	prev := nilHandle
	for h := l.head; h != nilHandle; h = l.nodes[h].next {
		n := &l.nodes[h]
		if n.prev != prev {
			return errors.Newf(errors.CodeInternal, "slot %d: prev link %d, want %d", h, n.prev, prev)
		}
		if _, dup := seen[n.key]; dup {
			return errors.Newf(errors.CodeInternal, "key %v linked twice", n.key)
		}
		seen[n.key] = struct{}{}

		indexed, ok := c.index[n.key]
		if !ok {
			return errors.Newf(errors.CodeInternal, "key %v linked but not indexed", n.key)
		}
		if indexed != h {
			return errors.Newf(errors.CodeInternal, "key %v indexed at slot %d, linked at %d", n.key, indexed, h)
		}
		if len(seen) > len(c.index) {
			return errors.New(errors.CodeInternal, "recency list longer than index")
		}
		prev = h
	}

	if prev != l.tail {
		return errors.Newf(errors.CodeInternal, "walk ended at slot %d, tail is %d", prev, l.tail)
	}
	if len(seen) != len(c.index) {
		return errors.Newf(errors.CodeInternal, "index holds %d keys, list links %d", len(c.index), len(seen))
	}
	if len(seen) != l.Len() {
		return errors.Newf(errors.CodeInternal, "list length %d, walked %d", l.Len(), len(seen))
	}
	if len(seen) > c.capacity {
		return errors.Newf(errors.CodeInternal, "%d entries exceed capacity %d", len(seen), c.capacity)
	}
	return nil
}
