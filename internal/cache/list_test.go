package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keysLRUToMRU[K comparable, V any](l *recencyList[K, V]) []K {
	var out []K
	for h := l.head; h != nilHandle; h = l.nodes[h].next {
		out = append(out, l.nodes[h].key)
	}
	return out
}

func TestRecencyList_PushMovePop(t *testing.T) {
	l := newRecencyList[string, int](4)

	a := l.pushBack("a", 1)
	l.pushBack("b", 2)
	c := l.pushBack("c", 3)
	require.Equal(t, []string{"a", "b", "c"}, keysLRUToMRU(l))

	l.moveToBack(a)
	assert.Equal(t, []string{"b", "c", "a"}, keysLRUToMRU(l))

	l.moveToBack(a) // already MRU
	assert.Equal(t, []string{"b", "c", "a"}, keysLRUToMRU(l))

	key, value, ok := l.popFront()
	require.True(t, ok)
	assert.Equal(t, "b", key)
	assert.Equal(t, 2, value)
	assert.Equal(t, 2, l.Len())

	l.moveToBack(c)
	assert.Equal(t, []string{"a", "c"}, keysLRUToMRU(l))
}

func TestRecencyList_RecyclesSlots(t *testing.T) {
	l := newRecencyList[int, string](2)

	first := l.pushBack(1, "one")
	l.pushBack(2, "two")
	_, _, ok := l.popFront()
	require.True(t, ok)

	reused := l.pushBack(3, "three")
	assert.Equal(t, first, reused, "freed slot should be reused")
	assert.Len(t, l.nodes, 2, "arena must not grow while a slot is free")
	assert.Equal(t, []int{2, 3}, keysLRUToMRU(l))
	assert.Equal(t, "three", l.nodes[reused].value)
}

func TestRecencyList_PopEmpty(t *testing.T) {
	l := newRecencyList[int, int](0)

	_, _, ok := l.popFront()
	assert.False(t, ok)

	h := l.pushBack(1, 1)
	_, _, ok = l.popFront()
	require.True(t, ok)
	assert.Equal(t, nilHandle, l.head)
	assert.Equal(t, nilHandle, l.tail)
	assert.Equal(t, nilHandle, l.nodes[h].prev)
	assert.Equal(t, 0, l.Len())
}

func TestVerify_DetectsDisagreement(t *testing.T) {
	c, err := New[int, int](intIdentity{}, 3)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := c.Get(t.Context(), i)
		require.NoError(t, err)
	}
	require.NoError(t, c.Verify())

	t.Run("orphaned index entry", func(t *testing.T) {
		c.index[99] = 0
		defer delete(c.index, 99)
		assert.Error(t, c.Verify())
	})

	t.Run("index points at wrong slot", func(t *testing.T) {
		h := c.index[0]
		c.index[0] = c.index[1]
		defer func() { c.index[0] = h }()
		assert.Error(t, c.Verify())
	})

	t.Run("broken back link", func(t *testing.T) {
		tail := c.order.tail
		prev := c.order.nodes[tail].prev
		c.order.nodes[tail].prev = nilHandle
		defer func() { c.order.nodes[tail].prev = prev }()
		assert.Error(t, c.Verify())
	})

	require.NoError(t, c.Verify())
}
