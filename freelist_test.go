package slotmap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFreeListFIFO(t *testing.T) {
	list := newFreeList(4)
	require.True(t, list.empty())
	require.Equal(t, 0, list.size())

	// Push more than the initial capacity to force a straight (unwrapped)
	// growth along the way
	for i := uint32(0); i < 10; i++ {
		list.push(i)
		require.Equal(t, int(i)+1, list.size())
	}

	for i := uint32(0); i < 10; i++ {
		require.Equal(t, i, list.pop())
	}
	require.True(t, list.empty())
}

func TestFreeListWraparound(t *testing.T) {
	list := newFreeList(4)

	for i := uint32(0); i < 4; i++ {
		list.push(i)
	}

	// Drain the front so the next pushes wrap past the physical end
	require.Equal(t, uint32(0), list.pop())
	require.Equal(t, uint32(1), list.pop())
	require.Equal(t, 2, list.size())

	list.push(4)
	require.Equal(t, 3, list.size())
	require.Less(t, list.tail, list.head, "the live range should be wrapped now")

	// Ordering and size hold in the wrapped state
	require.Equal(t, uint32(2), list.pop())
	require.Equal(t, 2, list.size())
	require.Equal(t, uint32(3), list.pop())
	require.Equal(t, uint32(4), list.pop())
	require.True(t, list.empty())
}

func TestFreeListWrapAfterSinglePop(t *testing.T) {
	list := newFreeList(4)

	// Fill to capacity, then free exactly one slot at the front: the next
	// push wraps to the physical start of the buffer while head sits at 1
	for i := uint32(0); i < 4; i++ {
		list.push(i)
	}
	require.Equal(t, 4, list.size())
	require.Equal(t, uint32(0), list.pop())

	list.push(4)
	require.Equal(t, 4, list.size(), "the wrapped push must not collapse the queue")
	require.False(t, list.empty())
	require.Less(t, list.tail, list.head, "the live range should be wrapped now")

	// The list is full again, so this push grows the buffer
	list.push(5)
	require.Equal(t, 10, len(list.buffer))
	require.Equal(t, 5, list.size())

	for expected := uint32(1); expected <= 5; expected++ {
		require.Equal(t, expected, list.pop())
	}
	require.True(t, list.empty())
}

func TestFreeListGrowthRelocatesWrappedTail(t *testing.T) {
	list := newFreeList(4)

	for i := uint32(0); i < 4; i++ {
		list.push(i)
	}
	require.Equal(t, uint32(0), list.pop())
	require.Equal(t, uint32(1), list.pop())

	// Wrap the tail past the physical end, then fill the last open slot; one
	// buffer slot stays reserved, so the list is now full
	list.push(4)
	list.push(5)
	require.Equal(t, list.head-1, list.tail)

	// This push has to grow the buffer and move the wrapped prefix behind the
	// old physical end
	list.push(6)
	require.Equal(t, 10, len(list.buffer))
	require.Equal(t, 5, list.size())

	for expected := uint32(2); expected <= 6; expected++ {
		require.Equal(t, expected, list.pop())
	}
	require.True(t, list.empty())
}

func TestFreeListPopEmptyPanics(t *testing.T) {
	list := newFreeList(4)
	require.Panics(t, func() {
		list.pop()
	})

	list.push(7)
	require.Equal(t, uint32(7), list.pop())
	require.Panics(t, func() {
		list.pop()
	})
}

func TestFreeListForEach(t *testing.T) {
	list := newFreeList(4)
	for i := uint32(0); i < 4; i++ {
		list.push(i)
	}
	list.pop()
	list.pop()
	list.push(4)

	var visited []uint32
	list.forEach(func(index uint32) {
		visited = append(visited, index)
	})
	require.Equal(t, []uint32{2, 3, 4}, visited)
}
