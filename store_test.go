package slotmap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPagedStoreAddressing(t *testing.T) {
	store := newPagedStore[uint64](8)
	require.Equal(t, 0, store.Capacity())
	require.Equal(t, 0, store.PageCount())
	require.Equal(t, 8, store.ItemsPerPage())

	firstIndex, added := store.Grow()
	require.Equal(t, 0, firstIndex)
	require.Equal(t, 8, added)
	require.Equal(t, 8, store.Capacity())
	require.Equal(t, 1, store.PageCount())

	firstIndex, added = store.Grow()
	require.Equal(t, 8, firstIndex)
	require.Equal(t, 8, added)
	require.Equal(t, 16, store.Capacity())
	require.Equal(t, 2, store.PageCount())

	// Every index maps to its own cell
	for i := 0; i < 16; i++ {
		store.SlotAt(i).value = uint64(i) * 10
	}
	for i := 0; i < 16; i++ {
		require.Equal(t, uint64(i)*10, store.SlotAt(i).value)
	}

	// Fresh slots come up at generation zero
	for i := 0; i < 16; i++ {
		require.Equal(t, uint32(0), store.SlotAt(i).generation)
		require.False(t, store.SlotAt(i).occupied)
	}

	require.NoError(t, store.Validate())
}

func TestPagedStorePointersStableAcrossGrowth(t *testing.T) {
	store := newPagedStore[uint64](8)
	store.Grow()

	held := store.SlotAt(3)
	held.value = 42

	for i := 0; i < 32; i++ {
		store.Grow()
	}

	require.Same(t, held, store.SlotAt(3))
	require.Equal(t, uint64(42), store.SlotAt(3).value)
}

func TestPagedStoreOutOfRangePanics(t *testing.T) {
	store := newPagedStore[uint64](8)
	store.Grow()

	require.Panics(t, func() {
		store.SlotAt(8)
	})
	require.Panics(t, func() {
		store.SlotAt(-1)
	})
}

func TestContiguousStoreGrowth(t *testing.T) {
	store := newContiguousStore[uint64](8)
	require.Equal(t, 0, store.Capacity())

	firstIndex, added := store.Grow()
	require.Equal(t, 0, firstIndex)
	require.Equal(t, 8, added)
	require.Equal(t, 8, store.Capacity())
	require.Equal(t, 1, store.PageCount())

	store.SlotAt(5).value = 99

	// Growth doubles and preserves content
	firstIndex, added = store.Grow()
	require.Equal(t, 8, firstIndex)
	require.Equal(t, 8, added)
	require.Equal(t, 16, store.Capacity())
	require.Equal(t, 2, store.PageCount())
	require.Equal(t, uint64(99), store.SlotAt(5).value)

	firstIndex, added = store.Grow()
	require.Equal(t, 16, firstIndex)
	require.Equal(t, 16, added)
	require.Equal(t, 32, store.Capacity())

	require.NoError(t, store.Validate())

	require.Panics(t, func() {
		store.SlotAt(32)
	})
}
