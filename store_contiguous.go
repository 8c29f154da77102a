package slotmap

import (
	"fmt"

	"github.com/pkg/errors"
)

// contiguousStore backs a Map with a single flat slice. Indexing skips the
// page indirection, but growth reallocates the whole slice: value pointers
// returned by Map.Get are only good until the next growth. It suits element
// types that are cheap to move and re-fetched through their handle on every
// access.
type contiguousStore[T any] struct {
	slots        []slot[T]
	itemsPerPage int
}

var _ slotStore[int] = &contiguousStore[int]{}

func newContiguousStore[T any](itemsPerPage int) *contiguousStore[T] {
	DebugCheckPow2(uint(itemsPerPage), "itemsPerPage")
	return &contiguousStore[T]{
		itemsPerPage: itemsPerPage,
	}
}

func (s *contiguousStore[T]) Capacity() int {
	return len(s.slots)
}

func (s *contiguousStore[T]) PageCount() int {
	return len(s.slots) / s.itemsPerPage
}

func (s *contiguousStore[T]) ItemsPerPage() int {
	return s.itemsPerPage
}

// Grow allocates the first tranche of slots, or doubles the slice thereafter.
// Doubling keeps the capacity a multiple of the page size, so PageCount stays
// meaningful, but the copy relocates every existing slot.
func (s *contiguousStore[T]) Grow() (int, int) {
	oldCapacity := len(s.slots)
	newCapacity := s.itemsPerPage
	if oldCapacity > 0 {
		newCapacity = oldCapacity * growthMultiplier
	}

	grown := make([]slot[T], newCapacity)
	copy(grown, s.slots)
	s.slots = grown
	return oldCapacity, newCapacity - oldCapacity
}

func (s *contiguousStore[T]) SlotAt(index int) *slot[T] {
	if index < 0 || index >= len(s.slots) {
		panic(fmt.Sprintf("slot index %d is out of range for a store holding %d slots", index, len(s.slots)))
	}
	return &s.slots[index]
}

func (s *contiguousStore[T]) Validate() error {
	if err := CheckPow2(uint(s.itemsPerPage), "itemsPerPage"); err != nil {
		return err
	}
	if len(s.slots)%s.itemsPerPage != 0 {
		return errors.Errorf("the store holds %d slots, which is not a multiple of the %d-slot page size", len(s.slots), s.itemsPerPage)
	}
	return nil
}
