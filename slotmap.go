// Package slotmap provides a generational-index object pool: values are
// stored in recycled slots and referenced through compact copyable handles
// that detect, in O(1), any access made after their slot has been reused.
package slotmap

import (
	"fmt"

	cerrors "github.com/cockroachdb/errors"
	"github.com/dolthub/swiss"
	"github.com/pkg/errors"
	"golang.org/x/exp/slog"
)

// Map hands out handles for inserted values and resolves them back in O(1).
// A handle only resolves while the generation it carries matches the live
// generation of its slot, so accesses through handles whose slot has been
// reused fail cleanly instead of aliasing the new occupant.
//
// A Map assumes a single logical owner: it performs no internal locking, and
// concurrent use requires external synchronization.
type Map[T any] struct {
	store            slotStore[T]
	freeList         freeList
	minimumAvailable int
	retired          *swiss.Map[uint32, struct{}]
	logger           *slog.Logger
}

// Insert copies value into a free slot and returns a handle for it. Insert
// always succeeds: the map grows ahead of demand whenever fewer than
// MinimumAvailable free handles remain, and growing past the 24-bit index
// space is fatal rather than an error.
func (m *Map[T]) Insert(value T) Handle[T] {
	DebugValidate(m)

	index, s := m.takeSlot()
	s.value = value
	s.occupied = true
	return newHandle[T](index, s.generation)
}

// InsertFunc constructs a value in place: construct receives a pointer to the
// zeroed slot value and fills it in. Growth behaves as in Insert. If
// construct returns an error, the slot is released with its generation
// untouched, its index rejoins the free list, and the wrapped error is
// returned with a null handle.
func (m *Map[T]) InsertFunc(construct func(value *T) error) (Handle[T], error) {
	DebugValidate(m)

	index, s := m.takeSlot()
	err := construct(&s.value)
	if err != nil {
		var zero T
		s.value = zero
		m.freeList.push(index)
		return Handle[T]{}, cerrors.Wrapf(err, "constructing a value in slot %d", index)
	}

	s.occupied = true
	return newHandle[T](index, s.generation), nil
}

// Remove destroys the value h refers to, invalidating every copy of h.
// Removing through a null, stale, or out-of-range handle is a silent no-op:
// stale handles are part of steady-state operation, not an error. The
// freed slot rejoins the free list unless this removal exhausted its
// generation counter, in which case it is retired for good.
func (m *Map[T]) Remove(h Handle[T]) {
	DebugValidate(m)

	s, ok := m.resolve(h)
	if !ok {
		return
	}

	var zero T
	s.value = zero
	s.occupied = false
	s.generation++

	index := h.index()
	if s.generation < MaxGenerations {
		m.freeList.push(index)
		return
	}

	// The slot has lived through every representable generation; issuing it
	// again could alias a handle from a previous life.
	m.retired.Put(index, struct{}{})
	m.logger.Debug("slot retired after exhausting its generations",
		slog.Int("Index", int(index)),
		slog.Int("RetiredSlots", m.retired.Count()))
}

// Get returns a pointer to the value h refers to, or nil if h is null, stale,
// or out of range. Under paged storage the pointer stays valid until the
// slot's generation changes; under contiguous storage it is additionally
// invalidated by the next growth.
func (m *Map[T]) Get(h Handle[T]) *T {
	s, ok := m.resolve(h)
	if !ok {
		return nil
	}
	return &s.value
}

// Capacity returns the total number of slots ever allocated.
func (m *Map[T]) Capacity() int {
	return m.store.Capacity()
}

// FreeHandles returns how many slot indices are currently queued for reuse.
func (m *Map[T]) FreeHandles() int {
	return m.freeList.size()
}

// Retired returns how many slots have been permanently retired after
// exhausting their generation counters.
func (m *Map[T]) Retired() int {
	return m.retired.Count()
}

// ValidCount returns the number of live values. It is derived from the other
// counters rather than tracked separately, so it cannot drift from them.
func (m *Map[T]) ValidCount() int {
	return m.store.Capacity() - m.freeList.size() - m.retired.Count()
}

// resolve maps a handle to its live slot. Out-of-range indices (the null
// sentinel always is, because capacity never reaches it), exhausted
// generations, vacant slots, and generation mismatches all fail identically:
// callers cannot distinguish why a handle is dead, only that it is.
func (m *Map[T]) resolve(h Handle[T]) (*slot[T], bool) {
	index := h.index()
	generation := h.generation()
	if index >= uint32(m.store.Capacity()) || generation >= MaxGenerations {
		return nil, false
	}

	s := m.store.SlotAt(int(index))
	if !s.occupied || s.generation != generation {
		return nil, false
	}
	return s, true
}

// takeSlot grows storage if the free handle floor has been reached, then
// claims the index that has been free the longest. The claimed slot belongs
// exclusively to the caller until Remove releases it.
func (m *Map[T]) takeSlot() (uint32, *slot[T]) {
	if m.freeList.size() < m.minimumAvailable {
		m.grow()
	}

	index := m.freeList.pop()
	s := m.store.SlotAt(int(index))
	if s.occupied {
		panic(fmt.Sprintf("the free list produced slot %d, which is still occupied", index))
	}
	return index, s
}

func (m *Map[T]) grow() {
	firstIndex, added := m.store.Grow()

	capacity := m.store.Capacity()
	if uint32(capacity) > MaxSlots {
		panic(fmt.Sprintf("the slot map grew to %d slots, past the %d addressable by a handle", capacity, MaxSlots))
	}

	for i := 0; i < added; i++ {
		m.freeList.push(uint32(firstIndex + i))
	}

	m.logger.Debug("slot map storage grown",
		slog.Int("Capacity", capacity),
		slog.Int("PageCount", m.store.PageCount()),
		slog.Int("FreeHandles", m.freeList.size()))
}

// Validate performs internal consistency checks across the store, the free
// list, and the retired set. When the implementation is functioning correctly
// it should not be possible for this method to return an error; it runs
// before every mutation when built with the debug_slotmap tag.
func (m *Map[T]) Validate() error {
	if err := m.store.Validate(); err != nil {
		return err
	}

	capacity := m.store.Capacity()

	queued := make(map[uint32]bool, m.freeList.size())
	var err error
	m.freeList.forEach(func(index uint32) {
		if err != nil {
			return
		}
		switch {
		case index >= uint32(capacity):
			err = errors.Errorf("free list entry %d is outside the store's %d slots", index, capacity)
		case queued[index]:
			err = errors.Errorf("slot %d is queued in the free list more than once", index)
		case m.store.SlotAt(int(index)).occupied:
			err = errors.Errorf("slot %d is queued in the free list but still occupied", index)
		case m.store.SlotAt(int(index)).generation >= MaxGenerations:
			err = errors.Errorf("slot %d is queued in the free list but has exhausted its generations", index)
		case m.retired.Has(index):
			err = errors.Errorf("slot %d is both queued in the free list and retired", index)
		}
		queued[index] = true
	})
	if err != nil {
		return err
	}

	m.retired.Iter(func(index uint32, _ struct{}) bool {
		if index >= uint32(capacity) {
			err = errors.Errorf("retired slot %d is outside the store's %d slots", index, capacity)
			return true
		}
		s := m.store.SlotAt(int(index))
		if s.occupied {
			err = errors.Errorf("slot %d is retired but still occupied", index)
			return true
		}
		if s.generation < MaxGenerations {
			err = errors.Errorf("slot %d is retired but its generation %d is not exhausted", index, s.generation)
			return true
		}
		return false
	})
	if err != nil {
		return err
	}

	var occupiedCount int
	for index := 0; index < capacity; index++ {
		s := m.store.SlotAt(index)
		if s.occupied {
			occupiedCount++
			if s.generation >= MaxGenerations {
				return errors.Errorf("slot %d is occupied, but its generation %d was never issuable", index, s.generation)
			}
		} else if s.generation >= MaxGenerations && !m.retired.Has(uint32(index)) {
			return errors.Errorf("slot %d has exhausted its generations but was never retired", index)
		}
	}

	if occupiedCount+m.freeList.size()+m.retired.Count() != capacity {
		return errors.Errorf("%d occupied, %d free, and %d retired slots do not account for all %d slots",
			occupiedCount, m.freeList.size(), m.retired.Count(), capacity)
	}

	return nil
}
