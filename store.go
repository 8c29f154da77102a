package slotmap

// slot is one storage position. The occupied tag makes the construct/destroy
// lifecycle checkable: the value is only meaningful while occupied is set,
// and destroying a value resets it to the zero value rather than leaving
// stale data reachable.
type slot[T any] struct {
	value      T
	generation uint32
	occupied   bool
}

// slotStore is the backing storage strategy for a Map: a growable sequence of
// slots with stable integer addressing. Implementations differ in how they
// trade indexing cost against growth cost and pointer stability.
type slotStore[T any] interface {
	// Capacity returns the total number of slots ever allocated.
	Capacity() int
	// PageCount returns the number of page-sized tranches of slots currently
	// allocated.
	PageCount() int
	// ItemsPerPage returns the page size fixed at construction.
	ItemsPerPage() int
	// Grow appends storage for more slots, all with generation zero, and
	// returns the index of the first new slot along with how many were
	// added. Whether existing slot addresses survive a Grow is up to the
	// implementation and documented there.
	Grow() (firstIndex, addedCount int)
	// SlotAt returns the slot at a global index. The index must be below
	// Capacity; violating that is a caller error.
	SlotAt(index int) *slot[T]
	// Validate performs internal consistency checks on the store.
	Validate() error
}
