package slotmap

// growthMultiplier is the capacity scaling factor used when the free list or
// the contiguous store runs out of room.
const growthMultiplier = 2

// freeList is a FIFO queue of recyclable slot indices backed by a circular
// buffer. The FIFO ordering is load-bearing, not incidental: the index unused
// longest is reused first, which forces reuses of any one slot to be spaced
// apart by the number of queued indices and so bounds how quickly an
// insert/remove cycle can burn through a slot's generations.
//
// One buffer slot always stays reserved, so head == tail means empty and a
// write that would land tail on head means full. Both cursors stay strictly
// below len(buffer).
type freeList struct {
	buffer []uint32
	head   int
	tail   int
}

func newFreeList(capacity int) freeList {
	// The extra slot is the reserved one: a list created for capacity indices
	// must absorb exactly that many pushes without growing.
	return freeList{buffer: make([]uint32, capacity+1)}
}

// push enqueues index for future reuse. Amortized O(1); doubles the buffer
// when the write would land tail on head. When the live range wraps past the
// physical end at the moment of growth, the wrapped prefix is relocated to
// just past the old end so the range becomes contiguous from head again, with
// no second pass to fix up positions.
func (f *freeList) push(index uint32) {
	next := f.tail + 1
	if next == len(f.buffer) {
		next = 0
	}
	if next == f.head {
		f.grow()
		// The live range is contiguous from head after growing, so the
		// successor of tail no longer wraps.
		next = f.tail + 1
	}
	f.buffer[f.tail] = index
	f.tail = next
}

func (f *freeList) grow() {
	oldCapacity := len(f.buffer)
	grown := make([]uint32, oldCapacity*growthMultiplier)
	copy(grown, f.buffer)
	if f.tail < f.head {
		// Wrapped. After doubling there is room to move the wrapped prefix
		// directly behind the old physical end. The reserved slot sat just
		// before head, so the relocated range ends at head + oldCapacity - 1.
		copy(grown[oldCapacity:], f.buffer[:f.tail])
		f.tail = f.head + oldCapacity - 1
	}
	f.buffer = grown
}

// pop dequeues the index that has been waiting the longest. Popping from an
// empty list is a caller error.
func (f *freeList) pop() uint32 {
	if f.empty() {
		panic("pop from an empty free list")
	}
	index := f.buffer[f.head]
	f.head++
	if f.head == len(f.buffer) {
		f.head = 0
	}
	return index
}

func (f *freeList) empty() bool {
	return f.head == f.tail
}

func (f *freeList) size() int {
	if f.tail < f.head {
		return f.tail + len(f.buffer) - f.head
	}
	return f.tail - f.head
}

// forEach visits every queued index in FIFO order.
func (f *freeList) forEach(visit func(index uint32)) {
	count := f.size()
	for i := 0; i < count; i++ {
		visit(f.buffer[(f.head+i)%len(f.buffer)])
	}
}
