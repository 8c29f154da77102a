package slotmap

import "fmt"

const (
	// MaxSlots is the number of slots addressable by a Handle. The index field
	// of a Handle is 24 bits wide and the all-ones pattern is reserved as the
	// null sentinel, so slot indices run in [0, MaxSlots) and a Map's capacity
	// can never exceed MaxSlots.
	MaxSlots uint32 = 0xFFFFFF
	// MaxGenerations is the exclusive upper bound on the generation counter of
	// a reusable slot. A slot whose counter reaches MaxGenerations is
	// exhausted and permanently retired from its Map; the value itself is
	// never present in an issued Handle.
	MaxGenerations uint32 = 0xFF

	generationShift = 24
	indexMask       = MaxSlots
)

// Handle is an opaque reference to a value stored in a Map. It packs a 24-bit
// slot index and an 8-bit generation tag into a single word, so handles are
// cheap to copy, store, and compare with ==. The type parameter exists so
// that handles from maps of different element types cannot be mixed up; it
// carries no runtime data.
//
// The zero value is the null handle: it is never issued by a Map, always
// compares equal to other null handles, and uniformly fails Get and Remove.
type Handle[T any] struct {
	// Stored bit-inverted so the zero value decodes to the
	// (MaxSlots, MaxGenerations) null sentinel.
	bits uint32
}

// newHandle packs an index and generation pair. Only a Map issues handles, and
// it never holds a slot outside the issuable range, so out-of-range arguments
// are an internal invariant violation rather than a recoverable error.
func newHandle[T any](index, generation uint32) Handle[T] {
	if index >= MaxSlots {
		panic(fmt.Sprintf("slot index %d is out of the 24-bit range a handle can carry", index))
	}
	if generation >= MaxGenerations {
		panic(fmt.Sprintf("generation %d marks an exhausted slot and must never be issued", generation))
	}
	return Handle[T]{bits: ^(generation<<generationShift | index)}
}

func (h Handle[T]) index() uint32 {
	return ^h.bits & indexMask
}

func (h Handle[T]) generation() uint32 {
	return ^h.bits >> generationShift
}

// IsNil reports whether h is the null handle.
func (h Handle[T]) IsNil() bool {
	return h.bits == 0
}

// String formats the handle for diagnostics as index@generation.
func (h Handle[T]) String() string {
	if h.IsNil() {
		return "Handle(nil)"
	}
	return fmt.Sprintf("Handle(%d@%d)", h.index(), h.generation())
}
