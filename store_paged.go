package slotmap

import (
	"fmt"
	"math/bits"

	"github.com/pkg/errors"
)

// pagedStore backs a Map with fixed-capacity pages. Growing only ever appends
// a page, so a value pointer handed out for one slot stays valid for the life
// of the store; only a generation change can invalidate an access. The page
// size is a power of two so that a global index splits into (page, offset)
// with a shift and a mask.
type pagedStore[T any] struct {
	pages        [][]slot[T]
	itemsPerPage int
	pageShift    uint
}

var _ slotStore[int] = &pagedStore[int]{}

func newPagedStore[T any](itemsPerPage int) *pagedStore[T] {
	DebugCheckPow2(uint(itemsPerPage), "itemsPerPage")
	return &pagedStore[T]{
		itemsPerPage: itemsPerPage,
		pageShift:    uint(bits.TrailingZeros(uint(itemsPerPage))),
	}
}

func (s *pagedStore[T]) Capacity() int {
	return len(s.pages) * s.itemsPerPage
}

func (s *pagedStore[T]) PageCount() int {
	return len(s.pages)
}

func (s *pagedStore[T]) ItemsPerPage() int {
	return s.itemsPerPage
}

// Grow appends exactly one page of fresh slots. Existing pages are never
// moved or reallocated.
func (s *pagedStore[T]) Grow() (int, int) {
	firstIndex := s.Capacity()
	s.pages = append(s.pages, make([]slot[T], s.itemsPerPage))
	return firstIndex, s.itemsPerPage
}

func (s *pagedStore[T]) SlotAt(index int) *slot[T] {
	if index < 0 || index >= s.Capacity() {
		panic(fmt.Sprintf("slot index %d is out of range for a store holding %d slots", index, s.Capacity()))
	}
	return &s.pages[index>>s.pageShift][index&(s.itemsPerPage-1)]
}

func (s *pagedStore[T]) Validate() error {
	if err := CheckPow2(uint(s.itemsPerPage), "itemsPerPage"); err != nil {
		return err
	}
	for pageIndex, page := range s.pages {
		if len(page) != s.itemsPerPage {
			return errors.Errorf("page %d holds %d slots, but every page must hold %d", pageIndex, len(page), s.itemsPerPage)
		}
	}
	return nil
}
