package slotmap

import (
	"strconv"

	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
)

// PrintDetailedMap streams a JSON description of the map's slot accounting
// into writer, including per-page occupancy. It walks every slot, so it is
// meant for diagnostics rather than steady-state monitoring.
func (m *Map[T]) PrintDetailedMap(writer *jwriter.Writer) {
	objState := writer.Object()
	defer objState.End()

	objState.Name("Capacity").Int(m.Capacity())
	objState.Name("ValidCount").Int(m.ValidCount())
	objState.Name("FreeHandles").Int(m.FreeHandles())
	objState.Name("RetiredSlots").Int(m.Retired())
	objState.Name("ItemsPerPage").Int(m.store.ItemsPerPage())
	objState.Name("Storage").String(m.storageName())

	pagesObj := objState.Name("Pages").Object()
	defer pagesObj.End()

	itemsPerPage := m.store.ItemsPerPage()
	for pageIndex := 0; pageIndex < m.store.PageCount(); pageIndex++ {
		var occupied, retired int
		for offset := 0; offset < itemsPerPage; offset++ {
			s := m.store.SlotAt(pageIndex*itemsPerPage + offset)
			if s.occupied {
				occupied++
			} else if s.generation >= MaxGenerations {
				retired++
			}
		}

		pageObj := pagesObj.Name(strconv.Itoa(pageIndex)).Object()
		pageObj.Name("Occupied").Int(occupied)
		pageObj.Name("Free").Int(itemsPerPage - occupied - retired)
		pageObj.Name("Retired").Int(retired)
		pageObj.End()
	}
}

func (m *Map[T]) storageName() string {
	switch m.store.(type) {
	case *pagedStore[T]:
		return StoragePaged.String()
	case *contiguousStore[T]:
		return StorageContiguous.String()
	}
	return "unknown"
}
