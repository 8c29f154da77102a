package slotmap

// Statistics is a snapshot of a Map's slot accounting. It can aggregate
// several maps (the usual arrangement when sharding pools by element type):
// Clear it once, then AddStatistics every map into it.
type Statistics struct {
	Capacity     int
	ValidCount   int
	FreeHandles  int
	RetiredSlots int
	PageCount    int
}

func (s *Statistics) Clear() {
	s.Capacity = 0
	s.ValidCount = 0
	s.FreeHandles = 0
	s.RetiredSlots = 0
	s.PageCount = 0
}

func (s *Statistics) AddStatistics(other *Statistics) {
	s.Capacity += other.Capacity
	s.ValidCount += other.ValidCount
	s.FreeHandles += other.FreeHandles
	s.RetiredSlots += other.RetiredSlots
	s.PageCount += other.PageCount
}

// AddStatistics sums this map's slot accounting into the statistics currently
// present in the provided Statistics object.
func (m *Map[T]) AddStatistics(stats *Statistics) {
	stats.Capacity += m.Capacity()
	stats.ValidCount += m.ValidCount()
	stats.FreeHandles += m.FreeHandles()
	stats.RetiredSlots += m.Retired()
	stats.PageCount += m.store.PageCount()
}
