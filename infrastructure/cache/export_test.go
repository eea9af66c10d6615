package cache

import "time"

func (s *MemoryReportStore) SetClock(now func() time.Time) {
	s.now = now
}

func (s *MemoryReportStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.batches)
}
