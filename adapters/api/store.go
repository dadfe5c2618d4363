package api

import (
	"sync"

	"tsinsight/domain/core"
	"tsinsight/domain/series"
)

// seriesStore holds uploaded series between the upload and analysis calls.
type seriesStore struct {
	mu     sync.RWMutex
	series map[core.SeriesID]*series.Series
}

func newSeriesStore() *seriesStore {
	return &seriesStore{series: make(map[core.SeriesID]*series.Series)}
}

func (s *seriesStore) put(data *series.Series) core.SeriesID {
	id := core.SeriesID(core.NewID())
	s.mu.Lock()
	s.series[id] = data
	s.mu.Unlock()
	return id
}

func (s *seriesStore) get(id core.SeriesID) (*series.Series, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.series[id]
	return data, ok
}
