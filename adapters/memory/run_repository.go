// Package memory provides in-process stores used when no database is
// configured.
package memory

import (
	"context"
	"sort"
	"sync"

	"tsinsight/domain/core"
	"tsinsight/models"
	"tsinsight/ports"
)

// RunRepository keeps analysis runs in a map guarded by a mutex.
type RunRepository struct {
	mu   sync.RWMutex
	runs map[core.AnalysisID]*models.AnalysisRun
}

// NewRunRepository creates an empty in-memory run repository.
func NewRunRepository() ports.RunRepository {
	return &RunRepository{runs: make(map[core.AnalysisID]*models.AnalysisRun)}
}

func (r *RunRepository) Save(_ context.Context, run *models.AnalysisRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs[run.ID] = run
	return nil
}

func (r *RunRepository) Get(_ context.Context, id core.AnalysisID) (*models.AnalysisRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	run, ok := r.runs[id]
	if !ok {
		return nil, core.ErrAnalysisNotFound
	}
	return run, nil
}

func (r *RunRepository) List(_ context.Context, limit int) ([]*models.AnalysisRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	runs := make([]*models.AnalysisRun, 0, len(r.runs))
	for _, run := range r.runs {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}
