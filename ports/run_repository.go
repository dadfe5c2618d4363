package ports

import (
	"context"

	"tsinsight/domain/core"
	"tsinsight/models"
)

// RunRepository stores completed analysis runs. Implementations: Postgres
// when a database is configured, in-memory otherwise.
type RunRepository interface {
	Save(ctx context.Context, run *models.AnalysisRun) error
	Get(ctx context.Context, id core.AnalysisID) (*models.AnalysisRun, error)
	List(ctx context.Context, limit int) ([]*models.AnalysisRun, error)
}
