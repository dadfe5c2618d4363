package ports

import (
	"io"

	"tsinsight/domain/series"
)

// ReadOptions select which columns of a tabular source hold the series.
// Empty values fall back to positional detection: a single column is the
// values, two columns are date then value.
type ReadOptions struct {
	DateColumn  string
	ValueColumn string
	DateFormat  string
}

// SeriesReader parses an uploaded payload into a Series.
type SeriesReader interface {
	Read(r io.Reader, opts ReadOptions) (series.Series, error)
}
