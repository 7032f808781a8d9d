package source

import (
	"context"
	"slices"

	"github.com/kailas-cloud/dinedash/internal/domain/restaurant"
)

// Static serves records held in memory. Used by the SDK and tests.
type Static struct {
	records []restaurant.Record
}

// NewStatic creates a static source over a copy of records.
func NewStatic(records []restaurant.Record) *Static {
	return &Static{records: slices.Clone(records)}
}

// Name identifies the source in logs and metrics.
func (s *Static) Name() string { return "static" }

// Load returns the records.
func (s *Static) Load(ctx context.Context) ([]restaurant.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, &Error{Source: s.Name(), Err: err}
	}
	return slices.Clone(s.records), nil
}
