package session

import (
	"context"

	"github.com/kailas-cloud/dinedash/internal/domain/query"
	"github.com/kailas-cloud/dinedash/internal/domain/restaurant"
	"github.com/kailas-cloud/dinedash/internal/usecase/view"
)

// Views computes the filtered view and resolves restaurants by name.
type Views interface {
	Compute(ctx context.Context, q query.Query) view.Result
	Find(name string) (restaurant.Record, bool)
}
