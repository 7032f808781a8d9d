package health

import "context"

// Pinger reports a component's availability.
type Pinger interface {
	Ping(ctx context.Context) error
}
