package view

import "github.com/kailas-cloud/dinedash/internal/domain/restaurant"

// RecordReader reads the load-once record store.
type RecordReader interface {
	Records() []restaurant.Record
	Loaded() bool
	// Generation changes whenever the store contents change (0 before load).
	Generation() uint64
}
