package dinedash

import (
	"github.com/kailas-cloud/dinedash/internal/domain/query"
	"github.com/kailas-cloud/dinedash/internal/domain/restaurant"
	"github.com/kailas-cloud/dinedash/internal/usecase/dialog"
	"github.com/kailas-cloud/dinedash/internal/usecase/session"
	"github.com/kailas-cloud/dinedash/internal/usecase/view"
)

type (
	// Record is one restaurant.
	Record = restaurant.Record
	// Award is the Michelin or James Beard recognition of a record.
	Award = restaurant.Award
	// Query is the filter, sort and search state applied to the store.
	Query = query.Query
	// Field names one mutable part of a Query.
	Field = query.Field
	// Result is a computed view with its load state and suggestion.
	Result = view.Result
	// Aggregates are the derived read-only groupings of the store.
	Aggregates = view.Aggregates
	// Session is one user's dashboard state.
	Session = session.Session
	// Snapshot is a rendered-ready copy of a session.
	Snapshot = session.Snapshot
)

// Query fields accepted by Query.With and Session.SetFilter.
const (
	FieldCategory = query.FieldCategory
	FieldCity     = query.FieldCity
	FieldStatus   = query.FieldStatus
	FieldAwards   = query.FieldAwards
	FieldSearch   = query.FieldSearch
	FieldSort     = query.FieldSort
)

// Dialogs mounted on every session.
const (
	DialogDetail = dialog.RestaurantDetail
	DialogChart  = dialog.RestaurantChart
)

// DefaultQuery returns a query with no filters, sorted by rank.
func DefaultQuery() Query { return query.Default() }

// RecordParams carries the attributes passed to NewRecord.
type RecordParams = restaurant.Params

// Record status values.
const (
	Open   = restaurant.Open
	Closed = restaurant.Closed
)

// Dialog close triggers accepted by Session.ForceCloseAll.
const (
	TriggerAPI      = dialog.TriggerAPI
	TriggerShortcut = dialog.TriggerShortcut
)

// NewRecord validates p and creates a Record.
func NewRecord(p RecordParams) (Record, error) { return restaurant.New(p) }

// NoAward, Awarded and AwardedWithTier build the three award shapes.
var (
	NoAward         = restaurant.NoAward
	Awarded         = restaurant.Awarded
	AwardedWithTier = restaurant.AwardedWithTier
)
