package query

import (
	"github.com/kailas-cloud/dinedash/internal/domain"
	"github.com/kailas-cloud/dinedash/internal/domain/restaurant"
)

// SortKey selects the comparator applied after filtering.
type SortKey string

// Sort key constants.
const (
	// SortRank orders ascending by rank with unranked (0) entries last.
	SortRank   SortKey = "rank"
	SortRating SortKey = "rating"
	SortName   SortKey = "name"
	SortCity   SortKey = "city"
)

// IsValid checks if the sort key is one of the supported values.
func (k SortKey) IsValid() bool {
	return k == SortRank || k == SortRating || k == SortName || k == SortCity
}

// Awards selects records by award.
type Awards string

// Awards filter constants. AwardsAny passes every record.
const (
	AwardsAny        Awards = ""
	AwardsMichelin   Awards = "michelin"
	AwardsJamesBeard Awards = "james_beard"
)

// IsValid checks if the awards filter is one of the supported values.
func (a Awards) IsValid() bool {
	return a == AwardsAny || a == AwardsMichelin || a == AwardsJamesBeard
}

// Field names a mutable part of the query.
type Field string

// Query fields accepted by With.
const (
	FieldCategory Field = "category"
	FieldCity     Field = "city"
	FieldStatus   Field = "status"
	FieldAwards   Field = "awards"
	FieldSearch   Field = "search"
	FieldSort     Field = "sort"
)

// Fields lists every mutable query field in display order.
var Fields = []Field{FieldCategory, FieldCity, FieldStatus, FieldAwards, FieldSearch, FieldSort}

// Query is the current filter, sort and search selection.
// Empty string fields mean "no filter".
type Query struct {
	Category string
	City     string
	Status   restaurant.Status
	Awards   Awards
	Search   string
	Sort     SortKey
}

// Default returns the query a fresh dashboard starts with: no filters, sorted by rank.
func Default() Query {
	return Query{Sort: SortRank}
}

// With returns a copy of q with field set to value.
// An empty sort value resets to SortRank.
func (q Query) With(field Field, value string) (Query, error) {
	switch field {
	case FieldCategory:
		q.Category = value
	case FieldCity:
		q.City = value
	case FieldStatus:
		s := restaurant.Status(value)
		if s != "" && !s.IsValid() {
			return q, domain.NewQueryFieldError(string(field), value)
		}
		q.Status = s
	case FieldAwards:
		a := Awards(value)
		if !a.IsValid() {
			return q, domain.NewQueryFieldError(string(field), value)
		}
		q.Awards = a
	case FieldSearch:
		q.Search = value
	case FieldSort:
		k := SortKey(value)
		if k == "" {
			k = SortRank
		}
		if !k.IsValid() {
			return q, domain.NewQueryFieldError(string(field), value)
		}
		q.Sort = k
	default:
		return q, domain.NewQueryFieldError("field", string(field))
	}
	return q, nil
}

// Get returns the current value of field.
func (q Query) Get(field Field) string {
	switch field {
	case FieldCategory:
		return q.Category
	case FieldCity:
		return q.City
	case FieldStatus:
		return string(q.Status)
	case FieldAwards:
		return string(q.Awards)
	case FieldSearch:
		return q.Search
	case FieldSort:
		return string(q.SortOrDefault())
	default:
		return ""
	}
}

// SortOrDefault returns the sort key, falling back to SortRank when unset.
func (q Query) SortOrDefault() SortKey {
	if q.Sort == "" {
		return SortRank
	}
	return q.Sort
}

// HasFilters reports whether any filter or search is active.
func (q Query) HasFilters() bool {
	return q.Category != "" || q.City != "" || q.Status != "" || q.Awards != AwardsAny || q.Search != ""
}

// Validate checks every enumerated field.
func (q Query) Validate() error {
	if q.Status != "" && !q.Status.IsValid() {
		return domain.NewQueryFieldError(string(FieldStatus), string(q.Status))
	}
	if !q.Awards.IsValid() {
		return domain.NewQueryFieldError(string(FieldAwards), string(q.Awards))
	}
	if q.Sort != "" && !q.Sort.IsValid() {
		return domain.NewQueryFieldError(string(FieldSort), string(q.Sort))
	}
	return nil
}
