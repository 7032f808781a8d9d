package view

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/kailas-cloud/dinedash/internal/domain/query"
	"github.com/kailas-cloud/dinedash/internal/domain/restaurant"
)

// View is an ordered, filtered projection of the record store.
// The zero View is "not yet computed" and is distinct from an empty result.
type View struct {
	items    []restaurant.Record
	computed bool
}

// NewView wraps items as a computed view.
func NewView(items []restaurant.Record) View {
	if items == nil {
		items = []restaurant.Record{}
	}
	return View{items: items, computed: true}
}

// Items returns the ordered records.
func (v View) Items() []restaurant.Record { return v.items }

// Len returns the number of records in the view.
func (v View) Len() int { return len(v.items) }

// Computed reports whether the view was produced by Compute.
func (v View) Computed() bool { return v.computed }

// Engine applies a query to a record sequence: conjunctive filters, then a stable sort.
type Engine struct {
	lang language.Tag
}

// NewEngine creates an Engine that collates names and cities for lang.
func NewEngine(lang language.Tag) *Engine {
	return &Engine{lang: lang}
}

// Compute filters and sorts records for q. The input slice is never modified.
func (e *Engine) Compute(records []restaurant.Record, q query.Query) View {
	search := strings.ToLower(q.Search)

	out := make([]restaurant.Record, 0, len(records))
	for _, r := range records {
		if Matches(r, q, search) {
			out = append(out, r)
		}
	}

	slices.SortStableFunc(out, e.comparator(q.SortOrDefault()))
	return NewView(out)
}

// Matches reports whether r satisfies every active filter of q.
// loweredSearch is q.Search already lower-cased.
func Matches(r restaurant.Record, q query.Query, loweredSearch string) bool {
	if q.Category != "" && r.Category() != q.Category {
		return false
	}
	if q.City != "" && r.City() != q.City {
		return false
	}
	if q.Status != "" && r.Status() != q.Status {
		return false
	}

	switch q.Awards {
	case query.AwardsMichelin:
		if !r.Michelin().IsAwarded() {
			return false
		}
	case query.AwardsJamesBeard:
		if !r.JamesBeard().IsAwarded() {
			return false
		}
	}

	if loweredSearch != "" && !strings.Contains(SearchText(r), loweredSearch) {
		return false
	}
	return true
}

// SearchText is the lower-cased text a search query is matched against:
// name, category, city, location and notes joined by single spaces.
func SearchText(r restaurant.Record) string {
	return strings.ToLower(strings.Join([]string{
		r.Name(), r.Category(), r.City(), r.Location(), r.Notes(),
	}, " "))
}

func (e *Engine) comparator(key query.SortKey) func(a, b restaurant.Record) int {
	switch key {
	case query.SortRating:
		return func(a, b restaurant.Record) int {
			return cmp.Compare(b.Rating(), a.Rating())
		}
	case query.SortName:
		c := collate.New(e.lang)
		return func(a, b restaurant.Record) int {
			return c.CompareString(a.Name(), b.Name())
		}
	case query.SortCity:
		c := collate.New(e.lang)
		return func(a, b restaurant.Record) int {
			return c.CompareString(a.City(), b.City())
		}
	default:
		return compareRank
	}
}

// compareRank orders ascending by rank; rank 0 (unranked) sorts after every positive rank.
func compareRank(a, b restaurant.Record) int {
	ar, br := a.Rank(), b.Rank()
	switch {
	case ar == 0 && br == 0:
		return 0
	case ar == 0:
		return 1
	case br == 0:
		return -1
	default:
		return cmp.Compare(ar, br)
	}
}
