package view

import (
	"slices"

	"github.com/agnivade/levenshtein"

	"github.com/kailas-cloud/dinedash/internal/domain/restaurant"
)

// maxSuggestionDistance bounds how far a "did you mean" candidate may be from the input.
const maxSuggestionDistance = 3

// Aggregates holds the derived read-only groupings of the record store.
type Aggregates struct {
	TopByCategory []restaurant.Record
	AwardWinners  []restaurant.Record
	Closed        []restaurant.Record
	Categories    []string
	Cities        []string
}

// Aggregate computes every aggregate view over records.
func Aggregate(records []restaurant.Record) Aggregates {
	return Aggregates{
		TopByCategory: TopByCategory(records),
		AwardWinners:  AwardWinners(records),
		Closed:        Closed(records),
		Categories:    Categories(records),
		Cities:        Cities(records),
	}
}

// TopByCategory returns, per category, the open record with rank 1.
// Categories appear in order of first match; categories without such a record are absent.
// If the data carries several, the last one in store order wins.
func TopByCategory(records []restaurant.Record) []restaurant.Record {
	index := make(map[string]int)
	var out []restaurant.Record
	for _, r := range records {
		if !r.IsTopOfCategory() {
			continue
		}
		if i, ok := index[r.Category()]; ok {
			out[i] = r
			continue
		}
		index[r.Category()] = len(out)
		out = append(out, r)
	}
	return out
}

// AwardWinners returns records holding a Michelin or James Beard award, in store order.
func AwardWinners(records []restaurant.Record) []restaurant.Record {
	var out []restaurant.Record
	for _, r := range records {
		if r.HasAward() {
			out = append(out, r)
		}
	}
	return out
}

// Closed returns closed records in store order.
func Closed(records []restaurant.Record) []restaurant.Record {
	var out []restaurant.Record
	for _, r := range records {
		if r.Status() == restaurant.Closed {
			out = append(out, r)
		}
	}
	return out
}

// Categories returns the distinct non-empty categories, sorted.
func Categories(records []restaurant.Record) []string {
	return distinct(records, restaurant.Record.Category)
}

// Cities returns the distinct non-empty cities, sorted.
func Cities(records []restaurant.Record) []string {
	return distinct(records, restaurant.Record.City)
}

func distinct(records []restaurant.Record, key func(restaurant.Record) string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, r := range records {
		k := key(r)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// Suggest returns the candidate closest to value by edit distance.
// Exact matches and candidates further than maxSuggestionDistance yield false.
func Suggest(candidates []string, value string) (string, bool) {
	if value == "" {
		return "", false
	}
	best, bestDist := "", maxSuggestionDistance+1
	for _, c := range candidates {
		if c == value {
			return "", false
		}
		if d := levenshtein.ComputeDistance(c, value); d < bestDist {
			best, bestDist = c, d
		}
	}
	if best == "" {
		return "", false
	}
	return best, true
}
