// Package render turns records and aggregates into the view models the
// dashboard surfaces display: cards, stars, badges and section entries.
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/kailas-cloud/dinedash/internal/domain/restaurant"
)

// TopLimit is the number of top-by-category entries shown.
const TopLimit = 6

// NoResultsMessage is shown in place of cards when the view is empty.
const NoResultsMessage = "No restaurants found matching your criteria."

// Badge kinds.
const (
	BadgeMichelin   = "michelin"
	BadgeJamesBeard = "james-beard"
	BadgeClosed     = "closed"
)

// Badge is a small label on a card.
type Badge struct {
	Kind  string `json:"kind"`
	Label string `json:"label"`
}

// Stars is a five-slot star rating.
type Stars struct {
	Full  int `json:"full"`
	Empty int `json:"empty"`
}

// String draws the rating with filled and hollow stars.
func (s Stars) String() string {
	return strings.Repeat("★", s.Full) + strings.Repeat("☆", s.Empty)
}

// Card is one restaurant in the results list.
type Card struct {
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	City       string  `json:"city"`
	Location   string  `json:"location"`
	Hours      string  `json:"hours"`
	Status     string  `json:"status"`
	Open       bool    `json:"open"`
	Rank       int     `json:"rank"`
	RankLabel  string  `json:"rank_label"`
	Rating     float64 `json:"rating"`
	RatingText string  `json:"rating_text"`
	Stars      Stars   `json:"stars"`
	Badges     []Badge `json:"badges"`
}

// Detail is the restaurant detail dialog body.
type Detail struct {
	Card
	RankLabel    string `json:"rank_label"`
	LocationLine string `json:"location_line"`
	Notes        string `json:"notes"`
}

// TopEntry is one card of the top-by-category strip.
type TopEntry struct {
	Category   string `json:"category"`
	Name       string `json:"name"`
	Stars      Stars  `json:"stars"`
	RatingText string `json:"rating_text"`
}

// Entry is one line of the award winners or closed sections.
type Entry struct {
	Name string `json:"name"`
	Info string `json:"info"`
}

// StarsFor rounds a rating to whole stars: a fraction of .5 or more earns
// an extra full star.
func StarsFor(rating float64) Stars {
	if math.IsNaN(rating) || rating < 0 {
		rating = 0
	}
	full := int(math.Floor(rating))
	if rating-float64(full) >= 0.5 {
		full++
	}
	full = min(full, 5)
	return Stars{Full: full, Empty: 5 - full}
}

// RatingText formats a rating with one decimal.
func RatingText(rating float64) string {
	return fmt.Sprintf("%.1f", rating)
}

// RankLabel is "#n" for ranked records and empty otherwise.
func RankLabel(rank int) string {
	if rank > 0 {
		return fmt.Sprintf("#%d", rank)
	}
	return ""
}

// DetailRankLabel is "#n" for ranked records and "Unranked" otherwise.
func DetailRankLabel(rank int) string {
	if rank > 0 {
		return RankLabel(rank)
	}
	return "Unranked"
}

// ResultsLabel is the count shown above the results list.
func ResultsLabel(n int) string {
	return fmt.Sprintf("%d results", n)
}

// Badges lists the award and status badges for r.
func Badges(r restaurant.Record) []Badge {
	var out []Badge
	if r.Michelin().IsAwarded() {
		out = append(out, Badge{Kind: BadgeMichelin, Label: "Michelin"})
	}
	if r.JamesBeard().IsAwarded() {
		out = append(out, Badge{Kind: BadgeJamesBeard, Label: "James Beard"})
	}
	if r.Status() == restaurant.Closed {
		out = append(out, Badge{Kind: BadgeClosed, Label: "Closed"})
	}
	return out
}

// NewCard builds the results-list card for r.
func NewCard(r restaurant.Record) Card {
	status := string(restaurant.Closed)
	if r.IsOpen() {
		status = string(restaurant.Open)
	}
	return Card{
		Name:       r.Name(),
		Category:   r.Category(),
		City:       r.City(),
		Location:   r.Location(),
		Hours:      r.Hours(),
		Status:     status,
		Open:       r.IsOpen(),
		Rank:       r.Rank(),
		RankLabel:  RankLabel(r.Rank()),
		Rating:     r.Rating(),
		RatingText: RatingText(r.Rating()),
		Stars:      StarsFor(r.Rating()),
		Badges:     Badges(r),
	}
}

// NewDetail builds the detail dialog body for r.
func NewDetail(r restaurant.Record) Detail {
	return Detail{
		Card:         NewCard(r),
		RankLabel:    DetailRankLabel(r.Rank()),
		LocationLine: r.City() + " • " + r.Location(),
		Notes:        r.Notes(),
	}
}

// Cards builds a card per record, keeping order.
func Cards(records []restaurant.Record) []Card {
	out := make([]Card, len(records))
	for i, r := range records {
		out[i] = NewCard(r)
	}
	return out
}

// Top builds at most limit top-by-category entries.
func Top(records []restaurant.Record, limit int) []TopEntry {
	if limit >= 0 && len(records) > limit {
		records = records[:limit]
	}
	out := make([]TopEntry, len(records))
	for i, r := range records {
		out[i] = TopEntry{
			Category:   r.Category(),
			Name:       r.Name(),
			Stars:      StarsFor(r.Rating()),
			RatingText: RatingText(r.Rating()),
		}
	}
	return out
}

// AwardText describes r's awards, e.g. "Michelin (1 Star) • James Beard".
func AwardText(r restaurant.Record) string {
	var parts []string
	if a := r.Michelin(); a.IsAwarded() {
		parts = append(parts, awardPart("Michelin", a))
	}
	if a := r.JamesBeard(); a.IsAwarded() {
		parts = append(parts, awardPart("James Beard", a))
	}
	return strings.Join(parts, " • ")
}

func awardPart(label string, a restaurant.Award) string {
	if a.Kind() == restaurant.AwardTiered {
		return label + " (" + a.Tier() + ")"
	}
	return label
}

// AwardEntries builds the award winners section.
func AwardEntries(records []restaurant.Record) []Entry {
	out := make([]Entry, len(records))
	for i, r := range records {
		out[i] = Entry{Name: r.Name(), Info: AwardText(r) + " • " + r.Category()}
	}
	return out
}

// ClosedEntries builds the closed restaurants section.
func ClosedEntries(records []restaurant.Record) []Entry {
	out := make([]Entry, len(records))
	for i, r := range records {
		out[i] = Entry{Name: r.Name(), Info: r.Category() + " • " + r.Hours()}
	}
	return out
}

// Bucket is one bar of the distribution chart.
type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Distribution counts records per category, in order of first appearance.
func Distribution(records []restaurant.Record) []Bucket {
	out := []Bucket{}
	idx := make(map[string]int)
	for _, r := range records {
		i, ok := idx[r.Category()]
		if !ok {
			i = len(out)
			idx[r.Category()] = i
			out = append(out, Bucket{Label: r.Category()})
		}
		out[i].Count++
	}
	return out
}
