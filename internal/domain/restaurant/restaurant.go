package restaurant

import (
	"fmt"
	"math"
	"strings"

	"github.com/kailas-cloud/dinedash/internal/domain"
)

// MaxRating is the upper bound of the rating scale.
const MaxRating = 5.0

// Params carries the attributes of a restaurant record.
type Params struct {
	Name       string
	Category   string
	City       string
	Location   string
	Hours      string
	Status     Status
	Rank       int
	Rating     float64
	Michelin   Award
	JamesBeard Award
	Notes      string
}

// Record is one restaurant's static attribute set (immutable value object).
type Record struct {
	name       string
	category   string
	city       string
	location   string
	hours      string
	status     Status
	rank       int
	rating     float64
	michelin   Award
	jamesBeard Award
	notes      string
}

// New validates and creates a Record.
// Name: non-empty. Status: Open or Closed. Rank: >= 0 (0 = unranked). Rating: [0, 5].
func New(p Params) (Record, error) {
	if strings.TrimSpace(p.Name) == "" {
		return Record{}, fmt.Errorf("%w: restaurant name is required", domain.ErrInvalidRecord)
	}
	if !p.Status.IsValid() {
		return Record{}, fmt.Errorf("%w: restaurant %q: status must be %q or %q, got %q", domain.ErrInvalidRecord, p.Name, Open, Closed, p.Status)
	}
	if p.Rank < 0 {
		return Record{}, fmt.Errorf("%w: restaurant %q: rank must be >= 0, got %d", domain.ErrInvalidRecord, p.Name, p.Rank)
	}
	if math.IsNaN(p.Rating) || p.Rating < 0 || p.Rating > MaxRating {
		return Record{}, fmt.Errorf("%w: restaurant %q: rating must be between 0 and %.0f, got %v", domain.ErrInvalidRecord, p.Name, MaxRating, p.Rating)
	}
	return Reconstruct(p), nil
}

// Reconstruct creates a Record without validation (data source hydration).
func Reconstruct(p Params) Record {
	return Record{
		name:       p.Name,
		category:   p.Category,
		city:       p.City,
		location:   p.Location,
		hours:      p.Hours,
		status:     p.Status,
		rank:       p.Rank,
		rating:     p.Rating,
		michelin:   p.Michelin,
		jamesBeard: p.JamesBeard,
		notes:      p.Notes,
	}
}

// Name returns the display name.
func (r Record) Name() string { return r.name }

// Category returns the cuisine category.
func (r Record) Category() string { return r.category }

// City returns the city.
func (r Record) City() string { return r.city }

// Location returns the free-text location; may be empty.
func (r Record) Location() string { return r.location }

// Hours returns the free-text opening hours.
func (r Record) Hours() string { return r.hours }

// Status returns the operating status.
func (r Record) Status() Status { return r.status }

// Rank returns the 1-based rank within the category; 0 means unranked.
func (r Record) Rank() int { return r.rank }

// Rating returns the rating in [0, 5].
func (r Record) Rating() float64 { return r.rating }

// Michelin returns the Michelin award.
func (r Record) Michelin() Award { return r.michelin }

// JamesBeard returns the James Beard award.
func (r Record) JamesBeard() Award { return r.jamesBeard }

// Notes returns the free-text notes; may be empty.
func (r Record) Notes() string { return r.notes }

// IsOpen reports whether the restaurant is open.
func (r Record) IsOpen() bool { return r.status == Open }

// IsRanked reports whether the record carries a positive rank.
func (r Record) IsRanked() bool { return r.rank > 0 }

// HasAward reports whether either award is truthy.
func (r Record) HasAward() bool {
	return r.michelin.IsAwarded() || r.jamesBeard.IsAwarded()
}

// IsTopOfCategory reports whether the record is the open rank-1 entry of its category.
func (r Record) IsTopOfCategory() bool {
	return r.status == Open && r.rank == 1
}

// Params returns a copy of the record attributes.
func (r Record) Params() Params {
	return Params{
		Name:       r.name,
		Category:   r.category,
		City:       r.city,
		Location:   r.location,
		Hours:      r.hours,
		Status:     r.status,
		Rank:       r.rank,
		Rating:     r.rating,
		Michelin:   r.michelin,
		JamesBeard: r.jamesBeard,
		Notes:      r.notes,
	}
}
