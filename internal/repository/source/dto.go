package source

import (
	"encoding/json"
	"fmt"

	"github.com/kailas-cloud/dinedash/internal/domain/restaurant"
)

// document is the shape of the data resource: {"restaurants": [...]}.
type document struct {
	Restaurants []recordDTO `json:"restaurants"`
}

// recordDTO mirrors one entry of the data resource. Absent optional
// strings decode to "" and absent awards decode to the None variant.
type recordDTO struct {
	Name       string           `json:"name"`
	Category   string           `json:"category"`
	City       string           `json:"city"`
	Location   string           `json:"location"`
	Hours      string           `json:"hours"`
	Status     string           `json:"status"`
	Rank       int              `json:"rank"`
	Rating     float64          `json:"rating"`
	Michelin   restaurant.Award `json:"michelin"`
	JamesBeard restaurant.Award `json:"james_beard"`
	Notes      string           `json:"notes"`
}

func (d recordDTO) toRecord() restaurant.Record {
	return restaurant.Reconstruct(restaurant.Params{
		Name:       d.Name,
		Category:   d.Category,
		City:       d.City,
		Location:   d.Location,
		Hours:      d.Hours,
		Status:     restaurant.ParseStatus(d.Status),
		Rank:       d.Rank,
		Rating:     d.Rating,
		Michelin:   d.Michelin,
		JamesBeard: d.JamesBeard,
		Notes:      d.Notes,
	})
}

func dtoFromRecord(r restaurant.Record) recordDTO {
	return recordDTO{
		Name:       r.Name(),
		Category:   r.Category(),
		City:       r.City(),
		Location:   r.Location(),
		Hours:      r.Hours(),
		Status:     string(r.Status()),
		Rank:       r.Rank(),
		Rating:     r.Rating(),
		Michelin:   r.Michelin(),
		JamesBeard: r.JamesBeard(),
		Notes:      r.Notes(),
	}
}

// Decode parses a data resource into records, keeping document order.
// Records are hydrated as-is; nothing is rejected for missing fields.
func Decode(data []byte) ([]restaurant.Record, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode restaurants document: %w", err)
	}
	out := make([]restaurant.Record, len(doc.Restaurants))
	for i, d := range doc.Restaurants {
		out[i] = d.toRecord()
	}
	return out, nil
}

// Encode renders records in the data resource shape.
func Encode(records []restaurant.Record) ([]byte, error) {
	doc := document{Restaurants: make([]recordDTO, len(records))}
	for i, r := range records {
		doc.Restaurants[i] = dtoFromRecord(r)
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode restaurants document: %w", err)
	}
	return data, nil
}
