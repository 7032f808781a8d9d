package restaurant

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/kailas-cloud/dinedash/internal/domain"
)

func validParams() Params {
	return Params{
		Name:     "Sushi Den",
		Category: "Sushi",
		City:     "Denver",
		Status:   Open,
		Rank:     1,
		Rating:   4.5,
		Michelin: Awarded(),
	}
}

func TestNew_Valid(t *testing.T) {
	r, err := New(validParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Name() != "Sushi Den" {
		t.Errorf("Name() = %q", r.Name())
	}
	if !r.IsTopOfCategory() {
		t.Error("expected open rank-1 record to be top of category")
	}
	if !r.HasAward() {
		t.Error("expected HasAward() for michelin=true")
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Params)
		substr string
	}{
		{"empty name", func(p *Params) { p.Name = "  " }, "name is required"},
		{"bad status", func(p *Params) { p.Status = "Maybe" }, "status must be"},
		{"negative rank", func(p *Params) { p.Rank = -1 }, "rank must be"},
		{"rating above 5", func(p *Params) { p.Rating = 5.1 }, "rating must be"},
		{"rating below 0", func(p *Params) { p.Rating = -0.1 }, "rating must be"},
		{"rating NaN", func(p *Params) { p.Rating = math.NaN() }, "rating must be"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)
			_, err := New(p)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, domain.ErrInvalidRecord) {
				t.Errorf("expected ErrInvalidRecord, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.substr) {
				t.Errorf("error = %q, want substring %q", err, tt.substr)
			}
		})
	}
}

func TestReconstruct_SkipsValidation(t *testing.T) {
	r := Reconstruct(Params{Rank: -3, Status: "weird"})
	if r.Rank() != -3 || r.Status() != "weird" {
		t.Errorf("Reconstruct must keep raw values, got rank=%d status=%q", r.Rank(), r.Status())
	}
}

func TestIsTopOfCategory_ClosedRankOne(t *testing.T) {
	p := validParams()
	p.Status = Closed
	r := Reconstruct(p)
	if r.IsTopOfCategory() {
		t.Error("closed rank-1 record must not be top of category")
	}
}

func TestParams_RoundTrip(t *testing.T) {
	p := validParams()
	p.Notes = "omakase"
	r := Reconstruct(p)
	if got := r.Params(); got != p {
		t.Errorf("Params() = %+v, want %+v", got, p)
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want Status
	}{
		{"Open", Open},
		{"open", Open},
		{"CLOSED", Closed},
		{"Closed", Closed},
		{"Temporarily closed", Status("Temporarily closed")},
		{"", Status("")},
	}
	for _, tc := range tests {
		if got := ParseStatus(tc.raw); got != tc.want {
			t.Errorf("ParseStatus(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestAward_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in       string
		wantKind AwardKind
		wantTier string
	}{
		{`false`, AwardNone, ""},
		{`true`, AwardPlain, ""},
		{`null`, AwardNone, ""},
		{`""`, AwardNone, ""},
		{`"One Star"`, AwardTiered, "One Star"},
		{`3`, AwardNone, ""},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			var a Award
			if err := json.Unmarshal([]byte(tc.in), &a); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if a.Kind() != tc.wantKind {
				t.Errorf("Kind() = %v, want %v", a.Kind(), tc.wantKind)
			}
			if a.Tier() != tc.wantTier {
				t.Errorf("Tier() = %q, want %q", a.Tier(), tc.wantTier)
			}
			if a.IsAwarded() != (tc.wantKind != AwardNone) {
				t.Errorf("IsAwarded() = %v", a.IsAwarded())
			}
		})
	}
}

func TestAward_MarshalJSON(t *testing.T) {
	tests := []struct {
		award Award
		want  string
	}{
		{NoAward(), `false`},
		{Awarded(), `true`},
		{AwardedWithTier("Bib Gourmand"), `"Bib Gourmand"`},
		{AwardedWithTier(""), `false`},
	}
	for _, tc := range tests {
		got, err := json.Marshal(tc.award)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(got) != tc.want {
			t.Errorf("Marshal(%+v) = %s, want %s", tc.award, got, tc.want)
		}
	}
}
