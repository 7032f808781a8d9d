package render

import (
	"github.com/kailas-cloud/dinedash/internal/domain/query"
	"github.com/kailas-cloud/dinedash/internal/domain/restaurant"
	"github.com/kailas-cloud/dinedash/internal/usecase/view"
)

// QueryModel is the query as shown to the user.
type QueryModel struct {
	Category string `json:"category"`
	City     string `json:"city"`
	Status   string `json:"status"`
	Awards   string `json:"awards"`
	Search   string `json:"search"`
	Sort     string `json:"sort"`
}

// NewQueryModel flattens q.
func NewQueryModel(q query.Query) QueryModel {
	return QueryModel{
		Category: q.Category,
		City:     q.City,
		Status:   string(q.Status),
		Awards:   string(q.Awards),
		Search:   q.Search,
		Sort:     string(q.SortOrDefault()),
	}
}

// Dashboard is the full page model.
type Dashboard struct {
	SessionID    string     `json:"session_id,omitempty"`
	Loaded       bool       `json:"loaded"`
	Query        QueryModel `json:"query"`
	Count        int        `json:"count"`
	ResultsLabel string     `json:"results_label"`
	EmptyMessage string     `json:"empty_message,omitempty"`
	Suggestion   string     `json:"suggestion,omitempty"`
	Cards        []Card     `json:"restaurants"`
	Top          []TopEntry `json:"top_by_category"`
	AwardWinners []Entry    `json:"award_winners"`
	Closed       []Entry    `json:"closed"`
	Categories   []string   `json:"categories"`
	Cities       []string   `json:"cities"`
	Distribution []Bucket   `json:"distribution"`
	Dialogs      []string   `json:"dialogs"`
	ScrollLocked bool       `json:"scroll_locked"`
	Detail       *Detail    `json:"detail,omitempty"`
}

// Input gathers what a dashboard is built from.
type Input struct {
	SessionID    string
	Query        query.Query
	Result       view.Result
	Aggregates   view.Aggregates
	Dialogs      []string
	ScrollLocked bool
	Selected     *restaurant.Record
	TopLimit     int
}

// Build assembles the page model.
func Build(in Input) Dashboard {
	limit := in.TopLimit
	if limit <= 0 {
		limit = TopLimit
	}
	items := in.Result.View.Items()
	d := Dashboard{
		SessionID:    in.SessionID,
		Loaded:       in.Result.Loaded,
		Query:        NewQueryModel(in.Query),
		Count:        len(items),
		ResultsLabel: ResultsLabel(len(items)),
		Suggestion:   in.Result.Suggestion,
		Cards:        Cards(items),
		Top:          Top(in.Aggregates.TopByCategory, limit),
		AwardWinners: AwardEntries(in.Aggregates.AwardWinners),
		Closed:       ClosedEntries(in.Aggregates.Closed),
		Categories:   nonNil(in.Aggregates.Categories),
		Cities:       nonNil(in.Aggregates.Cities),
		Distribution: Distribution(items),
		Dialogs:      nonNil(in.Dialogs),
		ScrollLocked: in.ScrollLocked,
	}
	if len(items) == 0 {
		d.EmptyMessage = NoResultsMessage
	}
	if in.Selected != nil {
		detail := NewDetail(*in.Selected)
		d.Detail = &detail
	}
	return d
}

// IsOpen reports whether dialog id is open on the page.
func (d Dashboard) IsOpen(id string) bool {
	for _, v := range d.Dialogs {
		if v == id {
			return true
		}
	}
	return false
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
