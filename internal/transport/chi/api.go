package chi

import "github.com/kailas-cloud/dinedash/internal/render"

// ErrorCode is the machine-readable error kind in error responses.
type ErrorCode string

// Error codes.
const (
	ErrorCodeBadRequest         ErrorCode = "bad_request"
	ErrorCodeUnauthorized       ErrorCode = "unauthorized"
	ErrorCodeValidationFailed   ErrorCode = "validation_failed"
	ErrorCodeNotFound           ErrorCode = "not_found"
	ErrorCodeSessionNotFound    ErrorCode = "session_not_found"
	ErrorCodeRecordsUnavailable ErrorCode = "records_unavailable"
	ErrorCodeInternalError      ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// ValueRequest carries a single filter, sort or search value.
type ValueRequest struct {
	Value string `json:"value"`
}

// OpenDialogRequest optionally selects the restaurant shown in the dialog.
type OpenDialogRequest struct {
	Restaurant string `json:"restaurant,omitempty"`
}

// OutsideRequest identifies the element an outside click landed on.
type OutsideRequest struct {
	Target string `json:"target"`
}

// SessionResponse is returned when a session is created.
type SessionResponse struct {
	ID string `json:"id"`
}

// SearchResponse acknowledges a debounced search keystroke.
type SearchResponse struct {
	Pending string `json:"pending"`
}

// DialogsResponse is the dialog state of a session.
type DialogsResponse struct {
	Dialogs      []string `json:"dialogs"`
	ScrollLocked bool     `json:"scroll_locked"`
}

// RestaurantsResponse is a computed view.
type RestaurantsResponse struct {
	Restaurants  []render.Card `json:"restaurants"`
	Count        int           `json:"count"`
	ResultsLabel string        `json:"results_label"`
	EmptyMessage string        `json:"empty_message,omitempty"`
	Suggestion   string        `json:"suggestion,omitempty"`
	Loaded       bool          `json:"loaded"`
}

// AggregatesResponse holds the three aggregate sections.
type AggregatesResponse struct {
	TopByCategory []render.TopEntry `json:"top_by_category"`
	AwardWinners  []render.Entry    `json:"award_winners"`
	Closed        []render.Entry    `json:"closed"`
}

// ListResponse is a list of filter options.
type ListResponse struct {
	Items []string `json:"items"`
}

// HealthResponse reports readiness.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
