package restaurant

import "strings"

// Status is the operating status of a restaurant.
type Status string

// Status constants.
const (
	Open   Status = "Open"
	Closed Status = "Closed"
)

// IsValid checks if the status is one of the supported values.
func (s Status) IsValid() bool {
	return s == Open || s == Closed
}

// ParseStatus maps a raw status case-insensitively ("CLOSED" -> Closed).
// Unknown values are kept verbatim so exact-match filtering still sees them.
func ParseStatus(raw string) Status {
	switch {
	case strings.EqualFold(raw, string(Open)):
		return Open
	case strings.EqualFold(raw, string(Closed)):
		return Closed
	default:
		return Status(raw)
	}
}
