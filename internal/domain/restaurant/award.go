package restaurant

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// AwardKind distinguishes the three shapes an award field can take.
type AwardKind int

// Award kinds.
const (
	// AwardNone means no award (source value false, null, or an empty string).
	AwardNone AwardKind = iota
	// AwardPlain means awarded without tier detail (source value true).
	AwardPlain
	// AwardTiered means awarded with a named tier (source value is a non-empty string).
	AwardTiered
)

// Award is a tagged variant: None, Awarded, or AwardedWithTier(tier).
type Award struct {
	kind AwardKind
	tier string
}

// NoAward returns the None variant.
func NoAward() Award { return Award{} }

// Awarded returns the Awarded variant (no tier detail).
func Awarded() Award { return Award{kind: AwardPlain} }

// AwardedWithTier returns the tiered variant. An empty tier collapses to NoAward.
func AwardedWithTier(tier string) Award {
	if tier == "" {
		return Award{}
	}
	return Award{kind: AwardTiered, tier: tier}
}

// Kind returns the variant tag.
func (a Award) Kind() AwardKind { return a.kind }

// Tier returns the tier name; empty unless Kind is AwardTiered.
func (a Award) Tier() string { return a.tier }

// IsAwarded reports whether the award is truthy (plain or tiered).
func (a Award) IsAwarded() bool { return a.kind != AwardNone }

// MarshalJSON writes the source tri-state shape back: false, true, or the tier string.
func (a Award) MarshalJSON() ([]byte, error) {
	switch a.kind {
	case AwardPlain:
		return []byte("true"), nil
	case AwardTiered:
		return json.Marshal(a.tier)
	default:
		return []byte("false"), nil
	}
}

// UnmarshalJSON accepts false, true, null, or a string.
// Any other JSON value is treated as no award.
func (a *Award) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*a = NoAward()
		return nil
	}

	switch data[0] {
	case 't':
		*a = Awarded()
	case '"':
		var tier string
		if err := json.Unmarshal(data, &tier); err != nil {
			return fmt.Errorf("decode award tier: %w", err)
		}
		*a = AwardedWithTier(tier)
	default:
		*a = NoAward()
	}
	return nil
}
