package extract

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// PriceKeyHints mark a key as price-like when its lowercase form contains
// any of them as a substring.
var PriceKeyHints = []string{"price", "amount", "value"}

// currency glyphs and separators stripped before string coercion.
var priceCleaner = strings.NewReplacer(",", "", "¥", "", "$", "")

// SkipReason says why a price-like value was not recorded.
type SkipReason string

const (
	// SkipUnparseable marks a string under a price-like key that did not
	// coerce to a number.
	SkipUnparseable SkipReason = "unparseable"
	// SkipNonPositive marks a value of zero or below; listings never cost
	// nothing, so these are schema noise.
	SkipNonPositive SkipReason = "non-positive"
)

// Skip is one price-like value the walk classified but refused to record.
// Kept on the summary so the walker's behavior stays auditable instead of
// silently swallowing bad values.
type Skip struct {
	Key    string
	Raw    string
	Reason SkipReason
}

// Summary aggregates every monetary value found in one walk. Lowest,
// Highest and Average are only meaningful when All is non-empty; an empty
// All is the "no listings" case, not an error.
type Summary struct {
	Lowest  float64   `json:"lowest_price"`
	Highest float64   `json:"highest_price"`
	Average float64   `json:"average_price"`
	All     []float64 `json:"all_prices"`
	Skipped []Skip    `json:"-"`
}

// HasPrices reports whether the walk recorded at least one price.
func (s *Summary) HasPrices() bool {
	return len(s.All) > 0
}

// Prices walks the whole JSON tree depth-first and records every positive
// numeric value sitting under a price-like key, whatever its depth. String
// values are coerced after stripping thousands separators and currency
// glyphs. The walk descends into every object value and array element, so
// prices nested under unrelated keys are still found, and it never fails:
// one bad value becomes a Skip entry, not an abort.
//
// The tradeoff is deliberate: an unrelated numeric field whose key happens
// to contain "value" gets counted, but the scan keeps working when the
// upstream schema drifts.
func Prices(root any) Summary {
	return PricesWithHints(root, PriceKeyHints)
}

// PricesWithHints is Prices with a caller-supplied hint table.
func PricesWithHints(root any, hints []string) Summary {
	var s Summary
	walkPrices(root, hints, &s)

	if len(s.All) > 0 {
		s.Lowest = s.All[0]
		s.Highest = s.All[0]
		var total float64
		for _, p := range s.All {
			total += p
			if p < s.Lowest {
				s.Lowest = p
			}
			if p > s.Highest {
				s.Highest = p
			}
		}
		s.Average = total / float64(len(s.All))
	}

	return s
}

func walkPrices(node any, hints []string, s *Summary) {
	switch v := node.(type) {
	case map[string]any:
		// Sorted keys keep the recording order deterministic; Go maps
		// would otherwise shuffle All between runs.
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			if priceKey(k, hints) {
				record(k, v[k], s)
			}
		}
		for _, k := range keys {
			walkPrices(v[k], hints, s)
		}
	case []any:
		for _, elem := range v {
			walkPrices(elem, hints, s)
		}
	}
}

func priceKey(key string, hints []string) bool {
	lower := strings.ToLower(key)
	for _, hint := range hints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}

// record classifies one value under a price-like key. Nested structures
// are not classified here; the caller descends into them regardless.
func record(key string, value any, s *Summary) {
	switch v := value.(type) {
	case float64:
		recordNumber(key, v, s)
	case int:
		recordNumber(key, float64(v), s)
	case json.Number:
		if f, err := v.Float64(); err == nil {
			recordNumber(key, f, s)
		}
	case string:
		cleaned := strings.TrimSpace(priceCleaner.Replace(v))
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			s.Skipped = append(s.Skipped, Skip{Key: key, Raw: v, Reason: SkipUnparseable})
			return
		}
		recordNumber(key, f, s)
	}
}

func recordNumber(key string, f float64, s *Summary) {
	if f <= 0 {
		s.Skipped = append(s.Skipped, Skip{Key: key, Raw: strconv.FormatFloat(f, 'f', -1, 64), Reason: SkipNonPositive})
		return
	}
	s.All = append(s.All, f)
}
