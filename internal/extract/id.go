package extract

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// IDKeys are the field names a card identifier has been seen under,
// probed in order. First match wins; later keys are not merged in.
var IDKeys = []string{"id", "cardId", "tradingCardId", "productId", "item_id"}

// CardID extracts a card identifier from a response item and renders it
// as a string. Numeric IDs come back without a decimal point (the API
// mixes string and number IDs across endpoints). Returns false when no
// known ID field is present.
func CardID(item map[string]any) (string, bool) {
	return CardIDWithKeys(item, IDKeys)
}

// CardIDWithKeys is CardID with a caller-supplied probe table.
func CardIDWithKeys(item map[string]any, keys []string) (string, bool) {
	for _, key := range keys {
		v, ok := item[key]
		if !ok {
			continue
		}
		switch id := v.(type) {
		case string:
			return id, true
		case float64:
			return strconv.FormatFloat(id, 'f', -1, 64), true
		case json.Number:
			return id.String(), true
		case int:
			return strconv.Itoa(id), true
		case nil:
			// A null ID is useless downstream; treat the key as absent
			// and keep probing.
			continue
		default:
			return fmt.Sprintf("%v", id), true
		}
	}
	return "", false
}
