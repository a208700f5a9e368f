package model

import "time"

// Card is the loosely-structured record for one tradable card. The upstream
// API guarantees none of these fields, so every one may be zero; Raw keeps
// the verbatim response object for anything the typed fields don't cover.
type Card struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Number   string         `json:"number"`
	SetName  string         `json:"setName"`
	ImageURL string         `json:"imageUrl"`
	Raw      map[string]any `json:"raw,omitempty"`
}

// SaleRecord is one completed sale observed on the used page.
type SaleRecord struct {
	PriceUSD int       `json:"price_usd"`
	SeenAt   time.Time `json:"seen_at"`
}

// FromRaw builds a Card from a verbatim response item. Field access is
// best-effort: the set name falls back from setName to series, the image
// from imageUrl to image to thumbnailUrl, matching what the endpoints
// actually return across schema versions.
func FromRaw(item map[string]any) Card {
	c := Card{Raw: item}
	c.Name = stringField(item, "name")
	c.Number = stringField(item, "number")
	c.SetName = stringField(item, "setName", "series")
	c.ImageURL = stringField(item, "imageUrl", "image", "thumbnailUrl")
	return c
}

func stringField(item map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := item[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
