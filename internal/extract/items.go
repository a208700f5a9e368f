// Package extract locates card lists and price data inside the
// unpredictably-shaped JSON that the SNKRDUNK endpoints return. The
// upstream schema is undocumented and drifts between endpoint versions,
// so everything here is best-effort probing over decoded JSON values:
// misses come back as empty results, never as errors.
package extract

// Probe-key tables. Ordered: the first key holding an array wins, even
// when a later key would match more items. Kept as package configuration
// so new response shapes can be handled without touching traversal code.
var (
	// ItemKeys is probed on the top-level response object.
	ItemKeys = []string{"items", "list", "data", "results", "cards", "products"}

	// NestedItemKeys is probed one level down, under a "data" object.
	NestedItemKeys = []string{"items", "list", "results", "cards"}
)

// Items returns the most likely list of result items inside root, probing
// ItemKeys on the top-level object and NestedItemKeys under root["data"].
// Items are returned verbatim, in response order, with no validation or
// deduplication. A miss is an empty slice, never nil-pointer trouble and
// never an error, whatever shape root has.
func Items(root any) []any {
	return ItemsWithKeys(root, ItemKeys, NestedItemKeys)
}

// ItemsWithKeys is Items with caller-supplied probe tables.
func ItemsWithKeys(root any, top, nested []string) []any {
	obj, ok := root.(map[string]any)
	if !ok {
		return []any{}
	}

	if list, ok := probeList(obj, top); ok {
		return list
	}

	// Some endpoint versions wrap the payload one level deeper.
	if inner, ok := obj["data"].(map[string]any); ok {
		if list, ok := probeList(inner, nested); ok {
			return list
		}
	}

	return []any{}
}

func probeList(obj map[string]any, keys []string) ([]any, bool) {
	for _, key := range keys {
		if list, ok := obj[key].([]any); ok {
			return list, true
		}
	}
	return nil, false
}
