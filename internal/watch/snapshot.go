package watch

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/guarzo/snkrsearch/internal/extract"
)

// Snapshot is a point-in-time capture of the tracked cards' prices.
type Snapshot struct {
	Timestamp time.Time                `json:"timestamp"`
	Cards     map[string]*CardSnapshot `json:"cards"`
}

// CardSnapshot holds one card's price summary at capture time.
type CardSnapshot struct {
	CardID       string  `json:"card_id"`
	LowestPrice  float64 `json:"lowest_price"`
	HighestPrice float64 `json:"highest_price"`
	AveragePrice float64 `json:"average_price"`
	ListingCount int     `json:"listing_count"`
}

// LoadSnapshot loads a snapshot from a JSON file.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}

	return &snapshot, nil
}

// SaveSnapshot saves a snapshot to a JSON file.
func SaveSnapshot(path string, snapshot *Snapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	return nil
}

// NewSnapshot builds a snapshot from per-card price summaries. Cards
// whose walk found no prices are captured with a zero listing count so a
// later diff can tell "delisted" from "never seen".
func NewSnapshot(summaries map[string]extract.Summary) *Snapshot {
	snapshot := &Snapshot{
		Timestamp: time.Now(),
		Cards:     make(map[string]*CardSnapshot, len(summaries)),
	}

	for cardID, s := range summaries {
		snapshot.Cards[cardID] = &CardSnapshot{
			CardID:       cardID,
			LowestPrice:  s.Lowest,
			HighestPrice: s.Highest,
			AveragePrice: s.Average,
			ListingCount: len(s.All),
		}
	}

	return snapshot
}

// Change is one card's movement between two snapshots.
type Change struct {
	CardID      string  `json:"card_id"`
	OldLowest   float64 `json:"old_lowest"`
	NewLowest   float64 `json:"new_lowest"`
	DeltaPct    float64 `json:"delta_pct"`
	Appeared    bool    `json:"appeared"`
	Disappeared bool    `json:"disappeared"`
}

// Diff compares two snapshots and reports every card whose lowest price
// moved, appeared, or disappeared.
func Diff(prev, curr *Snapshot) []Change {
	var changes []Change

	for cardID, now := range curr.Cards {
		before, ok := prev.Cards[cardID]
		if !ok || before.ListingCount == 0 {
			if now.ListingCount > 0 {
				changes = append(changes, Change{CardID: cardID, NewLowest: now.LowestPrice, Appeared: true})
			}
			continue
		}
		if now.ListingCount == 0 {
			changes = append(changes, Change{CardID: cardID, OldLowest: before.LowestPrice, Disappeared: true})
			continue
		}
		if now.LowestPrice != before.LowestPrice {
			changes = append(changes, Change{
				CardID:    cardID,
				OldLowest: before.LowestPrice,
				NewLowest: now.LowestPrice,
				DeltaPct:  (now.LowestPrice - before.LowestPrice) / before.LowestPrice * 100,
			})
		}
	}

	return changes
}
