// Package watch refreshes tracked card prices on a cron schedule and
// keeps a JSON snapshot on disk for diffing between runs.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/robfig/cron/v3"

	"github.com/guarzo/snkrsearch/internal/concurrent"
	"github.com/guarzo/snkrsearch/internal/extract"
	"github.com/guarzo/snkrsearch/internal/snkrdunk"
)

// Watcher periodically re-fetches prices for a fixed set of card IDs.
type Watcher struct {
	provider     snkrdunk.Provider
	fetcher      *concurrent.PriceFetcher
	cardIDs      []string
	snapshotPath string
	cron         *cron.Cron
	onChanges    func([]Change)
	debug        bool
}

func NewWatcher(provider snkrdunk.Provider, fetcher *concurrent.PriceFetcher, cardIDs []string, snapshotPath string) *Watcher {
	return &Watcher{
		provider:     provider,
		fetcher:      fetcher,
		cardIDs:      cardIDs,
		snapshotPath: snapshotPath,
		cron:         cron.New(),
	}
}

// OnChanges registers a callback invoked with the diff after each refresh
// that produced changes.
func (w *Watcher) OnChanges(fn func([]Change)) {
	w.onChanges = fn
}

// SetDebug enables debug logging.
func (w *Watcher) SetDebug(debug bool) {
	w.debug = debug
}

// Start schedules refreshes on the given cron spec ("@every 30m",
// "0 */2 * * *", ...) and runs one refresh immediately. Stop with Stop.
func (w *Watcher) Start(ctx context.Context, spec string) error {
	if _, err := w.cron.AddFunc(spec, func() {
		if err := w.RefreshOnce(ctx); err != nil {
			log.Printf("watch: refresh failed: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("bad cron spec %q: %w", spec, err)
	}

	if err := w.RefreshOnce(ctx); err != nil {
		log.Printf("watch: initial refresh failed: %v", err)
	}

	w.cron.Start()
	return nil
}

// Stop halts the schedule; a refresh in flight finishes first.
func (w *Watcher) Stop() {
	<-w.cron.Stop().Done()
}

// RefreshOnce fetches every tracked card, writes a new snapshot, and
// reports the diff against the previous one. A card whose fetch failed
// keeps its previous reading, so a transient error does not erase the
// baseline and resurface the card as newly listed on the next refresh.
func (w *Watcher) RefreshOnce(ctx context.Context) error {
	prev, err := LoadSnapshot(w.snapshotPath)
	if err != nil {
		prev = nil
		if !errors.Is(err, os.ErrNotExist) && w.debug {
			log.Printf("watch: previous snapshot unreadable: %v", err)
		}
	}

	results := w.fetcher.FetchSummaries(ctx, w.cardIDs, w.provider)

	summaries := make(map[string]extract.Summary, len(results))
	var failed []string
	for cardID, r := range results {
		if r.Error != nil {
			log.Printf("watch: card %s: %v", cardID, r.Error)
			failed = append(failed, cardID)
			continue
		}
		summaries[cardID] = r.Summary
	}

	curr := NewSnapshot(summaries)

	if prev != nil {
		for _, cardID := range failed {
			if before, ok := prev.Cards[cardID]; ok {
				curr.Cards[cardID] = before
			}
		}

		if changes := Diff(prev, curr); len(changes) > 0 {
			if w.debug {
				for _, ch := range changes {
					log.Printf("watch: %s lowest %v -> %v (%.1f%%)", ch.CardID, ch.OldLowest, ch.NewLowest, ch.DeltaPct)
				}
			}
			if w.onChanges != nil {
				w.onChanges(changes)
			}
		}
	}

	return SaveSnapshot(w.snapshotPath, curr)
}
