// Package concurrent fans price lookups out over a bounded worker pool.
// The extractors are pure functions, so running one per card in parallel
// needs no locking; only the upstream rate limit bounds throughput.
package concurrent

import (
	"context"
	"runtime"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/guarzo/snkrsearch/internal/extract"
	"github.com/guarzo/snkrsearch/internal/snkrdunk"
)

// Result carries one card's price summary, or the error that prevented it.
type Result struct {
	CardID  string
	Summary extract.Summary
	Error   error
}

// FetcherConfig bounds the pool.
type FetcherConfig struct {
	Workers   int           // concurrent workers, default min(NumCPU, 4)
	RateLimit rate.Limit    // requests per second across all workers
	Timeout   time.Duration // per-card timeout
	PerPage   int           // listings requested per card

	// OnProgress, when set, is called after each card completes.
	OnProgress func(completed, total int)
}

// PriceFetcher fetches used-listing prices for many cards at once.
type PriceFetcher struct {
	workers    int
	rateLimit  *rate.Limiter
	timeout    time.Duration
	perPage    int
	onProgress func(completed, total int)
}

func NewPriceFetcher(config FetcherConfig) *PriceFetcher {
	workers := config.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
		if workers > 4 {
			workers = 4 // stay polite to the storefront
		}
	}

	rateLimit := config.RateLimit
	if rateLimit == 0 {
		rateLimit = rate.Limit(2)
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	perPage := config.PerPage
	if perPage == 0 {
		perPage = 16
	}

	return &PriceFetcher{
		workers:    workers,
		rateLimit:  rate.NewLimiter(rateLimit, workers),
		timeout:    timeout,
		perPage:    perPage,
		onProgress: config.OnProgress,
	}
}

// FetchSummaries fetches used listings for every card ID and reduces each
// response to a price summary. Results are keyed by card ID; order is not
// preserved. Individual failures land in the per-card Error, never abort
// the batch.
func (f *PriceFetcher) FetchSummaries(ctx context.Context, cardIDs []string, provider snkrdunk.Provider) map[string]Result {
	// Results are keyed by card ID, so a duplicate input would leave the
	// collect loop waiting on a result that never comes. Fetch each
	// distinct ID once.
	seen := make(map[string]struct{}, len(cardIDs))
	ids := make([]string, 0, len(cardIDs))
	for _, id := range cardIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil
	}

	jobs := make(chan string, len(ids))
	results := make(chan Result, len(ids))

	var wg sync.WaitGroup
	for w := 0; w < f.workers; w++ {
		wg.Add(1)
		go f.worker(ctx, jobs, results, provider, &wg)
	}

	for _, id := range ids {
		jobs <- id
	}
	close(jobs)

	out := make(map[string]Result, len(ids))
	for len(out) < len(ids) {
		select {
		case r := <-results:
			out[r.CardID] = r
			if f.onProgress != nil {
				f.onProgress(len(out), len(ids))
			}
		case <-ctx.Done():
			wg.Wait()
			return out
		}
	}

	wg.Wait()
	close(results)
	return out
}

func (f *PriceFetcher) worker(ctx context.Context, jobs <-chan string, results chan<- Result, provider snkrdunk.Provider, wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		select {
		case cardID, ok := <-jobs:
			if !ok {
				return
			}

			if err := f.rateLimit.Wait(ctx); err != nil {
				results <- Result{CardID: cardID, Error: err}
				continue
			}

			results <- f.fetchOne(ctx, cardID, provider)

		case <-ctx.Done():
			return
		}
	}
}

func (f *PriceFetcher) fetchOne(ctx context.Context, cardID string, provider snkrdunk.Provider) Result {
	fetchCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	data, err := provider.UsedListings(fetchCtx, cardID, 1, f.perPage)
	if err != nil {
		return Result{CardID: cardID, Error: err}
	}

	return Result{CardID: cardID, Summary: extract.Prices(data)}
}
