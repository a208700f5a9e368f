package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/time/rate"

	"github.com/guarzo/snkrsearch/internal/app"
	"github.com/guarzo/snkrsearch/internal/concurrent"
	"github.com/guarzo/snkrsearch/internal/config"
	"github.com/guarzo/snkrsearch/internal/model"
	"github.com/guarzo/snkrsearch/internal/progress"
	"github.com/guarzo/snkrsearch/internal/report"
	"github.com/guarzo/snkrsearch/internal/scrape"
	"github.com/guarzo/snkrsearch/internal/session"
	"github.com/guarzo/snkrsearch/internal/snkrdunk"
	"github.com/guarzo/snkrsearch/internal/watch"
)

// go run ./cmd/snkrsearch -mode=search -keyword="Pikachu ex"
// go run ./cmd/snkrsearch -mode=detail -card=135232
// go run ./cmd/snkrsearch -mode=watch -ids=135232,990017
// go run ./cmd/snkrsearch -mode=browse
func main() {
	mode := flag.String("mode", "search", "search, detail, browse or watch")
	keyword := flag.String("keyword", "Pikachu", "search keyword")
	cardID := flag.String("card", "", "card ID for detail mode")
	page := flag.Int("page", 1, "result page")
	perPage := flag.Int("per-page", 20, "results per page")
	idsArg := flag.String("ids", "", "card IDs for watch mode, comma separated")
	csvPath := flag.String("csv", "", "write search results with prices to this CSV file")
	mock := flag.Bool("mock", false, "use canned responses instead of the live API")
	flag.Parse()

	cfg := config.Load()

	var provider snkrdunk.Provider
	if *mock {
		provider = &snkrdunk.MockProvider{}
	} else {
		provider = snkrdunk.NewClient(cfg.ClientConfig())
	}

	// Mock runs skip the sold-price scrape; it has no offline source.
	var sold app.SoldPriceSource
	if !*mock {
		scraper := scrape.NewUsedPageScraper()
		scraper.SetBaseURL(cfg.BaseURL)
		scraper.SetDebug(cfg.Debug)
		sold = scraper
	}

	a := app.New(provider, sold)
	a.SetDebug(cfg.Debug)

	ctx := context.Background()

	var err error
	switch *mode {
	case "search":
		err = runSearch(ctx, a, provider, cfg, *keyword, *page, *perPage, *csvPath)
	case "detail":
		err = runDetail(ctx, a, *cardID)
	case "browse":
		err = runBrowse(ctx, a, *perPage)
	case "watch":
		err = runWatch(ctx, provider, cfg, *idsArg)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}

	if err != nil {
		log.Fatal(err)
	}
}

func runSearch(ctx context.Context, a *app.App, provider snkrdunk.Provider, cfg *config.Config, keyword string, page, perPage int, csvPath string) error {
	out, err := a.Search(ctx, keyword, page, perPage)
	if err != nil {
		return err
	}

	fmt.Printf("%d cards for %q (via %s)\n\n", len(out.Cards), keyword, out.Endpoint)
	printCards(out.Cards)

	if csvPath == "" {
		return nil
	}

	// Pull a price summary per card and export.
	ids := make([]string, 0, len(out.Cards))
	byID := make(map[string]model.Card, len(out.Cards))
	for _, c := range out.Cards {
		if c.ID != "" {
			ids = append(ids, c.ID)
			byID[c.ID] = c
		}
	}

	bar := progress.WithTotal("fetching prices", len(ids), !cfg.Debug && len(ids) < 5)
	fetcher := concurrent.NewPriceFetcher(concurrent.FetcherConfig{
		RateLimit:  rate.Limit(cfg.RateLimit),
		OnProgress: func(completed, total int) { bar.Update(completed) },
	})
	results := fetcher.FetchSummaries(ctx, ids, provider)
	bar.Finish()

	rows := make([]report.Row, 0, len(results))
	for id, r := range results {
		if r.Error != nil {
			log.Printf("card %s: %v", id, r.Error)
			continue
		}
		rows = append(rows, report.Row{Card: byID[id], Summary: r.Summary})
	}

	f, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", csvPath, err)
	}
	defer f.Close()

	if err := report.WriteCSV(f, rows); err != nil {
		return err
	}
	fmt.Printf("\nwrote %d rows to %s\n", len(rows), csvPath)
	return nil
}

func runDetail(ctx context.Context, a *app.App, cardID string) error {
	if strings.TrimSpace(cardID) == "" {
		return fmt.Errorf("detail mode needs -card")
	}

	d, err := a.CardDetail(ctx, cardID)
	if err != nil {
		return err
	}

	printDetail(d)
	return nil
}

func runBrowse(ctx context.Context, a *app.App, perPage int) error {
	// Interactive loop over the same operations: search results and
	// detail views, with navigation held in an explicit session state.
	state := session.NewState()
	var lastResults []model.Card

	fmt.Println("commands: search <keyword> | open <n> | related <n> | back | quit")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		cmd, arg, _ := strings.Cut(strings.TrimSpace(scanner.Text()), " ")

		switch cmd {
		case "quit", "q":
			return nil

		case "search":
			out, err := a.Search(ctx, arg, 1, perPage)
			if err != nil {
				fmt.Printf("search failed: %v\n", err)
				continue
			}
			lastResults = out.Cards
			state = session.NewState()
			printCards(lastResults)

		case "open", "related":
			n, err := strconv.Atoi(arg)
			if err != nil || n < 1 {
				fmt.Println("usage: open <result number>")
				continue
			}
			var pool []model.Card
			if cmd == "open" {
				pool = lastResults
			} else if d := currentDetail(ctx, a, state); d != nil {
				pool = d.Related
			}
			if n > len(pool) {
				fmt.Println("no such entry")
				continue
			}
			if pool[n-1].ID == "" {
				fmt.Println("entry has no card ID")
				continue
			}
			state = state.Select(pool[n-1].ID)
			if d := currentDetail(ctx, a, state); d != nil {
				printDetail(d)
			}

		case "back":
			state = state.Back()
			if state.View == session.ViewResults {
				printCards(lastResults)
			} else if d := currentDetail(ctx, a, state); d != nil {
				printDetail(d)
			}

		default:
			fmt.Println("commands: search <keyword> | open <n> | related <n> | back | quit")
		}
	}
}

func currentDetail(ctx context.Context, a *app.App, state session.State) *app.Detail {
	if state.View != session.ViewDetail {
		return nil
	}
	d, err := a.CardDetail(ctx, state.SelectedCardID)
	if err != nil {
		fmt.Printf("detail failed: %v\n", err)
		return nil
	}
	return d
}

func runWatch(ctx context.Context, provider snkrdunk.Provider, cfg *config.Config, idsArg string) error {
	if strings.TrimSpace(idsArg) == "" {
		return fmt.Errorf("watch mode needs -ids")
	}
	ids := strings.Split(idsArg, ",")
	for i := range ids {
		ids[i] = strings.TrimSpace(ids[i])
	}

	fetcher := concurrent.NewPriceFetcher(concurrent.FetcherConfig{RateLimit: rate.Limit(cfg.RateLimit)})
	w := watch.NewWatcher(provider, fetcher, ids, cfg.SnapshotPath)
	w.SetDebug(cfg.Debug)
	w.OnChanges(func(changes []watch.Change) {
		for _, ch := range changes {
			switch {
			case ch.Appeared:
				fmt.Printf("%s: listed at %.0f\n", ch.CardID, ch.NewLowest)
			case ch.Disappeared:
				fmt.Printf("%s: no more listings (was %.0f)\n", ch.CardID, ch.OldLowest)
			default:
				fmt.Printf("%s: lowest %.0f -> %.0f (%+.1f%%)\n", ch.CardID, ch.OldLowest, ch.NewLowest, ch.DeltaPct)
			}
		}
	})

	if err := w.Start(ctx, cfg.WatchCron); err != nil {
		return err
	}
	log.Printf("watching %d cards on schedule %q, snapshot at %s", len(ids), cfg.WatchCron, cfg.SnapshotPath)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	w.Stop()
	return nil
}

func printCards(cards []model.Card) {
	for i, c := range cards {
		id := c.ID
		if id == "" {
			id = "?"
		}
		fmt.Printf("%2d. %-30s #%-6s %-20s [%s]\n", i+1, c.Name, c.Number, c.SetName, id)
	}
}

func printDetail(d *app.Detail) {
	name := d.Card.Name
	if name == "" {
		name = "(no detail)"
	}
	fmt.Printf("\ncard %s: %s", d.CardID, name)
	if d.Card.SetName != "" {
		fmt.Printf(" (%s)", d.Card.SetName)
	}
	fmt.Println()

	fmt.Printf("listings: %s\n", report.FormatSummary(d.Prices))
	for _, skip := range d.Prices.Skipped {
		fmt.Printf("  skipped %s=%q (%s)\n", skip.Key, skip.Raw, skip.Reason)
	}

	if d.SoldErr != nil {
		fmt.Printf("recent sales: unavailable (%v)\n", d.SoldErr)
	} else if len(d.SoldUSD) > 0 {
		parts := make([]string, len(d.SoldUSD))
		for i, p := range d.SoldUSD {
			parts[i] = "$" + strconv.Itoa(p)
		}
		fmt.Printf("recent sales: %s\n", strings.Join(parts, ", "))
	} else {
		fmt.Println("recent sales: none shown")
	}

	if len(d.Related) > 0 {
		fmt.Println("related:")
		printCards(d.Related)
	}
}
