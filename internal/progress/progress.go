// Package progress renders a progress bar on stderr while bulk price
// fetches run.
package progress

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Indicator tracks one long-running operation.
type Indicator struct {
	enabled    bool
	message    string
	total      int
	current    int
	startTime  time.Time
	lastUpdate time.Time
}

// WithTotal creates an indicator for an operation of known size.
func WithTotal(message string, total int, quiet bool) *Indicator {
	return &Indicator{
		enabled:   !quiet,
		message:   message,
		total:     total,
		startTime: time.Now(),
	}
}

// Update moves the bar to current. Redraws are throttled to avoid
// flicker on fast batches.
func (p *Indicator) Update(current int) {
	if !p.enabled {
		return
	}

	p.current = current
	now := time.Now()
	if now.Sub(p.lastUpdate) < 100*time.Millisecond && current < p.total {
		return
	}
	p.lastUpdate = now

	percentage := float64(current) / float64(p.total) * 100
	fmt.Fprintf(os.Stderr, "\r%s [%s] %d/%d (%.1f%%)",
		p.message, bar(percentage), current, p.total, percentage)
}

// Finish completes the line.
func (p *Indicator) Finish() {
	if !p.enabled {
		return
	}
	fmt.Fprintf(os.Stderr, "\r%s done: %d cards in %s\n",
		p.message, p.current, formatDuration(time.Since(p.startTime)))
}

func bar(percentage float64) string {
	const width = 30
	filled := int(percentage / 100.0 * width)

	var b strings.Builder
	for i := 0; i < width; i++ {
		if i < filled {
			b.WriteString("█")
		} else {
			b.WriteString("░")
		}
	}
	return b.String()
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	} else if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%.1fm", d.Minutes())
}
