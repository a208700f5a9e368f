// Package report renders price summaries as CSV for spreadsheet use.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/guarzo/snkrsearch/internal/extract"
	"github.com/guarzo/snkrsearch/internal/model"
)

// Row pairs a card with the price summary extracted for it.
type Row struct {
	Card    model.Card
	Summary extract.Summary
}

// WriteCSV writes one line per card: identifiers, set info and the
// aggregate prices. Cards are sorted by ID so repeated exports diff
// cleanly. Card names come from upstream, so every cell is escaped
// against spreadsheet formula injection.
func WriteCSV(w io.Writer, rows []Row) error {
	sorted := append([]Row(nil), rows...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Card.ID < sorted[j].Card.ID })

	cw := csv.NewWriter(w)
	if err := cw.Write(EscapeRow([]string{
		"card_id", "name", "number", "set", "listings", "lowest", "highest", "average",
	})); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, row := range sorted {
		record := []string{
			row.Card.ID,
			row.Card.Name,
			row.Card.Number,
			row.Card.SetName,
			strconv.Itoa(len(row.Summary.All)),
			formatPrice(row.Summary, row.Summary.Lowest),
			formatPrice(row.Summary, row.Summary.Highest),
			formatPrice(row.Summary, row.Summary.Average),
		}
		if err := cw.Write(EscapeRow(record)); err != nil {
			return fmt.Errorf("writing row for %s: %w", row.Card.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// formatPrice renders a price, or an empty cell when the card had no
// listings (zero would read as a real price).
func formatPrice(s extract.Summary, v float64) string {
	if !s.HasPrices() {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// EscapeCell protects against CSV formula injection by prefixing cells
// that a spreadsheet would evaluate.
func EscapeCell(value string) string {
	if value == "" {
		return value
	}

	switch value[0] {
	case '=', '+', '-', '@', '|', '%', '\t', '\r', '\n':
		return "'" + value
	}

	return value
}

// EscapeRow escapes every cell in a row.
func EscapeRow(row []string) []string {
	escaped := make([]string, len(row))
	for i, cell := range row {
		escaped[i] = EscapeCell(cell)
	}
	return escaped
}

// FormatSummary renders a one-line human-readable form for terminal
// output, e.g. "3 listings, low 5900, high 7500, avg 6733".
func FormatSummary(s extract.Summary) string {
	if !s.HasPrices() {
		return "no listings"
	}
	return fmt.Sprintf("%d listings, low %s, high %s, avg %s",
		len(s.All),
		trimZeros(s.Lowest),
		trimZeros(s.Highest),
		trimZeros(s.Average))
}

func trimZeros(v float64) string {
	out := strconv.FormatFloat(v, 'f', 2, 64)
	out = strings.TrimRight(out, "0")
	return strings.TrimRight(out, ".")
}
