// Package report renders watchlists as a markdown summary.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/google/uuid"

	"github.com/nikbrunner/finwatch/internal/model"
)

// topPerformerCount is how many items the summary lists per watchlist.
const topPerformerCount = 3

// Markdown builds a summary of all watchlists: one section per watchlist with
// an item table, the average change and the best performers.
func Markdown(watchlists []model.Watchlist, activeID uuid.UUID) string {
	var b strings.Builder

	b.WriteString("# Watchlists\n\n")
	if len(watchlists) == 0 {
		b.WriteString("_Keine Watchlists_\n")
		return b.String()
	}

	for _, w := range watchlists {
		writeWatchlist(&b, w, w.ID == activeID)
	}

	return b.String()
}

func writeWatchlist(b *strings.Builder, w model.Watchlist, active bool) {
	title := escape(w.Name)
	if active {
		title += " (aktiv)"
	}
	fmt.Fprintf(b, "## %s\n\n", title)

	color := "?"
	if c, ok := model.ThemeColorForHex(w.Color); ok {
		color = c.Label()
	}
	fmt.Fprintf(b, "Farbe: %s · %d Werte · Ø Veränderung: %+.2f%%\n\n", color, len(w.Items), w.AverageChange())

	if len(w.Items) == 0 {
		b.WriteString("_Keine Werte_\n\n")
		return
	}

	b.WriteString("| Symbol | Name | Kurs | Änderung | % |\n")
	b.WriteString("|---|---|---:|---:|---:|\n")
	for _, item := range w.Items {
		fmt.Fprintf(b, "| %s | %s | %s | %s | %s |\n",
			escape(item.Symbol), escape(item.Name), item.Price, item.Change, item.ChangePercent)
	}
	b.WriteString("\n")

	top := w.TopPerformers()
	if len(top) > topPerformerCount {
		top = top[:topPerformerCount]
	}
	parts := make([]string, len(top))
	for i, item := range top {
		parts[i] = fmt.Sprintf("%s (%s)", escape(item.Symbol), item.ChangePercent)
	}
	fmt.Fprintf(b, "**Top:** %s\n\n", strings.Join(parts, ", "))
}

// escape keeps user text from breaking table cells or headings.
func escape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// Render renders markdown for the terminal using the named glamour style
// ("dark", "light", "notty", ...). width <= 0 disables word wrap.
func Render(markdown, style string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(max(width, 0)),
	)
	if err != nil {
		return "", fmt.Errorf("creating renderer: %w", err)
	}

	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}
