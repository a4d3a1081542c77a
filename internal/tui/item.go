package tui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/finwatch/internal/model"
	"github.com/nikbrunner/finwatch/internal/search"
	"github.com/nikbrunner/finwatch/internal/tui/layout"
)

// renderItemRow renders one watchlist table row. The selected row is drawn
// in a single highlight style; other rows color the change columns.
func (a App) renderItemRow(item model.WatchlistItem, isCursor bool, cols layout.Columns) string {
	text := a.layoutConfig.Text
	gap := strings.Repeat(" ", cols.Gap)

	symbol := layout.PadRight(item.Symbol, cols.Symbol, text)
	name := layout.PadRight(item.Name, cols.Name, text)
	price := layout.PadLeft(item.Price, cols.Price, text)
	change := layout.PadLeft(item.Change, cols.Change, text)
	pct := layout.PadLeft(item.ChangePercent, cols.Percent, text)

	if isCursor {
		return a.styles.ItemSelected.Render(symbol + gap + name + gap + price + gap + change + gap + pct)
	}

	trend := a.styles.Positive
	if !item.IsPositive {
		trend = a.styles.Negative
	}
	return a.styles.Title.Render(symbol) + gap +
		a.styles.Item.Render(name) + gap +
		a.styles.Item.Render(price) + gap +
		trend.Render(change) + gap +
		trend.Render(pct)
}

// renderColumnHeader renders the watchlist table header.
func (a App) renderColumnHeader(cols layout.Columns) string {
	text := a.layoutConfig.Text
	gap := strings.Repeat(" ", cols.Gap)
	return a.styles.ColumnHeader.Render(
		layout.PadRight("Symbol", cols.Symbol, text) + gap +
			layout.PadRight("Name", cols.Name, text) + gap +
			layout.PadLeft("Kurs", cols.Price, text) + gap +
			layout.PadLeft("+/-", cols.Change, text) + gap +
			layout.PadLeft("%", cols.Percent, text),
	)
}

// renderNewsRow renders a headline with its bookmark marker and metadata.
func (a App) renderNewsRow(article model.NewsArticle, bookmarked, isCursor bool, width int) string {
	marker := "  "
	if bookmarked {
		marker = "★ "
	}
	meta := " · " + article.Source + " · " + article.Time
	titleWidth := max(width-layout.VisibleLength(marker)-layout.VisibleLength(meta), 1)
	title := layout.PadRight(article.Title, titleWidth, a.layoutConfig.Text)

	if isCursor {
		return a.styles.ItemSelected.Render(marker + title + meta)
	}
	return a.styles.Bookmarked.Render(marker) + a.styles.Item.Render(title) + a.styles.Meta.Render(meta)
}

// renderInboxRow renders a missed item with its unread dot and age.
func (a App) renderInboxRow(item model.MissedItem, isCursor bool, width int) string {
	dot := "  "
	if !item.IsRead {
		dot = "● "
	}
	age := " " + item.TimeAgo(a.now())
	label := item.Title
	if item.Subtitle != "" {
		label += " · " + item.Subtitle
	}
	labelWidth := max(width-layout.VisibleLength(dot)-layout.VisibleLength(age), 1)
	label = layout.PadRight(label, labelWidth, a.layoutConfig.Text)

	if isCursor {
		return a.styles.ItemSelected.Render(dot + label + age)
	}
	return a.styles.Unread.Render(dot) + a.styles.Item.Render(label) + a.styles.Meta.Render(age)
}

// renderSecurityResult renders an add-symbol result with matched characters
// highlighted.
func (a App) renderSecurityResult(r search.SecurityResult, isCursor bool, width int) string {
	label := search.SecurityLabel(r.Security)

	var b strings.Builder
	for i, ch := range label {
		s := string(ch)
		if slices.Contains(r.MatchedIndexes, i) {
			s = a.styles.Match.Render(s)
		}
		b.WriteString(s)
	}

	prefix := "  "
	if isCursor {
		prefix = "> "
	}
	lineWidth := max(width-8, 1)
	line := layout.TruncateANSIAware(prefix+b.String(), lineWidth, a.layoutConfig.Text)
	line += strings.Repeat(" ", max(lineWidth-layout.VisibleLength(line), 0))

	trend := a.styles.Positive
	if !r.Security.IsPositive {
		trend = a.styles.Negative
	}
	change := trend.Render(layout.PadLeft(r.Security.Change, 8, a.layoutConfig.Text))

	if isCursor {
		line = lipgloss.NewStyle().Bold(true).Render(line)
	}
	return line + change
}
