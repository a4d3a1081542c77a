package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/finwatch/internal/model"
	"github.com/nikbrunner/finwatch/internal/tui/layout"
)

// renderView creates the complete screen: tab bar, content pane and help bar.
func (a App) renderView() string {
	switch a.mode {
	case ModeHelp:
		return a.renderHelpOverlay()
	case ModeAddSymbol, ModeNewWatchlist, ModeRenameWatchlist, ModeConfirmDelete:
		return a.renderModal()
	}

	paneHeight := layout.CalculatePaneHeight(a.height, a.layoutConfig.Pane)
	paneWidth := layout.CalculatePaneWidth(a.width, a.layoutConfig.Pane)

	var pane string
	switch a.tab {
	case TabNews:
		pane = a.renderNewsPane(paneWidth, paneHeight)
	case TabInbox:
		pane = a.renderInboxPane(paneWidth, paneHeight)
	default:
		pane = a.renderWatchlistPane(paneWidth, paneHeight)
	}

	content := a.styles.App.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			a.renderTabBar(),
			a.renderWatchlistBar(paneWidth),
			pane,
			a.renderHelpBar(),
		),
	)

	// Use Place to ensure exact terminal dimensions and prevent overflow
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, content)
}

// renderTabBar renders the tab labels, the inbox label with its unread count.
func (a App) renderTabBar() string {
	tabs := []Tab{TabWatchlist, TabNews, TabInbox}
	parts := make([]string, len(tabs))
	for i, t := range tabs {
		label := fmt.Sprintf("%d %s", i+1, t)
		if t == TabInbox {
			if n := a.inbox.UnreadCount(); n > 0 {
				label += fmt.Sprintf(" (%d)", n)
			}
		}
		if t == a.tab {
			parts[i] = a.styles.TabActive.Render(label)
		} else {
			parts[i] = a.styles.Tab.Render(label)
		}
	}
	return strings.Join(parts, " ")
}

// renderWatchlistBar lists all watchlists with a dot in their theme color.
// It renders an empty line outside the watchlist tab to keep the layout stable.
func (a App) renderWatchlistBar(width int) string {
	if a.tab != TabWatchlist {
		return ""
	}

	snap := a.live.watchlists
	var parts []string
	for _, w := range snap.Watchlists {
		dot := "○ "
		style := a.styles.Meta
		if w.ID == snap.ActiveID {
			dot = "● "
			style = a.styles.Item.Bold(true)
		}
		name, _ := layout.TruncateText(w.Name, 24, a.layoutConfig.Text)
		parts = append(parts, lipgloss.NewStyle().Foreground(lipgloss.Color(w.Color)).Render(dot)+style.Render(name))
	}

	bar := strings.Join(parts, "  ")
	if layout.VisibleLength(bar) > width {
		bar = layout.TruncateANSIAware(bar, width, a.layoutConfig.Text)
	}
	return bar
}

// renderWatchlistPane renders the active watchlist as a table.
func (a App) renderWatchlistPane(width, height int) string {
	var content strings.Builder

	active := a.Active()
	itemWidth := layout.CalculateItemWidth(width, a.layoutConfig.Pane)
	cols := layout.CalculateColumns(itemWidth, a.layoutConfig.Table)

	// Header: name, count and average change
	summary := fmt.Sprintf(" · %s · %d Werte · Ø %+.2f%%", themeLabel(active.Color), len(active.Items), active.AverageChange())
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(active.Color)).Render(active.Name)
	content.WriteString(title + a.styles.Meta.Render(summary) + "\n")

	if len(active.Items) == 0 {
		content.WriteString("\n" + a.styles.Empty.Render("Noch keine Werte. Mit a hinzufügen."))
	} else {
		content.WriteString(a.renderColumnHeader(cols) + "\n")

		visibleHeight := layout.CalculateVisibleHeight(height, a.layoutConfig.Pane.HeaderLines)
		offset := layout.CalculateViewportOffset(a.cursor, len(active.Items), visibleHeight)
		end := min(offset+visibleHeight, len(active.Items))

		rows := make([]string, 0, end-offset)
		for i := offset; i < end; i++ {
			rows = append(rows, a.renderItemRow(active.Items[i], i == a.cursor, cols))
		}
		content.WriteString(strings.Join(rows, "\n"))
	}

	return a.styles.Pane.
		Width(width).
		Height(height).
		Render(content.String())
}

// renderNewsPane renders the news feed with bookmark markers.
func (a App) renderNewsPane(width, height int) string {
	var content strings.Builder

	itemWidth := layout.CalculateItemWidth(width, a.layoutConfig.Pane)
	content.WriteString(a.styles.Title.Render("News") +
		a.styles.Meta.Render(fmt.Sprintf(" · %d gemerkt", len(a.live.bookmarks))) + "\n\n")

	visibleHeight := layout.CalculateVisibleHeight(height, a.layoutConfig.Pane.HeaderLines)
	offset := layout.CalculateViewportOffset(a.newsCursor, len(a.news), visibleHeight)
	end := min(offset+visibleHeight, len(a.news))

	rows := make([]string, 0, end-offset)
	for i := offset; i < end; i++ {
		article := a.news[i]
		rows = append(rows, a.renderNewsRow(article, a.live.bookmarks[article.ID], i == a.newsCursor, itemWidth))
	}
	content.WriteString(strings.Join(rows, "\n"))

	return a.styles.Pane.
		Width(width).
		Height(height).
		Render(content.String())
}

// renderInboxPane renders the missed items in display order.
func (a App) renderInboxPane(width, height int) string {
	var content strings.Builder

	items := a.inbox.Items()
	itemWidth := layout.CalculateItemWidth(width, a.layoutConfig.Pane)
	content.WriteString(a.styles.Title.Render("Verpasst") +
		a.styles.Meta.Render(fmt.Sprintf(" · %d ungelesen", a.inbox.UnreadCount())) + "\n\n")

	if len(items) == 0 {
		content.WriteString(a.styles.Empty.Render("Nichts verpasst."))
	} else {
		visibleHeight := layout.CalculateVisibleHeight(height, a.layoutConfig.Pane.HeaderLines)
		offset := layout.CalculateViewportOffset(a.inboxCursor, len(items), visibleHeight)
		end := min(offset+visibleHeight, len(items))

		rows := make([]string, 0, end-offset)
		for i := offset; i < end; i++ {
			rows = append(rows, a.renderInboxRow(items[i], i == a.inboxCursor, itemWidth))
		}
		content.WriteString(strings.Join(rows, "\n"))
	}

	return a.styles.Pane.
		Width(width).
		Height(height).
		Render(content.String())
}

// renderHelpBar renders the toast line followed by contextual key hints.
func (a App) renderHelpBar() string {
	var lines []string

	// Toast replaces the gap line
	if a.toast.Text != "" {
		lines = append(lines, a.renderToastLine())
	} else {
		lines = append(lines, "")
	}

	if hints := a.renderHints(a.getContextualHints(), layout.CalculatePaneWidth(a.width, a.layoutConfig.Pane)); hints != "" {
		lines = append(lines, hints)
	}

	return strings.Join(lines, "\n")
}

func (a App) renderToastLine() string {
	if a.toast.Kind == ToastError {
		return a.styles.ToastError.Render("✗ " + a.toast.Text)
	}
	return a.styles.ToastInfo.Render("✓ " + a.toast.Text)
}

// renderModal renders the input and confirmation dialogs centered on screen.
func (a App) renderModal() string {
	var title, content strings.Builder

	modalWidth := layout.CalculateModalWidth(a.width, a.layoutConfig.Modal.DefaultWidthPercent, a.layoutConfig.Modal)
	active := a.Active()

	switch a.mode {
	case ModeAddSymbol:
		title.WriteString("Wert hinzufügen\n\n")
		content.WriteString(a.input.Input.View() + "\n\n")

		results := a.input.Results
		if len(results) == 0 {
			content.WriteString(a.styles.Empty.Render("Keine Treffer"))
		} else {
			start, end := layout.CalculateVisibleListItems(a.layoutConfig.Modal.ResultsMaxVisible, a.input.ResultIdx, len(results))
			rows := make([]string, 0, end-start)
			for i := start; i < end; i++ {
				rows = append(rows, a.renderSecurityResult(results[i], i == a.input.ResultIdx, modalWidth-6))
			}
			content.WriteString(strings.Join(rows, "\n"))
		}
		content.WriteString("\n\n" + a.renderHintsInline([]Hint{
			{Key: "Enter", Desc: "add"},
			{Key: "Esc", Desc: "cancel"},
		}))

	case ModeNewWatchlist:
		title.WriteString("Neue Watchlist\n\n")
		content.WriteString("Name:\n")
		content.WriteString(a.input.Input.View())

	case ModeRenameWatchlist:
		title.WriteString("Watchlist umbenennen\n\n")
		content.WriteString("Name:\n")
		content.WriteString(a.input.Input.View())

	case ModeConfirmDelete:
		title.WriteString("Watchlist löschen?\n\n")
		content.WriteString(fmt.Sprintf("%q mit %d Werten\n\n", active.Name, len(active.Items)))
		content.WriteString(a.styles.Meta.Render("Das kann nicht rückgängig gemacht werden.") + "\n\n")
		content.WriteString(a.renderHintsInline([]Hint{
			{Key: "Enter", Desc: "confirm"},
			{Key: "Esc", Desc: "cancel"},
		}))
	}

	modal := a.styles.Modal.
		Width(modalWidth).
		Render(a.styles.Title.Render(title.String()) + content.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, modal)
}

// renderHelpOverlay renders all key bindings in two columns.
func (a App) renderHelpOverlay() string {
	keyWidth := a.layoutConfig.Modal.HelpKeyColumnWidth
	section := func(name string, bindings ...Hint) string {
		var b strings.Builder
		b.WriteString(a.styles.Title.Render(name) + "\n")
		for _, h := range bindings {
			b.WriteString(layout.PadRight(h.Key, keyWidth, a.layoutConfig.Text) + h.Desc + "\n")
		}
		return b.String()
	}

	left := section("nav",
		Hint{"j/k", "move"},
		Hint{"gg/G", "top/bottom"},
		Hint{"1/2/3", "tabs"},
		Hint{"tab", "next watchlist"},
		Hint{"shift+tab", "prev watchlist"},
	) + "\n" + section("news & inbox",
		Hint{"b", "bookmark"},
		Hint{"x", "mark read"},
		Hint{"X", "mark all read"},
	)

	right := section("watchlist",
		Hint{"a", "add symbol"},
		Hint{"d", "remove symbol"},
		Hint{"J/K", "reorder"},
		Hint{"y", "yank symbol"},
		Hint{"n", "new watchlist"},
		Hint{"r", "rename"},
		Hint{"c", "cycle color"},
		Hint{"D", "delete watchlist"},
	) + "\n" + section("app",
		Hint{"?", "help"},
		Hint{"q", "quit"},
	)

	columns := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(keyWidth+20).Render(left),
		right,
	)
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top,
		lipgloss.NewStyle().Padding(1, 2).Render(columns))
}

// themeLabel returns the palette label for a stored color.
func themeLabel(hex string) string {
	if c, ok := model.ThemeColorForHex(hex); ok {
		return c.Label()
	}
	return hex
}
