package tui

import (
	"strings"

	"github.com/nikbrunner/finwatch/internal/tui/layout"
)

// Hint is one key hint in the help bar.
type Hint struct {
	Key  string // e.g. "J/K", "Enter"
	Desc string // e.g. "reorder", "add"
}

func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders the help bar, "j/k:move a:add d:remove". Hints that
// no longer fit into width are dropped. width <= 0 renders all of them.
func (a App) renderHints(hints HintSet, width int) string {
	allHints := hints.All()
	if len(allHints) == 0 {
		return ""
	}

	var b strings.Builder
	used := 0
	for _, h := range allHints {
		part := a.renderHint(h)
		partWidth := layout.VisibleLength(part)
		if used > 0 {
			partWidth++
		}
		if width > 0 && used+partWidth > width {
			break
		}
		if used > 0 {
			b.WriteString(" ")
		}
		b.WriteString(part)
		used += partWidth
	}
	return b.String()
}

// renderHintsInline renders hints in inline format for modals: "Enter confirm  Esc cancel"
func (a App) renderHintsInline(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.styles.HintKey.Render(h.Key) + " " + a.styles.HintDesc.Render(h.Desc)
	}
	return strings.Join(parts, "  ")
}

// HintSet groups the hints of one context.
type HintSet struct {
	Nav    []Hint
	Edit   []Hint
	Action []Hint
	System []Hint
}

// All returns the hints in display order: Nav, Action, Edit, System.
func (h HintSet) All() []Hint {
	result := make([]Hint, 0, len(h.Nav)+len(h.Action)+len(h.Edit)+len(h.System))
	result = append(result, h.Nav...)
	result = append(result, h.Action...)
	result = append(result, h.Edit...)
	result = append(result, h.System...)
	return result
}

// getContextualHints returns the appropriate hints for the current mode and tab.
func (a App) getContextualHints() HintSet {
	switch a.mode {
	case ModeNormal:
		switch a.tab {
		case TabNews:
			return a.getNewsHints()
		case TabInbox:
			return a.getInboxHints()
		default:
			return a.getWatchlistHints()
		}
	case ModeAddSymbol:
		return HintSet{
			Nav:    []Hint{{Key: "↑/↓", Desc: "select"}},
			Action: []Hint{{Key: "Enter", Desc: "add"}},
			System: []Hint{{Key: "Esc", Desc: "cancel"}},
		}
	case ModeNewWatchlist, ModeRenameWatchlist:
		return HintSet{
			Action: []Hint{{Key: "Enter", Desc: "save"}},
			System: []Hint{{Key: "Esc", Desc: "cancel"}},
		}
	case ModeConfirmDelete:
		return HintSet{
			Action: []Hint{{Key: "Enter", Desc: "delete"}},
			System: []Hint{{Key: "Esc", Desc: "cancel"}},
		}
	case ModeHelp:
		// Help overlay covers screen, minimal hints
		return HintSet{
			System: []Hint{{Key: "?/q/Esc", Desc: "close"}},
		}
	default:
		return HintSet{}
	}
}

// getWatchlistHints returns hints for the watchlist tab.
func (a App) getWatchlistHints() HintSet {
	return HintSet{
		Nav: []Hint{
			{Key: "j/k", Desc: "move"},
			{Key: "tab", Desc: "list"},
		},
		Action: []Hint{
			{Key: "y", Desc: "yank"},
		},
		Edit: []Hint{
			{Key: "a", Desc: "add"},
			{Key: "d", Desc: "del"},
			{Key: "J/K", Desc: "order"},
			{Key: "n", Desc: "new"},
		},
		System: []Hint{
			{Key: "?", Desc: "help"},
			{Key: "q", Desc: "quit"},
		},
	}
}

// getNewsHints returns hints for the news tab.
func (a App) getNewsHints() HintSet {
	return HintSet{
		Nav: []Hint{
			{Key: "j/k", Desc: "move"},
		},
		Action: []Hint{
			{Key: "b", Desc: "bookmark"},
		},
		System: []Hint{
			{Key: "?", Desc: "help"},
			{Key: "q", Desc: "quit"},
		},
	}
}

// getInboxHints returns hints for the inbox tab.
func (a App) getInboxHints() HintSet {
	return HintSet{
		Nav: []Hint{
			{Key: "j/k", Desc: "move"},
		},
		Action: []Hint{
			{Key: "x", Desc: "read"},
			{Key: "X", Desc: "all read"},
		},
		System: []Hint{
			{Key: "?", Desc: "help"},
			{Key: "q", Desc: "quit"},
		},
	}
}
