// Package picker is a small bubbletea program for choosing one security
// when a search from the command line is ambiguous.
package picker

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/finwatch/internal/mockdata"
	"github.com/nikbrunner/finwatch/internal/search"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	heldStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	matchStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Underline(true)

	upStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	downStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true).
			MarginBottom(1)

	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Cancel key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("k", "up", "ctrl+p")),
	Down:   key.NewBinding(key.WithKeys("j", "down", "ctrl+n")),
	Select: key.NewBinding(key.WithKeys("enter")),
	Cancel: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
}

// Params holds parameters for creating a Picker.
type Params struct {
	Results []search.SecurityResult
	Query   string
	// Held reports securities that are already in the target watchlist.
	// They are shown but cannot be selected. Optional.
	Held func(symbol string) bool
}

// Picker lets the user choose one security from ambiguous search results.
type Picker struct {
	results   []search.SecurityResult
	query     string
	held      func(string) bool
	cursor    int
	selected  bool
	cancelled bool
}

// New creates a Picker. The cursor starts on the first selectable result.
func New(params Params) Picker {
	held := params.Held
	if held == nil {
		held = func(string) bool { return false }
	}
	p := Picker{
		results: params.Results,
		query:   params.Query,
		held:    held,
	}
	if i := slices.IndexFunc(p.results, p.selectable); i >= 0 {
		p.cursor = i
	}
	return p
}

func (p Picker) selectable(r search.SecurityResult) bool {
	return !p.held(r.Security.Symbol)
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Cancel):
		p.cancelled = true
		return p, tea.Quit

	case key.Matches(keyMsg, keys.Select):
		if len(p.results) == 0 || !p.selectable(p.results[p.cursor]) {
			return p, nil
		}
		p.selected = true
		return p, tea.Quit

	case key.Matches(keyMsg, keys.Down):
		if p.cursor < len(p.results)-1 {
			p.cursor++
		}

	case key.Matches(keyMsg, keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	}

	return p, nil
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("Suche: %s (%d Treffer)", p.query, len(p.results))))
	b.WriteString("\n\n")

	for i, r := range p.results {
		cursor := "  "
		style := normalStyle
		switch {
		case !p.selectable(r):
			style = heldStyle
		case i == p.cursor:
			style = selectedStyle
		}
		if i == p.cursor {
			cursor = "> "
		}

		b.WriteString(cursor + highlight(search.SecurityLabel(r.Security), r.MatchedIndexes, style) + "\n")
		if p.selectable(r) {
			b.WriteString("   " + quoteLine(r.Security) + "\n")
		} else {
			b.WriteString("   " + heldStyle.Render("bereits in der Watchlist") + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(footerStyle.Render("j/k: move  Enter: add  q/Esc: cancel"))

	return b.String()
}

// highlight renders label in style with the matched byte offsets emphasized.
func highlight(label string, matched []int, style lipgloss.Style) string {
	var b strings.Builder
	for i, ch := range label {
		if slices.Contains(matched, i) {
			b.WriteString(matchStyle.Render(string(ch)))
		} else {
			b.WriteString(style.Render(string(ch)))
		}
	}
	return b.String()
}

func quoteLine(s mockdata.Security) string {
	change := downStyle.Render(s.Change)
	if s.IsPositive {
		change = upStyle.Render(s.Change)
	}
	return footerStyle.Italic(true).Render(s.Price) + " " + change
}

// Selected returns the chosen security. ok is false if the user cancelled.
func (p Picker) Selected() (mockdata.Security, bool) {
	if p.cancelled || !p.selected || p.cursor >= len(p.results) {
		return mockdata.Security{}, false
	}
	return p.results[p.cursor].Security, true
}

// Cancelled returns true if the user cancelled the selection.
func (p Picker) Cancelled() bool {
	return p.cancelled
}
