package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds all lipgloss styles for the TUI.
type Styles struct {
	App          lipgloss.Style
	Pane         lipgloss.Style
	Title        lipgloss.Style
	Tab          lipgloss.Style
	TabActive    lipgloss.Style
	Item         lipgloss.Style
	ItemSelected lipgloss.Style
	ColumnHeader lipgloss.Style
	Positive     lipgloss.Style
	Negative     lipgloss.Style
	Meta         lipgloss.Style // sources, times, counts
	Bookmarked   lipgloss.Style
	Unread       lipgloss.Style
	Empty        lipgloss.Style
	Modal        lipgloss.Style
	Match        lipgloss.Style // fuzzy-matched characters
	ToastInfo    lipgloss.Style
	ToastError   lipgloss.Style
	HintKey      lipgloss.Style // Key portion of hints (e.g., "a", "j/k")
	HintDesc     lipgloss.Style // Description portion of hints (e.g., "add", "move")
}

// DefaultStyles returns the default style configuration.
// Grayscale with a desaturated teal accent; gains and losses in muted green and red.
func DefaultStyles() Styles {
	primary := lipgloss.AdaptiveColor{Light: "#505050", Dark: "#A0A0A0"}
	subtle := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}
	border := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#505050"}
	gain := lipgloss.AdaptiveColor{Light: "#338833", Dark: "#66CC66"}
	loss := lipgloss.AdaptiveColor{Light: "#CC3333", Dark: "#FF6666"}

	return Styles{
		App: lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2).
			PaddingRight(2),

		Pane: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(border).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		Tab: lipgloss.NewStyle().
			Foreground(subtle).
			Padding(0, 1),

		TabActive: lipgloss.NewStyle().
			Bold(true).
			Background(accent).
			Foreground(lipgloss.Color("#1A1A1A")).
			Padding(0, 1),

		Item: lipgloss.NewStyle().
			Foreground(primary),

		ItemSelected: lipgloss.NewStyle().
			Background(accent).
			Foreground(lipgloss.Color("#1A1A1A")),

		ColumnHeader: lipgloss.NewStyle().
			Foreground(subtle).
			Bold(true),

		Positive: lipgloss.NewStyle().
			Foreground(gain),

		Negative: lipgloss.NewStyle().
			Foreground(loss),

		Meta: lipgloss.NewStyle().
			Foreground(subtle),

		Bookmarked: lipgloss.NewStyle().
			Foreground(accent),

		Unread: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),

		Empty: lipgloss.NewStyle().
			Foreground(subtle),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(accent).
			Padding(1, 2),

		Match: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),

		ToastInfo: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),

		ToastError: lipgloss.NewStyle().
			Foreground(loss).
			Bold(true),

		HintKey: lipgloss.NewStyle().
			Foreground(subtle),

		HintDesc: lipgloss.NewStyle().
			Foreground(subtle),
	}
}
