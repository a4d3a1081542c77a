package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	Pane  PaneConfig
	Modal ModalConfig
	Input InputConfig
	Text  TextConfig
	Table TableConfig
}

// PaneConfig holds pane dimension configuration.
type PaneConfig struct {
	// HeightReduction is subtracted from terminal height for pane content.
	// Accounts for: app padding (1) + tab bar (1) + watchlist bar (1) + pane borders (2) + toast (1) + help bar (2) = 8
	HeightReduction int

	// MinHeight is the minimum pane height.
	MinHeight int

	// HorizontalPadding is the app padding on both sides combined.
	HorizontalPadding int

	// MinWidth is the minimum pane width.
	MinWidth int

	// ContentPadding is subtracted from pane width for row rendering.
	// Accounts for pane border/padding on each side.
	ContentPadding int

	// HeaderLines is the number of lines above the first row in a pane.
	HeaderLines int
}

// ModalConfig holds modal dialog configuration.
type ModalConfig struct {
	// DefaultWidthPercent is the standard modal width as percentage of terminal width.
	DefaultWidthPercent int

	// MinWidth is the minimum modal width in characters.
	MinWidth int

	// MaxWidth is the maximum modal width in characters.
	MaxWidth int

	// ResultsMaxVisible: max securities shown in the add-symbol results list.
	ResultsMaxVisible int

	// HelpKeyColumnWidth: width of the key column in the help overlay.
	HelpKeyColumnWidth int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	NameCharLimit   int
	SymbolCharLimit int

	// StandardWidth is used for every modal input.
	StandardWidth int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// TableConfig holds the fixed column widths of the watchlist table.
// The name column takes whatever is left.
type TableConfig struct {
	SymbolWidth  int
	PriceWidth   int
	ChangeWidth  int
	PercentWidth int
	MinNameWidth int
	Gap          int // spaces between columns
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		Pane: PaneConfig{
			HeightReduction:   8,
			MinHeight:         5,
			HorizontalPadding: 4,
			MinWidth:          40,
			ContentPadding:    4,
			HeaderLines:       2,
		},
		Modal: ModalConfig{
			DefaultWidthPercent: 40,
			MinWidth:            44,
			MaxWidth:            70,
			ResultsMaxVisible:   6,
			HelpKeyColumnWidth:  14,
		},
		Input: InputConfig{
			NameCharLimit:   40,
			SymbolCharLimit: 40,
			StandardWidth:   36,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
		Table: TableConfig{
			SymbolWidth:  7,
			PriceWidth:   10,
			ChangeWidth:  8,
			PercentWidth: 8,
			MinNameWidth: 6,
			Gap:          1,
		},
	}
}
