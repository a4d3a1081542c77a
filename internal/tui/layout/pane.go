package layout

// CalculatePaneHeight computes the content height for panes.
// Returns at least MinHeight.
func CalculatePaneHeight(terminalHeight int, cfg PaneConfig) int {
	return max(terminalHeight-cfg.HeightReduction, cfg.MinHeight)
}

// CalculatePaneWidth computes the width of the single content pane.
// Returns at least MinWidth.
func CalculatePaneWidth(terminalWidth int, cfg PaneConfig) int {
	return max(terminalWidth-cfg.HorizontalPadding, cfg.MinWidth)
}

// CalculateItemWidth computes the width available for row content.
func CalculateItemWidth(paneWidth int, cfg PaneConfig) int {
	return paneWidth - cfg.ContentPadding
}

// CalculateVisibleHeight computes the visible row count in a pane.
func CalculateVisibleHeight(paneHeight, headerLines int) int {
	return max(paneHeight-headerLines, 1)
}

// CalculateViewportOffset calculates the scroll offset needed to keep the
// selected row visible within the viewport.
func CalculateViewportOffset(selected, total, viewportHeight int) int {
	if total <= viewportHeight {
		return 0
	}

	// Keep selection roughly centered, but clamp to valid range
	offset := max(selected-viewportHeight/2, 0)
	return min(offset, total-viewportHeight)
}

// Columns holds the computed watchlist table column widths.
type Columns struct {
	Symbol  int
	Name    int
	Price   int
	Change  int
	Percent int
	Gap     int
}

// CalculateColumns fits the table into itemWidth. The name column absorbs
// the remaining space but never shrinks below MinNameWidth.
func CalculateColumns(itemWidth int, cfg TableConfig) Columns {
	fixed := cfg.SymbolWidth + cfg.PriceWidth + cfg.ChangeWidth + cfg.PercentWidth + 4*cfg.Gap
	return Columns{
		Symbol:  cfg.SymbolWidth,
		Name:    max(itemWidth-fixed, cfg.MinNameWidth),
		Price:   cfg.PriceWidth,
		Change:  cfg.ChangeWidth,
		Percent: cfg.PercentWidth,
		Gap:     cfg.Gap,
	}
}
