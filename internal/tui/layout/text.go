package layout

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// VisibleLength returns the display width of s, ignoring ANSI codes.
func VisibleLength(s string) int {
	return ansi.StringWidth(s)
}

// TruncateText shortens text to maxWidth cells, ending in the ellipsis.
// Returns the result and whether anything was cut.
func TruncateText(text string, maxWidth int, cfg TextConfig) (string, bool) {
	if maxWidth <= 0 {
		return "", text != ""
	}
	if ansi.StringWidth(text) <= maxWidth {
		return text, false
	}
	// Not even room for the ellipsis
	if maxWidth <= ansi.StringWidth(cfg.Ellipsis) {
		return ansi.Truncate(cfg.Ellipsis, maxWidth, ""), true
	}
	return ansi.Truncate(text, maxWidth, cfg.Ellipsis), true
}

// TruncateANSIAware truncates styled text without breaking escape sequences.
// Used for fuzzy results where matched characters are highlighted.
func TruncateANSIAware(styledText string, maxWidth int, cfg TextConfig) string {
	out, _ := TruncateText(styledText, maxWidth, cfg)
	return out
}

// PadRight truncates text to width and pads it with spaces on the right.
func PadRight(text string, width int, cfg TextConfig) string {
	text, _ = TruncateText(text, width, cfg)
	return text + strings.Repeat(" ", max(width-VisibleLength(text), 0))
}

// PadLeft truncates text to width and right-aligns it.
func PadLeft(text string, width int, cfg TextConfig) string {
	text, _ = TruncateText(text, width, cfg)
	return strings.Repeat(" ", max(width-VisibleLength(text), 0)) + text
}
