package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#1F8A3A", Dark: "#34C759"})
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#888888", Dark: "#666666"})
	upStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#34C759"))
	downStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF3B30"))
	boldStyle    = lipgloss.NewStyle().Bold(true)
)

// Output handles formatted output for the CLI.
type Output struct {
	writer   io.Writer
	jsonMode bool
}

// NewOutput creates a new Output writing to the command's stdout.
func NewOutput(cmd *cobra.Command) *Output {
	jsonMode, _ := cmd.Flags().GetBool("json")
	return &Output{
		writer:   cmd.OutOrStdout(),
		jsonMode: jsonMode,
	}
}

// IsJSON returns true if JSON output mode is enabled.
func (o *Output) IsJSON() bool {
	return o.jsonMode
}

// JSON outputs data as indented JSON.
func (o *Output) JSON(data any) error {
	encoder := json.NewEncoder(o.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Printf prints a formatted message.
func (o *Output) Printf(format string, args ...any) {
	fmt.Fprintf(o.writer, format, args...)
}

// Println prints its arguments followed by a newline.
func (o *Output) Println(args ...any) {
	fmt.Fprintln(o.writer, args...)
}

// Success prints a confirmation line.
func (o *Output) Success(format string, args ...any) {
	fmt.Fprintln(o.writer, successStyle.Render("✓ "+fmt.Sprintf(format, args...)))
}

// Dim prints a secondary line.
func (o *Output) Dim(format string, args ...any) {
	fmt.Fprintln(o.writer, dimStyle.Render(fmt.Sprintf(format, args...)))
}

// Writer returns the underlying writer.
func (o *Output) Writer() io.Writer {
	return o.writer
}

func trendStyle(positive bool) lipgloss.Style {
	if positive {
		return upStyle
	}
	return downStyle
}
