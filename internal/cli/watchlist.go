package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/finwatch/internal/mockdata"
	"github.com/nikbrunner/finwatch/internal/model"
	"github.com/nikbrunner/finwatch/internal/picker"
	"github.com/nikbrunner/finwatch/internal/report"
	"github.com/nikbrunner/finwatch/internal/search"
	"github.com/nikbrunner/finwatch/internal/watchlist"
)

// addWatchlistCommands adds the watchlist and item commands.
func addWatchlistCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newListCmd(app))
	rootCmd.AddCommand(newShowCmd(app))
	rootCmd.AddCommand(newReportCmd(app))
	rootCmd.AddCommand(newCreateCmd(app))
	rootCmd.AddCommand(newDeleteCmd(app))
	rootCmd.AddCommand(newRenameCmd(app))
	rootCmd.AddCommand(newColorCmd(app))
	rootCmd.AddCommand(newSwitchCmd(app))
	rootCmd.AddCommand(newAddCmd(app))
	rootCmd.AddCommand(newRemoveCmd(app))
	rootCmd.AddCommand(newMoveCmd(app))
}

// resolveWatchlist finds a watchlist by ID or name. An empty ref selects the
// active watchlist.
func (a *App) resolveWatchlist(ref string) (model.Watchlist, error) {
	if ref == "" {
		return a.Watchlists.Active(), nil
	}
	if id, err := uuid.Parse(ref); err == nil {
		if w, ok := a.Watchlists.Get(id); ok {
			return w, nil
		}
	}
	if w, ok := a.Watchlists.FindByName(ref); ok {
		return w, nil
	}
	return model.Watchlist{}, fmt.Errorf("%w: %q", watchlist.ErrNotFound, ref)
}

type watchlistSummary struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Color         string  `json:"color"`
	Items         int     `json:"items"`
	AverageChange float64 `json:"averageChange"`
	Active        bool    `json:"active"`
}

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all watchlists",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			activeID := app.Watchlists.ActiveID()

			watchlists := app.Watchlists.Watchlists()
			if output.IsJSON() {
				summaries := make([]watchlistSummary, len(watchlists))
				for i, w := range watchlists {
					summaries[i] = watchlistSummary{
						ID:            w.ID.String(),
						Name:          w.Name,
						Color:         w.Color,
						Items:         len(w.Items),
						AverageChange: w.AverageChange(),
						Active:        w.ID == activeID,
					}
				}
				return output.JSON(summaries)
			}

			for _, w := range watchlists {
				marker := " "
				if w.ID == activeID {
					marker = "*"
				}
				dot := lipgloss.NewStyle().Foreground(lipgloss.Color(w.Color)).Render("●")
				output.Printf("%s %s %-24s %-8s %3d Werte  Ø %+.2f%%\n",
					marker, dot, w.Name, colorLabel(w.Color), len(w.Items), w.AverageChange())
			}
			return nil
		},
	}
}

func newShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [watchlist]",
		Short: "Show the items of a watchlist",
		Long:  "Show the items of a watchlist. Without an argument the active watchlist is shown.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			w, err := app.resolveWatchlist(firstArg(args))
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(w)
			}

			title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(w.Color)).Render(w.Name)
			output.Printf("%s %s\n", title, dimStyle.Render(fmt.Sprintf("· %s · %d Werte · Ø %+.2f%%",
				colorLabel(w.Color), len(w.Items), w.AverageChange())))

			if len(w.Items) == 0 {
				output.Dim("Noch keine Werte.")
				return nil
			}
			output.Println(itemTable(w.Items))
			return nil
		},
	}
	return cmd
}

// itemTable renders watchlist items with right-aligned quote columns.
func itemTable(items []model.WatchlistItem) string {
	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "Symbol", "Name", "Kurs", "+/-", "%").
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 || col >= 3 {
				return cell.Align(lipgloss.Right)
			}
			return cell
		})
	for i, it := range items {
		change := trendStyle(it.IsPositive).Render(it.Change)
		pct := trendStyle(it.IsPositive).Render(it.ChangePercent)
		t.Row(strconv.Itoa(i+1), boldStyle.Render(it.Symbol), it.Name, it.Price, change, pct)
	}
	return t.String()
}

func newReportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render a summary of all watchlists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			md := report.Markdown(app.Watchlists.Watchlists(), app.Watchlists.ActiveID())

			raw, _ := cmd.Flags().GetBool("markdown")
			if raw {
				output.Printf("%s", md)
				return nil
			}

			style, _ := cmd.Flags().GetString("style")
			width, _ := cmd.Flags().GetInt("width")
			rendered, err := report.Render(md, style, width)
			if err != nil {
				return err
			}
			output.Printf("%s", rendered)
			return nil
		},
	}
	cmd.Flags().String("style", "dark", "glamour style (dark, light, notty, ...)")
	cmd.Flags().Int("width", 80, "word wrap width, 0 disables wrapping")
	cmd.Flags().Bool("markdown", false, "print the markdown source")
	return cmd
}

func newCreateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a watchlist",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			name := strings.Join(args, " ")

			color := model.DefaultColor
			if colorName, _ := cmd.Flags().GetString("color"); colorName != "" {
				var ok bool
				if color, ok = model.ParseThemeColor(colorName); !ok {
					return fmt.Errorf("unknown color %q", colorName)
				}
			}

			w, err := app.Watchlists.Create(name, color)
			if err != nil {
				return err
			}

			if activate, _ := cmd.Flags().GetBool("switch"); activate {
				if err := app.Watchlists.SwitchActive(w.ID); err != nil {
					return err
				}
			}

			if output.IsJSON() {
				return output.JSON(w)
			}
			output.Success("Watchlist %q erstellt", w.Name)
			return nil
		},
	}
	cmd.Flags().String("color", "", "theme color, e.g. blue or Türkis")
	cmd.Flags().Bool("switch", false, "make the new watchlist active")
	return cmd
}

func newDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <watchlist>",
		Short: "Delete a watchlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			w, err := app.resolveWatchlist(args[0])
			if err != nil {
				return err
			}
			if err := app.Watchlists.Delete(w.ID); err != nil {
				return err
			}
			output.Success("Watchlist %q gelöscht", w.Name)
			return nil
		},
	}
}

func newRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <watchlist> <new-name>",
		Short: "Rename a watchlist",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			w, err := app.resolveWatchlist(args[0])
			if err != nil {
				return err
			}
			if err := app.Watchlists.Rename(w.ID, args[1]); err != nil {
				return err
			}
			output.Success("%q heißt jetzt %q", w.Name, strings.TrimSpace(args[1]))
			return nil
		},
	}
}

func newColorCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "color <watchlist> [color]",
		Short: "Set the theme color of a watchlist",
		Long:  "Set the theme color of a watchlist. Without a color the next palette color is used.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			w, err := app.resolveWatchlist(args[0])
			if err != nil {
				return err
			}

			current, _ := model.ThemeColorForHex(w.Color)
			color := current.Next()
			if len(args) == 2 {
				var ok bool
				if color, ok = model.ParseThemeColor(args[1]); !ok {
					return fmt.Errorf("unknown color %q", args[1])
				}
			}

			if err := app.Watchlists.Recolor(w.ID, color); err != nil {
				return err
			}
			output.Success("%q ist jetzt %s", w.Name, color.Label())
			return nil
		},
	}
}

func newSwitchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "switch <watchlist>",
		Short: "Make a watchlist active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			w, err := app.resolveWatchlist(args[0])
			if err != nil {
				return err
			}
			if err := app.Watchlists.SwitchActive(w.ID); err != nil {
				return err
			}
			output.Success("Aktive Watchlist: %s", w.Name)
			return nil
		},
	}
}

func newAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <symbol or name>",
		Short: "Add a security to a watchlist",
		Long: `Add a security to a watchlist. An exact symbol is added directly;
anything else is fuzzy-searched and, if several securities match, picked
interactively.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ref, _ := cmd.Flags().GetString("watchlist")
			w, err := app.resolveWatchlist(ref)
			if err != nil {
				return err
			}

			query := strings.Join(args, " ")
			first, _ := cmd.Flags().GetBool("first")
			sec, ok, err := app.findSecurity(cmd, w, query, first)
			if err != nil {
				return err
			}
			if !ok {
				output.Dim("Abgebrochen")
				return nil
			}

			price, change, pct := sec.Quote()
			item, err := app.Watchlists.AddItem(watchlist.AddItemParams{
				WatchlistID:   w.ID,
				Symbol:        sec.Symbol,
				Name:          sec.Name,
				Price:         &price,
				Change:        &change,
				ChangePercent: &pct,
				IsPositive:    sec.IsPositive,
			})
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(item)
			}
			output.Success("%s zu %q hinzugefügt", item.Symbol, w.Name)
			return nil
		},
	}
	cmd.Flags().StringP("watchlist", "w", "", "target watchlist (default: active)")
	cmd.Flags().Bool("first", false, "take the best match instead of asking")
	return cmd
}

// findSecurity resolves query to a catalogue security. ok is false when the
// user cancels the picker. Securities already in w cannot be picked.
func (a *App) findSecurity(cmd *cobra.Command, w model.Watchlist, query string, first bool) (mockdata.Security, bool, error) {
	if sec, ok := a.Data.LookupSecurity(query); ok {
		return sec, true, nil
	}

	results := search.FuzzySearchSecurities(a.Data.Securities(), query)
	switch {
	case len(results) == 0:
		return mockdata.Security{}, false, fmt.Errorf("no security matches %q", query)
	case len(results) == 1 || first:
		return results[0].Security, true, nil
	}

	p := tea.NewProgram(picker.New(picker.Params{Results: results, Query: query, Held: w.HasSymbol}),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.ErrOrStderr()),
	)
	finalModel, err := p.Run()
	if err != nil {
		return mockdata.Security{}, false, fmt.Errorf("running picker: %w", err)
	}
	sec, ok := finalModel.(picker.Picker).Selected()
	return sec, ok, nil
}

func newRemoveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <symbol>",
		Short: "Remove a security from a watchlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ref, _ := cmd.Flags().GetString("watchlist")
			w, item, err := app.resolveItem(ref, args[0])
			if err != nil {
				return err
			}
			if err := app.Watchlists.RemoveItem(w.ID, item.ID); err != nil {
				return err
			}
			output.Success("%s aus %q entfernt", item.Symbol, w.Name)
			return nil
		},
	}
	cmd.Flags().StringP("watchlist", "w", "", "watchlist (default: active)")
	return cmd
}

func newMoveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <symbol> <position>",
		Short: "Move a security to a 1-based position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ref, _ := cmd.Flags().GetString("watchlist")
			w, item, err := app.resolveItem(ref, args[0])
			if err != nil {
				return err
			}

			pos, err := strconv.Atoi(args[1])
			if err != nil || pos < 1 || pos > len(w.Items) {
				return fmt.Errorf("position must be between 1 and %d", len(w.Items))
			}

			from := w.IndexOfItem(item.ID)
			if err := app.Watchlists.MoveItems(w.ID, []int{from}, insertionOffset(from, pos-1)); err != nil {
				return err
			}
			output.Success("%s steht jetzt an Position %d", item.Symbol, pos)
			return nil
		},
	}
	cmd.Flags().StringP("watchlist", "w", "", "watchlist (default: active)")
	return cmd
}

// insertionOffset converts a target index into the offset MoveItems expects.
// Offsets count positions in the list before the move.
func insertionOffset(from, target int) int {
	if target > from {
		return target + 1
	}
	return target
}

func (a *App) resolveItem(ref, symbol string) (model.Watchlist, model.WatchlistItem, error) {
	w, err := a.resolveWatchlist(ref)
	if err != nil {
		return model.Watchlist{}, model.WatchlistItem{}, err
	}
	for _, item := range w.Items {
		if strings.EqualFold(item.Symbol, symbol) {
			return w, item, nil
		}
	}
	return model.Watchlist{}, model.WatchlistItem{}, fmt.Errorf("%w: %s in %q", watchlist.ErrItemNotFound, symbol, w.Name)
}

// colorLabel returns the palette label for a stored color.
func colorLabel(hex string) string {
	if c, ok := model.ThemeColorForHex(hex); ok {
		return c.Label()
	}
	return hex
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
