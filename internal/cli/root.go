// Package cli provides the finwatch command-line interface.
package cli

import (
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/finwatch/internal/bookmark"
	"github.com/nikbrunner/finwatch/internal/config"
	"github.com/nikbrunner/finwatch/internal/logging"
	"github.com/nikbrunner/finwatch/internal/mockdata"
	"github.com/nikbrunner/finwatch/internal/storage"
	"github.com/nikbrunner/finwatch/internal/tui"
	"github.com/nikbrunner/finwatch/internal/watchlist"
)

// Version information
const (
	Version   = "0.3.0"
	BuildDate = "2025-06-01"
)

// annotationNoStore marks commands that run without opening storage.
const annotationNoStore = "finwatch/no-store"

// App holds the dependencies shared by all commands. It is populated by the
// root command's PersistentPreRunE.
type App struct {
	Config     *config.Config
	Logger     zerolog.Logger
	Store      *storage.Store
	Watchlists *watchlist.Manager
	Bookmarks  *bookmark.Manager
	Data       *mockdata.Provider

	runTUI func(app *App, cmd *cobra.Command) error
}

// Close releases the store. It is safe to call more than once.
func (a *App) Close() error {
	if a.Store == nil {
		return nil
	}
	err := a.Store.Close()
	a.Store = nil
	return err
}

// NewRootCmd creates the root command. The returned App is filled in once a
// command runs; callers close it after Execute.
func NewRootCmd() (*cobra.Command, *App) {
	app := &App{
		Logger: zerolog.Nop(),
		Data:   mockdata.New(),
		runTUI: runTUI,
	}

	rootCmd := &cobra.Command{
		Use:   "finwatch",
		Short: "finwatch - watchlists, news and bookmarks in the terminal",
		Long: `finwatch keeps several watchlists of securities, a news feed with
bookmarks and an inbox of missed alerts.

Run without arguments to open the interactive UI.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runTUI(app, cmd)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/finwatch)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().Bool("ephemeral", false, "keep all data in memory for this run")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")

	addWatchlistCommands(rootCmd, app)
	addNewsCommands(rootCmd, app)
	addDataCommands(rootCmd, app)

	return rootCmd, app
}

// Execute runs the command tree with the given arguments.
func Execute(args []string) error {
	rootCmd, app := NewRootCmd()
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	if closeErr := app.Close(); closeErr != nil && err == nil {
		err = fmt.Errorf("closing storage: %w", closeErr)
	}
	return err
}

// setup loads configuration, builds the logger and opens the managers.
func (a *App) setup(cmd *cobra.Command) error {
	configDir, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")
	ephemeral, _ := cmd.Flags().GetBool("ephemeral")

	cfg, err := config.Load(configDir)
	if err != nil {
		return err
	}
	if ephemeral {
		cfg.Storage.Backend = storage.BackendMemory
	}
	a.Config = cfg

	logCfg := cfg.LoggingConfig(debug)
	logCfg.Output = cmd.ErrOrStderr()
	if !cmd.HasParent() {
		// The UI owns the terminal.
		logCfg.Console = false
	}
	a.Logger = logging.WithCommand(logging.NewLogger(logCfg), cmd.CommandPath())

	if cmd.Annotations[annotationNoStore] == "true" {
		return nil
	}

	params, err := cfg.OpenParams()
	if err != nil {
		return fmt.Errorf("resolving storage path: %w", err)
	}
	kv, err := storage.Open(params)
	if err != nil {
		return fmt.Errorf("opening %s storage: %w", params.Backend, err)
	}
	a.Logger.Debug().Str("backend", params.Backend).Str("path", params.Path).Msg("Storage opened")

	a.Store = storage.NewStore(kv, a.Logger)
	a.Watchlists = watchlist.New(watchlist.Params{Store: a.Store, Logger: a.Logger})
	a.Bookmarks = bookmark.New(bookmark.Params{Store: a.Store, Logger: a.Logger})
	return nil
}

// runTUI runs the interactive UI until the user quits.
func runTUI(app *App, cmd *cobra.Command) error {
	ui := tui.NewApp(tui.AppParams{
		Watchlists:    app.Watchlists,
		Bookmarks:     app.Bookmarks,
		Data:          app.Data,
		Clipboard:     clipboard.WriteAll,
		ToastDuration: app.Config.UI.ToastDuration,
		StartTab:      tui.ParseTab(app.Config.UI.StartTab),
	})
	defer ui.Close()

	p := tea.NewProgram(ui,
		tea.WithAltScreen(),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running app: %w", err)
	}
	return nil
}

func noStore(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[annotationNoStore] = "true"
	return cmd
}
