package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/finwatch/internal/config"
	"github.com/nikbrunner/finwatch/internal/exporter"
	"github.com/nikbrunner/finwatch/internal/inspect"
)

// addDataCommands adds storage inspection, backup and utility commands.
func addDataCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newRawCmd(app))
	rootCmd.AddCommand(newBackupCmd(app))
	rootCmd.AddCommand(newConfigCmd(app))
	rootCmd.AddCommand(newVersionCmd())
}

func newRawCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "raw [key] [jsonpath]",
		Short: "Inspect stored values",
		Long: `Inspect stored values. Without arguments the stored keys are listed.
With a key its value is printed; a JSONPath expression such as
'$[*].name' selects part of a JSON value.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if len(args) == 0 {
				for _, k := range app.Store.Keys() {
					output.Println(k)
				}
				return nil
			}

			raw, ok := app.Store.Raw(args[0])
			if !ok {
				return fmt.Errorf("key %q not found", args[0])
			}

			path := ""
			if len(args) == 2 {
				path = args[1]
			}
			out, err := inspect.QueryIndent(raw, path)
			if err != nil {
				if path == "" {
					// Scalars such as the active ID are stored as plain text.
					output.Println(string(raw))
					return nil
				}
				return err
			}
			output.Println(out)
			return nil
		},
	}
}

func newBackupCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "backup [path]",
		Short: "Write all watchlists to a YAML file",
		Long:  "Write all watchlists to a YAML file. Without a path the backup is printed.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			watchlists := app.Watchlists.Watchlists()
			doc, err := exporter.ExportWatchlistsYAML(watchlists, app.Watchlists.ActiveID().String(), time.Now())
			if err != nil {
				return fmt.Errorf("encoding backup: %w", err)
			}

			path := firstArg(args)
			if path == "" || path == "-" {
				output.Printf("%s", doc)
				return nil
			}
			if err := os.WriteFile(path, doc, 0o644); err != nil {
				return fmt.Errorf("writing file: %w", err)
			}
			output.Success("%d Watchlists nach %s gesichert", len(watchlists), path)
			return nil
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View the effective configuration.",
	}

	cmd.AddCommand(noStore(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			return showConfig(output, app.Config)
		},
	}))

	cmd.AddCommand(noStore(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			dir, _ := cmd.Flags().GetString("config")
			if dir == "" {
				dir = config.DefaultConfigDir()
			}
			output.Println(dir)
		},
	}))

	return cmd
}

func showConfig(output *Output, cfg *config.Config) error {
	params, err := cfg.OpenParams()
	if err != nil {
		return err
	}

	output.Println(boldStyle.Render("[storage]"))
	output.Printf("backend        = %s\n", cfg.Storage.Backend)
	if params.Path != "" {
		output.Printf("path           = %s\n", params.Path)
	}
	if cfg.Storage.Backend == "redis" {
		output.Printf("redis.addr     = %s\n", cfg.Storage.Redis.Addr)
		output.Printf("redis.db       = %d\n", cfg.Storage.Redis.DB)
		output.Printf("redis.prefix   = %s\n", cfg.Storage.Redis.Prefix)
		output.Printf("redis.timeout  = %s\n", cfg.Storage.Redis.Timeout)
	}

	output.Println()
	output.Println(boldStyle.Render("[log]"))
	output.Printf("level          = %s\n", cfg.Log.Level)
	output.Printf("console        = %t\n", cfg.Log.Console)
	output.Printf("file           = %t\n", cfg.Log.File)
	if cfg.Log.Path != "" {
		output.Printf("path           = %s\n", cfg.Log.Path)
	}

	output.Println()
	output.Println(boldStyle.Render("[ui]"))
	output.Printf("toast_duration = %s\n", cfg.UI.ToastDuration)
	output.Printf("start_tab      = %s\n", cfg.UI.StartTab)
	return nil
}

func newVersionCmd() *cobra.Command {
	return noStore(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			} else {
				output.Printf("finwatch v%s\n", Version)
				output.Dim("Build date: %s", BuildDate)
			}
		},
	})
}
