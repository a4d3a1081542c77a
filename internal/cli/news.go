package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/finwatch/internal/exporter"
	"github.com/nikbrunner/finwatch/internal/importer"
	"github.com/nikbrunner/finwatch/internal/inbox"
	"github.com/nikbrunner/finwatch/internal/model"
	"github.com/nikbrunner/finwatch/internal/search"
)

// addNewsCommands adds the news, bookmark and inbox commands.
func addNewsCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newNewsCmd(app))
	rootCmd.AddCommand(newBookmarksCmd(app))
	rootCmd.AddCommand(newInboxCmd(app))
}

func newNewsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "news",
		Short: "Show the news feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			onlyBookmarked, _ := cmd.Flags().GetBool("bookmarked")

			var articles []model.NewsArticle
			for _, a := range app.Data.News() {
				if onlyBookmarked && !app.Bookmarks.IsBookmarked(a.ID) {
					continue
				}
				articles = append(articles, a)
			}

			if output.IsJSON() {
				return output.JSON(articles)
			}
			for _, a := range articles {
				marker := " "
				if app.Bookmarks.IsBookmarked(a.ID) {
					marker = "★"
				}
				output.Printf("%s %s  %s\n", marker, dimStyle.Render(a.ID), a.Title)
				output.Dim("    %s · %s · %s", a.Category, a.Source, a.Time)
			}
			return nil
		},
	}
	cmd.Flags().Bool("bookmarked", false, "only show bookmarked articles")
	return cmd
}

func newBookmarksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bookmarks",
		Aliases: []string{"bm"},
		Short:   "Manage bookmarked articles",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List bookmarked articles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			articles := app.Bookmarks.Details()
			if query, _ := cmd.Flags().GetString("search"); query != "" {
				results := search.FuzzySearchArticles(articles, query)
				articles = make([]model.BookmarkedArticle, len(results))
				for i, r := range results {
					articles[i] = r.Article
				}
			}

			if output.IsJSON() {
				return output.JSON(articles)
			}
			if len(articles) == 0 {
				output.Dim("Keine Lesezeichen")
				return nil
			}
			for _, a := range articles {
				output.Printf("★ %s  %s\n", dimStyle.Render(a.ID), a.Title)
				output.Dim("    %s · %s · gemerkt am %s", a.Category, a.Source, a.BookmarkedDate.Local().Format("02.01.2006"))
			}
			if extra := len(app.Bookmarks.IDs()) - len(app.Bookmarks.Details()); extra > 0 {
				output.Dim("%d weitere ohne Details", extra)
			}
			return nil
		},
	}
	list.Flags().StringP("search", "s", "", "fuzzy filter by title")

	toggle := &cobra.Command{
		Use:   "toggle <article-id>",
		Short: "Bookmark or un-bookmark an article",
		Long: `Bookmark or un-bookmark an article. Articles from the news feed are
stored with their details; unknown IDs are recorded as bare IDs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			id := args[0]

			article, known := app.Data.Article(id)
			switch {
			case app.Bookmarks.IsBookmarked(id):
				if err := app.Bookmarks.Remove(id); err != nil {
					return err
				}
				output.Success("Lesezeichen entfernt")
			case known:
				app.Bookmarks.BookmarkArticle(article)
				output.Success("Lesezeichen gespeichert: %s", article.Title)
			default:
				app.Bookmarks.Toggle(id)
				output.Success("Lesezeichen gespeichert")
			}
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "remove <article-id>",
		Short: "Remove a bookmark",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Bookmarks.Remove(args[0]); err != nil {
				return err
			}
			output.Success("Lesezeichen entfernt")
			return nil
		},
	}

	export := &cobra.Command{
		Use:   "export [path]",
		Short: "Export bookmarks as a Netscape bookmark file",
		Long:  "Export bookmarks as a Netscape bookmark file. Use - to write to stdout.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			articles := app.Bookmarks.Details()
			doc := exporter.ExportBookmarksHTML(articles)

			path := firstArg(args)
			if path == "-" {
				output.Printf("%s", doc)
				return nil
			}
			if path == "" {
				var err error
				if path, err = exporter.DefaultExportPath(); err != nil {
					return fmt.Errorf("getting default export path: %w", err)
				}
			}

			if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
				return fmt.Errorf("writing file: %w", err)
			}
			output.Success("%d Lesezeichen nach %s exportiert", len(articles), path)
			return nil
		},
	}

	importCmd := &cobra.Command{
		Use:   "import <file.html>",
		Short: "Import bookmarks from a Netscape bookmark file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening file: %w", err)
			}
			defer file.Close()

			res, err := importer.ParseHTMLBookmarks(file)
			if err != nil {
				return fmt.Errorf("parsing HTML: %w", err)
			}

			added, duplicates := 0, 0
			for _, a := range res.Articles {
				if app.Bookmarks.Restore(a) {
					added++
				} else {
					duplicates++
				}
			}

			app.Logger.Info().Int("added", added).Int("duplicates", duplicates).Int("skipped", res.Skipped).Msg("Bookmarks imported")
			output.Success("%d Lesezeichen importiert", added)
			if duplicates > 0 || res.Skipped > 0 {
				output.Dim("%d bereits vorhanden, %d fremde Links übersprungen", duplicates, res.Skipped)
			}
			return nil
		},
	}

	cmd.AddCommand(list, toggle, remove, export, importCmd)
	return cmd
}

func newInboxCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "Show missed alerts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			now := time.Now()
			box := inbox.New(app.Data.MissedItems(now))

			items := box.Items()
			if unread, _ := cmd.Flags().GetBool("unread"); unread {
				items = box.Unread()
			}

			if output.IsJSON() {
				return output.JSON(items)
			}
			output.Printf("%d ungelesen\n", box.UnreadCount())
			for _, it := range items {
				dot := " "
				if !it.IsRead {
					dot = "●"
				}
				output.Printf("%s [%s] %s\n", dot, it.Priority, it.Title)
				output.Dim("    %s · %s", it.Subtitle, it.TimeAgo(now))
			}
			return nil
		},
	}
	cmd.Flags().Bool("unread", false, "only show unread alerts")
	return cmd
}
