package exporter

import (
	"cmp"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/nikbrunner/finwatch/internal/model"
)

// uncategorized groups articles without a category.
const uncategorized = "Allgemein"

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/finwatch-bookmarks-YYYY-MM-DD.html
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("finwatch-bookmarks-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportBookmarksHTML exports bookmarked articles to Netscape bookmark HTML.
// Articles are grouped into one folder per category, in bookmark order.
func ExportBookmarksHTML(articles []model.BookmarkedArticle) string {
	var b strings.Builder

	// Header
	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>finwatch Bookmarks</TITLE>\n")
	b.WriteString("<H1>finwatch Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")

	for _, group := range groupByCategory(articles) {
		prefix := "    "
		fmt.Fprintf(&b, "%s<DT><H3>%s</H3>\n", prefix, html.EscapeString(group.name))
		fmt.Fprintf(&b, "%s<DL><p>\n", prefix)
		for _, a := range group.articles {
			writeArticle(&b, a, prefix+"    ")
		}
		fmt.Fprintf(&b, "%s</DL><p>\n", prefix)
	}

	// Footer
	b.WriteString("</DL><p>\n")

	return b.String()
}

func writeArticle(b *strings.Builder, a model.BookmarkedArticle, prefix string) {
	fmt.Fprintf(b,
		"%s<DT><A HREF=\"%s\" ADD_DATE=\"%d\" TAGS=\"%s\" DATA-SOURCE=\"%s\" DATA-TIME=\"%s\" DATA-IMAGE=\"%t\">%s</A>\n",
		prefix,
		html.EscapeString(model.ArticleURL(a.ID)),
		a.BookmarkedDate.Unix(),
		html.EscapeString(a.Category),
		html.EscapeString(a.Source),
		html.EscapeString(a.Time),
		a.HasImage,
		html.EscapeString(a.Title),
	)
}

type categoryGroup struct {
	name     string
	articles []model.BookmarkedArticle
}

// groupByCategory keeps the first-seen order of categories.
func groupByCategory(articles []model.BookmarkedArticle) []categoryGroup {
	var groups []categoryGroup
	for _, a := range articles {
		name := cmp.Or(strings.TrimSpace(a.Category), uncategorized)
		i := slices.IndexFunc(groups, func(g categoryGroup) bool { return g.name == name })
		if i < 0 {
			groups = append(groups, categoryGroup{name: name})
			i = len(groups) - 1
		}
		groups[i].articles = append(groups[i].articles, a)
	}
	return groups
}
