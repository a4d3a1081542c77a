package importer

import (
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/nikbrunner/finwatch/internal/model"
)

// Result holds the articles read from a bookmark file.
type Result struct {
	Articles []model.BookmarkedArticle
	Skipped  int // anchors that do not point at a finwatch article
}

// ParseHTMLBookmarks reads a Netscape bookmark file written by the exporter.
// Links to anything other than a finwatch article are counted and skipped.
// An article without TAGS takes the name of its enclosing folder as category.
func ParseHTMLBookmarks(r io.Reader) (Result, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return Result{}, err
	}

	var res Result
	seen := map[string]bool{}

	// Track folder names for category fallback
	var folderStack []string
	var pendingFolder string

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				pendingFolder = getTextContent(n)
				return // Don't recurse into H3

			case "a":
				id, ok := model.ArticleIDFromURL(getAttr(n, "href"))
				if !ok {
					res.Skipped++
					return
				}
				if seen[id] {
					return
				}
				seen[id] = true

				category, tagged := lookupAttr(n, "tags")
				if !tagged && len(folderStack) > 0 {
					category = folderStack[len(folderStack)-1]
				}

				bookmarkedAt := time.Now().UTC()
				if addDate := getAttr(n, "add_date"); addDate != "" {
					if ts, err := strconv.ParseInt(addDate, 10, 64); err == nil {
						bookmarkedAt = time.Unix(ts, 0).UTC()
					}
				}

				hasImage, _ := strconv.ParseBool(getAttr(n, "data-image"))

				res.Articles = append(res.Articles, model.BookmarkedArticle{
					ID:             id,
					Title:          getTextContent(n),
					Category:       category,
					Time:           getAttr(n, "data-time"),
					Source:         getAttr(n, "data-source"),
					HasImage:       hasImage,
					BookmarkedDate: bookmarkedAt,
				})
				return // Don't recurse into A

			case "dl":
				// A DL right after an H3 holds that folder's contents
				pushed := false
				if pendingFolder != "" {
					folderStack = append(folderStack, pendingFolder)
					pendingFolder = ""
					pushed = true
				}

				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}

				if pushed {
					folderStack = folderStack[:len(folderStack)-1]
				}
				return
			}
		}

		// Recurse into children
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return res, nil
}

// getTextContent returns the text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	val, _ := lookupAttr(n, key)
	return val
}

// lookupAttr reports whether the attribute is present, even when empty.
func lookupAttr(n *html.Node, key string) (string, bool) {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val, true
		}
	}
	return "", false
}
