package search

import (
	"github.com/sahilm/fuzzy"

	"github.com/nikbrunner/finwatch/internal/mockdata"
	"github.com/nikbrunner/finwatch/internal/model"
)

// SecurityResult represents a fuzzy match in the securities catalogue.
type SecurityResult struct {
	Security       mockdata.Security
	MatchedIndexes []int // into SecurityLabel(Security)
	Score          int
}

// ArticleResult represents a fuzzy match among bookmarked articles.
type ArticleResult struct {
	Article        model.BookmarkedArticle
	MatchedIndexes []int
	Score          int
}

// SecurityLabel is the text securities are matched against: "SYMBOL Name".
func SecurityLabel(s mockdata.Security) string {
	return s.Symbol + " " + s.Name
}

// securityLabels implements fuzzy.Source for a securities slice.
type securityLabels []mockdata.Security

func (sl securityLabels) String(i int) string {
	return SecurityLabel(sl[i])
}

func (sl securityLabels) Len() int {
	return len(sl)
}

// articleTitles implements fuzzy.Source for bookmarked articles.
type articleTitles []model.BookmarkedArticle

func (at articleTitles) String(i int) string {
	return at[i].Title
}

func (at articleTitles) Len() int {
	return len(at)
}

// FuzzySearchSecurities searches the catalogue by symbol and name.
// Returns results sorted by match score (best first).
func FuzzySearchSecurities(securities []mockdata.Security, query string) []SecurityResult {
	if query == "" {
		return nil
	}

	matches := fuzzy.FindFrom(query, securityLabels(securities))

	results := make([]SecurityResult, len(matches))
	for i, m := range matches {
		results[i] = SecurityResult{
			Security:       securities[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}

	return results
}

// FuzzySearchArticles searches bookmarked articles by title.
func FuzzySearchArticles(articles []model.BookmarkedArticle, query string) []ArticleResult {
	if query == "" {
		return nil
	}

	matches := fuzzy.FindFrom(query, articleTitles(articles))

	results := make([]ArticleResult, len(matches))
	for i, m := range matches {
		results[i] = ArticleResult{
			Article:        articles[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}

	return results
}
