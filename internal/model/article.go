package model

import (
	"strings"
	"time"
)

// articleURLPrefix addresses articles in exported bookmark files.
const articleURLPrefix = "finwatch://article/"

// NewsArticle is a news story as supplied by the data provider.
type NewsArticle struct {
	ID       string
	Title    string
	Category string
	Time     string // relative display time, e.g. "vor 2 Stunden"
	Source   string
	HasImage bool
	Body     string
}

// BookmarkedArticle is the persisted snapshot of a bookmarked NewsArticle.
type BookmarkedArticle struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Category       string    `json:"category"`
	Time           string    `json:"time"`
	Source         string    `json:"source"`
	HasImage       bool      `json:"hasImage"`
	BookmarkedDate time.Time `json:"bookmarkedDate"`
}

// NewBookmarkedArticle snapshots an article at bookmark time.
func NewBookmarkedArticle(article NewsArticle, bookmarkedAt time.Time) BookmarkedArticle {
	return BookmarkedArticle{
		ID:             article.ID,
		Title:          article.Title,
		Category:       article.Category,
		Time:           article.Time,
		Source:         article.Source,
		HasImage:       article.HasImage,
		BookmarkedDate: bookmarkedAt,
	}
}

// ArticleURL returns the link written for an article in bookmark exports.
func ArticleURL(id string) string {
	return articleURLPrefix + id
}

// ArticleIDFromURL extracts the article ID from a link made by ArticleURL.
func ArticleIDFromURL(url string) (string, bool) {
	id, ok := strings.CutPrefix(url, articleURLPrefix)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
