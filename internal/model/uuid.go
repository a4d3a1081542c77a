package model

import "github.com/google/uuid"

// newsNamespace seeds deterministic article IDs.
var newsNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("finwatch://news"))

// generateID creates a new random UUID.
func generateID() uuid.UUID {
	return uuid.New()
}

// ArticleID derives a stable article ID from its title, so an article keeps
// its bookmark across restarts.
func ArticleID(title string) string {
	return uuid.NewSHA1(newsNamespace, []byte(title)).String()
}
