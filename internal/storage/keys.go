package storage

// Persisted key names. They match the layout used by earlier releases, so
// existing data keeps loading.
const (
	KeyWatchlists        = "watchlists_v2"
	KeyActiveWatchlistID = "activeWatchlistId"
	KeyLegacyItems       = "watchlistItems"

	KeyBookmarkIDs     = "bookmarkedArticles"
	KeyBookmarkDetails = "bookmarkedArticleDetails"
	KeyBookmarkToast   = "hasShownBookmarkToast"
)
