package watchlist

import "errors"

var (
	ErrNotFound        = errors.New("watchlist not found")
	ErrItemNotFound    = errors.New("item not found")
	ErrLastWatchlist   = errors.New("cannot delete the last watchlist")
	ErrDuplicateSymbol = errors.New("symbol already in watchlist")
	ErrInvalidIndex    = errors.New("invalid item index")
	ErrEmptyName       = errors.New("name must not be empty")
	ErrEmptySymbol     = errors.New("symbol must not be empty")
)
