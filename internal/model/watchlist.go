package model

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultWatchlistName names the watchlist created on first run and by the
// legacy migration.
const DefaultWatchlistName = "Meine Watchlist"

// mockValuePerItem stands in for position value until holdings are tracked.
const mockValuePerItem = 1000.0

// Watchlist is a named, ordered collection of tracked instruments.
type Watchlist struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Items     []WatchlistItem `json:"items"`
	Color     string          `json:"color"` // "#RRGGBB"
	CreatedAt time.Time       `json:"createdAt"`
}

// NewWatchlistParams holds parameters for creating a new Watchlist.
type NewWatchlistParams struct {
	Name      string
	Items     []WatchlistItem
	Color     ThemeColor
	CreatedAt time.Time // zero = now
}

// NewWatchlist creates a Watchlist with a generated ID.
func NewWatchlist(params NewWatchlistParams) Watchlist {
	items := params.Items
	if items == nil {
		items = []WatchlistItem{}
	}
	createdAt := params.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	return Watchlist{
		ID:        generateID(),
		Name:      params.Name,
		Items:     items,
		Color:     params.Color.Hex(),
		CreatedAt: createdAt,
	}
}

// ThemeRGBA decodes the stored color, falling back to blue.
func (w Watchlist) ThemeRGBA() RGBA {
	if rgba, ok := ParseHex(w.Color); ok {
		return rgba
	}
	return DefaultColor.RGBA()
}

// TotalValue returns a mock portfolio value.
func (w Watchlist) TotalValue() float64 {
	return float64(len(w.Items)) * mockValuePerItem
}

// TotalChange sums the percentage change of all items.
func (w Watchlist) TotalChange() float64 {
	return w.totalChange().InexactFloat64()
}

// AverageChange returns the mean percentage change, 0 for an empty watchlist.
func (w Watchlist) AverageChange() float64 {
	if len(w.Items) == 0 {
		return 0
	}
	return w.totalChange().Div(decimal.NewFromInt(int64(len(w.Items)))).InexactFloat64()
}

func (w Watchlist) totalChange() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range w.Items {
		sum = sum.Add(item.PercentValue())
	}
	return sum
}

// TopPerformers returns the items ordered by percentage change, best first.
// Items with equal change keep their watchlist order.
func (w Watchlist) TopPerformers() []WatchlistItem {
	sorted := slices.Clone(w.Items)
	slices.SortStableFunc(sorted, func(a, b WatchlistItem) int {
		return b.PercentValue().Cmp(a.PercentValue())
	})
	return sorted
}

// HasSymbol reports whether an item with the given symbol is present.
func (w Watchlist) HasSymbol(symbol string) bool {
	return w.IndexOfSymbol(symbol) >= 0
}

// IndexOfSymbol returns the position of symbol, or -1.
func (w Watchlist) IndexOfSymbol(symbol string) int {
	for i := range w.Items {
		if w.Items[i].Symbol == symbol {
			return i
		}
	}
	return -1
}

// IndexOfItem returns the position of the item with the given ID, or -1.
func (w Watchlist) IndexOfItem(id uuid.UUID) int {
	for i := range w.Items {
		if w.Items[i].ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a copy that shares no item storage with w.
func (w Watchlist) Clone() Watchlist {
	w.Items = slices.Clone(w.Items)
	if w.Items == nil {
		w.Items = []WatchlistItem{}
	}
	return w
}
