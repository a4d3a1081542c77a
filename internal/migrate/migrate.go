// Package migrate upgrades the single-list layout of earlier releases to
// the multi-watchlist layout.
package migrate

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nikbrunner/finwatch/internal/model"
	"github.com/nikbrunner/finwatch/internal/storage"
)

// LegacyItem is the item record stored under the legacy key.
type LegacyItem struct {
	Symbol        string `json:"symbol"`
	Name          string `json:"name"`
	Price         string `json:"price"`
	Change        string `json:"change"`
	ChangePercent string `json:"changePercent"`
	IsPositive    bool   `json:"isPositive"`
}

// decodeLegacy parses the legacy payload.
func decodeLegacy(raw []byte) ([]LegacyItem, error) {
	var items []LegacyItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decoding legacy items: %w", err)
	}
	return items, nil
}

// MigrateIfNeeded moves legacy items into a new default watchlist.
//
// It runs only while no watchlists are persisted and the legacy key holds
// decodable data. The new watchlist is persisted as the only and active
// watchlist before the legacy key is removed. Records without a symbol are
// dropped; undecodable legacy data is left untouched. The returned bool
// reports whether a migration happened.
func MigrateIfNeeded(store *storage.Store, logger zerolog.Logger) (model.Watchlist, bool) {
	log := logger.With().Str("component", "migrate").Logger()

	if existing, ok := storage.Load[[]model.Watchlist](store, storage.KeyWatchlists); ok && len(existing) > 0 {
		return model.Watchlist{}, false
	}

	raw, ok := store.Raw(storage.KeyLegacyItems)
	if !ok {
		return model.Watchlist{}, false
	}

	legacy, err := decodeLegacy(raw)
	if err != nil {
		log.Warn().Err(err).Msg("skipping migration of undecodable legacy watchlist")
		return model.Watchlist{}, false
	}

	items := make([]model.WatchlistItem, 0, len(legacy))
	dropped := 0
	for _, it := range legacy {
		if strings.TrimSpace(it.Symbol) == "" {
			dropped++
			continue
		}
		items = append(items, model.WatchlistItem{
			ID:            uuid.New(),
			Symbol:        it.Symbol,
			Name:          it.Name,
			Price:         it.Price,
			Change:        it.Change,
			ChangePercent: it.ChangePercent,
			IsPositive:    it.IsPositive,
		})
	}

	w := model.NewWatchlist(model.NewWatchlistParams{
		Name:      model.DefaultWatchlistName,
		Items:     items,
		Color:     model.DefaultColor,
		CreatedAt: time.Now(),
	})

	storage.Save(store, storage.KeyWatchlists, []model.Watchlist{w})
	store.SaveScalar(storage.KeyActiveWatchlistID, w.ID.String())
	store.Remove(storage.KeyLegacyItems)

	if dropped > 0 {
		log.Warn().Int("dropped", dropped).Msg("dropped legacy items without symbol")
	}
	log.Info().Int("items", len(items)).Str("watchlist", w.ID.String()).Msg("migrated legacy watchlist")
	return w, true
}
