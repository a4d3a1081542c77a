// Package watchlist owns the user's watchlists and the active-watchlist
// pointer. All mutations persist immediately and then notify subscribers.
package watchlist

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nikbrunner/finwatch/internal/event"
	"github.com/nikbrunner/finwatch/internal/migrate"
	"github.com/nikbrunner/finwatch/internal/model"
	"github.com/nikbrunner/finwatch/internal/storage"
)

// Snapshot is the manager state handed to subscribers.
type Snapshot struct {
	Watchlists []model.Watchlist
	ActiveID   uuid.UUID
}

// Active returns the active watchlist of the snapshot.
func (s Snapshot) Active() model.Watchlist {
	for _, w := range s.Watchlists {
		if w.ID == s.ActiveID {
			return w
		}
	}
	if len(s.Watchlists) > 0 {
		return s.Watchlists[0]
	}
	return model.Watchlist{}
}

// Params holds the collaborators of a Manager.
type Params struct {
	Store  *storage.Store
	Logger zerolog.Logger
	Now    func() time.Time // nil = time.Now
}

// AddItemParams describes an item to add. A nil WatchlistID targets the
// active watchlist; nil quote values are stored as zero placeholders.
type AddItemParams struct {
	WatchlistID   uuid.UUID
	Symbol        string
	Name          string
	Price         *float64
	Change        *float64
	ChangePercent *float64
	IsPositive    bool
}

// Manager holds the watchlist collection. It is not safe for concurrent use;
// callers drive it from a single goroutine.
//
// Methods taking a watchlist ID treat uuid.Nil as the active watchlist.
// Rejected calls return an error, leave state untouched and notify nobody.
type Manager struct {
	store *storage.Store
	log   zerolog.Logger
	now   func() time.Time

	watchlists []model.Watchlist
	activeID   uuid.UUID

	events event.Emitter[Snapshot]
}

// New loads persisted state, migrating legacy data and creating a default
// watchlist when nothing is stored.
func New(params Params) *Manager {
	m := &Manager{
		store: params.Store,
		log:   params.Logger.With().Str("component", "watchlist").Logger(),
		now:   params.Now,
	}
	if m.now == nil {
		m.now = time.Now
	}

	m.load(params.Logger)
	return m
}

func (m *Manager) load(logger zerolog.Logger) {
	if loaded, ok := storage.Load[[]model.Watchlist](m.store, storage.KeyWatchlists); ok {
		m.watchlists = loaded
	}
	if raw, ok := m.store.LoadScalar(storage.KeyActiveWatchlistID); ok {
		if id, err := uuid.Parse(raw); err == nil {
			m.activeID = id
		}
	}

	if len(m.watchlists) == 0 {
		if w, migrated := migrate.MigrateIfNeeded(m.store, logger); migrated {
			m.watchlists = []model.Watchlist{w}
			m.activeID = w.ID
		}
	}

	if len(m.watchlists) == 0 {
		w := model.NewWatchlist(model.NewWatchlistParams{
			Name:      model.DefaultWatchlistName,
			Color:     model.DefaultColor,
			CreatedAt: m.now(),
		})
		m.watchlists = []model.Watchlist{w}
		m.activeID = w.ID
		m.persist()
		m.log.Info().Str("watchlist", w.ID.String()).Msg("created default watchlist")
	}

	for i := range m.watchlists {
		if m.watchlists[i].Items == nil {
			m.watchlists[i].Items = []model.WatchlistItem{}
		}
	}

	if m.indexOf(m.activeID) < 0 {
		m.log.Info().Str("stale", m.activeID.String()).Msg("resetting active watchlist")
		m.activeID = m.watchlists[0].ID
		m.store.SaveScalar(storage.KeyActiveWatchlistID, m.activeID.String())
	}
}

// Subscribe registers fn to receive the state after every successful
// mutation. The returned function unregisters it.
func (m *Manager) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	return m.events.Subscribe(fn)
}

// Snapshot returns a copy of the current state.
func (m *Manager) Snapshot() Snapshot {
	return Snapshot{Watchlists: m.Watchlists(), ActiveID: m.activeID}
}

// Watchlists returns copies of all watchlists in display order.
func (m *Manager) Watchlists() []model.Watchlist {
	out := make([]model.Watchlist, len(m.watchlists))
	for i, w := range m.watchlists {
		out[i] = w.Clone()
	}
	return out
}

// ActiveID returns the ID of the active watchlist.
func (m *Manager) ActiveID() uuid.UUID {
	return m.activeID
}

// Active returns a copy of the active watchlist.
func (m *Manager) Active() model.Watchlist {
	return m.watchlists[m.activeIndex()].Clone()
}

// ActiveItems returns the items of the active watchlist.
func (m *Manager) ActiveItems() []model.WatchlistItem {
	return m.Active().Items
}

// Get returns a copy of the watchlist with the given ID.
func (m *Manager) Get(id uuid.UUID) (model.Watchlist, bool) {
	i := m.resolve(id)
	if i < 0 {
		return model.Watchlist{}, false
	}
	return m.watchlists[i].Clone(), true
}

// FindByName returns the first watchlist whose name matches, ignoring case.
func (m *Manager) FindByName(name string) (model.Watchlist, bool) {
	name = strings.TrimSpace(name)
	for _, w := range m.watchlists {
		if strings.EqualFold(w.Name, name) {
			return w.Clone(), true
		}
	}
	return model.Watchlist{}, false
}

// IsInWatchlist reports whether symbol is in the watchlist.
func (m *Manager) IsInWatchlist(watchlistID uuid.UUID, symbol string) bool {
	i := m.resolve(watchlistID)
	if i < 0 {
		return false
	}
	return m.watchlists[i].HasSymbol(symbol)
}

// Create appends an empty watchlist. Names need not be unique.
func (m *Manager) Create(name string, color model.ThemeColor) (model.Watchlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Watchlist{}, m.reject("create", ErrEmptyName)
	}

	w := model.NewWatchlist(model.NewWatchlistParams{
		Name:      name,
		Color:     color,
		CreatedAt: m.now(),
	})
	m.watchlists = append(m.watchlists, w)
	m.commit()

	m.log.Debug().Str("watchlist", w.ID.String()).Str("name", name).Msg("created watchlist")
	return w.Clone(), nil
}

// Delete removes a watchlist. The last watchlist cannot be deleted. Deleting
// the active watchlist activates the first remaining one.
func (m *Manager) Delete(id uuid.UUID) error {
	i := m.resolve(id)
	if i < 0 {
		return m.reject("delete", fmt.Errorf("%w: %s", ErrNotFound, id))
	}
	if len(m.watchlists) <= 1 {
		return m.reject("delete", ErrLastWatchlist)
	}

	removed := m.watchlists[i].ID
	m.watchlists = append(m.watchlists[:i], m.watchlists[i+1:]...)
	if m.activeID == removed {
		m.activeID = m.watchlists[0].ID
	}
	m.commit()
	return nil
}

// Rename changes a watchlist's name.
func (m *Manager) Rename(id uuid.UUID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return m.reject("rename", ErrEmptyName)
	}
	i := m.resolve(id)
	if i < 0 {
		return m.reject("rename", fmt.Errorf("%w: %s", ErrNotFound, id))
	}

	m.watchlists[i].Name = name
	m.commit()
	return nil
}

// Recolor changes a watchlist's theme color.
func (m *Manager) Recolor(id uuid.UUID, color model.ThemeColor) error {
	i := m.resolve(id)
	if i < 0 {
		return m.reject("recolor", fmt.Errorf("%w: %s", ErrNotFound, id))
	}

	m.watchlists[i].Color = color.Hex()
	m.commit()
	return nil
}

// SwitchActive makes the given watchlist active. Unknown IDs are rejected.
func (m *Manager) SwitchActive(id uuid.UUID) error {
	i := m.indexOf(id)
	if i < 0 {
		return m.reject("switch", fmt.Errorf("%w: %s", ErrNotFound, id))
	}

	m.activeID = id
	m.commit()
	return nil
}

// AddItem appends a new item to the target watchlist. A symbol may appear
// only once per watchlist.
func (m *Manager) AddItem(params AddItemParams) (model.WatchlistItem, error) {
	symbol := strings.TrimSpace(params.Symbol)
	if symbol == "" {
		return model.WatchlistItem{}, m.reject("add", ErrEmptySymbol)
	}
	i := m.resolve(params.WatchlistID)
	if i < 0 {
		return model.WatchlistItem{}, m.reject("add", fmt.Errorf("%w: %s", ErrNotFound, params.WatchlistID))
	}
	if m.watchlists[i].HasSymbol(symbol) {
		return model.WatchlistItem{}, m.reject("add", fmt.Errorf("%w: %s", ErrDuplicateSymbol, symbol))
	}

	item := model.NewItem(model.NewItemParams{
		Symbol:        symbol,
		Name:          params.Name,
		Price:         params.Price,
		Change:        params.Change,
		ChangePercent: params.ChangePercent,
		IsPositive:    params.IsPositive,
	})
	m.watchlists[i].Items = append(m.watchlists[i].Items, item)
	m.commit()
	return item, nil
}

// RemoveItem removes the item with the given ID from the watchlist.
func (m *Manager) RemoveItem(watchlistID, itemID uuid.UUID) error {
	i := m.resolve(watchlistID)
	if i < 0 {
		return m.reject("remove", fmt.Errorf("%w: %s", ErrNotFound, watchlistID))
	}
	j := m.watchlists[i].IndexOfItem(itemID)
	if j < 0 {
		return m.reject("remove", fmt.Errorf("%w: %s", ErrItemNotFound, itemID))
	}

	items := m.watchlists[i].Items
	m.watchlists[i].Items = append(items[:j], items[j+1:]...)
	m.commit()
	return nil
}

// MoveItems reorders the items of a watchlist. The items at the from offsets
// are moved, keeping their relative order, to sit before the item that was
// at offset to; to may equal the item count to move them to the end.
func (m *Manager) MoveItems(watchlistID uuid.UUID, from []int, to int) error {
	i := m.resolve(watchlistID)
	if i < 0 {
		return m.reject("move", fmt.Errorf("%w: %s", ErrNotFound, watchlistID))
	}

	items, err := moveOffsets(m.watchlists[i].Items, from, to)
	if err != nil {
		return m.reject("move", err)
	}

	m.watchlists[i].Items = items
	m.commit()
	return nil
}

// commit persists the state and notifies subscribers.
func (m *Manager) commit() {
	m.persist()
	m.events.Emit(m.Snapshot())
}

func (m *Manager) persist() {
	storage.Save(m.store, storage.KeyWatchlists, m.watchlists)
	m.store.SaveScalar(storage.KeyActiveWatchlistID, m.activeID.String())
}

func (m *Manager) reject(op string, err error) error {
	m.log.Warn().Err(err).Str("op", op).Msg("rejected")
	return err
}

// resolve maps uuid.Nil to the active watchlist and returns the index of id,
// or -1.
func (m *Manager) resolve(id uuid.UUID) int {
	if id == uuid.Nil {
		return m.activeIndex()
	}
	return m.indexOf(id)
}

func (m *Manager) activeIndex() int {
	if i := m.indexOf(m.activeID); i >= 0 {
		return i
	}
	return 0
}

func (m *Manager) indexOf(id uuid.UUID) int {
	for i := range m.watchlists {
		if m.watchlists[i].ID == id {
			return i
		}
	}
	return -1
}
