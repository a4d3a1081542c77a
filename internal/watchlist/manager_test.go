package watchlist_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nikbrunner/finwatch/internal/model"
	"github.com/nikbrunner/finwatch/internal/storage"
	"github.com/nikbrunner/finwatch/internal/watchlist"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func floatPtr(f float64) *float64 { return &f }

func newManager(t *testing.T, kv *storage.MemoryKV) *watchlist.Manager {
	t.Helper()
	return watchlist.New(watchlist.Params{
		Store:  storage.NewStore(kv, zerolog.Nop()),
		Logger: zerolog.Nop(),
		Now:    func() time.Time { return fixedNow },
	})
}

func seedWatchlists(t *testing.T, kv *storage.MemoryKV, lists ...model.Watchlist) {
	t.Helper()
	data, err := json.Marshal(lists)
	assert.NilError(t, err)
	assert.NilError(t, kv.Set(storage.KeyWatchlists, data))
}

func named(name string, symbols ...string) model.Watchlist {
	w := model.NewWatchlist(model.NewWatchlistParams{Name: name, CreatedAt: fixedNow})
	for _, s := range symbols {
		w.Items = append(w.Items, model.NewItem(model.NewItemParams{Symbol: s, Name: s}))
	}
	return w
}

func symbolsOf(w model.Watchlist) []string {
	out := []string{}
	for _, i := range w.Items {
		out = append(out, i.Symbol)
	}
	return out
}

func TestNew_EmptyStoreCreatesDefault(t *testing.T) {
	kv := storage.NewMemoryKV()
	m := newManager(t, kv)

	lists := m.Watchlists()
	assert.Assert(t, is.Len(lists, 1))
	assert.Equal(t, lists[0].Name, "Meine Watchlist")
	assert.Equal(t, lists[0].Color, "#007AFF")
	assert.Check(t, lists[0].CreatedAt.Equal(fixedNow))
	assert.Equal(t, m.ActiveID(), lists[0].ID)

	// The default is persisted right away.
	raw, ok, _ := kv.Get(storage.KeyActiveWatchlistID)
	assert.Check(t, ok)
	assert.Equal(t, string(raw), lists[0].ID.String())
	assert.Check(t, is.Len(reload(t, kv).Watchlists(), 1))
}

func TestNew_MigratesLegacyItems(t *testing.T) {
	kv := storage.NewMemoryKV()
	kv.Set(storage.KeyLegacyItems, []byte(`[
		{"symbol":"AAPL","name":"Apple Inc.","price":"$178.72","change":"+2.34","changePercent":"+1.33%","isPositive":true},
		{"symbol":"MSFT","name":"Microsoft","price":"$378.91","change":"-1.23","changePercent":"-0.32%","isPositive":false},
		{"symbol":"SAP","name":"SAP SE","price":"$142.10","change":"+0.80","changePercent":"+0.57%","isPositive":true}
	]`))

	m := newManager(t, kv)

	lists := m.Watchlists()
	assert.Assert(t, is.Len(lists, 1))
	assert.Equal(t, lists[0].Name, "Meine Watchlist")
	assert.DeepEqual(t, symbolsOf(lists[0]), []string{"AAPL", "MSFT", "SAP"})
	assert.Equal(t, m.ActiveID(), lists[0].ID)

	_, ok, _ := kv.Get(storage.KeyLegacyItems)
	assert.Check(t, !ok, "legacy key should be removed")
}

func TestNew_ActivePointer(t *testing.T) {
	a := named("A")
	b := named("B")

	tests := []struct {
		name       string
		active     string
		wantActive uuid.UUID
	}{
		{"valid pointer", b.ID.String(), b.ID},
		{"stale pointer", uuid.NewString(), a.ID},
		{"garbage pointer", "not-a-uuid", a.ID},
		{"missing pointer", "", a.ID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := storage.NewMemoryKV()
			seedWatchlists(t, kv, a, b)
			if tt.active != "" {
				kv.Set(storage.KeyActiveWatchlistID, []byte(tt.active))
			}

			m := newManager(t, kv)

			assert.Equal(t, m.ActiveID(), tt.wantActive)
			assert.Equal(t, m.Active().Name, map[uuid.UUID]string{a.ID: "A", b.ID: "B"}[tt.wantActive])
			assert.Check(t, is.Len(m.Watchlists(), 2))
		})
	}
}

func TestNew_UndecodableWatchlistsTreatedAsAbsent(t *testing.T) {
	kv := storage.NewMemoryKV()
	kv.Set(storage.KeyWatchlists, []byte(`{"oops"`))

	m := newManager(t, kv)

	assert.Check(t, is.Len(m.Watchlists(), 1))
	assert.Equal(t, m.Active().Name, model.DefaultWatchlistName)
}

func TestManager_Create(t *testing.T) {
	m := newManager(t, storage.NewMemoryKV())

	w, err := m.Create("  Tech  ", model.Purple)
	assert.NilError(t, err)
	assert.Equal(t, w.Name, "Tech")
	assert.Equal(t, w.Color, "#AF52DE")
	assert.Check(t, is.Len(w.Items, 0))

	// Duplicate names are allowed.
	_, err = m.Create("Tech", model.Blue)
	assert.NilError(t, err)
	assert.Check(t, is.Len(m.Watchlists(), 3))

	// Creating does not switch the active watchlist.
	assert.Equal(t, m.Active().Name, model.DefaultWatchlistName)

	_, err = m.Create("   ", model.Blue)
	assert.Check(t, errors.Is(err, watchlist.ErrEmptyName))
	assert.Check(t, is.Len(m.Watchlists(), 3))
}

func TestManager_Delete(t *testing.T) {
	a, b, c := named("A"), named("B"), named("C")

	tests := []struct {
		name       string
		seed       []model.Watchlist
		active     uuid.UUID
		target     uuid.UUID
		wantErr    error
		wantNames  []string
		wantActive string
	}{
		{
			name: "inactive watchlist", seed: []model.Watchlist{a, b, c}, active: a.ID, target: c.ID,
			wantNames: []string{"A", "B"}, wantActive: "A",
		},
		{
			name: "active watchlist falls back to first", seed: []model.Watchlist{a, b, c}, active: b.ID, target: b.ID,
			wantNames: []string{"A", "C"}, wantActive: "A",
		},
		{
			name: "active first watchlist", seed: []model.Watchlist{a, b}, active: a.ID, target: a.ID,
			wantNames: []string{"B"}, wantActive: "B",
		},
		{
			name: "nil targets active", seed: []model.Watchlist{a, b}, active: b.ID, target: uuid.Nil,
			wantNames: []string{"A"}, wantActive: "A",
		},
		{
			name: "last watchlist refused", seed: []model.Watchlist{a}, active: a.ID, target: a.ID,
			wantErr: watchlist.ErrLastWatchlist, wantNames: []string{"A"}, wantActive: "A",
		},
		{
			name: "unknown watchlist", seed: []model.Watchlist{a, b}, active: a.ID, target: uuid.New(),
			wantErr: watchlist.ErrNotFound, wantNames: []string{"A", "B"}, wantActive: "A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := storage.NewMemoryKV()
			seedWatchlists(t, kv, tt.seed...)
			kv.Set(storage.KeyActiveWatchlistID, []byte(tt.active.String()))
			m := newManager(t, kv)

			err := m.Delete(tt.target)
			if tt.wantErr != nil {
				assert.Check(t, errors.Is(err, tt.wantErr), "got %v", err)
			} else {
				assert.NilError(t, err)
			}

			var names []string
			for _, w := range m.Watchlists() {
				names = append(names, w.Name)
			}
			assert.DeepEqual(t, names, tt.wantNames)
			assert.Equal(t, m.Active().Name, tt.wantActive)

			// Persisted state matches memory.
			r := reload(t, kv)
			assert.Check(t, is.Len(r.Watchlists(), len(tt.wantNames)))
			assert.Equal(t, r.Active().Name, tt.wantActive)
		})
	}
}

func TestManager_RenameAndRecolor(t *testing.T) {
	kv := storage.NewMemoryKV()
	a, b := named("A"), named("B")
	seedWatchlists(t, kv, a, b)
	m := newManager(t, kv)

	assert.NilError(t, m.Rename(b.ID, "Dividenden"))
	assert.NilError(t, m.Recolor(b.ID, model.Mint))

	got, ok := m.Get(b.ID)
	assert.Assert(t, ok)
	assert.Equal(t, got.Name, "Dividenden")
	assert.Equal(t, got.Color, "#00C7BE")

	unknown := uuid.New()
	assert.Check(t, errors.Is(m.Rename(unknown, "X"), watchlist.ErrNotFound))
	assert.Check(t, errors.Is(m.Recolor(unknown, model.Red), watchlist.ErrNotFound))
	assert.Check(t, errors.Is(m.Rename(b.ID, ""), watchlist.ErrEmptyName))

	r := reload(t, kv)
	persisted, _ := r.Get(b.ID)
	assert.Equal(t, persisted.Name, "Dividenden")
	assert.Equal(t, persisted.Color, "#00C7BE")
}

func TestManager_SwitchActive(t *testing.T) {
	kv := storage.NewMemoryKV()
	a, b := named("A"), named("B")
	seedWatchlists(t, kv, a, b)
	m := newManager(t, kv)

	assert.NilError(t, m.SwitchActive(b.ID))
	assert.Equal(t, m.ActiveID(), b.ID)
	assert.Equal(t, reload(t, kv).ActiveID(), b.ID)

	err := m.SwitchActive(uuid.New())
	assert.Check(t, errors.Is(err, watchlist.ErrNotFound))
	assert.Equal(t, m.ActiveID(), b.ID)
}

func TestManager_AddItem(t *testing.T) {
	kv := storage.NewMemoryKV()
	m := newManager(t, kv)

	item, err := m.AddItem(watchlist.AddItemParams{
		Symbol: "NVDA", Name: "NVIDIA Corp.",
		Price: floatPtr(724.31), Change: floatPtr(15.42), ChangePercent: floatPtr(2.14),
		IsPositive: true,
	})
	assert.NilError(t, err)
	assert.Equal(t, item.Price, "$724.31")
	assert.Equal(t, item.Change, "+15.42")
	assert.Equal(t, item.ChangePercent, "+2.14%")

	placeholder, err := m.AddItem(watchlist.AddItemParams{Symbol: "SAP", Name: "SAP SE"})
	assert.NilError(t, err)
	assert.Equal(t, placeholder.Price, "$0.00")
	assert.Equal(t, placeholder.Change, "+0.00")
	assert.Equal(t, placeholder.ChangePercent, "+0.00%")

	_, err = m.AddItem(watchlist.AddItemParams{Symbol: "NVDA", Name: "again"})
	assert.Check(t, errors.Is(err, watchlist.ErrDuplicateSymbol))

	_, err = m.AddItem(watchlist.AddItemParams{Symbol: " "})
	assert.Check(t, errors.Is(err, watchlist.ErrEmptySymbol))

	_, err = m.AddItem(watchlist.AddItemParams{WatchlistID: uuid.New(), Symbol: "TSLA"})
	assert.Check(t, errors.Is(err, watchlist.ErrNotFound))

	assert.DeepEqual(t, symbolsOf(m.Active()), []string{"NVDA", "SAP"})
	assert.DeepEqual(t, symbolsOf(reload(t, kv).Active()), []string{"NVDA", "SAP"})
}

func TestManager_AddItemToExplicitWatchlist(t *testing.T) {
	m := newManager(t, storage.NewMemoryKV())
	other, err := m.Create("Other", model.Orange)
	assert.NilError(t, err)

	_, err = m.AddItem(watchlist.AddItemParams{WatchlistID: other.ID, Symbol: "AAPL"})
	assert.NilError(t, err)

	assert.Check(t, m.IsInWatchlist(other.ID, "AAPL"))
	assert.Check(t, !m.IsInWatchlist(uuid.Nil, "AAPL"), "active watchlist is untouched")

	// The same symbol may live in different watchlists.
	_, err = m.AddItem(watchlist.AddItemParams{Symbol: "AAPL"})
	assert.NilError(t, err)
}

func TestManager_IsInWatchlistAfterAddAndRemove(t *testing.T) {
	m := newManager(t, storage.NewMemoryKV())

	item, err := m.AddItem(watchlist.AddItemParams{Symbol: "AAPL", Name: "Apple Inc."})
	assert.NilError(t, err)
	assert.Check(t, m.IsInWatchlist(uuid.Nil, "AAPL"))

	assert.NilError(t, m.RemoveItem(uuid.Nil, item.ID))
	assert.Check(t, !m.IsInWatchlist(uuid.Nil, "AAPL"))

	err = m.RemoveItem(uuid.Nil, item.ID)
	assert.Check(t, errors.Is(err, watchlist.ErrItemNotFound))
	assert.Check(t, !m.IsInWatchlist(uuid.New(), "AAPL"))
}

func TestManager_MoveItems(t *testing.T) {
	tests := []struct {
		name    string
		from    []int
		to      int
		want    []string
		wantErr error
	}{
		{"first to middle", []int{0}, 2, []string{"B", "A", "C", "D"}, nil},
		{"first to end", []int{0}, 4, []string{"B", "C", "D", "A"}, nil},
		{"last to front", []int{3}, 0, []string{"D", "A", "B", "C"}, nil},
		{"onto itself", []int{1}, 1, []string{"A", "B", "C", "D"}, nil},
		{"just after itself", []int{1}, 2, []string{"A", "B", "C", "D"}, nil},
		{"several to end", []int{1, 3}, 4, []string{"A", "C", "B", "D"}, nil},
		{"several to front", []int{3, 2}, 0, []string{"C", "D", "A", "B"}, nil},
		{"straddling destination", []int{0, 3}, 2, []string{"B", "A", "D", "C"}, nil},
		{"duplicate offsets", []int{0, 0}, 2, []string{"B", "A", "C", "D"}, nil},
		{"destination out of range", []int{0}, 5, []string{"A", "B", "C", "D"}, watchlist.ErrInvalidIndex},
		{"source out of range", []int{4}, 0, []string{"A", "B", "C", "D"}, watchlist.ErrInvalidIndex},
		{"negative source", []int{-1}, 0, []string{"A", "B", "C", "D"}, watchlist.ErrInvalidIndex},
		{"no source", nil, 0, []string{"A", "B", "C", "D"}, watchlist.ErrInvalidIndex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := storage.NewMemoryKV()
			w := named("W", "A", "B", "C", "D")
			seedWatchlists(t, kv, w)
			m := newManager(t, kv)

			err := m.MoveItems(w.ID, tt.from, tt.to)
			if tt.wantErr != nil {
				assert.Check(t, errors.Is(err, tt.wantErr), "got %v", err)
			} else {
				assert.NilError(t, err)
			}

			got, _ := m.Get(w.ID)
			assert.DeepEqual(t, symbolsOf(got), tt.want)

			persisted, _ := reload(t, kv).Get(w.ID)
			assert.DeepEqual(t, symbolsOf(persisted), tt.want)
		})
	}
}

func TestManager_FindByName(t *testing.T) {
	kv := storage.NewMemoryKV()
	seedWatchlists(t, kv, named("Tech"), named("Dividenden"))
	m := newManager(t, kv)

	w, ok := m.FindByName("dividenden")
	assert.Check(t, ok)
	assert.Equal(t, w.Name, "Dividenden")

	_, ok = m.FindByName("Crypto")
	assert.Check(t, !ok)
}

func TestManager_ReadsReturnCopies(t *testing.T) {
	m := newManager(t, storage.NewMemoryKV())
	_, err := m.AddItem(watchlist.AddItemParams{Symbol: "AAPL"})
	assert.NilError(t, err)

	items := m.ActiveItems()
	items[0].Symbol = "HACKED"
	lists := m.Watchlists()
	lists[0].Name = "HACKED"

	assert.Check(t, m.IsInWatchlist(uuid.Nil, "AAPL"))
	assert.Equal(t, m.Active().Name, model.DefaultWatchlistName)
}

func TestManager_NotifiesOncePerSuccessfulMutation(t *testing.T) {
	m := newManager(t, storage.NewMemoryKV())

	var snapshots []watchlist.Snapshot
	unsubscribe := m.Subscribe(func(s watchlist.Snapshot) { snapshots = append(snapshots, s) })

	w, _ := m.Create("Tech", model.Green)
	m.SwitchActive(w.ID)
	item, _ := m.AddItem(watchlist.AddItemParams{Symbol: "AAPL"})
	m.AddItem(watchlist.AddItemParams{Symbol: "AAPL"}) // duplicate
	m.Rename(uuid.New(), "nope")                       // unknown
	m.RemoveItem(uuid.Nil, item.ID)
	m.Delete(w.ID)

	assert.Check(t, is.Len(snapshots, 5))

	last := snapshots[len(snapshots)-1]
	assert.Check(t, is.Len(last.Watchlists, 1))
	assert.Equal(t, last.Active().Name, model.DefaultWatchlistName)

	// The third notification carries the freshly added item.
	assert.Check(t, snapshots[2].Active().HasSymbol("AAPL"))

	unsubscribe()
	m.Create("Quiet", model.Blue)
	assert.Check(t, is.Len(snapshots, 5))
}

func TestManager_RejectedCallsDoNotPersist(t *testing.T) {
	kv := storage.NewMemoryKV()
	m := newManager(t, kv)
	before, _, _ := kv.Get(storage.KeyWatchlists)

	m.Delete(m.ActiveID())
	m.Rename(uuid.New(), "x")
	m.MoveItems(uuid.Nil, []int{0}, 0)

	after, _, _ := kv.Get(storage.KeyWatchlists)
	assert.Equal(t, string(after), string(before))
}

func reload(t *testing.T, kv *storage.MemoryKV) *watchlist.Manager {
	t.Helper()
	return newManager(t, kv)
}
