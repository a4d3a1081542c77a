// Package tui implements the interactive finwatch terminal UI.
package tui

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/nikbrunner/finwatch/internal/bookmark"
	"github.com/nikbrunner/finwatch/internal/inbox"
	"github.com/nikbrunner/finwatch/internal/mockdata"
	"github.com/nikbrunner/finwatch/internal/model"
	"github.com/nikbrunner/finwatch/internal/tui/layout"
	"github.com/nikbrunner/finwatch/internal/watchlist"
)

const defaultToastDuration = 3 * time.Second

// live holds manager state delivered through subscriptions. It is shared by
// every copy of App, so notifications reach the model bubbletea holds.
type live struct {
	watchlists watchlist.Snapshot
	bookmarks  map[string]bool
}

// App is the main bubbletea model.
type App struct {
	watchlists *watchlist.Manager
	bookmarks  *bookmark.Manager
	inbox      *inbox.Inbox
	data       *mockdata.Provider

	keys          KeyMap
	styles        Styles
	layoutConfig  layout.LayoutConfig
	clipboard     func(string) error
	toastDuration time.Duration
	now           func() time.Time

	live        *live
	unsubscribe []func()

	tab  Tab
	mode Mode

	cursor      int // watchlist items
	newsCursor  int
	inboxCursor int
	news        []model.NewsArticle

	input InputState
	toast ToastState

	// For gg command
	lastKeyWasG bool

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Watchlists    *watchlist.Manager
	Bookmarks     *bookmark.Manager
	Inbox         *inbox.Inbox            // optional, seeded from Data if nil
	Data          *mockdata.Provider      // optional, uses mockdata.New() if nil
	Keys          *KeyMap                 // optional, uses default if nil
	Styles        *Styles                 // optional, uses default if nil
	LayoutConfig  *layout.LayoutConfig    // optional, uses default if nil
	Clipboard     func(text string) error // optional, yank is disabled if nil
	ToastDuration time.Duration           // 0 = 3s
	StartTab      Tab
	Now           func() time.Time // nil = time.Now
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	layoutConfig := layout.DefaultConfig()
	if params.LayoutConfig != nil {
		layoutConfig = *params.LayoutConfig
	}

	data := params.Data
	if data == nil {
		data = mockdata.New()
	}

	now := params.Now
	if now == nil {
		now = time.Now
	}

	box := params.Inbox
	if box == nil {
		box = inbox.New(data.MissedItems(now()))
	}

	toastDuration := params.ToastDuration
	if toastDuration <= 0 {
		toastDuration = defaultToastDuration
	}

	app := App{
		watchlists:    params.Watchlists,
		bookmarks:     params.Bookmarks,
		inbox:         box,
		data:          data,
		keys:          keys,
		styles:        styles,
		layoutConfig:  layoutConfig,
		clipboard:     params.Clipboard,
		toastDuration: toastDuration,
		now:           now,
		tab:           params.StartTab,
		news:          data.News(),
		input:         NewInputState(layoutConfig),
		width:         80,
		height:        24,
	}

	app.live = &live{
		watchlists: params.Watchlists.Snapshot(),
		bookmarks:  bookmarkSet(params.Bookmarks.IDs()),
	}
	l := app.live
	app.unsubscribe = []func(){
		params.Watchlists.Subscribe(func(s watchlist.Snapshot) { l.watchlists = s }),
		params.Bookmarks.Subscribe(func(s bookmark.Snapshot) { l.bookmarks = bookmarkSet(s.IDs) }),
	}

	return app
}

func bookmarkSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// Close detaches the app from the managers.
func (a App) Close() {
	for _, fn := range a.unsubscribe {
		fn()
	}
}

// WithDimensions returns a copy of the app with the given terminal size.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	return a
}

// Tab returns the visible tab.
func (a App) Tab() Tab {
	return a.tab
}

// Mode returns the current input mode.
func (a App) Mode() Mode {
	return a.mode
}

// Cursor returns the cursor position on the visible tab.
func (a App) Cursor() int {
	switch a.tab {
	case TabNews:
		return a.newsCursor
	case TabInbox:
		return a.inboxCursor
	default:
		return a.cursor
	}
}

// Toast returns the current toast.
func (a App) Toast() ToastState {
	return a.toast
}

// Active returns the active watchlist as last notified.
func (a App) Active() model.Watchlist {
	return a.live.watchlists.Active()
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case toastExpiredMsg:
		if msg.seq == a.toast.Seq {
			a.toast.Text = ""
		}
		return a, nil

	case tea.KeyMsg:
		switch a.mode {
		case ModeAddSymbol:
			return a.updateAddSymbol(msg)
		case ModeNewWatchlist, ModeRenameWatchlist:
			return a.updateNameInput(msg)
		case ModeConfirmDelete:
			return a.updateConfirmDelete(msg)
		case ModeHelp:
			if key.Matches(msg, a.keys.Help, a.keys.Cancel, a.keys.Quit) {
				a.mode = ModeNormal
			}
			return a, nil
		default:
			return a.updateNormal(msg)
		}
	}

	return a, nil
}

func (a App) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			a.setCursor(0)
			a.lastKeyWasG = false
			return a, nil
		}
		a.lastKeyWasG = true
		return a, nil
	}
	a.lastKeyWasG = false

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.mode = ModeHelp
		return a, nil

	case key.Matches(msg, a.keys.TabWatchlist):
		a.tab = TabWatchlist
		return a, nil

	case key.Matches(msg, a.keys.TabNews):
		a.tab = TabNews
		return a, nil

	case key.Matches(msg, a.keys.TabInbox):
		a.tab = TabInbox
		return a, nil

	case key.Matches(msg, a.keys.Down):
		a.setCursor(a.Cursor() + 1)
		return a, nil

	case key.Matches(msg, a.keys.Up):
		a.setCursor(a.Cursor() - 1)
		return a, nil

	case key.Matches(msg, a.keys.Bottom):
		a.setCursor(a.rowCount() - 1)
		return a, nil
	}

	switch a.tab {
	case TabWatchlist:
		return a.updateWatchlistTab(msg)
	case TabNews:
		return a.updateNewsTab(msg)
	case TabInbox:
		return a.updateInboxTab(msg)
	}
	return a, nil
}

func (a App) updateWatchlistTab(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	active := a.Active()

	switch {
	case key.Matches(msg, a.keys.NextWatchlist):
		return a, a.cycleWatchlist(1)

	case key.Matches(msg, a.keys.PrevWatchlist):
		return a, a.cycleWatchlist(-1)

	case key.Matches(msg, a.keys.AddSymbol):
		a.mode = ModeAddSymbol
		a.input.Reset("Symbol oder Name", "", a.layoutConfig.Input.SymbolCharLimit)
		a.input.Search(a.data.Securities())
		return a, nil

	case key.Matches(msg, a.keys.NewWatchlist):
		a.mode = ModeNewWatchlist
		a.input.Reset("Name", "", a.layoutConfig.Input.NameCharLimit)
		return a, nil

	case key.Matches(msg, a.keys.Rename):
		a.mode = ModeRenameWatchlist
		a.input.Reset("Name", active.Name, a.layoutConfig.Input.NameCharLimit)
		return a, nil

	case key.Matches(msg, a.keys.CycleColor):
		color, _ := model.ThemeColorForHex(active.Color)
		next := color.Next()
		if err := a.watchlists.Recolor(active.ID, next); err != nil {
			return a, a.showError(err)
		}
		return a, a.showToast("Farbe: "+next.Label(), ToastInfo)

	case key.Matches(msg, a.keys.DeleteWatchlist):
		if len(a.live.watchlists.Watchlists) <= 1 {
			return a, a.showError(watchlist.ErrLastWatchlist)
		}
		a.mode = ModeConfirmDelete
		return a, nil
	}

	item, ok := a.selectedItem()
	if !ok {
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.RemoveItem):
		if err := a.watchlists.RemoveItem(uuid.Nil, item.ID); err != nil {
			return a, a.showError(err)
		}
		a.clampCursor()
		return a, a.showToast(item.Symbol+" entfernt", ToastInfo)

	case key.Matches(msg, a.keys.MoveItemDown):
		if a.cursor >= len(active.Items)-1 {
			return a, nil
		}
		// Offsets address the list before removal, so "after the next row" is +2.
		if err := a.watchlists.MoveItems(uuid.Nil, []int{a.cursor}, a.cursor+2); err != nil {
			return a, a.showError(err)
		}
		a.cursor++
		return a, nil

	case key.Matches(msg, a.keys.MoveItemUp):
		if a.cursor == 0 {
			return a, nil
		}
		if err := a.watchlists.MoveItems(uuid.Nil, []int{a.cursor}, a.cursor-1); err != nil {
			return a, a.showError(err)
		}
		a.cursor--
		return a, nil

	case key.Matches(msg, a.keys.Yank):
		if a.clipboard == nil {
			return a, nil
		}
		if err := a.clipboard(item.Symbol); err != nil {
			return a, a.showToast("Zwischenablage nicht verfügbar", ToastError)
		}
		return a, a.showToast(item.Symbol+" kopiert", ToastInfo)
	}

	return a, nil
}

func (a App) updateNewsTab(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !key.Matches(msg, a.keys.Bookmark) || len(a.news) == 0 {
		return a, nil
	}

	article := a.news[a.newsCursor]
	if a.live.bookmarks[article.ID] {
		if err := a.bookmarks.Remove(article.ID); err != nil {
			return a, a.showError(err)
		}
		return a, a.showToast("Lesezeichen entfernt", ToastInfo)
	}

	a.bookmarks.BookmarkArticle(article)
	if !a.bookmarks.HasShownOnboardingToast() {
		a.bookmarks.MarkOnboardingToastShown()
		return a, a.showToast("Artikel gemerkt! Alle Lesezeichen: finwatch bookmarks list", ToastInfo)
	}
	return a, a.showToast("Lesezeichen gespeichert", ToastInfo)
}

func (a App) updateInboxTab(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.MarkAllRead):
		a.inbox.MarkAllRead()
		return a, a.showToast("Alle gelesen", ToastInfo)

	case key.Matches(msg, a.keys.MarkRead):
		items := a.inbox.Items()
		if len(items) == 0 {
			return a, nil
		}
		if err := a.inbox.MarkRead(items[a.inboxCursor].ID); err != nil {
			return a, a.showError(err)
		}
		a.setCursor(a.inboxCursor + 1)
	}
	return a, nil
}

func (a App) updateAddSymbol(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Cancel):
		a.mode = ModeNormal
		a.input.Input.Blur()
		return a, nil

	case key.Matches(msg, a.keys.ResultDown):
		if a.input.ResultIdx < len(a.input.Results)-1 {
			a.input.ResultIdx++
		}
		return a, nil

	case key.Matches(msg, a.keys.ResultUp):
		if a.input.ResultIdx > 0 {
			a.input.ResultIdx--
		}
		return a, nil

	case key.Matches(msg, a.keys.Confirm):
		sec, ok := a.input.Selected()
		if !ok {
			return a, nil
		}
		a.mode = ModeNormal
		a.input.Input.Blur()

		price, change, pct := sec.Quote()
		_, err := a.watchlists.AddItem(watchlist.AddItemParams{
			Symbol:        sec.Symbol,
			Name:          sec.Name,
			Price:         &price,
			Change:        &change,
			ChangePercent: &pct,
			IsPositive:    sec.IsPositive,
		})
		if err != nil {
			return a, a.showError(err)
		}
		a.cursor = len(a.Active().Items) - 1
		return a, a.showToast(sec.Symbol+" hinzugefügt", ToastInfo)
	}

	var cmd tea.Cmd
	a.input.Input, cmd = a.input.Input.Update(msg)
	a.input.Search(a.data.Securities())
	return a, cmd
}

func (a App) updateNameInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Cancel):
		a.mode = ModeNormal
		a.input.Input.Blur()
		return a, nil

	case key.Matches(msg, a.keys.Confirm):
		mode := a.mode
		a.mode = ModeNormal
		a.input.Input.Blur()
		name := a.input.Input.Value()

		if mode == ModeRenameWatchlist {
			if err := a.watchlists.Rename(a.Active().ID, name); err != nil {
				return a, a.showError(err)
			}
			return a, a.showToast("Watchlist umbenannt", ToastInfo)
		}

		palette := model.ThemeColors
		color := palette[len(a.live.watchlists.Watchlists)%len(palette)].Color
		w, err := a.watchlists.Create(name, color)
		if err != nil {
			return a, a.showError(err)
		}
		if err := a.watchlists.SwitchActive(w.ID); err != nil {
			return a, a.showError(err)
		}
		a.cursor = 0
		return a, a.showToast(fmt.Sprintf("Watchlist „%s“ erstellt", w.Name), ToastInfo)
	}

	var cmd tea.Cmd
	a.input.Input, cmd = a.input.Input.Update(msg)
	return a, cmd
}

func (a App) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Confirm):
		a.mode = ModeNormal
		active := a.Active()
		if err := a.watchlists.Delete(active.ID); err != nil {
			return a, a.showError(err)
		}
		a.cursor = 0
		return a, a.showToast(fmt.Sprintf("Watchlist „%s“ gelöscht", active.Name), ToastInfo)

	case key.Matches(msg, a.keys.Cancel, a.keys.Quit):
		a.mode = ModeNormal
	}
	return a, nil
}

// cycleWatchlist activates the watchlist step positions away, wrapping around.
func (a *App) cycleWatchlist(step int) tea.Cmd {
	snap := a.live.watchlists
	n := len(snap.Watchlists)
	if n < 2 {
		return nil
	}

	i := slices.IndexFunc(snap.Watchlists, func(w model.Watchlist) bool { return w.ID == snap.ActiveID })
	next := snap.Watchlists[((i+step)%n+n)%n]
	if err := a.watchlists.SwitchActive(next.ID); err != nil {
		return a.showError(err)
	}
	a.cursor = 0
	return nil
}

func (a App) selectedItem() (model.WatchlistItem, bool) {
	items := a.Active().Items
	if a.cursor < 0 || a.cursor >= len(items) {
		return model.WatchlistItem{}, false
	}
	return items[a.cursor], true
}

func (a App) rowCount() int {
	switch a.tab {
	case TabNews:
		return len(a.news)
	case TabInbox:
		return len(a.inbox.Items())
	default:
		return len(a.Active().Items)
	}
}

// setCursor moves the cursor of the visible tab, clamped to its rows.
func (a *App) setCursor(pos int) {
	pos = max(min(pos, a.rowCount()-1), 0)
	switch a.tab {
	case TabNews:
		a.newsCursor = pos
	case TabInbox:
		a.inboxCursor = pos
	default:
		a.cursor = pos
	}
}

func (a *App) clampCursor() {
	a.setCursor(a.Cursor())
}

// showToast sets the message line and schedules its dismissal.
func (a *App) showToast(text string, kind ToastKind) tea.Cmd {
	a.toast.Seq++
	a.toast.Text = text
	a.toast.Kind = kind

	seq := a.toast.Seq
	return tea.Tick(a.toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}

func (a *App) showError(err error) tea.Cmd {
	return a.showToast(errorText(err), ToastError)
}

// errorText maps manager errors to user-facing messages.
func errorText(err error) string {
	switch {
	case errors.Is(err, watchlist.ErrLastWatchlist):
		return "Die letzte Watchlist kann nicht gelöscht werden"
	case errors.Is(err, watchlist.ErrDuplicateSymbol):
		return "Symbol ist bereits in der Watchlist"
	case errors.Is(err, watchlist.ErrEmptyName):
		return "Name darf nicht leer sein"
	case errors.Is(err, watchlist.ErrEmptySymbol):
		return "Symbol darf nicht leer sein"
	default:
		return err.Error()
	}
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}
