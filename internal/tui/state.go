package tui

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/nikbrunner/finwatch/internal/mockdata"
	"github.com/nikbrunner/finwatch/internal/search"
	"github.com/nikbrunner/finwatch/internal/tui/layout"
)

// Tab is a top-level screen.
type Tab int

const (
	TabWatchlist Tab = iota
	TabNews
	TabInbox
)

// String returns the tab label.
func (t Tab) String() string {
	switch t {
	case TabNews:
		return "News"
	case TabInbox:
		return "Inbox"
	default:
		return "Watchlist"
	}
}

// ParseTab resolves a tab name as used in the config file.
// Unknown names select the watchlist tab.
func ParseTab(name string) Tab {
	switch name {
	case "news":
		return TabNews
	case "inbox":
		return TabInbox
	default:
		return TabWatchlist
	}
}

// Mode is the input mode of the app.
type Mode int

const (
	ModeNormal Mode = iota
	ModeAddSymbol
	ModeNewWatchlist
	ModeRenameWatchlist
	ModeConfirmDelete
	ModeHelp
)

// ToastKind selects the toast style.
type ToastKind int

const (
	ToastInfo ToastKind = iota
	ToastError
)

// ToastState holds the transient message line. Seq identifies the toast so a
// stale dismissal tick does not clear a newer message.
type ToastState struct {
	Text string
	Kind ToastKind
	Seq  int
}

// toastExpiredMsg is delivered when a toast's display time is over.
type toastExpiredMsg struct {
	seq int
}

// InputState holds the modal text input and, when adding a symbol, the
// fuzzy-matched catalogue results.
type InputState struct {
	Input     textinput.Model
	Results   []search.SecurityResult
	ResultIdx int
}

// NewInputState creates an InputState with an initialized input.
func NewInputState(cfg layout.LayoutConfig) InputState {
	input := textinput.New()
	input.CharLimit = cfg.Input.NameCharLimit
	input.Width = cfg.Input.StandardWidth
	return InputState{Input: input}
}

// Reset prepares the input for a new modal session.
func (s *InputState) Reset(placeholder, value string, charLimit int) {
	s.Input.Reset()
	s.Input.Placeholder = placeholder
	s.Input.CharLimit = charLimit
	s.Input.SetValue(value)
	s.Input.CursorEnd()
	s.Input.Focus()
	s.Results = nil
	s.ResultIdx = 0
}

// Search refreshes Results for the current input value. An empty query lists
// the whole catalogue.
func (s *InputState) Search(securities []mockdata.Security) {
	query := s.Input.Value()
	if query == "" {
		s.Results = make([]search.SecurityResult, len(securities))
		for i, sec := range securities {
			s.Results[i] = search.SecurityResult{Security: sec}
		}
	} else {
		s.Results = search.FuzzySearchSecurities(securities, query)
	}
	if s.ResultIdx >= len(s.Results) {
		s.ResultIdx = max(len(s.Results)-1, 0)
	}
}

// Selected returns the highlighted result.
func (s *InputState) Selected() (mockdata.Security, bool) {
	if s.ResultIdx < 0 || s.ResultIdx >= len(s.Results) {
		return mockdata.Security{}, false
	}
	return s.Results[s.ResultIdx].Security, true
}
