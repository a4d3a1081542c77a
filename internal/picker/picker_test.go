package picker

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/finwatch/internal/mockdata"
	"github.com/nikbrunner/finwatch/internal/search"
)

func threeResults() []search.SecurityResult {
	return []search.SecurityResult{
		{Security: mockdata.Security{Symbol: "AAPL", Name: "Apple Inc.", Price: "182.52", Change: "+1.23%", IsPositive: true}},
		{Security: mockdata.Security{Symbol: "AMZN", Name: "Amazon", Price: "145.73", Change: "-0.45%"}},
		{Security: mockdata.Security{Symbol: "SAP", Name: "SAP SE", Price: "142.10", Change: "+0.57%", IsPositive: true}},
	}
}

func heldSymbols(symbols ...string) func(string) bool {
	return func(s string) bool {
		for _, h := range symbols {
			if h == s {
				return true
			}
		}
		return false
	}
}

func press(p Picker, msg tea.KeyMsg) (Picker, tea.Cmd) {
	m, cmd := p.Update(msg)
	return m.(Picker), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPicker_InitialState(t *testing.T) {
	p := New(Params{Results: threeResults(), Query: "a"})
	if p.cursor != 0 {
		t.Errorf("expected cursor at 0, got %d", p.cursor)
	}

	p = New(Params{Results: threeResults(), Query: "a", Held: heldSymbols("AAPL")})
	if p.cursor != 1 {
		t.Errorf("expected cursor on first selectable result, got %d", p.cursor)
	}
}

func TestPicker_Navigate(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyMsg
		want int
	}{
		{"j moves down", []tea.KeyMsg{runes("j")}, 1},
		{"j then k", []tea.KeyMsg{runes("j"), runes("k")}, 0},
		{"arrow down", []tea.KeyMsg{{Type: tea.KeyDown}}, 1},
		{"ctrl+n", []tea.KeyMsg{{Type: tea.KeyCtrlN}}, 1},
		{"stops at top", []tea.KeyMsg{runes("k"), {Type: tea.KeyUp}}, 0},
		{"stops at bottom", []tea.KeyMsg{runes("j"), runes("j"), runes("j"), runes("j")}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(Params{Results: threeResults(), Query: "a"})
			for _, k := range tt.keys {
				p, _ = press(p, k)
			}
			if p.cursor != tt.want {
				t.Errorf("cursor = %d, want %d", p.cursor, tt.want)
			}
		})
	}
}

func TestPicker_Select(t *testing.T) {
	p := New(Params{Results: threeResults(), Query: "a"})
	p, _ = press(p, runes("j"))

	p, cmd := press(p, tea.KeyMsg{Type: tea.KeyEnter})

	if cmd == nil {
		t.Error("expected quit command after selection")
	}
	got, ok := p.Selected()
	if !ok {
		t.Fatal("expected a selection")
	}
	if got.Symbol != "AMZN" {
		t.Errorf("expected AMZN, got %s", got.Symbol)
	}
}

func TestPicker_HeldResultCannotBeSelected(t *testing.T) {
	p := New(Params{Results: threeResults(), Query: "a", Held: heldSymbols("AMZN")})
	p, _ = press(p, runes("j"))

	p, cmd := press(p, tea.KeyMsg{Type: tea.KeyEnter})

	if cmd != nil {
		t.Error("expected no command for a held result")
	}
	if _, ok := p.Selected(); ok {
		t.Error("expected no selection")
	}
}

func TestPicker_Cancel(t *testing.T) {
	for _, msg := range []tea.KeyMsg{{Type: tea.KeyEsc}, runes("q"), {Type: tea.KeyCtrlC}} {
		p := New(Params{Results: threeResults(), Query: "a"})

		p, cmd := press(p, msg)

		if !p.Cancelled() {
			t.Errorf("expected cancelled after %q", msg.String())
		}
		if cmd == nil {
			t.Error("expected quit command after cancel")
		}
		if _, ok := p.Selected(); ok {
			t.Error("expected no selection when cancelled")
		}
	}
}

func TestPicker_EmptyResults(t *testing.T) {
	p := New(Params{Query: "zz"})
	p, cmd := press(p, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("expected no command without results")
	}
	if _, ok := p.Selected(); ok {
		t.Error("expected no selection")
	}
}

func TestPicker_View(t *testing.T) {
	view := New(Params{Results: threeResults(), Query: "a", Held: heldSymbols("SAP")}).View()

	for _, want := range []string{"Suche: a (3 Treffer)", "AAPL Apple Inc.", "182.52", "-0.45%", "bereits in der Watchlist"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "142.10") {
		t.Errorf("held result should not show a quote:\n%s", view)
	}
}
