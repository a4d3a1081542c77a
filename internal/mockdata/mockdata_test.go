package mockdata_test

import (
	"testing"
	"time"

	"github.com/nikbrunner/finwatch/internal/mockdata"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestProvider_TopPerformersSortedDescending(t *testing.T) {
	top := mockdata.New().TopPerformers()

	var symbols []string
	for _, i := range top {
		symbols = append(symbols, i.Symbol)
	}
	assert.DeepEqual(t, symbols, []string{"NVDA", "TSLA", "GOOGL", "AAPL", "MSFT"})
}

func TestProvider_NewsIDsAreStable(t *testing.T) {
	p := mockdata.New()
	first := p.News()
	second := p.News()

	assert.Assert(t, is.Len(first, 10))
	seen := map[string]bool{}
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
		assert.Check(t, !seen[first[i].ID], "duplicate id %s", first[i].ID)
		seen[first[i].ID] = true
	}
	assert.Equal(t, first[0].Time, "vor 1 Stunde")
	assert.Equal(t, first[1].Time, "vor 2 Stunden")

	a, ok := p.Article(first[3].ID)
	assert.Check(t, ok)
	assert.Equal(t, a.Title, "Tesla übertrifft Erwartungen im Q4")
}

func TestProvider_LookupSecurity(t *testing.T) {
	p := mockdata.New()

	s, ok := p.LookupSecurity("nvda")
	assert.Check(t, ok)
	assert.Equal(t, s.Name, "NVIDIA")
	assert.Equal(t, s.PriceValue(), 724.31)
	assert.Equal(t, s.ChangePercentValue(), 2.14)

	_, ok = p.LookupSecurity("XXX")
	assert.Check(t, !ok)
}

func TestProvider_MissedItems(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	items := mockdata.New().MissedItems(now)

	assert.Assert(t, is.Len(items, 5))
	assert.Equal(t, items[0].TimeAgo(now), "vor 1 Std.")
	assert.Equal(t, items[4].TimeAgo(now), "vor 5 Std.")
	for _, i := range items {
		assert.Check(t, !i.IsRead)
	}
}

func TestProvider_ReturnsCopies(t *testing.T) {
	p := mockdata.New()
	cards := p.MarketCards()
	cards[0].Name = "changed"
	assert.Equal(t, p.MarketCards()[0].Name, "DAX")
}

func TestSecurity_Quote(t *testing.T) {
	s, ok := mockdata.New().LookupSecurity("NVDA")
	assert.Assert(t, ok)

	price, change, pct := s.Quote()
	assert.Equal(t, price, 724.31)
	assert.Equal(t, change, 15.5)
	assert.Equal(t, pct, 2.14)
}
