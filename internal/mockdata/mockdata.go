// Package mockdata supplies the static market data shown by finwatch.
package mockdata

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nikbrunner/finwatch/internal/model"
)

// Security is a tradable instrument from the catalogue.
type Security struct {
	Symbol     string
	Name       string
	Price      string // "182.52"
	Change     string // "+1.23%"
	IsPositive bool
}

// PriceValue parses Price.
func (s Security) PriceValue() float64 {
	return model.ParseDisplayNumber(s.Price).InexactFloat64()
}

// ChangePercentValue parses Change.
func (s Security) ChangePercentValue() float64 {
	return model.ParseDisplayNumber(s.Change).InexactFloat64()
}

// Quote returns the numeric quote for adding the security to a watchlist.
// The absolute change is derived from the price and the percent change.
func (s Security) Quote() (price, change, changePercent float64) {
	p := decimal.NewFromFloat(s.PriceValue())
	pct := decimal.NewFromFloat(s.ChangePercentValue())
	abs := p.Mul(pct).Div(decimal.NewFromInt(100)).Round(2)
	return p.InexactFloat64(), abs.InexactFloat64(), pct.InexactFloat64()
}

// MarketCard is a headline index, commodity or currency quote.
type MarketCard struct {
	Name       string
	Value      string
	Change     string
	IsPositive bool
}

// Provider serves the static tables. The zero value is ready to use.
type Provider struct{}

// New returns a Provider.
func New() *Provider {
	return &Provider{}
}

var securities = []Security{
	{Symbol: "AAPL", Name: "Apple Inc.", Price: "182.52", Change: "+1.23%", IsPositive: true},
	{Symbol: "MSFT", Name: "Microsoft", Price: "378.85", Change: "+0.87%", IsPositive: true},
	{Symbol: "NVDA", Name: "NVIDIA", Price: "724.31", Change: "+2.14%", IsPositive: true},
	{Symbol: "AMZN", Name: "Amazon", Price: "145.73", Change: "-0.45%", IsPositive: false},
	{Symbol: "TSLA", Name: "Tesla", Price: "234.67", Change: "-1.87%", IsPositive: false},
	{Symbol: "GOOGL", Name: "Alphabet Inc.", Price: "138.45", Change: "+1.30%", IsPositive: true},
	{Symbol: "SAP", Name: "SAP SE", Price: "142.10", Change: "+0.57%", IsPositive: true},
	{Symbol: "SIE", Name: "Siemens AG", Price: "171.24", Change: "-0.22%", IsPositive: false},
	{Symbol: "VOW3", Name: "Volkswagen AG Vz.", Price: "112.36", Change: "+0.94%", IsPositive: true},
	{Symbol: "DBK", Name: "Deutsche Bank AG", Price: "15.82", Change: "+1.61%", IsPositive: true},
}

var topPerformers = []model.WatchlistItem{
	{Symbol: "NVDA", Name: "NVIDIA Corp.", Price: "724.31", Change: "+15.42", ChangePercent: "+2.14%", IsPositive: true},
	{Symbol: "AAPL", Name: "Apple Inc.", Price: "182.52", Change: "+2.24", ChangePercent: "+1.23%", IsPositive: true},
	{Symbol: "MSFT", Name: "Microsoft Corp.", Price: "378.85", Change: "+3.32", ChangePercent: "+0.87%", IsPositive: true},
	{Symbol: "GOOGL", Name: "Alphabet Inc.", Price: "138.45", Change: "+1.78", ChangePercent: "+1.30%", IsPositive: true},
	{Symbol: "TSLA", Name: "Tesla Inc.", Price: "234.67", Change: "+4.45", ChangePercent: "+1.92%", IsPositive: true},
}

var marketCards = []MarketCard{
	{Name: "DAX", Value: "19,432.56", Change: "+0.52%", IsPositive: true},
	{Name: "MDAX", Value: "26,189.34", Change: "+0.74%", IsPositive: true},
	{Name: "SDAX", Value: "13,876.45", Change: "-0.12%", IsPositive: false},
	{Name: "TecDAX", Value: "3,421.78", Change: "+1.23%", IsPositive: true},
	{Name: "EuroStoxx 50", Value: "4,982.34", Change: "+0.45%", IsPositive: true},
	{Name: "DJ Industrial", Value: "42,866.87", Change: "+0.33%", IsPositive: true},
	{Name: "Nasdaq 100", Value: "21,234.56", Change: "+0.87%", IsPositive: true},
	{Name: "S&P 500", Value: "5,918.24", Change: "+0.45%", IsPositive: true},
	{Name: "Nikkei", Value: "39,876.23", Change: "-0.34%", IsPositive: false},
	{Name: "Gold", Value: "2,043.25", Change: "-0.18%", IsPositive: false},
	{Name: "Brent Oil", Value: "73.45", Change: "+1.74%", IsPositive: true},
	{Name: "EUR/Dollar", Value: "1.0834", Change: "+0.23%", IsPositive: true},
	{Name: "Bitcoin", Value: "96,432.18", Change: "+2.87%", IsPositive: true},
}

var newsTitles = []string{
	"DAX erreicht neues Jahreshoch bei 19.500 Punkten",
	"Apple stellt neue KI-Features vor - Aktie steigt",
	"EZB kündigt weitere Zinsschritte an",
	"Tesla übertrifft Erwartungen im Q4",
	"Inflation in Deutschland sinkt auf 2,1%",
	"Bitcoin durchbricht 100.000 Dollar Marke",
	"Volkswagen plant massive Investitionen",
	"US-Arbeitsmarktdaten überraschen positiv",
	"Siemens Energy mit Rekordauftrag",
	"Deutsche Bank übertrifft Gewinnerwartungen",
}

var newsCategories = []string{"Märkte", "Technologie", "Geldpolitik", "Earnings", "Wirtschaft", "Krypto", "Auto", "Energie", "Banken"}

var newsSources = []string{"dpa-AFX", "Reuters", "Handelsblatt", "Bloomberg", "finanzen.net"}

// Securities returns the searchable catalogue.
func (p *Provider) Securities() []Security {
	return slices.Clone(securities)
}

// LookupSecurity finds a security by symbol, ignoring case.
func (p *Provider) LookupSecurity(symbol string) (Security, bool) {
	for _, s := range securities {
		if strings.EqualFold(s.Symbol, symbol) {
			return s, true
		}
	}
	return Security{}, false
}

// TopPerformers returns the day's best performers, best first.
func (p *Provider) TopPerformers() []model.WatchlistItem {
	w := model.Watchlist{Items: slices.Clone(topPerformers)}
	return w.TopPerformers()
}

// MarketCards returns the headline market quotes.
func (p *Provider) MarketCards() []MarketCard {
	return slices.Clone(marketCards)
}

// News returns the news feed, newest first. Article IDs are derived from the
// titles and stay stable across runs.
func (p *Provider) News() []model.NewsArticle {
	articles := make([]model.NewsArticle, len(newsTitles))
	for i, title := range newsTitles {
		articles[i] = model.NewsArticle{
			ID:       model.ArticleID(title),
			Title:    title,
			Category: newsCategories[i%len(newsCategories)],
			Time:     relativeHours(i + 1),
			Source:   newsSources[i%len(newsSources)],
			HasImage: i%3 != 2,
			Body:     fmt.Sprintf("%s. Weitere Details folgen in Kürze.", title),
		}
	}
	return articles
}

// Article finds a news article by ID.
func (p *Provider) Article(id string) (model.NewsArticle, bool) {
	for _, a := range p.News() {
		if a.ID == id {
			return a, true
		}
	}
	return model.NewsArticle{}, false
}

// MissedItems returns the unread alerts, timed relative to now.
func (p *Provider) MissedItems(now time.Time) []model.MissedItem {
	return []model.MissedItem{
		{ID: uuid.New(), Type: model.MissedMarket, Title: "DAX erreicht neues Jahreshoch", Subtitle: "Index steigt über 16.000 Punkte", Time: now.Add(-1 * time.Hour), Priority: model.PriorityHigh},
		{ID: uuid.New(), Type: model.MissedNews, Title: "EZB erhöht Leitzins um 25 Basispunkte", Subtitle: "Geldpolitische Entscheidung", Time: now.Add(-2 * time.Hour), Priority: model.PriorityHigh},
		{ID: uuid.New(), Type: model.MissedWatchlist, Title: "Apple erreicht Kursziel", Subtitle: "AAPL: $185 (+2.5%)", Time: now.Add(-3 * time.Hour), Priority: model.PriorityMedium},
		{ID: uuid.New(), Type: model.MissedEarnings, Title: "Microsoft Quartalszahlen heute", Subtitle: "Earnings Call um 22:00 Uhr", Time: now.Add(-4 * time.Hour), Priority: model.PriorityMedium},
		{ID: uuid.New(), Type: model.MissedNews, Title: "Tesla kündigt neue Gigafactory an", Subtitle: "Standort in Mexiko bestätigt", Time: now.Add(-5 * time.Hour), Priority: model.PriorityLow},
	}
}

func relativeHours(h int) string {
	if h == 1 {
		return "vor 1 Stunde"
	}
	return fmt.Sprintf("vor %d Stunden", h)
}
