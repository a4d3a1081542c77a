package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Placeholders used when an item is added without quote data.
const (
	PlaceholderPrice         = "$0.00"
	PlaceholderChange        = "+0.00"
	PlaceholderChangePercent = "+0.00%"
)

// WatchlistItem is a tracked instrument. Quote fields are stored as the
// display strings shown to the user.
type WatchlistItem struct {
	ID            uuid.UUID `json:"id"`
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name"`
	Price         string    `json:"price"`
	Change        string    `json:"change"`
	ChangePercent string    `json:"changePercent"`
	IsPositive    bool      `json:"isPositive"`
}

// NewItemParams holds parameters for creating a new WatchlistItem.
// Nil quote values fall back to zero placeholders.
type NewItemParams struct {
	Symbol        string
	Name          string
	Price         *float64
	Change        *float64
	ChangePercent *float64
	IsPositive    bool
}

// NewItem creates a WatchlistItem with a generated ID and formatted quote fields.
func NewItem(params NewItemParams) WatchlistItem {
	return WatchlistItem{
		ID:            generateID(),
		Symbol:        params.Symbol,
		Name:          params.Name,
		Price:         FormatPrice(params.Price),
		Change:        FormatChange(params.Change),
		ChangePercent: FormatChangePercent(params.ChangePercent),
		IsPositive:    params.IsPositive,
	}
}

// PercentValue parses ChangePercent. Unparseable values count as zero.
func (i WatchlistItem) PercentValue() decimal.Decimal {
	return ParseDisplayNumber(i.ChangePercent)
}

// PriceValue parses Price. Unparseable values count as zero.
func (i WatchlistItem) PriceValue() decimal.Decimal {
	return ParseDisplayNumber(i.Price)
}

// FormatPrice renders a price as "$12.34".
func FormatPrice(v *float64) string {
	if v == nil {
		return PlaceholderPrice
	}
	return fmt.Sprintf("$%.2f", *v)
}

// FormatChange renders an absolute change as "+1.23" / "-1.23".
func FormatChange(v *float64) string {
	if v == nil {
		return PlaceholderChange
	}
	return fmt.Sprintf("%+.2f", *v)
}

// FormatChangePercent renders a relative change as "+1.23%" / "-1.23%".
func FormatChangePercent(v *float64) string {
	if v == nil {
		return PlaceholderChangePercent
	}
	return fmt.Sprintf("%+.2f%%", *v)
}

// ParseDisplayNumber strips display decoration ("%", "+", "$", "€", thousands
// separators) and parses what remains. Unparseable input yields zero.
func ParseDisplayNumber(s string) decimal.Decimal {
	cleaned := strings.NewReplacer("%", "", "+", "", "$", "", ",", "", "€", "").Replace(s)
	d, err := decimal.NewFromString(strings.TrimSpace(cleaned))
	if err != nil {
		return decimal.Zero
	}
	return d
}
