package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MissedItemType classifies inbox entries.
type MissedItemType string

const (
	MissedNews      MissedItemType = "news"
	MissedMarket    MissedItemType = "market"
	MissedWatchlist MissedItemType = "watchlist"
	MissedEarnings  MissedItemType = "earnings"
)

// Priority ranks inbox entries.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
)

func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	default:
		return "low"
	}
}

// MissedItem is an alert the user has not looked at yet.
type MissedItem struct {
	ID       uuid.UUID
	Type     MissedItemType
	Title    string
	Subtitle string
	Time     time.Time
	Priority Priority
	IsRead   bool
}

// TimeAgo renders the age of the item relative to now, e.g. "vor 2 Std.".
func (m MissedItem) TimeAgo(now time.Time) string {
	d := now.Sub(m.Time)
	switch {
	case d < time.Minute:
		return "gerade eben"
	case d < time.Hour:
		return fmt.Sprintf("vor %d Min.", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("vor %d Std.", int(d.Hours()))
	default:
		return fmt.Sprintf("vor %d Tg.", int(d.Hours()/24))
	}
}
