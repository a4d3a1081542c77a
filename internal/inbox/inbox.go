// Package inbox holds the in-app alerts the user missed while away.
// State lives in memory only.
package inbox

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/nikbrunner/finwatch/internal/model"
)

// ErrNotFound is returned by MarkRead for an unknown item.
var ErrNotFound = errors.New("inbox item not found")

// Inbox tracks read state of missed items.
type Inbox struct {
	items []model.MissedItem
}

// New creates an inbox over items, in display order.
func New(items []model.MissedItem) *Inbox {
	return &Inbox{items: slices.Clone(items)}
}

// Items returns the items in display order.
func (b *Inbox) Items() []model.MissedItem {
	return slices.Clone(b.items)
}

// Unread returns the items not yet read.
func (b *Inbox) Unread() []model.MissedItem {
	var out []model.MissedItem
	for _, it := range b.items {
		if !it.IsRead {
			out = append(out, it)
		}
	}
	return out
}

// UnreadCount returns the number of unread items.
func (b *Inbox) UnreadCount() int {
	n := 0
	for _, it := range b.items {
		if !it.IsRead {
			n++
		}
	}
	return n
}

// MarkRead marks one item as read.
func (b *Inbox) MarkRead(id uuid.UUID) error {
	i := slices.IndexFunc(b.items, func(it model.MissedItem) bool { return it.ID == id })
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	b.items[i].IsRead = true
	return nil
}

// MarkAllRead marks every item as read.
func (b *Inbox) MarkAllRead() {
	for i := range b.items {
		b.items[i].IsRead = true
	}
}
