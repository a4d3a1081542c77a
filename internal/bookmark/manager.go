// Package bookmark tracks bookmarked news articles.
//
// Two lists are persisted: the bookmarked IDs, used for membership checks,
// and the article details shown in the bookmark list. Every detail's ID is
// also in the ID list, and neither list holds duplicates.
package bookmark

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/nikbrunner/finwatch/internal/event"
	"github.com/nikbrunner/finwatch/internal/model"
	"github.com/nikbrunner/finwatch/internal/storage"
)

// ErrNotBookmarked is returned by Remove for an unknown ID.
var ErrNotBookmarked = errors.New("article not bookmarked")

// Snapshot is the manager state handed to subscribers.
type Snapshot struct {
	IDs     []string
	Details []model.BookmarkedArticle
}

// Params holds the collaborators of a Manager.
type Params struct {
	Store  *storage.Store
	Logger zerolog.Logger
	Now    func() time.Time // nil = time.Now
}

// Manager owns the bookmark lists. It is not safe for concurrent use.
type Manager struct {
	store *storage.Store
	log   zerolog.Logger
	now   func() time.Time

	ids     []string
	details []model.BookmarkedArticle

	events event.Emitter[Snapshot]
}

// New loads persisted bookmarks, repairing lists that drifted apart.
func New(params Params) *Manager {
	m := &Manager{
		store: params.Store,
		log:   params.Logger.With().Str("component", "bookmark").Logger(),
		now:   params.Now,
	}
	if m.now == nil {
		m.now = time.Now
	}

	m.load()
	return m
}

func (m *Manager) load() {
	ids, _ := storage.Load[[]string](m.store, storage.KeyBookmarkIDs)
	details, _ := storage.Load[[]model.BookmarkedArticle](m.store, storage.KeyBookmarkDetails)

	repaired := false

	m.ids = make([]string, 0, len(ids))
	for _, id := range ids {
		if slices.Contains(m.ids, id) {
			repaired = true
			continue
		}
		m.ids = append(m.ids, id)
	}

	m.details = make([]model.BookmarkedArticle, 0, len(details))
	for _, d := range details {
		if m.detailIndex(d.ID) >= 0 {
			repaired = true
			continue
		}
		m.details = append(m.details, d)
		if !slices.Contains(m.ids, d.ID) {
			m.ids = append(m.ids, d.ID)
			repaired = true
		}
	}

	if repaired {
		m.log.Info().Int("ids", len(m.ids)).Int("details", len(m.details)).Msg("repaired bookmark lists")
		m.persist()
	}
}

// Subscribe registers fn to receive the state after every change.
func (m *Manager) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	return m.events.Subscribe(fn)
}

// IsBookmarked reports whether the article is bookmarked.
func (m *Manager) IsBookmarked(id string) bool {
	return slices.Contains(m.ids, id)
}

// IDs returns the bookmarked article IDs in the order they were added.
func (m *Manager) IDs() []string {
	return slices.Clone(m.ids)
}

// Details returns the stored article details in the order they were added.
func (m *Manager) Details() []model.BookmarkedArticle {
	return slices.Clone(m.details)
}

// Detail returns the stored details of one article.
func (m *Manager) Detail(id string) (model.BookmarkedArticle, bool) {
	i := m.detailIndex(id)
	if i < 0 {
		return model.BookmarkedArticle{}, false
	}
	return m.details[i], true
}

// Toggle flips the bookmark state of id and returns the new state.
// Toggling on records only the ID; toggling off drops the details too.
func (m *Manager) Toggle(id string) bool {
	if m.IsBookmarked(id) {
		m.drop(id)
		m.commit()
		return false
	}

	m.ids = append(m.ids, id)
	m.commit()
	return true
}

// BookmarkArticle bookmarks article and stores its details. Bookmarking an
// article that already has details changes nothing.
func (m *Manager) BookmarkArticle(article model.NewsArticle) {
	if m.detailIndex(article.ID) >= 0 {
		return
	}
	m.add(model.NewBookmarkedArticle(article, m.now()))
	m.commit()
}

// Restore adds previously exported details, keeping their bookmark date.
// It reports false when the article already has details.
func (m *Manager) Restore(article model.BookmarkedArticle) bool {
	if m.detailIndex(article.ID) >= 0 {
		return false
	}
	m.add(article)
	m.commit()
	return true
}

// Remove drops the article from both lists.
func (m *Manager) Remove(id string) error {
	if !m.IsBookmarked(id) {
		err := fmt.Errorf("%w: %s", ErrNotBookmarked, id)
		m.log.Warn().Err(err).Str("op", "remove").Msg("rejected")
		return err
	}
	m.drop(id)
	m.commit()
	return nil
}

// HasShownOnboardingToast reports whether the first-bookmark hint was shown.
func (m *Manager) HasShownOnboardingToast() bool {
	return m.store.LoadBool(storage.KeyBookmarkToast)
}

// MarkOnboardingToastShown records that the first-bookmark hint was shown.
func (m *Manager) MarkOnboardingToastShown() {
	m.store.SaveBool(storage.KeyBookmarkToast, true)
}

func (m *Manager) add(d model.BookmarkedArticle) {
	m.details = append(m.details, d)
	if !slices.Contains(m.ids, d.ID) {
		m.ids = append(m.ids, d.ID)
	}
}

func (m *Manager) drop(id string) {
	m.ids = slices.DeleteFunc(m.ids, func(s string) bool { return s == id })
	m.details = slices.DeleteFunc(m.details, func(d model.BookmarkedArticle) bool { return d.ID == id })
}

func (m *Manager) commit() {
	m.persist()
	m.events.Emit(Snapshot{IDs: m.IDs(), Details: m.Details()})
}

func (m *Manager) persist() {
	storage.Save(m.store, storage.KeyBookmarkDetails, m.details)
	storage.Save(m.store, storage.KeyBookmarkIDs, m.ids)
}

func (m *Manager) detailIndex(id string) int {
	return slices.IndexFunc(m.details, func(d model.BookmarkedArticle) bool { return d.ID == id })
}
