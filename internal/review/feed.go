package review

import (
	"context"
	"sync"

	"github.com/nikolayk812/foodcart/internal/domain"
	"github.com/nikolayk812/foodcart/internal/generation"
)

// Feed is the review list shown on the reviews screen. Loads are tagged so a
// completion arriving after a newer load, or after Close, is dropped.
type Feed struct {
	store *Store
	gen   generation.Counter

	mu      sync.RWMutex
	entries []Entry
	filter  int
}

func NewFeed(store *Store) *Feed {
	return &Feed{store: store}
}

// Reload fetches reviews and applies them if no newer load started meanwhile.
// Storage read failures leave an empty list, as Store.Load does.
func (f *Feed) Reload(ctx context.Context, catalog []domain.CatalogItem) (applied bool, err error) {
	token := f.Begin()

	// Load still returns a usable empty map alongside a storage error
	reviews, err := f.store.Load(ctx)

	f.mu.RLock()
	filter := f.filter
	f.mu.RUnlock()

	return f.Apply(token, Flatten(catalog, reviews, filter)), err
}

func (f *Feed) Begin() generation.Token {
	return f.gen.Begin()
}

// Apply installs entries if token is still the latest load.
func (f *Feed) Apply(token generation.Token, entries []Entry) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.gen.IsCurrent(token) {
		return false
	}
	f.entries = entries
	return true
}

// Filter selects one food; 0 shows all. It takes effect on the next Reload.
func (f *Feed) Filter(foodID int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.filter = foodID
}

func (f *Feed) Entries() []Entry {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]Entry, len(f.entries))
	copy(out, f.entries)
	return out
}

func (f *Feed) Close() {
	f.gen.Invalidate()
}
