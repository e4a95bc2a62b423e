package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/nikolayk812/foodcart/internal/domain"
	"github.com/nikolayk812/foodcart/internal/generation"
	"github.com/nikolayk812/foodcart/internal/port"
)

// Browser caches the latest menu from a source. Refresh is called whenever
// the menu screen regains focus.
type Browser struct {
	source port.CatalogSource
	logger *slog.Logger
	gen    generation.Counter

	mu    sync.RWMutex
	items []domain.CatalogItem
}

func NewBrowser(source port.CatalogSource, logger *slog.Logger) *Browser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Browser{source: source, logger: logger}
}

// Refresh reloads the menu. A load overtaken by a newer Refresh is discarded
// and reported as applied=false.
func (b *Browser) Refresh(ctx context.Context) (applied bool, err error) {
	token := b.gen.Begin()

	items, err := b.source.GetCatalog(ctx)
	if err != nil {
		return false, fmt.Errorf("source.GetCatalog: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.gen.IsCurrent(token) {
		b.logger.Debug("discarding stale catalog load", slog.Uint64("token", uint64(token)))
		return false, nil
	}

	b.items = items
	b.logger.Debug("catalog refreshed", slog.Int("items", len(items)))
	return true, nil
}

func (b *Browser) Items() []domain.CatalogItem {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return slices.Clone(b.items)
}

func (b *Browser) Find(id int) (domain.CatalogItem, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	i := slices.IndexFunc(b.items, func(item domain.CatalogItem) bool {
		return item.ID == id
	})
	if i < 0 {
		return domain.CatalogItem{}, fmt.Errorf("food[%d]: %w", id, domain.ErrNotFound)
	}
	return b.items[i], nil
}

func (b *Browser) ByCategory(c domain.Category) []domain.CatalogItem {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var out []domain.CatalogItem
	for _, item := range b.items {
		if item.Category == c {
			out = append(out, item)
		}
	}
	return out
}

// Categories lists the categories that currently have at least one item, in
// menu order.
func (b *Browser) Categories() []domain.Category {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var out []domain.Category
	for _, c := range domain.Categories {
		if slices.ContainsFunc(b.items, func(item domain.CatalogItem) bool { return item.Category == c }) {
			out = append(out, c)
		}
	}
	return out
}

// Close invalidates any in-flight Refresh.
func (b *Browser) Close() {
	b.gen.Invalidate()
}
