// Package cart holds the session cart: an ordered list of priced line items
// that publishes a fresh snapshot to its observers after every change.
package cart

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/nikolayk812/foodcart/internal/domain"
	"github.com/nikolayk812/foodcart/internal/metrics"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// AddPolicy decides what Add does when a line with the same id is present.
type AddPolicy string

const (
	// AddAppend keeps duplicates side by side.
	AddAppend AddPolicy = "append"
	// AddReplace swaps the existing same-id line in place.
	AddReplace AddPolicy = "replace"
)

func ParseAddPolicy(s string) (AddPolicy, error) {
	switch p := AddPolicy(s); p {
	case AddAppend, AddReplace:
		return p, nil
	default:
		return "", fmt.Errorf("add policy[%s] is not valid", s)
	}
}

// Snapshot is an immutable view of the cart after a mutation.
type Snapshot struct {
	Version uint64
	Items   []domain.LineItem
}

type Observer func(Snapshot)

type Option func(*Cart)

func WithAddPolicy(p AddPolicy) Option {
	return func(c *Cart) { c.policy = p }
}

func WithCurrency(u currency.Unit) Option {
	return func(c *Cart) { c.currency = u }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Cart) { c.logger = l }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Cart) { c.metrics = m }
}

type Cart struct {
	policy   AddPolicy
	currency currency.Unit
	logger   *slog.Logger
	metrics  *metrics.Metrics

	mu        sync.Mutex
	items     []domain.LineItem
	version   uint64
	observers map[int]Observer
	nextObs   int
	closed    bool
}

func New(opts ...Option) *Cart {
	c := &Cart{
		policy:    AddAppend,
		currency:  currency.USD,
		observers: make(map[int]Observer),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.metrics == nil {
		c.metrics = metrics.Nop()
	}
	return c
}

func (c *Cart) Add(item domain.LineItem) {
	c.mutate("add", func(items []domain.LineItem) ([]domain.LineItem, error) {
		if c.policy == AddReplace {
			if i := indexOf(items, item.ID); i >= 0 {
				items[i] = item.Clone()
				return items, nil
			}
		}
		return append(items, item.Clone()), nil
	})
}

// Replace substitutes the first line with the given id, keeping its position.
func (c *Cart) Replace(id int, item domain.LineItem) error {
	return c.mutate("replace", func(items []domain.LineItem) ([]domain.LineItem, error) {
		i := indexOf(items, id)
		if i < 0 {
			return nil, fmt.Errorf("line[%d]: %w", id, domain.ErrNotFound)
		}
		items[i] = item.Clone()
		return items, nil
	})
}

// Remove drops every line with the given id. Absent ids are ignored.
func (c *Cart) Remove(id int) {
	c.mutate("remove", func(items []domain.LineItem) ([]domain.LineItem, error) {
		return slices.DeleteFunc(items, func(l domain.LineItem) bool {
			return l.ID == id
		}), nil
	})
}

// Restore replaces the whole cart, e.g. with lines rehydrated from storage.
func (c *Cart) Restore(items []domain.LineItem) {
	c.mutate("restore", func([]domain.LineItem) ([]domain.LineItem, error) {
		restored := make([]domain.LineItem, 0, len(items))
		for _, l := range items {
			restored = append(restored, l.Clone())
		}
		return restored, nil
	})
}

func (c *Cart) Clear() {
	c.mutate("clear", func([]domain.LineItem) ([]domain.LineItem, error) {
		return nil, nil
	})
}

func (c *Cart) Items() []domain.LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	return cloneItems(c.items)
}

// Find returns the first line with the given id.
func (c *Cart) Find(id int) (domain.LineItem, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := indexOf(c.items, id)
	if i < 0 {
		return domain.LineItem{}, false
	}
	return c.items[i].Clone(), true
}

func (c *Cart) TotalPrice() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	return totalOf(c.items)
}

func (c *Cart) Total() domain.Money {
	return domain.Money{Amount: c.TotalPrice(), Currency: c.currency}
}

func (c *Cart) Currency() currency.Unit {
	return c.currency
}

func (c *Cart) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{Version: c.version, Items: cloneItems(c.items)}
}

// Subscribe registers fn for every future snapshot. The returned func
// removes it.
func (c *Cart) Subscribe(fn Observer) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return func() {}
	}

	id := c.nextObs
	c.nextObs++
	c.observers[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.observers, id)
	}
}

// Close drops all observers. Mutations after Close still apply but are not
// published.
func (c *Cart) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	clear(c.observers)
}

// mutate runs fn on a private copy and swaps it in only on success, so
// readers never observe a half-applied change.
func (c *Cart) mutate(op string, fn func([]domain.LineItem) ([]domain.LineItem, error)) error {
	c.mu.Lock()

	next, err := fn(cloneItems(c.items))
	if err != nil {
		c.mu.Unlock()
		c.logger.Debug("cart mutation rejected", slog.String("op", op), slog.String("error", err.Error()))
		return err
	}

	c.items = next
	c.version++
	snap := Snapshot{Version: c.version, Items: cloneItems(next)}
	total := totalOf(next)

	observers := make([]Observer, 0, len(c.observers))
	for _, k := range slices.Sorted(maps.Keys(c.observers)) {
		observers = append(observers, c.observers[k])
	}
	c.mu.Unlock()

	c.metrics.CartMutations.WithLabelValues(op).Inc()
	c.metrics.CartTotal.Set(total.InexactFloat64())
	c.logger.Debug("cart updated",
		slog.String("op", op),
		slog.Uint64("version", snap.Version),
		slog.Int("lines", len(snap.Items)),
		slog.String("total", total.StringFixed(2)))

	for _, obs := range observers {
		obs(snap)
	}

	return nil
}

func indexOf(items []domain.LineItem, id int) int {
	return slices.IndexFunc(items, func(l domain.LineItem) bool {
		return l.ID == id
	})
}

func totalOf(items []domain.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, l := range items {
		total = total.Add(l.TotalPrice)
	}
	return domain.RoundPrice(total)
}

func cloneItems(items []domain.LineItem) []domain.LineItem {
	if len(items) == 0 {
		return nil
	}

	out := make([]domain.LineItem, len(items))
	for i, l := range items {
		out[i] = l.Clone()
	}
	return out
}
