// Package session wires the catalog, cart, checkout and reviews of one app
// session and triggers navigation after successful actions.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nikolayk812/foodcart/internal/cart"
	"github.com/nikolayk812/foodcart/internal/catalog"
	"github.com/nikolayk812/foodcart/internal/checkout"
	"github.com/nikolayk812/foodcart/internal/domain"
	"github.com/nikolayk812/foodcart/internal/metrics"
	"github.com/nikolayk812/foodcart/internal/port"
	"github.com/nikolayk812/foodcart/internal/pricing"
	"github.com/nikolayk812/foodcart/internal/review"
)

// FieldCart is reported when checkout is attempted with no lines.
const FieldCart = "cart"

type Option func(*Session)

// WithCartRepository persists every cart change and restores the cart on start.
func WithCartRepository(repo port.CartRepository) Option {
	return func(s *Session) { s.carts = repo }
}

func WithCartOptions(opts ...cart.Option) Option {
	return func(s *Session) { s.cartOpts = append(s.cartOpts, opts...) }
}

func WithCheckoutOptions(opts ...checkout.Option) Option {
	return func(s *Session) { s.checkoutOpts = append(s.checkoutOpts, opts...) }
}

func WithReviewOptions(opts ...review.Option) Option {
	return func(s *Session) { s.reviewOpts = append(s.reviewOpts, opts...) }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Session) { s.metrics = m }
}

type Session struct {
	ownerID   string
	navigator port.Navigator
	carts     port.CartRepository
	logger    *slog.Logger
	metrics   *metrics.Metrics

	cartOpts     []cart.Option
	checkoutOpts []checkout.Option
	reviewOpts   []review.Option

	Catalog  *catalog.Browser
	Cart     *cart.Cart
	Checkout *checkout.Validator
	Reviews  *review.Store
	Feed     *review.Feed

	persistCtx  context.Context
	unsubscribe func()

	mu         sync.Mutex
	persistErr error
}

// New loads the catalog and, when a cart repository is configured, restores
// the owner's cart before any observer is attached.
func New(
	ctx context.Context,
	ownerID string,
	source port.CatalogSource,
	kv port.KeyValueStore,
	navigator port.Navigator,
	opts ...Option,
) (*Session, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("ownerID is empty")
	}
	if source == nil {
		return nil, fmt.Errorf("catalog source is nil")
	}
	if kv == nil {
		return nil, fmt.Errorf("key/value store is nil")
	}
	if navigator == nil {
		return nil, fmt.Errorf("navigator is nil")
	}

	s := &Session{
		ownerID:    ownerID,
		navigator:  navigator,
		persistCtx: context.WithoutCancel(ctx),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.metrics == nil {
		s.metrics = metrics.Nop()
	}
	s.logger = s.logger.With(slog.String("owner", ownerID))

	s.Catalog = catalog.NewBrowser(source, s.logger)
	if _, err := s.Catalog.Refresh(ctx); err != nil {
		return nil, fmt.Errorf("catalog.Refresh: %w", err)
	}

	s.Cart = cart.New(append([]cart.Option{cart.WithLogger(s.logger), cart.WithMetrics(s.metrics)}, s.cartOpts...)...)
	s.Checkout = checkout.NewValidator(s.checkoutOpts...)
	s.Reviews = review.NewStore(kv, append([]review.Option{review.WithLogger(s.logger), review.WithMetrics(s.metrics)}, s.reviewOpts...)...)
	s.Feed = review.NewFeed(s.Reviews)

	if s.carts != nil {
		saved, err := s.carts.GetCart(ctx, ownerID)
		if err != nil {
			return nil, fmt.Errorf("carts.GetCart: %w", err)
		}
		if len(saved.Items) > 0 {
			s.Cart.Restore(s.reconcile(saved.Items))
		}
		s.unsubscribe = s.Cart.Subscribe(s.persist)
	}

	return s, nil
}

func (s *Session) OwnerID() string {
	return s.ownerID
}

// AddToCart prices a catalog item with the given toppings and adds the line.
func (s *Session) AddToCart(ctx context.Context, foodID int, sels []domain.ToppingSelection) (domain.LineItem, error) {
	item, err := s.Catalog.Find(foodID)
	if err != nil {
		return domain.LineItem{}, fmt.Errorf("catalog.Find: %w", err)
	}

	line, err := pricing.Resolve(item, sels)
	if err != nil {
		return domain.LineItem{}, fmt.Errorf("pricing.Resolve: %w", err)
	}

	s.Cart.Add(line)
	if err := s.takePersistErr(); err != nil {
		return line, err
	}

	return line, nil
}

// EditLine opens an editor on the first cart line with the given id.
func (s *Session) EditLine(id int) (*pricing.Editor, error) {
	line, ok := s.Cart.Find(id)
	if !ok {
		return nil, fmt.Errorf("line[%d]: %w", id, domain.ErrNotFound)
	}

	item, err := s.Catalog.Find(id)
	if err != nil {
		return nil, fmt.Errorf("catalog.Find: %w", err)
	}

	editor, err := pricing.NewEditor(line, item)
	if err != nil {
		return nil, fmt.Errorf("pricing.NewEditor: %w", err)
	}

	return editor, nil
}

// ConfirmEdit reprices the edited line and swaps it into the cart.
func (s *Session) ConfirmEdit(editor *pricing.Editor) (domain.LineItem, error) {
	if editor == nil {
		return domain.LineItem{}, fmt.Errorf("editor is nil")
	}

	line, err := editor.Confirm()
	if err != nil {
		return domain.LineItem{}, fmt.Errorf("editor.Confirm: %w", err)
	}

	if err := s.Cart.Replace(editor.LineID(), line); err != nil {
		return domain.LineItem{}, fmt.Errorf("cart.Replace: %w", err)
	}
	if err := s.takePersistErr(); err != nil {
		return line, err
	}

	return line, nil
}

func (s *Session) RemoveLine(id int) error {
	s.Cart.Remove(id)
	return s.takePersistErr()
}

// PlaceOrder validates the checkout form, places the order, empties the cart
// and returns to the home screen.
func (s *Session) PlaceOrder(ctx context.Context) (checkout.Order, error) {
	items := s.Cart.Items()
	if len(items) == 0 {
		s.metrics.CheckoutAttempts.WithLabelValues("invalid").Inc()
		return checkout.Order{}, &domain.ValidationError{Field: FieldCart, Message: "your cart is empty"}
	}

	order, err := s.Checkout.Checkout(items, s.Cart.Total())
	if err != nil {
		s.metrics.CheckoutAttempts.WithLabelValues("invalid").Inc()
		return checkout.Order{}, fmt.Errorf("checkout.Checkout: %w", err)
	}
	s.metrics.CheckoutAttempts.WithLabelValues("placed").Inc()

	s.logger.Info("order placed",
		slog.String("order", order.ID.String()),
		slog.String("fulfillment", string(order.Fulfillment)),
		slog.String("total", order.Total.String()))

	s.Cart.Clear()
	s.Checkout = checkout.NewValidator(s.checkoutOpts...)

	if err := s.takePersistErr(); err != nil {
		return order, err
	}

	if err := s.navigateHome(ctx); err != nil {
		return order, err
	}

	return order, nil
}

// SubmitReview stores the draft and returns to the home screen.
func (s *Session) SubmitReview(ctx context.Context, draft *review.Draft) error {
	if draft == nil {
		return fmt.Errorf("draft is nil")
	}

	if _, err := s.Catalog.Find(draft.FoodID); err != nil {
		return fmt.Errorf("catalog.Find: %w", err)
	}

	if err := s.Reviews.Submit(ctx, draft.Review()); err != nil {
		return fmt.Errorf("reviews.Submit: %w", err)
	}

	return s.navigateHome(ctx)
}

// Refresh reloads the catalog and reconciles cart lines with any changed
// toppings.
func (s *Session) Refresh(ctx context.Context) error {
	applied, err := s.Catalog.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("catalog.Refresh: %w", err)
	}
	if !applied {
		return nil
	}

	s.Cart.Restore(s.reconcile(s.Cart.Items()))
	return s.takePersistErr()
}

// Close detaches the persister and stops pending loads from being applied.
func (s *Session) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
	s.Cart.Close()
	s.Catalog.Close()
	s.Feed.Close()
}

// reconcile reprices lines against the current catalog. Lines whose food is
// gone are kept unchanged.
func (s *Session) reconcile(items []domain.LineItem) []domain.LineItem {
	out := make([]domain.LineItem, 0, len(items))
	for _, l := range items {
		item, err := s.Catalog.Find(l.ID)
		if err != nil {
			s.logger.Warn("cart line has no catalog item", slog.Int("id", l.ID))
			out = append(out, l)
			continue
		}

		sels, err := pricing.Reconcile(l, item)
		if err == nil {
			var repriced domain.LineItem
			if repriced, err = pricing.Reprice(l, item, sels); err == nil {
				out = append(out, repriced)
				continue
			}
		}

		s.logger.Warn("failed to reconcile cart line", slog.Int("id", l.ID), slog.String("error", err.Error()))
		out = append(out, l)
	}
	return out
}

func (s *Session) persist(snap cart.Snapshot) {
	err := s.carts.SaveCart(s.persistCtx, domain.Cart{OwnerID: s.ownerID, Items: snap.Items})
	if err != nil {
		s.logger.Error("failed to save cart", slog.Uint64("version", snap.Version), slog.String("error", err.Error()))
		err = fmt.Errorf("carts.SaveCart: %w: %w", domain.ErrStorage, err)
	}

	s.mu.Lock()
	s.persistErr = errors.Join(s.persistErr, err)
	s.mu.Unlock()
}

func (s *Session) takePersistErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.persistErr
	s.persistErr = nil
	return err
}

func (s *Session) navigateHome(ctx context.Context) error {
	if err := s.navigator.NavigateTo(ctx, port.ScreenHome, map[string]any{"refresh": true}); err != nil {
		return fmt.Errorf("navigator.NavigateTo: %w", err)
	}
	return nil
}
