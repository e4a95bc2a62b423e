package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/foodcart/internal/cart"
	"github.com/nikolayk812/foodcart/internal/catalog"
	"github.com/nikolayk812/foodcart/internal/checkout"
	"github.com/nikolayk812/foodcart/internal/config"
	"github.com/nikolayk812/foodcart/internal/metrics"
	"github.com/nikolayk812/foodcart/internal/port"
	"github.com/nikolayk812/foodcart/internal/repository"
	"github.com/nikolayk812/foodcart/internal/review"
	"github.com/nikolayk812/foodcart/internal/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

type globalOptions struct {
	configPath  string
	ownerID     string
	dumpMetrics bool
}

// app owns everything built for a single command invocation.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	session  *session.Session
	catalogs *repository.CatalogRepository
	closers  []func()
}

func newApp(ctx context.Context, opts *globalOptions, out io.Writer) (_ *app, err error) {
	cfg, err := config.NewLoader(nil).Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := cfg.Log.NewLogger(os.Stderr)
	slog.SetDefault(logger)

	a := &app{
		cfg:      cfg,
		logger:   logger,
		registry: prometheus.NewRegistry(),
	}
	defer func() {
		if err != nil {
			_ = a.close(io.Discard, false)
		}
	}()

	m := metrics.New(a.registry)

	var pool *pgxpool.Pool
	if cfg.Storage.Backend == config.BackendPostgres || cfg.Catalog.Source == config.CatalogPostgres {
		pool, err = pgxpool.New(ctx, cfg.Storage.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("pgxpool.New: %w", err)
		}
		a.closers = append(a.closers, pool.Close)
	}

	source, err := a.catalogSource(pool)
	if err != nil {
		return nil, err
	}

	kv, carts, err := a.storage(ctx, pool)
	if err != nil {
		return nil, err
	}

	policy, err := cart.ParseAddPolicy(cfg.Cart.AddPolicy)
	if err != nil {
		return nil, err
	}

	var checkoutOpts []checkout.Option
	if cfg.HasProfile() {
		checkoutOpts = append(checkoutOpts, checkout.WithProfile(cfg.Profile))
	}

	sessionOpts := []session.Option{
		session.WithLogger(logger),
		session.WithMetrics(m),
		session.WithCartOptions(cart.WithAddPolicy(policy), cart.WithCurrency(cfg.CurrencyUnit())),
		session.WithCheckoutOptions(checkoutOpts...),
		session.WithReviewOptions(review.WithKey(cfg.Storage.ReviewsKey)),
	}
	if carts != nil {
		sessionOpts = append(sessionOpts, session.WithCartRepository(carts))
	}

	s, err := session.New(ctx, ownerID(opts.ownerID), source, kv, &logNavigator{logger: logger, out: out}, sessionOpts...)
	if err != nil {
		return nil, fmt.Errorf("session.New: %w", err)
	}
	a.session = s
	a.closers = append(a.closers, s.Close)

	return a, nil
}

func (a *app) catalogSource(pool *pgxpool.Pool) (port.CatalogSource, error) {
	if a.cfg.Catalog.Source == config.CatalogPostgres {
		repo, err := repository.NewCatalog(pool)
		if err != nil {
			return nil, fmt.Errorf("repository.NewCatalog: %w", err)
		}
		a.catalogs = repo
		return repo, nil
	}

	if a.cfg.Catalog.File != "" {
		static, err := catalog.LoadFile(a.cfg.Catalog.File)
		if err != nil {
			return nil, fmt.Errorf("catalog.LoadFile: %w", err)
		}
		return static, nil
	}

	static, err := catalog.Default()
	if err != nil {
		return nil, fmt.Errorf("catalog.Default: %w", err)
	}
	return static, nil
}

func (a *app) storage(ctx context.Context, pool *pgxpool.Pool) (port.KeyValueStore, port.CartRepository, error) {
	switch a.cfg.Storage.Backend {
	case config.BackendPostgres:
		kv, err := repository.NewKV(pool)
		if err != nil {
			return nil, nil, fmt.Errorf("repository.NewKV: %w", err)
		}
		carts, err := repository.NewCart(pool)
		if err != nil {
			return nil, nil, fmt.Errorf("repository.NewCart: %w", err)
		}
		return kv, carts, nil

	case config.BackendRedis:
		client, err := repository.NewRedisClient(ctx, a.cfg.Storage.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("repository.NewRedisClient: %w", err)
		}
		a.closers = append(a.closers, func() { _ = client.Close() })

		kv, err := repository.NewRedisKV(client, a.cfg.Storage.RedisPrefix)
		if err != nil {
			return nil, nil, fmt.Errorf("repository.NewRedisKV: %w", err)
		}
		return kv, nil, nil

	default:
		a.logger.Debug("using in-memory storage; nothing outlives this command")
		return repository.NewMemoryKV(), nil, nil
	}
}

// close releases resources in reverse order and optionally writes metrics
// in the Prometheus text format.
func (a *app) close(w io.Writer, dumpMetrics bool) error {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil

	if !dumpMetrics {
		return nil
	}

	families, err := a.registry.Gather()
	if err != nil {
		return fmt.Errorf("registry.Gather: %w", err)
	}

	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	var errs []error
	for _, mf := range families {
		errs = append(errs, enc.Encode(mf))
	}
	return errors.Join(errs...)
}

// ownerID falls back to an id that is stable for the current user so that a
// persistent cart is found again on the next run.
func ownerID(flag string) string {
	if flag != "" {
		return flag
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return uuid.NewString()
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+home)).String()
}
