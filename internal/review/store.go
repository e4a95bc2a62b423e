// Package review stores food reviews in a key/value store and aggregates them
// for display.
package review

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strconv"

	"github.com/nikolayk812/foodcart/internal/domain"
	"github.com/nikolayk812/foodcart/internal/metrics"
	"github.com/nikolayk812/foodcart/internal/port"
)

const DefaultKey = "foodReviews"

type Store struct {
	kv      port.KeyValueStore
	key     string
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Store)

func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

func NewStore(kv port.KeyValueStore, opts ...Option) *Store {
	s := &Store{kv: kv, key: DefaultKey}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.metrics == nil {
		s.metrics = metrics.Nop()
	}
	return s
}

// Load returns the persisted reviews. A read or decode failure yields an
// empty map together with an error wrapping domain.ErrStorage; callers may
// carry on with the empty map.
func (s *Store) Load(ctx context.Context) (domain.ReviewMap, error) {
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		s.logger.Warn("failed to read reviews, treating as empty", slog.String("key", s.key), slog.String("error", err.Error()))
		return domain.ReviewMap{}, fmt.Errorf("kv.Get: %w: %w", domain.ErrStorage, err)
	}
	if !ok {
		return domain.ReviewMap{}, nil
	}

	reviews, err := Decode(raw)
	if err != nil {
		s.logger.Warn("malformed reviews, treating as empty", slog.String("key", s.key), slog.String("error", err.Error()))
		return domain.ReviewMap{}, fmt.Errorf("Decode: %w: %w", domain.ErrStorage, err)
	}

	return reviews, nil
}

// Submit appends r to the persisted reviews of r.FoodID. The review counts as
// submitted only when nil is returned.
func (s *Store) Submit(ctx context.Context, r domain.Review) error {
	if err := Validate(r); err != nil {
		s.metrics.Reviews.WithLabelValues("invalid").Inc()
		return err
	}

	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		s.metrics.Reviews.WithLabelValues("failed").Inc()
		return fmt.Errorf("kv.Get: %w: %w", domain.ErrStorage, err)
	}

	reviews := domain.ReviewMap{}
	if ok {
		decoded, err := Decode(raw)
		if err != nil {
			// a corrupt blob is replaced rather than blocking every future review
			s.logger.Warn("submitting over malformed reviews", slog.String("key", s.key), slog.String("error", err.Error()))
		} else {
			reviews = decoded
		}
	}

	reviews.Append(r)

	raw, err = Encode(reviews)
	if err != nil {
		s.metrics.Reviews.WithLabelValues("failed").Inc()
		return fmt.Errorf("Encode: %w: %w", domain.ErrStorage, err)
	}

	if err := s.kv.Set(ctx, s.key, raw); err != nil {
		s.metrics.Reviews.WithLabelValues("failed").Inc()
		return fmt.Errorf("kv.Set: %w: %w", domain.ErrStorage, err)
	}

	s.metrics.Reviews.WithLabelValues("ok").Inc()
	s.logger.Info("review submitted", slog.Int("food_id", r.FoodID), slog.Int("rating", r.Rating))
	return nil
}

func Validate(r domain.Review) error {
	if r.FoodID <= 0 {
		return &domain.ValidationError{Field: "foodId", Message: "food id must be positive"}
	}
	if r.Rating < domain.MinRating || r.Rating > domain.MaxRating {
		return &domain.ValidationError{
			Field:   "rating",
			Message: fmt.Sprintf("rating must be between %d and %d", domain.MinRating, domain.MaxRating),
		}
	}
	return nil
}

// Encode renders reviews as {"<foodId>": [{"text","image","rating"}]}.
func Encode(reviews domain.ReviewMap) (string, error) {
	data, err := json.Marshal(reviews)
	if err != nil {
		return "", fmt.Errorf("json.Marshal: %w", err)
	}
	return string(data), nil
}

func Decode(raw string) (domain.ReviewMap, error) {
	var byKey map[string][]domain.Review
	if err := json.Unmarshal([]byte(raw), &byKey); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}

	reviews := make(domain.ReviewMap, len(byKey))
	// keys such as "01" and "1" name the same food; their lists are merged
	// in key order so none is lost on the next write
	for _, key := range slices.Sorted(maps.Keys(byKey)) {
		list := byKey[key]

		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("food id[%s] is not valid: %w", key, err)
		}

		for i := range list {
			list[i].FoodID = id
		}
		if existing, ok := reviews[id]; ok {
			list = append(existing, list...)
		}
		reviews[id] = list
	}

	return reviews, nil
}
