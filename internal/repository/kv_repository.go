package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/foodcart/internal/db"
	"github.com/nikolayk812/foodcart/internal/port"
)

type kvRepository struct {
	q *db.Queries
}

// NewKV stores key/value pairs in the kv_entries table.
func NewKV(pool *pgxpool.Pool) (port.KeyValueStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &kvRepository{q: db.New(pool)}, nil
}

func (r *kvRepository) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, fmt.Errorf("key is empty")
	}

	value, err := r.q.GetValue(ctx, key)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("q.GetValue: %w", err)
	}

	return value, true, nil
}

func (r *kvRepository) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	if err := r.q.SetValue(ctx, db.SetValueParams{Key: key, Value: value}); err != nil {
		return fmt.Errorf("q.SetValue: %w", err)
	}

	return nil
}
