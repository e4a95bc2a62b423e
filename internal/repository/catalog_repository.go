package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/foodcart/internal/db"
	"github.com/nikolayk812/foodcart/internal/domain"
)

// CatalogRepository serves the menu from the foods and toppings tables.
type CatalogRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewCatalog(pool *pgxpool.Pool) (*CatalogRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &CatalogRepository{
		q:    db.New(pool),
		pool: pool,
	}, nil
}

func (r *CatalogRepository) GetCatalog(ctx context.Context) ([]domain.CatalogItem, error) {
	foods, err := r.q.ListFoods(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.ListFoods: %w", err)
	}

	toppings, err := r.q.ListToppings(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.ListToppings: %w", err)
	}

	byFood := make(map[int32][]domain.Topping)
	for _, t := range toppings {
		byFood[t.FoodID] = append(byFood[t.FoodID], domain.Topping{
			Name:      t.Name,
			UnitPrice: t.UnitPrice,
		})
	}

	items := make([]domain.CatalogItem, 0, len(foods))
	for _, f := range foods {
		item, err := mapFoodToDomain(f, byFood[f.ID])
		if err != nil {
			return nil, fmt.Errorf("mapFoodToDomain: %w", err)
		}
		items = append(items, item)
	}

	return items, nil
}

// SaveCatalog upserts items and rewrites their topping lists.
func (r *CatalogRepository) SaveCatalog(ctx context.Context, items []domain.CatalogItem) error {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("item.Validate: %w", err)
		}
	}

	_, err := withTx(ctx, r.pool, r.q, func(q *db.Queries) (struct{}, error) {
		for _, item := range items {
			err := q.UpsertFood(ctx, db.UpsertFoodParams{
				ID:          int32(item.ID),
				Name:        item.Name,
				Description: item.Description,
				BasePrice:   item.BasePrice,
				Image:       item.Image,
				Category:    item.Category.String(),
			})
			if err != nil {
				return struct{}{}, fmt.Errorf("q.UpsertFood: %w", err)
			}

			if err := q.DeleteToppings(ctx, int32(item.ID)); err != nil {
				return struct{}{}, fmt.Errorf("q.DeleteToppings: %w", err)
			}

			for pos, t := range item.Toppings {
				err := q.InsertTopping(ctx, db.InsertToppingParams{
					FoodID:    int32(item.ID),
					Position:  int32(pos),
					Name:      t.Name,
					UnitPrice: t.UnitPrice,
				})
				if err != nil {
					return struct{}{}, fmt.Errorf("q.InsertTopping: %w", err)
				}
			}
		}

		return struct{}{}, nil
	})

	return err
}

func mapFoodToDomain(f db.Food, toppings []domain.Topping) (domain.CatalogItem, error) {
	category, err := domain.ParseCategory(f.Category)
	if err != nil {
		return domain.CatalogItem{}, fmt.Errorf("food[%d]: %w", f.ID, err)
	}

	return domain.CatalogItem{
		ID:          int(f.ID),
		Name:        f.Name,
		Description: f.Description,
		BasePrice:   f.BasePrice,
		Image:       f.Image,
		Category:    category,
		Toppings:    toppings,
	}, nil
}
