package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/foodcart/internal/db"
	"github.com/nikolayk812/foodcart/internal/domain"
	"github.com/nikolayk812/foodcart/internal/port"
)

type cartRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewCart(pool *pgxpool.Pool) (port.CartRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &cartRepository{
		q:    db.New(pool),
		pool: pool,
	}, nil
}

func NewCartWithTx(tx pgx.Tx) port.CartRepository {
	return &cartRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

func (r *cartRepository) GetCart(ctx context.Context, ownerID string) (domain.Cart, error) {
	if ownerID == "" {
		return domain.Cart{}, fmt.Errorf("ownerID is empty")
	}

	rows, err := r.q.GetCart(ctx, ownerID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("q.GetCart: %w", err)
	}

	items, err := mapGetCartRowsToDomain(rows)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("mapGetCartRowsToDomain: %w", err)
	}

	return domain.Cart{
		OwnerID: ownerID,
		Items:   items,
	}, nil
}

// SaveCart replaces every stored line of the owner with cart.Items, in order.
func (r *cartRepository) SaveCart(ctx context.Context, cart domain.Cart) error {
	if cart.OwnerID == "" {
		return fmt.Errorf("ownerID is empty")
	}

	params := make([]db.InsertItemParams, 0, len(cart.Items))
	for i, item := range cart.Items {
		p, err := mapDomainToInsertItemParams(cart.OwnerID, i, item)
		if err != nil {
			return fmt.Errorf("mapDomainToInsertItemParams: %w", err)
		}
		params = append(params, p)
	}

	_, err := withTx(ctx, r.pool, r.q, func(q *db.Queries) (struct{}, error) {
		if err := q.DeleteCart(ctx, cart.OwnerID); err != nil {
			return struct{}{}, fmt.Errorf("q.DeleteCart: %w", err)
		}

		for _, p := range params {
			if err := q.InsertItem(ctx, p); err != nil {
				return struct{}{}, fmt.Errorf("q.InsertItem: %w", err)
			}
		}

		return struct{}{}, nil
	})

	return err
}

func mapDomainToInsertItemParams(ownerID string, position int, item domain.LineItem) (db.InsertItemParams, error) {
	if item.ID <= 0 || item.ID > domain.MaxID {
		return db.InsertItemParams{}, fmt.Errorf("line id[%d] is out of range", item.ID)
	}
	if position > math.MaxInt32 {
		return db.InsertItemParams{}, fmt.Errorf("position[%d] is out of range", position)
	}

	toppings := item.Toppings
	if toppings == nil {
		toppings = map[string]int{}
	}

	toppingsJSON, err := json.Marshal(toppings)
	if err != nil {
		return db.InsertItemParams{}, fmt.Errorf("json.Marshal: %w", err)
	}

	return db.InsertItemParams{
		OwnerID:         ownerID,
		Position:        int32(position),
		FoodID:          int32(item.ID),
		Name:            item.Name,
		Description:     item.Description,
		BaseDescription: item.BaseDescription,
		BasePrice:       item.BasePrice,
		TotalPrice:      item.TotalPrice,
		Toppings:        toppingsJSON,
	}, nil
}

func mapGetCartRowToDomain(row db.GetCartRow) (domain.LineItem, error) {
	var toppings map[string]int
	if err := json.Unmarshal(row.Toppings, &toppings); err != nil {
		return domain.LineItem{}, fmt.Errorf("toppings of line[%d] are not valid: %w", row.FoodID, err)
	}
	if len(toppings) == 0 {
		toppings = nil
	}

	return domain.LineItem{
		ID:              int(row.FoodID),
		Name:            row.Name,
		Description:     row.Description,
		BaseDescription: row.BaseDescription,
		BasePrice:       row.BasePrice,
		TotalPrice:      row.TotalPrice,
		Toppings:        toppings,
	}, nil
}

func mapGetCartRowsToDomain(rows []db.GetCartRow) ([]domain.LineItem, error) {
	var items []domain.LineItem

	for _, row := range rows {
		item, err := mapGetCartRowToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapGetCartRowToDomain: %w", err)
		}

		items = append(items, item)
	}

	return items, nil
}
