// Package pricing turns catalog items and topping selections into priced cart
// line items.
package pricing

import (
	"fmt"
	"strings"

	"github.com/nikolayk812/foodcart/internal/domain"
	"github.com/shopspring/decimal"
)

// Resolve prices item with the given selections. Toppings not mentioned in
// sels count as zero.
func Resolve(item domain.CatalogItem, sels []domain.ToppingSelection) (domain.LineItem, error) {
	return resolve(item, item.BasePrice, item.Description, sels)
}

// Reprice re-resolves an existing line against the current topping list while
// keeping the base price and description captured when the line was created.
func Reprice(existing domain.LineItem, item domain.CatalogItem, sels []domain.ToppingSelection) (domain.LineItem, error) {
	if existing.ID != item.ID {
		return domain.LineItem{}, fmt.Errorf("line[%d] does not belong to item[%d]: %w", existing.ID, item.ID, domain.ErrNotFound)
	}

	return resolve(item, existing.BasePrice, existing.BaseDescription, sels)
}

// Reconcile returns one selection per topping the catalog currently offers,
// carrying over quantities recorded on existing. Toppings the catalog no
// longer offers are dropped.
func Reconcile(existing domain.LineItem, item domain.CatalogItem) ([]domain.ToppingSelection, error) {
	if existing.ID != item.ID {
		return nil, fmt.Errorf("line[%d] does not belong to item[%d]: %w", existing.ID, item.ID, domain.ErrNotFound)
	}

	sels := make([]domain.ToppingSelection, 0, len(item.Toppings))
	for _, t := range item.Toppings {
		sels = append(sels, domain.ToppingSelection{
			Name:     t.Name,
			Quantity: existing.Toppings[t.Name],
		})
	}

	return sels, nil
}

func resolve(item domain.CatalogItem, basePrice decimal.Decimal, baseDescription string, sels []domain.ToppingSelection) (domain.LineItem, error) {
	quantities, err := selectionQuantities(item, sels)
	if err != nil {
		return domain.LineItem{}, err
	}

	total := basePrice
	var parts []string
	var toppings map[string]int

	// catalog order keeps descriptions reproducible regardless of input order
	for _, t := range item.Toppings {
		q := quantities[t.Name]
		if q == 0 {
			continue
		}

		total = total.Add(t.UnitPrice.Mul(decimal.NewFromInt(int64(q))))
		parts = append(parts, fmt.Sprintf("%dx %s", q, t.Name))

		if toppings == nil {
			toppings = make(map[string]int)
		}
		toppings[t.Name] = q
	}

	description := baseDescription
	if len(parts) > 0 {
		description = baseDescription + " with " + strings.Join(parts, ", ")
	}

	return domain.LineItem{
		ID:              item.ID,
		Name:            item.Name,
		Description:     description,
		BaseDescription: baseDescription,
		BasePrice:       basePrice,
		TotalPrice:      domain.RoundPrice(total),
		Toppings:        toppings,
	}, nil
}

func selectionQuantities(item domain.CatalogItem, sels []domain.ToppingSelection) (map[string]int, error) {
	quantities := make(map[string]int, len(sels))

	for _, sel := range sels {
		if _, ok := item.Topping(sel.Name); !ok {
			return nil, fmt.Errorf("topping[%s] is not offered for item[%d]: %w", sel.Name, item.ID, domain.ErrInvalidSelection)
		}
		if sel.Quantity < 0 {
			return nil, fmt.Errorf("topping[%s] quantity %d is negative: %w", sel.Name, sel.Quantity, domain.ErrInvalidSelection)
		}
		if _, dup := quantities[sel.Name]; dup {
			return nil, fmt.Errorf("topping[%s] selected twice: %w", sel.Name, domain.ErrInvalidSelection)
		}

		quantities[sel.Name] = sel.Quantity
	}

	return quantities, nil
}
