package pricing

import (
	"fmt"
	"slices"

	"github.com/nikolayk812/foodcart/internal/domain"
	"github.com/shopspring/decimal"
)

// Editor holds topping quantities while a cart line is being edited.
type Editor struct {
	line domain.LineItem
	item domain.CatalogItem
	sels []domain.ToppingSelection
}

// NewEditor opens line for editing against the current catalog entry.
func NewEditor(line domain.LineItem, item domain.CatalogItem) (*Editor, error) {
	sels, err := Reconcile(line, item)
	if err != nil {
		return nil, fmt.Errorf("Reconcile: %w", err)
	}

	return &Editor{
		line: line.Clone(),
		item: item,
		sels: sels,
	}, nil
}

func (e *Editor) LineID() int {
	return e.line.ID
}

func (e *Editor) Increment(name string) error {
	i, err := e.index(name)
	if err != nil {
		return err
	}

	e.sels[i].Quantity++
	return nil
}

// Decrement lowers the quantity of name, never below zero.
func (e *Editor) Decrement(name string) error {
	i, err := e.index(name)
	if err != nil {
		return err
	}

	if e.sels[i].Quantity > 0 {
		e.sels[i].Quantity--
	}
	return nil
}

func (e *Editor) Set(name string, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("topping[%s] quantity %d is negative: %w", name, quantity, domain.ErrInvalidSelection)
	}

	i, err := e.index(name)
	if err != nil {
		return err
	}

	e.sels[i].Quantity = quantity
	return nil
}

func (e *Editor) Selections() []domain.ToppingSelection {
	return slices.Clone(e.sels)
}

// Preview is the total the line would have if confirmed now.
func (e *Editor) Preview() decimal.Decimal {
	line, err := e.Confirm()
	if err != nil {
		// selections are built from the catalog, so this cannot fail
		return e.line.TotalPrice
	}
	return line.TotalPrice
}

func (e *Editor) Confirm() (domain.LineItem, error) {
	return Reprice(e.line, e.item, e.sels)
}

func (e *Editor) index(name string) (int, error) {
	i := slices.IndexFunc(e.sels, func(s domain.ToppingSelection) bool {
		return s.Name == name
	})
	if i < 0 {
		return -1, fmt.Errorf("topping[%s] is not offered for item[%d]: %w", name, e.item.ID, domain.ErrInvalidSelection)
	}
	return i, nil
}
