package domain

import (
	"maps"

	"github.com/shopspring/decimal"
)

type ToppingSelection struct {
	Name     string
	Quantity int
}

// LineItem is one cart entry. ID is the source CatalogItem.ID.
type LineItem struct {
	ID              int             `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	BaseDescription string          `json:"baseDescription"`
	BasePrice       decimal.Decimal `json:"basePrice"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	Toppings        map[string]int  `json:"toppings,omitempty"`
}

// Clone returns a copy that shares no mutable state with l.
func (l LineItem) Clone() LineItem {
	l.Toppings = maps.Clone(l.Toppings)
	return l
}

type Cart struct {
	OwnerID string
	Items   []LineItem
}
