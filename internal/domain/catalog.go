package domain

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryPizzas     Category = "Pizzas"
	CategoryHamburgers Category = "Hamburgers"
	CategorySalads     Category = "Salads"
)

// MaxID is the largest food id the storage schema can hold.
const MaxID = math.MaxInt32

// Categories lists the menu categories in display order.
var Categories = []Category{CategoryPizzas, CategoryHamburgers, CategorySalads}

func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("category[%s] is not valid", s)
}

func (c Category) String() string {
	return string(c)
}

type Topping struct {
	Name      string          `json:"name" yaml:"name"`
	UnitPrice decimal.Decimal `json:"price" yaml:"price"`
}

type CatalogItem struct {
	ID          int             `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description" yaml:"description"`
	BasePrice   decimal.Decimal `json:"price" yaml:"price"`
	Image       string          `json:"image" yaml:"image"`
	Category    Category        `json:"category" yaml:"category"`
	Toppings    []Topping       `json:"toppings" yaml:"toppings"`
}

func (i CatalogItem) Validate() error {
	if i.ID <= 0 {
		return fmt.Errorf("id[%d] must be positive", i.ID)
	}
	if i.ID > MaxID {
		return fmt.Errorf("id[%d] exceeds %d", i.ID, MaxID)
	}
	if i.BasePrice.IsNegative() {
		return fmt.Errorf("item[%d]: base price is negative", i.ID)
	}
	if !isCents(i.BasePrice) {
		return fmt.Errorf("item[%d]: base price %s has more than 2 decimal places", i.ID, i.BasePrice)
	}
	if _, err := ParseCategory(string(i.Category)); err != nil {
		return fmt.Errorf("item[%d]: %w", i.ID, err)
	}

	seen := make(map[string]struct{}, len(i.Toppings))
	for _, t := range i.Toppings {
		if t.Name == "" {
			return fmt.Errorf("item[%d]: topping name is empty", i.ID)
		}
		if _, ok := seen[t.Name]; ok {
			return fmt.Errorf("item[%d]: duplicate topping[%s]", i.ID, t.Name)
		}
		seen[t.Name] = struct{}{}

		if t.UnitPrice.IsNegative() {
			return fmt.Errorf("item[%d]: topping[%s] price is negative", i.ID, t.Name)
		}
		if !isCents(t.UnitPrice) {
			return fmt.Errorf("item[%d]: topping[%s] price %s has more than 2 decimal places", i.ID, t.Name, t.UnitPrice)
		}
	}

	return nil
}

// Topping looks up an available topping by name.
func (i CatalogItem) Topping(name string) (Topping, bool) {
	for _, t := range i.Toppings {
		if t.Name == name {
			return t, true
		}
	}
	return Topping{}, false
}

func isCents(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(2))
}
