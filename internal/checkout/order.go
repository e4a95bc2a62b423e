package checkout

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/foodcart/internal/domain"
)

type Order struct {
	ID          uuid.UUID
	Fulfillment Fulfillment
	TableNumber string
	Address     *Address
	Items       []domain.LineItem
	Total       domain.Money
	PlacedAt    time.Time
}

func (o Order) Summary() string {
	switch o.Fulfillment {
	case DineIn:
		return fmt.Sprintf("Order placed! Pickup option: %s, Table number: %s", o.Fulfillment, o.TableNumber)
	case Delivery:
		return fmt.Sprintf("Order placed! Pickup option: %s, Address: %s", o.Fulfillment, o.Address)
	default:
		return "Order placed!"
	}
}
