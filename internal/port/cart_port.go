package port

import (
	"context"

	"github.com/nikolayk812/foodcart/internal/domain"
)

// CartRepository persists a session cart so it can be rehydrated later.
// SaveCart always writes the whole cart, so a removed line is gone after the
// next save.
type CartRepository interface {
	GetCart(ctx context.Context, ownerID string) (domain.Cart, error)
	SaveCart(ctx context.Context, cart domain.Cart) error
}
