package port

import (
	"context"

	"github.com/nikolayk812/foodcart/internal/domain"
)

// CatalogSource yields the menu. It may be called again to refresh.
type CatalogSource interface {
	GetCatalog(ctx context.Context) ([]domain.CatalogItem, error)
}
