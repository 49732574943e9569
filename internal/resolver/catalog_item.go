package resolver

import (
	"context"
	"fmt"

	"storefront/catalogpage/internal/domain"
)

// SearchProvider looks catalog items up by id. A nil item with a nil error
// means the item does not exist in the catalog.
type SearchProvider interface {
	GetProduct(ctx context.Context, id, catalogName string) (*domain.CatalogItem, error)
	GetCategory(ctx context.Context, id, catalogName string) (*domain.CatalogItem, error)
}

type CatalogItemResolver struct {
	search SearchProvider
}

func NewCatalogItemResolver(search SearchProvider) *CatalogItemResolver {
	return &CatalogItemResolver{search: search}
}

// Resolve returns the product or category with the given id, or nil when it
// cannot be found. An empty id never reaches the search provider.
func (r *CatalogItemResolver) Resolve(ctx context.Context, id, catalogName string, isProduct bool) (*domain.CatalogItem, error) {
	if id == "" {
		return nil, nil
	}

	if isProduct {
		item, err := r.search.GetProduct(ctx, id, catalogName)
		if err != nil {
			return nil, fmt.Errorf("failed to get product %s from catalog %s: %w", id, catalogName, err)
		}
		return item, nil
	}

	item, err := r.search.GetCategory(ctx, id, catalogName)
	if err != nil {
		return nil, fmt.Errorf("failed to get category %s from catalog %s: %w", id, catalogName, err)
	}
	return item, nil
}
