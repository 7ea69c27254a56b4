package pricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"slicesite/internal/domain"
)

// CatalogStore is the read-only catalog dependency carts are priced
// against. Writes to the catalog belong elsewhere.
type CatalogStore interface {
	Lookup(ctx context.Context, id string) (domain.MenuItem, error)
}

// Resolver turns a cart into an authoritative total and the line items to
// persist. Prices always come from the catalog, never from the client.
type Resolver struct {
	catalog CatalogStore
}

func NewResolver(catalog CatalogStore) *Resolver {
	return &Resolver{catalog: catalog}
}

// Resolve walks the cart in input order and accumulates price * quantity
// with exact decimal arithmetic. It aborts on the first entry whose menu
// item does not exist, returning *domain.ItemNotFoundError naming it;
// later entries are not looked up. No side effects either way.
func (r *Resolver) Resolve(ctx context.Context, cart []domain.CartItem) (decimal.Decimal, []domain.OrderLineItem, error) {
	total := decimal.Zero
	lines := make([]domain.OrderLineItem, 0, len(cart))

	for _, entry := range cart {
		item, err := r.catalog.Lookup(ctx, entry.MenuItemID)
		if err != nil {
			if errors.Is(err, domain.ErrMenuItemNotFound) {
				return decimal.Zero, nil, &domain.ItemNotFoundError{ID: entry.MenuItemID}
			}
			return decimal.Zero, nil, fmt.Errorf("failed to look up menu item %s: %w", entry.MenuItemID, err)
		}

		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(entry.Quantity))))
		lines = append(lines, domain.OrderLineItem{
			MenuItemID: entry.MenuItemID,
			Quantity:   entry.Quantity,
		})
	}
	return total, lines, nil
}
