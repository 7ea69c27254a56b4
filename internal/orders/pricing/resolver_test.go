package pricing

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slicesite/internal/domain"
)

// fakeCatalog serves lookups from a map and records their order.
type fakeCatalog struct {
	items   map[string]domain.MenuItem
	lookups []string
}

func (f *fakeCatalog) Lookup(ctx context.Context, id string) (domain.MenuItem, error) {
	f.lookups = append(f.lookups, id)
	item, ok := f.items[id]
	if !ok {
		return domain.MenuItem{}, domain.ErrMenuItemNotFound
	}
	return item, nil
}

func catalogWith(prices map[string]string) *fakeCatalog {
	items := make(map[string]domain.MenuItem, len(prices))
	for id, price := range prices {
		items[id] = domain.MenuItem{ID: id, Name: id, Price: decimal.RequireFromString(price)}
	}
	return &fakeCatalog{items: items}
}

func TestResolveComputesTotalAndPreservesOrder(t *testing.T) {
	catalog := catalogWith(map[string]string{"pizza-a": "30.00", "soda-b": "10.00"})
	r := NewResolver(catalog)

	total, lines, err := r.Resolve(context.Background(), []domain.CartItem{
		{MenuItemID: "pizza-a", Quantity: 2},
		{MenuItemID: "soda-b", Quantity: 1},
	})
	require.NoError(t, err)

	assert.True(t, total.Equal(decimal.RequireFromString("70.00")), "total = %s", total)
	require.Len(t, lines, 2)
	assert.Equal(t, "pizza-a", lines[0].MenuItemID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, "soda-b", lines[1].MenuItemID)
	assert.Equal(t, 1, lines[1].Quantity)
}

// Many two-decimal prices that do not have exact float64 representations.
// The decimal sum must still be exact.
func TestResolveExactArithmeticManyLines(t *testing.T) {
	prices := make(map[string]string)
	cart := make([]domain.CartItem, 0, 25)
	for i := 0; i < 25; i++ {
		id := fmt.Sprintf("item-%02d", i)
		prices[id] = "0.10"
		cart = append(cart, domain.CartItem{MenuItemID: id, Quantity: 3})
	}
	r := NewResolver(catalogWith(prices))

	total, lines, err := r.Resolve(context.Background(), cart)
	require.NoError(t, err)
	require.Len(t, lines, 25)

	// 25 * 3 * 0.10 == 7.50 exactly (0.1 is not representable in binary)
	assert.True(t, total.Equal(decimal.RequireFromString("7.50")), "total = %s", total)
	assert.Equal(t, "7.5", total.String())
}

func TestResolveFailsFastOnFirstMissingItem(t *testing.T) {
	catalog := catalogWith(map[string]string{"pizza-a": "30.00", "soda-b": "10.00"})
	r := NewResolver(catalog)

	_, lines, err := r.Resolve(context.Background(), []domain.CartItem{
		{MenuItemID: "pizza-a", Quantity: 1},
		{MenuItemID: "unknown-x", Quantity: 1},
		{MenuItemID: "soda-b", Quantity: 1},
	})

	var notFound *domain.ItemNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "unknown-x", notFound.ID)
	assert.Equal(t, "Menu item with id unknown-x not found.", err.Error())
	assert.Nil(t, lines)

	// soda-b was never examined
	assert.Equal(t, []string{"pizza-a", "unknown-x"}, catalog.lookups)
}

func TestResolveEmptyCart(t *testing.T) {
	r := NewResolver(catalogWith(nil))

	total, lines, err := r.Resolve(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, total.IsZero())
	assert.Empty(t, lines)
}

func TestResolveSameItemTwice(t *testing.T) {
	r := NewResolver(catalogWith(map[string]string{"soda-b": "10.00"}))

	total, lines, err := r.Resolve(context.Background(), []domain.CartItem{
		{MenuItemID: "soda-b", Quantity: 1},
		{MenuItemID: "soda-b", Quantity: 2},
	})
	require.NoError(t, err)

	// duplicate entries stay separate lines, both priced
	require.Len(t, lines, 2)
	assert.True(t, total.Equal(decimal.RequireFromString("30.00")))
}
