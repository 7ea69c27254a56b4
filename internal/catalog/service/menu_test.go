package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slicesite/internal/domain"
)

// fakeMenuRepo implements repository.MenuRepositoryInterface with
// function fields so each test wires only what it needs.
type fakeMenuRepo struct {
	LookupFn func(ctx context.Context, id string) (domain.MenuItem, error)
	ListFn   func(ctx context.Context, category string, offset, limit int) ([]domain.MenuItem, error)
	CreateFn func(ctx context.Context, item domain.MenuItem) error
	UpdateFn func(ctx context.Context, item domain.MenuItem) error
	DeleteFn func(ctx context.Context, id string) error
}

func (f *fakeMenuRepo) Lookup(ctx context.Context, id string) (domain.MenuItem, error) {
	return f.LookupFn(ctx, id)
}
func (f *fakeMenuRepo) List(ctx context.Context, category string, offset, limit int) ([]domain.MenuItem, error) {
	return f.ListFn(ctx, category, offset, limit)
}
func (f *fakeMenuRepo) Create(ctx context.Context, item domain.MenuItem) error {
	return f.CreateFn(ctx, item)
}
func (f *fakeMenuRepo) Update(ctx context.Context, item domain.MenuItem) error {
	return f.UpdateFn(ctx, item)
}
func (f *fakeMenuRepo) Delete(ctx context.Context, id string) error { return f.DeleteFn(ctx, id) }

func notFoundLookup(context.Context, string) (domain.MenuItem, error) {
	return domain.MenuItem{}, domain.ErrMenuItemNotFound
}

func TestCreateMenuItemValidation(t *testing.T) {
	svc := NewMenuService(&fakeMenuRepo{LookupFn: notFoundLookup})

	_, err := svc.CreateMenuItem(context.Background(), domain.MenuItem{Name: "Pizza", Price: decimal.NewFromInt(10)})
	assert.EqualError(t, err, "id is required")

	_, err = svc.CreateMenuItem(context.Background(), domain.MenuItem{ID: "pizza-a", Price: decimal.NewFromInt(10)})
	assert.EqualError(t, err, "name is required")

	_, err = svc.CreateMenuItem(context.Background(), domain.MenuItem{
		ID: "pizza-a", Name: "Pizza", Price: decimal.NewFromInt(-1),
	})
	assert.EqualError(t, err, "price must be >= 0")
}

func TestCreateMenuItemDuplicateID(t *testing.T) {
	existing := domain.MenuItem{ID: "pizza-a", Name: "Pizza", Price: decimal.NewFromInt(30)}
	svc := NewMenuService(&fakeMenuRepo{
		LookupFn: func(ctx context.Context, id string) (domain.MenuItem, error) {
			return existing, nil
		},
	})

	_, err := svc.CreateMenuItem(context.Background(), existing)
	assert.ErrorIs(t, err, domain.ErrMenuItemExists)
}

func TestCreateMenuItemForwardsToRepo(t *testing.T) {
	var created domain.MenuItem
	svc := NewMenuService(&fakeMenuRepo{
		LookupFn: notFoundLookup,
		CreateFn: func(ctx context.Context, item domain.MenuItem) error {
			created = item
			return nil
		},
	})

	want := domain.MenuItem{ID: "soda-b", Name: "Soda", Price: decimal.RequireFromString("10.00"), Category: "drinks"}
	got, err := svc.CreateMenuItem(context.Background(), want)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, want, created)
}

func TestUpdateMenuItemPartialPatch(t *testing.T) {
	stored := domain.MenuItem{ID: "pizza-a", Name: "Pizza", Price: decimal.RequireFromString("30.00"), Category: "pizza"}
	var updated domain.MenuItem
	svc := NewMenuService(&fakeMenuRepo{
		LookupFn: func(ctx context.Context, id string) (domain.MenuItem, error) { return stored, nil },
		UpdateFn: func(ctx context.Context, item domain.MenuItem) error {
			updated = item
			return nil
		},
	})

	newPrice := decimal.RequireFromString("35.50")
	got, err := svc.UpdateMenuItem(context.Background(), "pizza-a", domain.MenuItemUpdate{Price: &newPrice})
	require.NoError(t, err)

	assert.True(t, got.Price.Equal(newPrice))
	assert.Equal(t, "Pizza", got.Name) // untouched fields survive
	assert.Equal(t, "pizza", updated.Category)
}

func TestUpdateMenuItemNotFound(t *testing.T) {
	svc := NewMenuService(&fakeMenuRepo{LookupFn: notFoundLookup})
	_, err := svc.UpdateMenuItem(context.Background(), "ghost", domain.MenuItemUpdate{})
	assert.ErrorIs(t, err, domain.ErrMenuItemNotFound)
}

func TestDeleteMenuItemReturnsDeleted(t *testing.T) {
	stored := domain.MenuItem{ID: "pizza-a", Name: "Pizza", Price: decimal.NewFromInt(30)}
	deleted := false
	svc := NewMenuService(&fakeMenuRepo{
		LookupFn: func(ctx context.Context, id string) (domain.MenuItem, error) { return stored, nil },
		DeleteFn: func(ctx context.Context, id string) error {
			deleted = true
			return nil
		},
	})

	got, err := svc.DeleteMenuItem(context.Background(), "pizza-a")
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, stored, got)
}

func TestListMenuItemsClampsPagination(t *testing.T) {
	var gotOffset, gotLimit int
	svc := NewMenuService(&fakeMenuRepo{
		ListFn: func(ctx context.Context, category string, offset, limit int) ([]domain.MenuItem, error) {
			gotOffset, gotLimit = offset, limit
			return nil, nil
		},
	})

	_, err := svc.ListMenuItems(context.Background(), "", -5, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, gotOffset)
	assert.Equal(t, 100, gotLimit)
}
