package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID             int64
	Email          string
	HashedPassword string
	IsActive       bool
	CreatedAt      time.Time
}

// MenuItem ids are assigned by the catalog administrator, not the database.
type MenuItem struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	ImageURL    string
}

// CartItem is one requested (menu item, quantity) pair. Carts are never
// persisted; they exist only for the duration of one CreateOrder call.
type CartItem struct {
	MenuItemID string
	Quantity   int
}

// OrderLineItem carries a copy of the menu item id taken at order time.
// It is not a live reference: deleting the menu item later does not touch
// existing line items.
type OrderLineItem struct {
	ID         int64
	OrderID    int64
	MenuItemID string
	Quantity   int
}

type Order struct {
	ID         int64
	OwnerID    int64
	TotalPrice decimal.Decimal
	Items      []OrderLineItem
	CreatedAt  time.Time
}
