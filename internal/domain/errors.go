package domain

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart       = errors.New("cart must contain at least one item")
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")

	ErrOrderNotFound    = errors.New("order not found")
	ErrMenuItemNotFound = errors.New("menu item not found")
	ErrMenuItemExists   = errors.New("menu item already exists")

	// ErrForbidden is returned when a caller asks for an order it does not
	// own. 403 rather than 404: the response leaks that the id exists, but
	// nothing about who owns it.
	ErrForbidden = errors.New("not authorized to access this order")

	ErrEmailTaken         = errors.New("the user with this email already exists in the system")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrInactiveUser       = errors.New("inactive user")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidToken       = errors.New("could not validate credentials")
)

// ItemNotFoundError names the first cart entry that references a menu item
// missing from the catalog. The whole order is aborted; nothing is written.
type ItemNotFoundError struct {
	ID string
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("Menu item with id %s not found.", e.ID)
}
