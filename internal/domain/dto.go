package domain

import "github.com/shopspring/decimal"

// --- orders ---

type CartItemInput struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
}

type CreateOrderRequest struct {
	Items []CartItemInput `json:"items"`
}

func (r CreateOrderRequest) Cart() []CartItem {
	cart := make([]CartItem, 0, len(r.Items))
	for _, in := range r.Items {
		cart = append(cart, CartItem{MenuItemID: in.MenuItemID, Quantity: in.Quantity})
	}
	return cart
}

type OrderLineItemResponse struct {
	ID         int64  `json:"id"`
	MenuItemID string `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
}

type OrderResponse struct {
	ID         int64                   `json:"id"`
	UserID     int64                   `json:"user_id"`
	TotalPrice decimal.Decimal         `json:"total_price"`
	Items      []OrderLineItemResponse `json:"items"`
}

func NewOrderResponse(o Order) OrderResponse {
	items := make([]OrderLineItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderLineItemResponse{ID: it.ID, MenuItemID: it.MenuItemID, Quantity: it.Quantity})
	}
	return OrderResponse{ID: o.ID, UserID: o.OwnerID, TotalPrice: o.TotalPrice, Items: items}
}

func NewOrderResponses(orders []Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, NewOrderResponse(o))
	}
	return out
}

// --- menu ---

type MenuItemCreate struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category,omitempty"`
	ImageURL    string          `json:"image_url,omitempty"`
}

// MenuItemUpdate is a partial update: nil fields keep their current value.
type MenuItemUpdate struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Category    *string          `json:"category,omitempty"`
	ImageURL    *string          `json:"image_url,omitempty"`
}

type MenuItemResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category,omitempty"`
	ImageURL    string          `json:"image_url,omitempty"`
}

func NewMenuItemResponse(m MenuItem) MenuItemResponse {
	return MenuItemResponse{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Category:    m.Category,
		ImageURL:    m.ImageURL,
	}
}

// --- auth ---

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type UserResponse struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

func NewUserResponse(u User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, IsActive: u.IsActive}
}
