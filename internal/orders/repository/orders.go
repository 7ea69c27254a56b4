package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"slicesite/internal/domain"
)

type OrderRepositoryInterface interface {
	Insert(ctx context.Context, ownerID int64, total decimal.Decimal, lines []domain.OrderLineItem) (domain.Order, error)
	GetByID(ctx context.Context, id int64) (domain.Order, error)
	ListByOwner(ctx context.Context, ownerID int64, offset, limit int) ([]domain.Order, error)
	ListAll(ctx context.Context, offset, limit int) ([]domain.Order, error)
}

type OrderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{db: db}
}

// Insert writes the order header and all line items in one transaction:
// concurrent readers see either the whole order or nothing.
func (or *OrderRepository) Insert(ctx context.Context, ownerID int64, total decimal.Decimal, lines []domain.OrderLineItem) (domain.Order, error) {
	tx, err := or.db.Begin(ctx)
	if err != nil {
		return domain.Order{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	order := domain.Order{OwnerID: ownerID, TotalPrice: total}
	err = tx.QueryRow(ctx, `
		INSERT INTO orders (user_id, total_price)
		VALUES ($1, $2)
		RETURNING id, created_at`,
		ownerID, total,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return domain.Order{}, fmt.Errorf("failed to insert order: %w", err)
	}

	for _, line := range lines {
		item := domain.OrderLineItem{
			OrderID:    order.ID,
			MenuItemID: line.MenuItemID,
			Quantity:   line.Quantity,
		}
		err = tx.QueryRow(ctx, `
			INSERT INTO order_items (order_id, menu_item_id, quantity)
			VALUES ($1, $2, $3)
			RETURNING id`,
			order.ID, line.MenuItemID, line.Quantity,
		).Scan(&item.ID)
		if err != nil {
			return domain.Order{}, fmt.Errorf("failed to insert order item %s: %w", line.MenuItemID, err)
		}
		order.Items = append(order.Items, item)
	}

	if err = tx.Commit(ctx); err != nil {
		return domain.Order{}, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return order, nil
}

// GetByID returns the full aggregate; a half-loaded order is impossible.
func (or *OrderRepository) GetByID(ctx context.Context, id int64) (domain.Order, error) {
	var o domain.Order
	err := or.db.QueryRow(ctx, `
		SELECT id, user_id, total_price, created_at
		FROM orders
		WHERE id = $1`, id,
	).Scan(&o.ID, &o.OwnerID, &o.TotalPrice, &o.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("failed to get order %d: %w", id, err)
	}

	items, err := or.loadItems(ctx, []int64{o.ID})
	if err != nil {
		return domain.Order{}, err
	}
	o.Items = items[o.ID]
	return o, nil
}

func (or *OrderRepository) ListByOwner(ctx context.Context, ownerID int64, offset, limit int) ([]domain.Order, error) {
	return or.list(ctx, `
		SELECT id, user_id, total_price, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY id DESC
		OFFSET $2 LIMIT $3`, ownerID, offset, limit)
}

// ListAll is unrestricted; authorization is the caller's responsibility.
func (or *OrderRepository) ListAll(ctx context.Context, offset, limit int) ([]domain.Order, error) {
	return or.list(ctx, `
		SELECT id, user_id, total_price, created_at
		FROM orders
		ORDER BY id DESC
		OFFSET $1 LIMIT $2`, offset, limit)
}

func (or *OrderRepository) list(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := or.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	var ids []int64
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.OwnerID, &o.TotalPrice, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	items, err := or.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}
	return orders, nil
}

// loadItems fetches line items for a batch of orders in one query.
func (or *OrderRepository) loadItems(ctx context.Context, orderIDs []int64) (map[int64][]domain.OrderLineItem, error) {
	rows, err := or.db.Query(ctx, `
		SELECT id, order_id, menu_item_id, quantity
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id`, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load order items: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]domain.OrderLineItem, len(orderIDs))
	for rows.Next() {
		var it domain.OrderLineItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.MenuItemID, &it.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		out[it.OrderID] = append(out[it.OrderID], it)
	}
	return out, rows.Err()
}
