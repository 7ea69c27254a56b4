package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"slicesite/internal/common/logger"
	"slicesite/internal/domain"
	"slicesite/internal/orders/repository"
)

// PricingResolver prices a cart against the live catalog.
type PricingResolver interface {
	Resolve(ctx context.Context, cart []domain.CartItem) (decimal.Decimal, []domain.OrderLineItem, error)
}

// EventPublisher announces committed orders. May be nil when no broker is
// configured.
type EventPublisher interface {
	OrderCreated(ctx context.Context, order domain.Order) error
}

type OrderServiceInterface interface {
	CreateOrder(ctx context.Context, ownerID int64, cart []domain.CartItem) (domain.Order, error)
	GetOrder(ctx context.Context, callerID, orderID int64) (domain.Order, error)
	ListMyOrders(ctx context.Context, callerID int64, offset, limit int) ([]domain.Order, error)
	ListAllOrders(ctx context.Context, offset, limit int) ([]domain.Order, error)
}

type OrderService struct {
	resolver PricingResolver
	repo     repository.OrderRepositoryInterface
	events   EventPublisher
	log      *logger.Logger
}

func NewOrderService(resolver PricingResolver, repo repository.OrderRepositoryInterface, events EventPublisher, log *logger.Logger) *OrderService {
	return &OrderService{resolver: resolver, repo: repo, events: events, log: log}
}

// CreateOrder validates the cart, prices it, and persists the order in one
// atomic write. Resolution runs entirely before any persistence call, so a
// missing menu item means nothing was written and nothing needs rolling
// back.
func (or *OrderService) CreateOrder(ctx context.Context, ownerID int64, cart []domain.CartItem) (domain.Order, error) {
	if len(cart) == 0 {
		return domain.Order{}, domain.ErrEmptyCart
	}
	for _, entry := range cart {
		if entry.Quantity < 1 {
			return domain.Order{}, domain.ErrInvalidQuantity
		}
	}

	total, lines, err := or.resolver.Resolve(ctx, cart)
	if err != nil {
		return domain.Order{}, err
	}

	order, err := or.repo.Insert(ctx, ownerID, total, lines)
	if err != nil {
		return domain.Order{}, fmt.Errorf("failed to save order: %w", err)
	}

	if or.events != nil {
		if err := or.events.OrderCreated(ctx, order); err != nil {
			// the order is committed; the event is best-effort
			or.log.Error("order_event_publish", err, map[string]any{"order_id": order.ID})
		}
	}
	return order, nil
}

// GetOrder loads an order and enforces ownership: callers other than the
// owner get ErrForbidden, without learning who the owner is.
func (or *OrderService) GetOrder(ctx context.Context, callerID, orderID int64) (domain.Order, error) {
	order, err := or.repo.GetByID(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if order.OwnerID != callerID {
		return domain.Order{}, domain.ErrForbidden
	}
	return order, nil
}

func (or *OrderService) ListMyOrders(ctx context.Context, callerID int64, offset, limit int) ([]domain.Order, error) {
	offset, limit = clampPage(offset, limit)
	return or.repo.ListByOwner(ctx, callerID, offset, limit)
}

// ListAllOrders has no access control of its own; the HTTP layer guards it.
func (or *OrderService) ListAllOrders(ctx context.Context, offset, limit int) ([]domain.Order, error) {
	offset, limit = clampPage(offset, limit)
	return or.repo.ListAll(ctx, offset, limit)
}

func clampPage(offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = 100
	}
	return offset, limit
}
