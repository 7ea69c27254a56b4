package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"

	"slicesite/internal/connections/rabbitmq"
	"slicesite/internal/domain"
)

const (
	Exchange   = "orders"
	RoutingKey = "orders.created"
)

type OrderLineItemMessage struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
}

type OrderCreatedMessage struct {
	OrderID    int64                  `json:"order_id"`
	UserID     int64                  `json:"user_id"`
	TotalPrice decimal.Decimal        `json:"total_price"`
	Items      []OrderLineItemMessage `json:"items"`
	CreatedAt  time.Time              `json:"created_at"`
}

// Publisher announces accepted orders on the broker. The order is already
// committed when this runs; consumers are informational, so callers treat
// publish failures as log-and-continue.
type Publisher struct {
	client *rabbitmq.Client
}

func NewPublisher(client *rabbitmq.Client) (*Publisher, error) {
	if err := client.DeclareExchange(Exchange); err != nil {
		return nil, fmt.Errorf("failed to declare exchange %s: %w", Exchange, err)
	}
	return &Publisher{client: client}, nil
}

func (p *Publisher) OrderCreated(ctx context.Context, order domain.Order) error {
	msg := OrderCreatedMessage{
		OrderID:    order.ID,
		UserID:     order.OwnerID,
		TotalPrice: order.TotalPrice,
		CreatedAt:  order.CreatedAt,
	}
	for _, it := range order.Items {
		msg.Items = append(msg.Items, OrderLineItemMessage{MenuItemID: it.MenuItemID, Quantity: it.Quantity})
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal order message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	headers := amqp.Table{"x-source": "slicesite"}
	if err := p.client.Publish(ctx, Exchange, RoutingKey, uuid.NewString(), body, headers, "application/json", true); err != nil {
		return fmt.Errorf("failed to publish order %d: %w", order.ID, err)
	}
	return nil
}
