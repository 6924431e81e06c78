package services

import (
	"context"
	"time"

	"inventory/internal/models"
	"inventory/pkg/rabbitmq"
)

const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// ProductEvent is the body of a message sent after a successful mutation.
// Product is empty for deletions.
type ProductEvent struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	ProductID  int64           `json:"productId,omitempty"`
	OccurredAt time.Time       `json:"occurredAt"`
	Product    *models.Product `json:"product,omitempty"`
}

// MessagePublisher sends events to a broker. *rabbitmq.Client satisfies it.
type MessagePublisher interface {
	Publish(ctx context.Context, msg rabbitmq.Message) error
}
