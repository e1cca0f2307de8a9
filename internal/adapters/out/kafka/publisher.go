// Package kafka publishes order change events to a Kafka topic so other
// portal services (fulfilment, analytics) can follow the negotiation without
// polling the database.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Shopify/sarama"

	"portal/internal/core/domain/model/order"
	"portal/internal/core/ports"
	"portal/internal/pkg/errs"
)

var _ ports.OrderEventPublisher = &OrderChangedPublisher{}

// orderChangedEvent is the wire format of an order change event. Dates use
// the "YYYY-MM-DD@slot" codec shared with the HTTP API.
type orderChangedEvent struct {
	OrderID       string  `json:"orderId"`
	OrderNumber   string  `json:"orderNumber"`
	CustomerID    string  `json:"customerId"`
	Status        string  `json:"status"`
	DesiredDate   string  `json:"desiredDate"`
	SuggestedDate *string `json:"suggestedDate,omitempty"`
	SuggestedBy   *string `json:"suggestedBy,omitempty"`
	FinalDate     *string `json:"finalDate,omitempty"`
	IsLocked      bool    `json:"isLocked"`
	IsDeleted     bool    `json:"isDeleted"`
	Version       int64   `json:"version"`
	OccurredAt    string  `json:"occurredAt"`
}

// OrderChangedPublisher implements OrderEventPublisher on a Sarama
// synchronous producer. Events are keyed by order ID so all changes of one
// order land on the same partition, in order.
type OrderChangedPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewOrderChangedPublisher connects a synchronous producer to the given
// brokers. The producer waits for acknowledgement from all replicas; retries
// are bounded so a dead broker stalls a request briefly, not forever.
func NewOrderChangedPublisher(brokers []string, topic string) (*OrderChangedPublisher, error) {
	if len(brokers) == 0 {
		return nil, errs.NewValueIsRequiredError("brokers")
	}
	if topic == "" {
		return nil, errs.NewValueIsRequiredError("topic")
	}

	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 3
	config.Producer.Retry.Backoff = 500 * time.Millisecond
	config.Producer.Timeout = 5 * time.Second
	config.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	return &OrderChangedPublisher{producer: producer, topic: topic}, nil
}

// PublishOrderChanged emits the current state of the order to the
// order-changed topic.
func (p *OrderChangedPublisher) PublishOrderChanged(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	event := orderChangedEvent{
		OrderID:     aggregate.ID().String(),
		OrderNumber: aggregate.OrderNumber(),
		CustomerID:  aggregate.CustomerID().String(),
		Status:      aggregate.Status().String(),
		DesiredDate: aggregate.DesiredDate().String(),
		IsLocked:    aggregate.IsLocked(),
		IsDeleted:   aggregate.IsDeleted(),
		Version:     aggregate.Version(),
		OccurredAt:  time.Now().UTC().Format(time.RFC3339),
	}

	if suggested := aggregate.SuggestedDate(); suggested != nil {
		s := suggested.String()
		event.SuggestedDate = &s
		author := aggregate.SuggestedBy().String()
		event.SuggestedBy = &author
	}
	if final := aggregate.FinalDate(); final != nil {
		f := final.String()
		event.FinalDate = &f
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order changed event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.OrderID),
		Value: sarama.ByteEncoder(payload),
	}

	if _, _, err = p.producer.SendMessage(msg); err != nil {
		return fmt.Errorf("publish order changed event: %w", err)
	}

	return nil
}

// Close shuts down the underlying producer.
func (p *OrderChangedPublisher) Close() error {
	return p.producer.Close()
}

// NoOpOrderChangedPublisher drops every event. Used when no broker is
// configured, typically in local development.
type NoOpOrderChangedPublisher struct{}

// PublishOrderChanged discards the event.
func (NoOpOrderChangedPublisher) PublishOrderChanged(_ context.Context, _ *order.Order) error {
	return nil
}
