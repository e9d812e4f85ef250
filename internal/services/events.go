package services

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/sbilibin2017/gw-finance-tracker/internal/logger"
	"github.com/sbilibin2017/gw-finance-tracker/internal/models"
	"github.com/segmentio/kafka-go"
)

// Transaction event names
const (
	EventTransactionCreated = "transaction.created"
	EventTransactionUpdated = "transaction.updated"
	EventTransactionDeleted = "transaction.deleted"
)

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// EventPublisher publishes transaction events to Kafka. Failures are logged
// and never returned.
type EventPublisher struct {
	writer KafkaWriter // nil disables publishing
	now    func() time.Time
}

// NewEventPublisher creates a publisher. A nil writer makes Publish a no-op.
func NewEventPublisher(writer KafkaWriter) *EventPublisher {
	return &EventPublisher{writer: writer, now: time.Now}
}

// Publish sends the event keyed by transaction id.
func (p *EventPublisher) Publish(ctx context.Context, event models.TransactionEvent) {
	log := logger.FromContext(ctx)

	if p.writer == nil {
		log.Debugw("Kafka writer not configured, skipping publishing", "event", event.Event, "transaction_id", event.TransactionID)
		return
	}

	if event.Timestamp == 0 {
		event.Timestamp = p.now().Unix()
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Errorw("Failed to marshal transaction event", "transaction_id", event.TransactionID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.TransactionID, 10)),
		Value: data,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		log.Errorw("Failed to publish transaction event", "event", event.Event, "transaction_id", event.TransactionID, "error", err)
		return
	}

	log.Infow("Transaction event published", "event", event.Event, "transaction_id", event.TransactionID)
}
