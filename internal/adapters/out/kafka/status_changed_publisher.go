// Package kafka publishes order status changes to a Kafka topic so that
// notification and reporting services can react to them.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"laundry/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// StatusChangedEventType is carried in the event-type header and the payload.
const StatusChangedEventType = "order.status_changed"

var _ ports.EventPublisher = (*StatusChangedPublisher)(nil)

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// StatusChangedPublisher implements ports.EventPublisher. Messages are keyed
// by order id so the events of one order stay in partition order.
type StatusChangedPublisher struct {
	writer MessageWriter
}

// NewStatusChangedPublisher wraps writer.
func NewStatusChangedPublisher(writer MessageWriter) *StatusChangedPublisher {
	return &StatusChangedPublisher{writer: writer}
}

// NewWriter builds a synchronous writer for topic on a comma separated broker list.
func NewWriter(brokers, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(ParseBrokers(brokers)...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		WriteTimeout:           5 * time.Second,
	}
}

// ParseBrokers splits a comma separated broker list and drops empty entries.
func ParseBrokers(brokers string) []string {
	var result []string
	for _, b := range strings.Split(brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			result = append(result, b)
		}
	}
	return result
}

type statusChangedMessage struct {
	EventType            string    `json:"eventType"`
	OrderID              string    `json:"orderId"`
	BranchID             string    `json:"branchId"`
	From                 string    `json:"from"`
	To                   string    `json:"to"`
	ActorID              string    `json:"actorId"`
	At                   time.Time `json:"at"`
	NotificationTemplate string    `json:"notificationTemplate,omitempty"`
}

// PublishStatusChanged writes one message for event.
func (p *StatusChangedPublisher) PublishStatusChanged(ctx context.Context, event ports.StatusChangedEvent) error {
	payload, err := json.Marshal(statusChangedMessage{
		EventType:            StatusChangedEventType,
		OrderID:              event.OrderID.String(),
		BranchID:             event.BranchID.String(),
		From:                 event.From.String(),
		To:                   event.To.String(),
		ActorID:              event.ActorID,
		At:                   event.At.UTC(),
		NotificationTemplate: event.NotificationTemplate,
	})
	if err != nil {
		return fmt.Errorf("marshal status changed event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.OrderID.String()),
		Value: payload,
		Time:  event.At,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(StatusChangedEventType)},
		},
	}
	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish status change of order %s: %w", event.OrderID, err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *StatusChangedPublisher) Close() error {
	return p.writer.Close()
}
