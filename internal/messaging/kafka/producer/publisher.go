package producer

import (
	"context"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/kaleab-kali/FPPMS-sub005/internal/messaging/kafka"
)

// publish keys messages by aggregate id so every event for one employee
// lands on the same partition, preserving per-employee ordering.
func publish(ctx context.Context, writer *kafkago.Writer, event kafka.OutboxEvent) error {
	msg := kafkago.Message{
		Topic: event.Topic,
		Key:   []byte(event.AggregateID),
		Value: event.Payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "aggregate_type", Value: []byte(event.AggregateType)},
			{Key: "request_id", Value: []byte(event.RequestID)},
		},
	}

	return writer.WriteMessages(ctx, msg)
}
