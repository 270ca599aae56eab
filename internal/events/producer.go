package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
)

const (
	TopicOrders   = "order_events"
	TopicCart     = "cart_events"
	TopicSessions = "session_events"
)

// Producer publishes JSON domain events. With no brokers configured it
// degrades to a no-op so the service runs without Kafka.
type Producer struct {
	w *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	if len(brokers) == 0 {
		return &Producer{}
	}
	return &Producer{w: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}}
}

func (p *Producer) Enabled() bool {
	return p != nil && p.w != nil
}

func (p *Producer) Publish(ctx context.Context, topic, key string, event any) error {
	if !p.Enabled() {
		return nil
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("events: marshal: %w", err)
	}
	if err := p.w.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
	}); err != nil {
		return fmt.Errorf("events: publish %s: %w", topic, err)
	}
	return nil
}

func (p *Producer) Close() error {
	if !p.Enabled() {
		return nil
	}
	return p.w.Close()
}
