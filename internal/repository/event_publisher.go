package repository

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"restopos/internal/service"
)

// KafkaPublisher pushes notification payloads onto the real-time topic.
// Keys follow the category.id scheme, e.g. order.created.<id> or
// stock.out.<id>, so consumers can route on prefix.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(writer *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

// Verify interface compliance
var _ service.EventPublisher = (*KafkaPublisher)(nil)

func (p *KafkaPublisher) Publish(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: payload,
	})
}
