package memory

import (
	"context"
	"sync"

	"restopos/internal/service"
)

// EventPublisher collects published events instead of writing to Kafka.
type EventPublisher struct {
	mu     sync.Mutex
	events []PublishedEvent
}

type PublishedEvent struct {
	Key   string
	Value interface{}
}

func NewEventPublisher() *EventPublisher {
	return &EventPublisher{}
}

// Verify interface compliance
var _ service.EventPublisher = (*EventPublisher)(nil)

func (p *EventPublisher) Publish(ctx context.Context, key string, value interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, PublishedEvent{Key: key, Value: value})
	return nil
}

func (p *EventPublisher) Events() []PublishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]PublishedEvent, len(p.events))
	copy(out, p.events)
	return out
}
