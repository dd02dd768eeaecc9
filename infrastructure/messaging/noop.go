// Package messaging provides event bus implementations.
package messaging

import (
	"context"

	"appprove-backend/application/ports"
	"appprove-backend/domain/events"
)

// NoopEventBus discards events. Used in local development and when event
// publishing is disabled.
type NoopEventBus struct{}

// NewNoopEventBus creates an event bus that drops everything.
func NewNoopEventBus() ports.EventBus {
	return NoopEventBus{}
}

func (NoopEventBus) Publish(ctx context.Context, event events.DomainEvent) error { return nil }

func (NoopEventBus) PublishBatch(ctx context.Context, batch []events.DomainEvent) error { return nil }
