// Package messaging defines the events the shop emits and the publishers that carry them.
package messaging

import (
	"context"
)

// SalesRecordedSubject is the subject a SaleRecordedEvent is published on.
const SalesRecordedSubject = "shop.sales.recorded"

type Event interface {
	Subject() string
	Payload() ([]byte, error)
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error {
	return nil
}
