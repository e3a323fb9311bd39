// Package events holds the payloads published by the shop.
package events

import (
	"encoding/json"
	"time"

	"github.com/abgdnv/musicshop/pkg/messaging"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/propagation"
)

// SaleItem is one line of a recorded sale.
type SaleItem struct {
	ProductID string          `json:"product_id"`
	Kind      string          `json:"kind"`
	Name      string          `json:"name"`
	Artist    string          `json:"artist"`
	Price     decimal.Decimal `json:"price"`
}

// SaleRecordedEvent is published after a checkout has been stored.
// Carrier holds the trace context of the checkout that produced it.
type SaleRecordedEvent struct {
	Carrier      propagation.MapCarrier `json:"carrier,omitempty"`
	SaleID       uuid.UUID              `json:"sale_id"`
	CustomerID   uuid.UUID              `json:"customer_id"`
	CustomerName string                 `json:"customer_name"`
	Items        []SaleItem             `json:"items"`
	Total        decimal.Decimal        `json:"total"`
	CreatedAt    time.Time              `json:"created_at"`
}

func (e SaleRecordedEvent) Subject() string {
	return messaging.SalesRecordedSubject
}

func (e SaleRecordedEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}
