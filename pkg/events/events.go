// Package events fans order and billing changes out to dashboards and brokers.
package events

import (
	"context"
	"errors"
	"time"
)

const (
	OrderCreated       = "order.created"
	OrderUpdated       = "order.updated"
	OrderStatusChanged = "order.status_changed"
	BillPaid           = "bill.paid"
	TableStatusChanged = "table.status_changed"
	ReservationChanged = "reservation.changed"
)

type Event struct {
	Type        string    `json:"type"`
	OrderID     uint      `json:"orderId,omitempty"`
	OrderNumber string    `json:"orderNumber,omitempty"`
	Status      string    `json:"status,omitempty"`
	TableID     *uint     `json:"tableId,omitempty"`
	BillID      uint      `json:"billId,omitempty"`
	At          time.Time `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Multi publishes to every publisher and joins their errors.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, ev Event) error {
	var errs []error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }

// Channels lists which dashboard channels see an event type.
func Channels(eventType string) []string {
	switch eventType {
	case OrderCreated, OrderUpdated, OrderStatusChanged:
		return []string{"kitchen", "reception", "sales"}
	case BillPaid:
		return []string{"sales", "reception"}
	case TableStatusChanged, ReservationChanged:
		return []string{"reception"}
	}
	return nil
}
