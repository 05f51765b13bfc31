package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OrderPending   = "pending"
	OrderPreparing = "preparing"
	OrderReady     = "ready"
	OrderServed    = "served"
	OrderCompleted = "completed"
	OrderCancelled = "cancelled"

	OrderDineIn   = "dine_in"
	OrderTakeaway = "takeaway"
)

var orderTransitions = map[string][]string{
	OrderPending:   {OrderPreparing, OrderCancelled},
	OrderPreparing: {OrderReady, OrderCancelled},
	OrderReady:     {OrderServed},
	OrderServed:    {OrderCompleted},
}

type Order struct {
	gorm.Model
	OrderNumber string `gorm:"size:30;uniqueIndex;not null" json:"orderNumber"`
	OrderType   string `gorm:"size:20;not null" json:"orderType"`
	Status      string `gorm:"size:20;not null;index" json:"status"`
	Notes       string `json:"notes"`

	Subtotal  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"subtotal"`
	TaxName   string          `json:"taxName"`
	TaxRate   decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"taxRate"`
	TaxAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"taxAmount"`
	Total     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total"`

	PreparingAt  *time.Time `json:"preparingAt,omitempty"`
	ReadyAt      *time.Time `json:"readyAt,omitempty"`
	ServedAt     *time.Time `json:"servedAt,omitempty"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
	CancelledAt  *time.Time `json:"cancelledAt,omitempty"`
	CancelReason string     `json:"cancelReason,omitempty"`

	TableID *uint        `gorm:"index" json:"tableId,omitempty"`
	Table   *DiningTable `json:"table,omitempty"`

	CustomerID *uint     `gorm:"index" json:"customerId,omitempty"`
	Customer   *Customer `json:"customer,omitempty"`

	WaiterID uint `gorm:"index" json:"waiterId"`

	Items []OrderItem `json:"items,omitempty"`
}

func ValidOrderType(s string) bool {
	return s == OrderDineIn || s == OrderTakeaway
}

func ValidOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderPreparing, OrderReady, OrderServed, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

func OrderStatuses() []string {
	return []string{OrderPending, OrderPreparing, OrderReady, OrderServed, OrderCompleted, OrderCancelled}
}

// IsActiveOrderStatus: the order still holds its table.
func IsActiveOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderPreparing, OrderReady, OrderServed:
		return true
	}
	return false
}

func CanTransitionOrder(from, to string) bool {
	for _, s := range orderTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Recalculate recomputes subtotal, tax and total from the loaded items.
func (o *Order) Recalculate(tax *TaxSetting) {
	subtotal := decimal.Zero
	for i := range o.Items {
		o.Items[i].ComputeTotal()
		subtotal = subtotal.Add(o.Items[i].Total)
	}
	o.Subtotal = subtotal
	o.TaxAmount = tax.Compute(subtotal)
	o.TaxRate = tax.EffectiveRate()
	o.TaxName = ""
	if tax != nil {
		o.TaxName = tax.Name
	}
	o.Total = o.Subtotal.Add(o.TaxAmount)
}

// StatusTimestampColumn names the column stamped when entering status.
func StatusTimestampColumn(status string) string {
	switch status {
	case OrderPreparing:
		return "preparing_at"
	case OrderReady:
		return "ready_at"
	case OrderServed:
		return "served_at"
	case OrderCompleted:
		return "completed_at"
	case OrderCancelled:
		return "cancelled_at"
	}
	return ""
}
