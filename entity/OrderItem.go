package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderItem snapshots name and price so later menu edits don't rewrite history.
type OrderItem struct {
	gorm.Model
	OrderID   uint            `gorm:"index;not null" json:"orderId"`
	Name      string          `gorm:"not null" json:"name"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unitPrice"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Total     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	Notes     string          `json:"notes"`

	MenuItemID uint     `gorm:"index" json:"menuItemId"`
	MenuItem   MenuItem `json:"-"`
}

func (i *OrderItem) ComputeTotal() {
	i.Total = i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity))).Round(2)
}
