package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TaxPercentage = "percentage"
	TaxFree       = "free"
)

var hundred = decimal.NewFromInt(100)

type TaxSetting struct {
	gorm.Model
	Name     string          `gorm:"not null" json:"name"`
	Type     string          `gorm:"size:20;not null" json:"type"`
	Rate     decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"rate"`
	IsActive bool            `gorm:"index" json:"isActive"`
}

// Compute returns the tax on subtotal. A nil setting means no tax.
func (t *TaxSetting) Compute(subtotal decimal.Decimal) decimal.Decimal {
	if t == nil || t.Type != TaxPercentage {
		return decimal.Zero
	}
	return subtotal.Mul(t.Rate).Div(hundred).Round(2)
}

// EffectiveRate is the rate actually applied.
func (t *TaxSetting) EffectiveRate() decimal.Decimal {
	if t == nil || t.Type != TaxPercentage {
		return decimal.Zero
	}
	return t.Rate
}

func ValidTaxType(s string) bool {
	return s == TaxPercentage || s == TaxFree
}
