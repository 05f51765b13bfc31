package services

import (
	"github.com/shopspring/decimal"
)

// Loyalty holds the earn and burn rates for customer points.
type Loyalty struct {
	SpendPerPoint decimal.Decimal
	PointValue    decimal.Decimal
}

func DefaultLoyalty() Loyalty {
	return Loyalty{
		SpendPerPoint: decimal.NewFromInt(10),
		PointValue:    decimal.RequireFromString("0.10"),
	}
}

// PointsFor is floor(amount / spend per point).
func (l Loyalty) PointsFor(amount decimal.Decimal) int64 {
	if !l.SpendPerPoint.IsPositive() || !amount.IsPositive() {
		return 0
	}
	return amount.Div(l.SpendPerPoint).Floor().IntPart()
}

// Value is what the given points are worth at the till.
func (l Loyalty) Value(points int64) decimal.Decimal {
	return l.PointValue.Mul(decimal.NewFromInt(points)).Round(2)
}
