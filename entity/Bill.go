package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	BillUnpaid = "unpaid"
	BillPaid   = "paid"
	BillVoid   = "void"

	PayCash   = "cash"
	PayCard   = "card"
	PayMobile = "mobile"
)

type Bill struct {
	gorm.Model
	BillNumber string `gorm:"size:30;uniqueIndex;not null" json:"billNumber"`
	Status     string `gorm:"size:10;not null;index" json:"status"`

	Subtotal             decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"subtotal"`
	TaxAmount            decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"taxAmount"`
	DiscountAmount       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"discountAmount"`
	PointsRedeemed       int64           `gorm:"not null;default:0" json:"pointsRedeemed"`
	LoyaltyDiscount      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"loyaltyDiscount"`
	ServiceChargePercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"serviceChargePercent"`
	ServiceCharge        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"serviceCharge"`
	Total                decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total"`

	PaymentMethod  string          `gorm:"size:10" json:"paymentMethod,omitempty"`
	AmountTendered decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"amountTendered"`
	ChangeDue      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"changeDue"`
	PaidAt         *time.Time      `json:"paidAt,omitempty"`
	PointsEarned   int64           `gorm:"not null;default:0" json:"pointsEarned"`

	OrderID uint   `gorm:"index;not null" json:"orderId"`
	Order   *Order `json:"order,omitempty"`

	CustomerID *uint `gorm:"index" json:"customerId,omitempty"`
	CashierID  uint  `json:"cashierId"`
}

func ValidPaymentMethod(s string) bool {
	return s == PayCash || s == PayCard || s == PayMobile
}
