package entity

import (
	"gorm.io/gorm"
)

const (
	LoyaltyEarn   = "earn"
	LoyaltyRedeem = "redeem"
	LoyaltyAdjust = "adjust"
)

// LoyaltyTransaction is one ledger line. Points are signed.
type LoyaltyTransaction struct {
	gorm.Model
	CustomerID   uint   `gorm:"index;not null" json:"customerId"`
	BillID       *uint  `json:"billId,omitempty"`
	Type         string `gorm:"size:10;not null" json:"type"`
	Points       int64  `gorm:"not null" json:"points"`
	BalanceAfter int64  `gorm:"not null" json:"balanceAfter"`
	Note         string `json:"note"`
}
