package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TierStandard = "Standard"
	TierBronze   = "Bronze"
	TierSilver   = "Silver"
	TierGold     = "Gold"

	BronzePoints = 100
	SilverPoints = 500
	GoldPoints   = 1000
)

type Customer struct {
	gorm.Model
	Name           string          `gorm:"not null" json:"name"`
	Phone          string          `gorm:"size:30;uniqueIndex;not null" json:"phone"`
	Email          string          `json:"email"`
	PointsBalance  int64           `gorm:"not null;default:0" json:"pointsBalance"`
	LifetimePoints int64           `gorm:"not null;default:0" json:"lifetimePoints"`
	TotalSpent     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"totalSpent"`
	Visits         int             `gorm:"not null;default:0" json:"visits"`

	Tier string `gorm:"-" json:"tier"`
}

func (c *Customer) AfterFind(tx *gorm.DB) error {
	c.Tier = LoyaltyTier(c.PointsBalance)
	return nil
}

// LoyaltyTier classifies a points balance.
func LoyaltyTier(points int64) string {
	switch {
	case points >= GoldPoints:
		return TierGold
	case points >= SilverPoints:
		return TierSilver
	case points >= BronzePoints:
		return TierBronze
	default:
		return TierStandard
	}
}
