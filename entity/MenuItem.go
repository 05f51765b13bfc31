package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MenuItem struct {
	gorm.Model
	Name         string          `gorm:"size:150;not null;index" json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	IsAvailable  bool            `gorm:"index" json:"isAvailable"`
	IsVegetarian bool            `json:"isVegetarian"`
	PrepMinutes  int             `json:"prepMinutes"`

	CategoryID uint     `gorm:"index" json:"categoryId"`
	Category   Category `json:"-"`
}
