package entity

import (
	"gorm.io/gorm"
)

type Category struct {
	gorm.Model
	Name        string `gorm:"size:100;not null;uniqueIndex:idx_categories_name,where:deleted_at IS NULL" json:"name"`
	Description string `json:"description"`
	SortOrder   int    `gorm:"not null;default:0" json:"sortOrder"`
	IsActive    bool   `json:"isActive"`

	// preloaded only for the menu listing
	MenuItems []MenuItem `json:"menuItems,omitempty"`
}
