package entity

import (
	"gorm.io/gorm"
)

const (
	TableAvailable = "available"
	TableOccupied  = "occupied"
	TableReserved  = "reserved"
	TableCleaning  = "cleaning"
)

type DiningTable struct {
	gorm.Model
	Number   string `gorm:"size:20;not null;uniqueIndex:idx_dining_tables_number,where:deleted_at IS NULL" json:"number"`
	Capacity int    `gorm:"not null" json:"capacity"`
	Location string `json:"location"`
	Status   string `gorm:"size:20;not null;index" json:"status"`
}

func ValidTableStatus(s string) bool {
	switch s {
	case TableAvailable, TableOccupied, TableReserved, TableCleaning:
		return true
	}
	return false
}

func TableStatuses() []string {
	return []string{TableAvailable, TableOccupied, TableReserved, TableCleaning}
}
