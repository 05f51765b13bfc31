package repository

import (
	"context"
	"time"

	"github.com/rajeshhitechvalley/Cfapp-sub001/entity"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DashboardRepository struct {
	DB *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) *DashboardRepository {
	return &DashboardRepository{DB: db}
}

type TopItem struct {
	MenuItemID uint            `json:"menuItemId"`
	Name       string          `json:"name"`
	Quantity   int64           `json:"quantity"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// TopItems ranks items of completed orders in [from, to) by quantity sold.
func (r *DashboardRepository) TopItems(ctx context.Context, from, to time.Time, limit int) ([]TopItem, error) {
	var rows []TopItem
	err := r.DB.WithContext(ctx).Table("order_items AS oi").
		Select("oi.menu_item_id, oi.name, SUM(oi.quantity) AS quantity, SUM(oi.total) AS revenue").
		Joins("JOIN orders o ON o.id = oi.order_id").
		Where("o.status = ? AND o.completed_at >= ? AND o.completed_at < ?", entity.OrderCompleted, from.UTC(), to.UTC()).
		Where("oi.deleted_at IS NULL AND o.deleted_at IS NULL").
		Group("oi.menu_item_id, oi.name").
		Order("quantity DESC, oi.name ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
