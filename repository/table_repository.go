package repository

import (
	"context"

	"github.com/rajeshhitechvalley/Cfapp-sub001/entity"

	"gorm.io/gorm"
)

type TableRepository struct {
	DB *gorm.DB
}

func NewTableRepository(db *gorm.DB) *TableRepository {
	return &TableRepository{DB: db}
}

func (r *TableRepository) WithTx(tx *gorm.DB) *TableRepository {
	return &TableRepository{DB: tx}
}

func (r *TableRepository) List(ctx context.Context, status string) ([]entity.DiningTable, error) {
	var tables []entity.DiningTable
	q := r.DB.WithContext(ctx).Order("number ASC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&tables).Error
	return tables, err
}

func (r *TableRepository) FindByID(ctx context.Context, id uint) (*entity.DiningTable, error) {
	var t entity.DiningTable
	if err := r.DB.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TableRepository) Create(ctx context.Context, t *entity.DiningTable) error {
	return r.DB.WithContext(ctx).Create(t).Error
}

func (r *TableRepository) Update(ctx context.Context, id uint, updates map[string]any) error {
	return r.DB.WithContext(ctx).Model(&entity.DiningTable{}).Where("id = ?", id).Updates(updates).Error
}

func (r *TableRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&entity.DiningTable{}, id).Error
}

func (r *TableRepository) SetStatus(ctx context.Context, id uint, status string) error {
	return r.DB.WithContext(ctx).Model(&entity.DiningTable{}).Where("id = ?", id).Update("status", status).Error
}

// CountActiveOrders counts orders still holding the table, ignoring excludeOrderID.
func (r *TableRepository) CountActiveOrders(ctx context.Context, tableID, excludeOrderID uint) (int64, error) {
	var n int64
	q := r.DB.WithContext(ctx).Model(&entity.Order{}).
		Where("table_id = ? AND status IN ?", tableID,
			[]string{entity.OrderPending, entity.OrderPreparing, entity.OrderReady, entity.OrderServed})
	if excludeOrderID != 0 {
		q = q.Where("id <> ?", excludeOrderID)
	}
	err := q.Count(&n).Error
	return n, err
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

func (r *TableRepository) CountByStatus(ctx context.Context) ([]StatusCount, error) {
	var rows []StatusCount
	err := r.DB.WithContext(ctx).Model(&entity.DiningTable{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	return rows, err
}
