package repository

import (
	"context"
	"time"

	"github.com/rajeshhitechvalley/Cfapp-sub001/entity"

	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

func (r *OrderRepository) WithTx(tx *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: tx}
}

// ---------------- Orders ----------------

func (r *OrderRepository) NextNumber(ctx context.Context, day time.Time) (string, error) {
	return NextNumber(ctx, r.DB, &entity.Order{}, "order_number", DailyPrefix("ORD", day))
}

// Create inserts the order together with its items.
func (r *OrderRepository) Create(ctx context.Context, o *entity.Order) error {
	return r.DB.WithContext(ctx).Create(o).Error
}

func (r *OrderRepository) FindByID(ctx context.Context, id uint) (*entity.Order, error) {
	var o entity.Order
	err := r.DB.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Table").
		Preload("Customer").
		First(&o, id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) FindByNumber(ctx context.Context, number string) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.WithContext(ctx).Where("order_number = ?", number).First(&o).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, o.ID)
}

type OrderFilter struct {
	Status     string
	OrderType  string
	TableID    uint
	CustomerID uint
	From, To   time.Time
	Page       int
	Limit      int
}

// List returns a page of orders (newest first) and the total match count.
func (r *OrderRepository) List(ctx context.Context, f OrderFilter) ([]entity.Order, int64, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 20
	}

	q := r.DB.WithContext(ctx).Model(&entity.Order{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.OrderType != "" {
		q = q.Where("order_type = ?", f.OrderType)
	}
	if f.TableID != 0 {
		q = q.Where("table_id = ?", f.TableID)
	}
	if f.CustomerID != 0 {
		q = q.Where("customer_id = ?", f.CustomerID)
	}
	if !f.From.IsZero() {
		q = q.Where("created_at >= ?", f.From.UTC())
	}
	if !f.To.IsZero() {
		q = q.Where("created_at < ?", f.To.UTC())
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []entity.Order
	err := q.Preload("Items").Preload("Table").
		Order("id DESC").
		Limit(f.Limit).Offset((f.Page - 1) * f.Limit).
		Find(&out).Error
	return out, total, err
}

// ListActive returns orders the kitchen still has to deal with, oldest first.
func (r *OrderRepository) ListActive(ctx context.Context, statuses []string) ([]entity.Order, error) {
	var out []entity.Order
	err := r.DB.WithContext(ctx).
		Preload("Items").Preload("Table").
		Where("status IN ?", statuses).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, err
}

// UpdateStatusGuard moves the order only if it is still in `from`.
// extra is merged into the same UPDATE (timestamps, cancel reason).
func (r *OrderRepository) UpdateStatusGuard(ctx context.Context, id uint, from, to string, extra map[string]any) (int64, error) {
	updates := map[string]any{"status": to}
	for k, v := range extra {
		updates[k] = v
	}
	res := r.DB.WithContext(ctx).Model(&entity.Order{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	return res.RowsAffected, res.Error
}

// SaveTotals persists the money fields after a recalculation.
func (r *OrderRepository) SaveTotals(ctx context.Context, o *entity.Order) error {
	return r.DB.WithContext(ctx).Model(&entity.Order{}).Where("id = ?", o.ID).Updates(map[string]any{
		"subtotal":   o.Subtotal,
		"tax_name":   o.TaxName,
		"tax_rate":   o.TaxRate,
		"tax_amount": o.TaxAmount,
		"total":      o.Total,
	}).Error
}

func (r *OrderRepository) Update(ctx context.Context, id uint, updates map[string]any) error {
	return r.DB.WithContext(ctx).Model(&entity.Order{}).Where("id = ?", id).Updates(updates).Error
}

// ---------------- Order Items ----------------

func (r *OrderRepository) CreateItem(ctx context.Context, it *entity.OrderItem) error {
	return r.DB.WithContext(ctx).Create(it).Error
}

func (r *OrderRepository) UpdateItem(ctx context.Context, it *entity.OrderItem) error {
	return r.DB.WithContext(ctx).Model(&entity.OrderItem{}).Where("id = ?", it.ID).Updates(map[string]any{
		"quantity": it.Quantity,
		"total":    it.Total,
		"notes":    it.Notes,
	}).Error
}

func (r *OrderRepository) DeleteItem(ctx context.Context, orderID, itemID uint) error {
	return r.DB.WithContext(ctx).Where("id = ? AND order_id = ?", itemID, orderID).Delete(&entity.OrderItem{}).Error
}

func (r *OrderRepository) CountByStatus(ctx context.Context, from, to time.Time) ([]StatusCount, error) {
	var rows []StatusCount
	q := r.DB.WithContext(ctx).Model(&entity.Order{}).Select("status, COUNT(*) AS count")
	if !from.IsZero() {
		q = q.Where("created_at >= ?", from.UTC())
	}
	if !to.IsZero() {
		q = q.Where("created_at < ?", to.UTC())
	}
	err := q.Group("status").Scan(&rows).Error
	return rows, err
}
