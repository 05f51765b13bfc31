package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rajeshhitechvalley/Cfapp-sub001/entity"

	"gorm.io/gorm"
)

type BillRepository struct {
	DB *gorm.DB
}

func NewBillRepository(db *gorm.DB) *BillRepository {
	return &BillRepository{DB: db}
}

func (r *BillRepository) WithTx(tx *gorm.DB) *BillRepository {
	return &BillRepository{DB: tx}
}

func (r *BillRepository) NextNumber(ctx context.Context, day time.Time) (string, error) {
	return NextNumber(ctx, r.DB, &entity.Bill{}, "bill_number", DailyPrefix("BILL", day))
}

func (r *BillRepository) Create(ctx context.Context, b *entity.Bill) error {
	return r.DB.WithContext(ctx).Create(b).Error
}

func (r *BillRepository) Save(ctx context.Context, b *entity.Bill) error {
	return r.DB.WithContext(ctx).Omit("Order").Save(b).Error
}

func (r *BillRepository) FindByID(ctx context.Context, id uint) (*entity.Bill, error) {
	var b entity.Bill
	err := r.DB.WithContext(ctx).
		Preload("Order.Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Order.Table").
		Preload("Order.Customer").
		First(&b, id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// OpenForOrder returns the order's unpaid or paid bill, or nil if there is none.
func (r *BillRepository) OpenForOrder(ctx context.Context, orderID uint) (*entity.Bill, error) {
	var b entity.Bill
	err := r.DB.WithContext(ctx).
		Where("order_id = ? AND status <> ?", orderID, entity.BillVoid).
		Order("id DESC").
		First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// MarkPaidGuard flips an unpaid bill to paid with the payment details.
func (r *BillRepository) MarkPaidGuard(ctx context.Context, id uint, updates map[string]any) (int64, error) {
	updates["status"] = entity.BillPaid
	res := r.DB.WithContext(ctx).Model(&entity.Bill{}).
		Where("id = ? AND status = ?", id, entity.BillUnpaid).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *BillRepository) VoidGuard(ctx context.Context, id uint) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&entity.Bill{}).
		Where("id = ? AND status = ?", id, entity.BillUnpaid).
		Update("status", entity.BillVoid)
	return res.RowsAffected, res.Error
}

type BillFilter struct {
	Status   string
	From, To time.Time
	Page     int
	Limit    int
}

func (r *BillRepository) List(ctx context.Context, f BillFilter) ([]entity.Bill, int64, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 20
	}

	q := r.DB.WithContext(ctx).Model(&entity.Bill{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
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
	var out []entity.Bill
	err := q.Order("id DESC").Limit(f.Limit).Offset((f.Page - 1) * f.Limit).Find(&out).Error
	return out, total, err
}

// PaidBetween returns paid bills whose paid_at falls in [from, to).
func (r *BillRepository) PaidBetween(ctx context.Context, from, to time.Time) ([]entity.Bill, error) {
	var out []entity.Bill
	err := r.DB.WithContext(ctx).
		Where("status = ? AND paid_at >= ? AND paid_at < ?", entity.BillPaid, from.UTC(), to.UTC()).
		Order("paid_at ASC").
		Find(&out).Error
	return out, err
}
