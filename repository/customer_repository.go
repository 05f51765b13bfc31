package repository

import (
	"context"
	"strings"

	"github.com/rajeshhitechvalley/Cfapp-sub001/entity"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CustomerRepository struct {
	DB *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{DB: db}
}

func (r *CustomerRepository) WithTx(tx *gorm.DB) *CustomerRepository {
	return &CustomerRepository{DB: tx}
}

func (r *CustomerRepository) Create(ctx context.Context, c *entity.Customer) error {
	if err := r.DB.WithContext(ctx).Create(c).Error; err != nil {
		return err
	}
	c.Tier = entity.LoyaltyTier(c.PointsBalance)
	return nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, id uint) (*entity.Customer, error) {
	var c entity.Customer
	if err := r.DB.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepository) FindByPhone(ctx context.Context, phone string) (*entity.Customer, error) {
	var c entity.Customer
	if err := r.DB.WithContext(ctx).Where("phone = ?", phone).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepository) List(ctx context.Context, search string, page, limit int) ([]entity.Customer, int64, error) {
	q := r.DB.WithContext(ctx).Model(&entity.Customer{})
	if s := strings.TrimSpace(search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(name) LIKE ? OR phone LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []entity.Customer
	err := q.Order("name ASC").Limit(limit).Offset((page - 1) * limit).Find(&out).Error
	return out, total, err
}

func (r *CustomerRepository) Update(ctx context.Context, id uint, updates map[string]any) error {
	return r.DB.WithContext(ctx).Model(&entity.Customer{}).Where("id = ?", id).Updates(updates).Error
}

// AddPoints moves the balance by delta unless it would go negative.
// lifetime is added to lifetime_points (earned points only).
func (r *CustomerRepository) AddPoints(ctx context.Context, id uint, delta, lifetime int64) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&entity.Customer{}).
		Where("id = ? AND points_balance + ? >= 0", id, delta).
		Updates(map[string]any{
			"points_balance":  gorm.Expr("points_balance + ?", delta),
			"lifetime_points": gorm.Expr("lifetime_points + ?", lifetime),
		})
	return res.RowsAffected == 1, res.Error
}

// RecordVisit adds a paid bill to the customer's spend.
func (r *CustomerRepository) RecordVisit(ctx context.Context, id uint, spent decimal.Decimal) error {
	c, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return r.Update(ctx, id, map[string]any{
		"total_spent": c.TotalSpent.Add(spent),
		"visits":      gorm.Expr("visits + 1"),
	})
}

func (r *CustomerRepository) CreateLoyaltyTx(ctx context.Context, t *entity.LoyaltyTransaction) error {
	return r.DB.WithContext(ctx).Create(t).Error
}

func (r *CustomerRepository) LoyaltyHistory(ctx context.Context, customerID uint, limit int) ([]entity.LoyaltyTransaction, error) {
	var out []entity.LoyaltyTransaction
	err := r.DB.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("id DESC").Limit(limit).
		Find(&out).Error
	return out, err
}
