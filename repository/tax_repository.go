package repository

import (
	"context"
	"errors"

	"github.com/rajeshhitechvalley/Cfapp-sub001/entity"

	"gorm.io/gorm"
)

type TaxRepository struct {
	DB *gorm.DB
}

func NewTaxRepository(db *gorm.DB) *TaxRepository {
	return &TaxRepository{DB: db}
}

func (r *TaxRepository) WithTx(tx *gorm.DB) *TaxRepository {
	return &TaxRepository{DB: tx}
}

func (r *TaxRepository) List(ctx context.Context) ([]entity.TaxSetting, error) {
	var out []entity.TaxSetting
	err := r.DB.WithContext(ctx).Order("id ASC").Find(&out).Error
	return out, err
}

func (r *TaxRepository) FindByID(ctx context.Context, id uint) (*entity.TaxSetting, error) {
	var t entity.TaxSetting
	if err := r.DB.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// Active returns the active setting, or nil when none is active.
func (r *TaxRepository) Active(ctx context.Context) (*entity.TaxSetting, error) {
	var t entity.TaxSetting
	err := r.DB.WithContext(ctx).Where("is_active = ?", true).Order("id DESC").First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TaxRepository) Create(ctx context.Context, t *entity.TaxSetting) error {
	return r.DB.WithContext(ctx).Create(t).Error
}

func (r *TaxRepository) Update(ctx context.Context, id uint, updates map[string]any) error {
	return r.DB.WithContext(ctx).Model(&entity.TaxSetting{}).Where("id = ?", id).Updates(updates).Error
}

func (r *TaxRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&entity.TaxSetting{}, id).Error
}

// DeactivateOthers clears is_active on every setting except keepID.
func (r *TaxRepository) DeactivateOthers(ctx context.Context, keepID uint) error {
	return r.DB.WithContext(ctx).Model(&entity.TaxSetting{}).
		Where("is_active = ? AND id <> ?", true, keepID).
		Update("is_active", false).Error
}
