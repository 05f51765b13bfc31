package repository

import (
	"context"
	"strings"

	"github.com/rajeshhitechvalley/Cfapp-sub001/entity"

	"gorm.io/gorm"
)

type MenuRepository struct {
	DB *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{DB: db}
}

func (r *MenuRepository) WithTx(tx *gorm.DB) *MenuRepository {
	return &MenuRepository{DB: tx}
}

// ---------------- Categories ----------------

// ListCategories returns categories by sort order. publicOnly keeps active
// categories and their available items.
func (r *MenuRepository) ListCategories(ctx context.Context, withItems, publicOnly bool) ([]entity.Category, error) {
	var cats []entity.Category
	q := r.DB.WithContext(ctx).Order("sort_order ASC, name ASC")
	if publicOnly {
		q = q.Where("is_active = ?", true)
	}
	if withItems {
		q = q.Preload("MenuItems", func(db *gorm.DB) *gorm.DB {
			if publicOnly {
				db = db.Where("is_available = ?", true)
			}
			return db.Order("name ASC")
		})
	}
	err := q.Find(&cats).Error
	return cats, err
}

func (r *MenuRepository) FindCategory(ctx context.Context, id uint) (*entity.Category, error) {
	var c entity.Category
	if err := r.DB.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *MenuRepository) CreateCategory(ctx context.Context, c *entity.Category) error {
	return r.DB.WithContext(ctx).Create(c).Error
}

func (r *MenuRepository) UpdateCategory(ctx context.Context, id uint, updates map[string]any) error {
	return r.DB.WithContext(ctx).Model(&entity.Category{}).Where("id = ?", id).Updates(updates).Error
}

func (r *MenuRepository) DeleteCategory(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&entity.Category{}, id).Error
}

func (r *MenuRepository) CountItemsInCategory(ctx context.Context, id uint) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&entity.MenuItem{}).Where("category_id = ?", id).Count(&n).Error
	return n, err
}

// ---------------- Items ----------------

type MenuFilter struct {
	CategoryID uint
	Available  *bool
	Search     string
}

func (r *MenuRepository) ListItems(ctx context.Context, f MenuFilter) ([]entity.MenuItem, error) {
	var items []entity.MenuItem
	q := r.DB.WithContext(ctx).Order("category_id ASC, name ASC")
	if f.CategoryID != 0 {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.Available != nil {
		q = q.Where("is_available = ?", *f.Available)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	err := q.Find(&items).Error
	return items, err
}

func (r *MenuRepository) FindItem(ctx context.Context, id uint) (*entity.MenuItem, error) {
	var m entity.MenuItem
	if err := r.DB.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// FindItems returns the items keyed by id; missing ids are simply absent.
func (r *MenuRepository) FindItems(ctx context.Context, ids []uint) (map[uint]entity.MenuItem, error) {
	out := make(map[uint]entity.MenuItem, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var items []entity.MenuItem
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	for _, m := range items {
		out[m.ID] = m
	}
	return out, nil
}

func (r *MenuRepository) CreateItem(ctx context.Context, m *entity.MenuItem) error {
	return r.DB.WithContext(ctx).Create(m).Error
}

func (r *MenuRepository) UpdateItem(ctx context.Context, id uint, updates map[string]any) error {
	return r.DB.WithContext(ctx).Model(&entity.MenuItem{}).Where("id = ?", id).Updates(updates).Error
}

func (r *MenuRepository) DeleteItem(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&entity.MenuItem{}, id).Error
}
