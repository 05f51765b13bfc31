package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/rajeshhitechvalley/Cfapp-sub001/entity"
	"github.com/rajeshhitechvalley/Cfapp-sub001/pkg/logger"
	"github.com/rajeshhitechvalley/Cfapp-sub001/repository"

	"github.com/shopspring/decimal"
)

type MenuService struct {
	Repo *repository.MenuRepository
	log  *logger.Logger
}

func NewMenuService(repo *repository.MenuRepository, log *logger.Logger) *MenuService {
	if log == nil {
		log = logger.Nop()
	}
	return &MenuService{Repo: repo, log: log}
}

type CategoryInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	SortOrder   *int    `json:"sortOrder"`
	IsActive    *bool   `json:"isActive"`
}

type MenuItemInput struct {
	CategoryID   *uint            `json:"categoryId"`
	Name         *string          `json:"name"`
	Description  *string          `json:"description"`
	Price        *decimal.Decimal `json:"price"`
	IsAvailable  *bool            `json:"isAvailable"`
	IsVegetarian *bool            `json:"isVegetarian"`
	PrepMinutes  *int             `json:"prepMinutes"`
}

// ---------------- Categories ----------------

func (s *MenuService) ListCategories(ctx context.Context, withItems bool) ([]entity.Category, error) {
	return s.Repo.ListCategories(ctx, withItems, false)
}

// PublicMenu is what guests see: active categories with available items.
func (s *MenuService) PublicMenu(ctx context.Context) ([]entity.Category, error) {
	return s.Repo.ListCategories(ctx, true, true)
}

func (s *MenuService) GetCategory(ctx context.Context, id uint) (*entity.Category, error) {
	c, err := s.Repo.FindCategory(ctx, id)
	return c, dbErr(err, "category")
}

func (s *MenuService) CreateCategory(ctx context.Context, in CategoryInput) (*entity.Category, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, invalid("name is required")
	}
	c := &entity.Category{Name: strings.TrimSpace(*in.Name), IsActive: true}
	if in.Description != nil {
		c.Description = strings.TrimSpace(*in.Description)
	}
	if in.SortOrder != nil {
		c.SortOrder = *in.SortOrder
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	if err := s.Repo.CreateCategory(ctx, c); err != nil {
		return nil, dbErr(err, "category")
	}
	return c, nil
}

func (s *MenuService) UpdateCategory(ctx context.Context, id uint, in CategoryInput) (*entity.Category, error) {
	if _, err := s.Repo.FindCategory(ctx, id); err != nil {
		return nil, dbErr(err, "category")
	}
	updates := map[string]any{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, invalid("name is required")
		}
		updates["name"] = name
	}
	if in.Description != nil {
		updates["description"] = strings.TrimSpace(*in.Description)
	}
	if in.SortOrder != nil {
		updates["sort_order"] = *in.SortOrder
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}
	if len(updates) > 0 {
		if err := s.Repo.UpdateCategory(ctx, id, updates); err != nil {
			return nil, dbErr(err, "category")
		}
	}
	return s.GetCategory(ctx, id)
}

// DeleteCategory refuses while menu items still point at the category.
func (s *MenuService) DeleteCategory(ctx context.Context, id uint) error {
	if _, err := s.Repo.FindCategory(ctx, id); err != nil {
		return dbErr(err, "category")
	}
	n, err := s.Repo.CountItemsInCategory(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return conflict("category still has %d menu items", n)
	}
	return s.Repo.DeleteCategory(ctx, id)
}

// ---------------- Items ----------------

func (s *MenuService) ListItems(ctx context.Context, f repository.MenuFilter) ([]entity.MenuItem, error) {
	return s.Repo.ListItems(ctx, f)
}

func (s *MenuService) GetItem(ctx context.Context, id uint) (*entity.MenuItem, error) {
	m, err := s.Repo.FindItem(ctx, id)
	return m, dbErr(err, "menu item")
}

func (s *MenuService) CreateItem(ctx context.Context, in MenuItemInput) (*entity.MenuItem, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, invalid("name is required")
	}
	if in.CategoryID == nil {
		return nil, invalid("categoryId is required")
	}
	if in.Price == nil || !in.Price.IsPositive() {
		return nil, invalid("price must be greater than zero")
	}
	if _, err := s.Repo.FindCategory(ctx, *in.CategoryID); err != nil {
		return nil, dbErr(err, "category")
	}

	m := &entity.MenuItem{
		CategoryID:  *in.CategoryID,
		Name:        strings.TrimSpace(*in.Name),
		Price:       in.Price.Round(2),
		IsAvailable: true,
	}
	if in.Description != nil {
		m.Description = strings.TrimSpace(*in.Description)
	}
	if in.IsAvailable != nil {
		m.IsAvailable = *in.IsAvailable
	}
	if in.IsVegetarian != nil {
		m.IsVegetarian = *in.IsVegetarian
	}
	if in.PrepMinutes != nil {
		if *in.PrepMinutes < 0 {
			return nil, invalid("prepMinutes cannot be negative")
		}
		m.PrepMinutes = *in.PrepMinutes
	}
	if err := s.Repo.CreateItem(ctx, m); err != nil {
		return nil, dbErr(err, "menu item")
	}
	s.log.Info(ctx, "menu_item_create", "menu item created", slog.Uint64("menu_item_id", uint64(m.ID)))
	return m, nil
}

func (s *MenuService) UpdateItem(ctx context.Context, id uint, in MenuItemInput) (*entity.MenuItem, error) {
	if _, err := s.Repo.FindItem(ctx, id); err != nil {
		return nil, dbErr(err, "menu item")
	}
	updates := map[string]any{}
	if in.CategoryID != nil {
		if _, err := s.Repo.FindCategory(ctx, *in.CategoryID); err != nil {
			return nil, dbErr(err, "category")
		}
		updates["category_id"] = *in.CategoryID
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, invalid("name is required")
		}
		updates["name"] = name
	}
	if in.Description != nil {
		updates["description"] = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		if !in.Price.IsPositive() {
			return nil, invalid("price must be greater than zero")
		}
		updates["price"] = in.Price.Round(2)
	}
	if in.IsAvailable != nil {
		updates["is_available"] = *in.IsAvailable
	}
	if in.IsVegetarian != nil {
		updates["is_vegetarian"] = *in.IsVegetarian
	}
	if in.PrepMinutes != nil {
		if *in.PrepMinutes < 0 {
			return nil, invalid("prepMinutes cannot be negative")
		}
		updates["prep_minutes"] = *in.PrepMinutes
	}
	if len(updates) > 0 {
		if err := s.Repo.UpdateItem(ctx, id, updates); err != nil {
			return nil, dbErr(err, "menu item")
		}
	}
	return s.GetItem(ctx, id)
}

// ToggleAvailability flips is_available and returns the updated item.
func (s *MenuService) ToggleAvailability(ctx context.Context, id uint) (*entity.MenuItem, error) {
	m, err := s.Repo.FindItem(ctx, id)
	if err != nil {
		return nil, dbErr(err, "menu item")
	}
	if err := s.Repo.UpdateItem(ctx, id, map[string]any{"is_available": !m.IsAvailable}); err != nil {
		return nil, err
	}
	m.IsAvailable = !m.IsAvailable
	return m, nil
}

func (s *MenuService) DeleteItem(ctx context.Context, id uint) error {
	if _, err := s.Repo.FindItem(ctx, id); err != nil {
		return dbErr(err, "menu item")
	}
	return s.Repo.DeleteItem(ctx, id)
}
