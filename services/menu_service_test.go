package services

import (
	"testing"

	"github.com/rajeshhitechvalley/Cfapp-sub001/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuCategoryLifecycle(t *testing.T) {
	f := newFixture(t)
	svc := NewMenuService(repository.NewMenuRepository(f.db), nil)

	drinks, err := svc.CreateCategory(f.ctx, CategoryInput{Name: ptr(" Drinks "), SortOrder: ptr(2)})
	require.NoError(t, err)
	assert.Equal(t, "Drinks", drinks.Name)
	assert.True(t, drinks.IsActive)

	_, err = svc.CreateCategory(f.ctx, CategoryInput{Name: ptr("Drinks")})
	assert.ErrorIs(t, err, ErrConflict)
	_, err = svc.CreateCategory(f.ctx, CategoryInput{Name: ptr("  ")})
	assert.ErrorIs(t, err, ErrValidation)

	lassi, err := svc.CreateItem(f.ctx, MenuItemInput{CategoryID: &drinks.ID, Name: ptr("Lassi"), Price: ptr(dec("60.499"))})
	require.NoError(t, err)
	assert.Equal(t, "60.50", lassi.Price.StringFixed(2))
	assert.True(t, lassi.IsAvailable)

	assert.ErrorIs(t, svc.DeleteCategory(f.ctx, drinks.ID), ErrConflict, "category still has items")

	require.NoError(t, svc.DeleteItem(f.ctx, lassi.ID))
	require.NoError(t, svc.DeleteCategory(f.ctx, drinks.ID))
	_, err = svc.GetCategory(f.ctx, drinks.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	again, err := svc.CreateCategory(f.ctx, CategoryInput{Name: ptr("Drinks")})
	require.NoError(t, err, "a deleted category frees its name")
	assert.NotEqual(t, drinks.ID, again.ID)
}

func TestMenuItemValidation(t *testing.T) {
	f := newFixture(t)
	svc := NewMenuService(repository.NewMenuRepository(f.db), nil)
	missing := uint(9999)

	_, err := svc.CreateItem(f.ctx, MenuItemInput{CategoryID: &f.burger.CategoryID, Name: ptr("Free"), Price: ptr(dec("0"))})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.CreateItem(f.ctx, MenuItemInput{CategoryID: &missing, Name: ptr("Lost"), Price: ptr(dec("5"))})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.CreateItem(f.ctx, MenuItemInput{Name: ptr("Orphan"), Price: ptr(dec("5"))})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.UpdateItem(f.ctx, f.burger.ID, MenuItemInput{Price: ptr(dec("-3"))})
	assert.ErrorIs(t, err, ErrValidation)

	updated, err := svc.UpdateItem(f.ctx, f.burger.ID, MenuItemInput{Price: ptr(dec("120")), PrepMinutes: ptr(12)})
	require.NoError(t, err)
	assert.Equal(t, "120.00", updated.Price.StringFixed(2))
	assert.Equal(t, 12, updated.PrepMinutes)
}

func TestPublicMenuHidesUnavailableItems(t *testing.T) {
	f := newFixture(t)
	svc := NewMenuService(repository.NewMenuRepository(f.db), nil)

	menu, err := svc.PublicMenu(f.ctx)
	require.NoError(t, err)
	require.Len(t, menu, 1)
	names := []string{}
	for _, it := range menu[0].MenuItems {
		names = append(names, it.Name)
	}
	assert.ElementsMatch(t, []string{"Burger", "Fries"}, names)

	toggled, err := svc.ToggleAvailability(f.ctx, f.fries.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsAvailable)

	menu, err = svc.PublicMenu(f.ctx)
	require.NoError(t, err)
	require.Len(t, menu[0].MenuItems, 1)
	assert.Equal(t, "Burger", menu[0].MenuItems[0].Name)

	all, err := svc.ListCategories(f.ctx, true)
	require.NoError(t, err)
	assert.Len(t, all[0].MenuItems, 3, "staff see everything")
}
