package controllers

import (
	"strconv"

	"github.com/rajeshhitechvalley/Cfapp-sub001/pkg/logger"
	"github.com/rajeshhitechvalley/Cfapp-sub001/pkg/resp"
	"github.com/rajeshhitechvalley/Cfapp-sub001/repository"
	"github.com/rajeshhitechvalley/Cfapp-sub001/services"
	"github.com/rajeshhitechvalley/Cfapp-sub001/utils"

	"github.com/gin-gonic/gin"
)

type MenuController struct {
	Svc *services.MenuService
	Log *logger.Logger
}

func NewMenuController(svc *services.MenuService, log *logger.Logger) *MenuController {
	return &MenuController{Svc: svc, Log: log}
}

// GET /menu
func (m *MenuController) Public(c *gin.Context) {
	cats, err := m.Svc.PublicMenu(c.Request.Context())
	if err != nil {
		fail(c, m.Log, "public_menu", err)
		return
	}
	resp.OK(c, cats)
}

// GET /categories?withItems=true
func (m *MenuController) ListCategories(c *gin.Context) {
	withItems, _ := strconv.ParseBool(c.Query("withItems"))
	cats, err := m.Svc.ListCategories(c.Request.Context(), withItems)
	if err != nil {
		fail(c, m.Log, "list_categories", err)
		return
	}
	resp.OK(c, cats)
}

// POST /categories
func (m *MenuController) CreateCategory(c *gin.Context) {
	var in services.CategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	cat, err := m.Svc.CreateCategory(c.Request.Context(), in)
	if err != nil {
		fail(c, m.Log, "create_category", err)
		return
	}
	resp.Created(c, cat)
}

// PATCH /categories/:id
func (m *MenuController) UpdateCategory(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		badID(c)
		return
	}
	var in services.CategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	cat, err := m.Svc.UpdateCategory(c.Request.Context(), id, in)
	if err != nil {
		fail(c, m.Log, "update_category", err)
		return
	}
	resp.OK(c, cat)
}

// DELETE /categories/:id
func (m *MenuController) DeleteCategory(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		badID(c)
		return
	}
	if err := m.Svc.DeleteCategory(c.Request.Context(), id); err != nil {
		fail(c, m.Log, "delete_category", err)
		return
	}
	resp.OK(c, gin.H{"id": id})
}

// GET /menu-items?categoryId=&available=&q=
func (m *MenuController) ListItems(c *gin.Context) {
	f := repository.MenuFilter{Search: c.Query("q")}
	if v := c.Query("categoryId"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			resp.BadRequest(c, "invalid categoryId")
			return
		}
		f.CategoryID = uint(n)
	}
	if v := c.Query("available"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			resp.BadRequest(c, "invalid available flag")
			return
		}
		f.Available = &b
	}
	items, err := m.Svc.ListItems(c.Request.Context(), f)
	if err != nil {
		fail(c, m.Log, "list_menu_items", err)
		return
	}
	resp.OK(c, items)
}

// GET /menu-items/:id
func (m *MenuController) GetItem(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		badID(c)
		return
	}
	item, err := m.Svc.GetItem(c.Request.Context(), id)
	if err != nil {
		fail(c, m.Log, "get_menu_item", err)
		return
	}
	resp.OK(c, item)
}

// POST /menu-items
func (m *MenuController) CreateItem(c *gin.Context) {
	var in services.MenuItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	item, err := m.Svc.CreateItem(c.Request.Context(), in)
	if err != nil {
		fail(c, m.Log, "create_menu_item", err)
		return
	}
	resp.Created(c, item)
}

// PATCH /menu-items/:id
func (m *MenuController) UpdateItem(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		badID(c)
		return
	}
	var in services.MenuItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	item, err := m.Svc.UpdateItem(c.Request.Context(), id, in)
	if err != nil {
		fail(c, m.Log, "update_menu_item", err)
		return
	}
	resp.OK(c, item)
}

// PATCH /menu-items/:id/availability
func (m *MenuController) ToggleItem(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		badID(c)
		return
	}
	item, err := m.Svc.ToggleAvailability(c.Request.Context(), id)
	if err != nil {
		fail(c, m.Log, "toggle_menu_item", err)
		return
	}
	resp.OK(c, item)
}

// DELETE /menu-items/:id
func (m *MenuController) DeleteItem(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		badID(c)
		return
	}
	if err := m.Svc.DeleteItem(c.Request.Context(), id); err != nil {
		fail(c, m.Log, "delete_menu_item", err)
		return
	}
	resp.OK(c, gin.H{"id": id})
}
