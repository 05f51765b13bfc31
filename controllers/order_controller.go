package controllers

import (
	"strconv"
	"strings"

	"github.com/rajeshhitechvalley/Cfapp-sub001/entity"
	"github.com/rajeshhitechvalley/Cfapp-sub001/pkg/logger"
	"github.com/rajeshhitechvalley/Cfapp-sub001/pkg/resp"
	"github.com/rajeshhitechvalley/Cfapp-sub001/repository"
	"github.com/rajeshhitechvalley/Cfapp-sub001/services"
	"github.com/rajeshhitechvalley/Cfapp-sub001/utils"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	Svc *services.OrderService
	Log *logger.Logger
}

func NewOrderController(svc *services.OrderService, log *logger.Logger) *OrderController {
	return &OrderController{Svc: svc, Log: log}
}

// POST /orders
func (oc *OrderController) Create(c *gin.Context) {
	var in services.CreateOrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	order, err := oc.Svc.Create(c.Request.Context(), utils.CurrentUserID(c), in)
	if err != nil {
		fail(c, oc.Log, "order_create", err)
		return
	}
	resp.Created(c, order)
}

// GET /orders?status=&type=&tableId=&customerId=&from=&to=&page=&limit=
func (oc *OrderController) List(c *gin.Context) {
	from, to, ok := dateRange(c)
	if !ok {
		return
	}
	page, limit := pageParams(c)
	f := repository.OrderFilter{
		Status:    c.Query("status"),
		OrderType: c.Query("type"),
		From:      from,
		To:        to,
		Page:      page,
		Limit:     limit,
	}
	if v := c.Query("tableId"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			resp.BadRequest(c, "invalid tableId")
			return
		}
		f.TableID = uint(n)
	}
	if v := c.Query("customerId"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			resp.BadRequest(c, "invalid customerId")
			return
		}
		f.CustomerID = uint(n)
	}

	orders, total, err := oc.Svc.List(c.Request.Context(), f)
	if err != nil {
		fail(c, oc.Log, "order_list", err)
		return
	}
	resp.Page(c, orders, total, f.Page, f.Limit)
}

// GET /orders/:id  (:id may also be an ORD- number)
func (oc *OrderController) Get(c *gin.Context) {
	var order *entity.Order
	var err error
	if ref := c.Param("id"); strings.HasPrefix(strings.ToUpper(ref), "ORD-") {
		order, err = oc.Svc.GetByNumber(c.Request.Context(), ref)
	} else {
		id, ok := utils.ParamID(c, "id")
		if !ok {
			badID(c)
			return
		}
		order, err = oc.Svc.Get(c.Request.Context(), id)
	}
	if err != nil {
		fail(c, oc.Log, "order_get", err)
		return
	}
	resp.OK(c, order)
}

// POST /orders/:id/items
func (oc *OrderController) AddItem(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		badID(c)
		return
	}
	var in services.OrderItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	order, err := oc.Svc.AddItem(c.Request.Context(), id, in)
	if err != nil {
		fail(c, oc.Log, "order_add_item", err)
		return
	}
	resp.OK(c, order)
}

// PATCH /orders/:id/items/:itemId
func (oc *OrderController) UpdateItem(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	itemID, ok2 := utils.ParamID(c, "itemId")
	if !ok || !ok2 {
		badID(c)
		return
	}
	var in services.UpdateOrderItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	order, err := oc.Svc.UpdateItem(c.Request.Context(), id, itemID, in)
	if err != nil {
		fail(c, oc.Log, "order_update_item", err)
		return
	}
	resp.OK(c, order)
}

// DELETE /orders/:id/items/:itemId
func (oc *OrderController) RemoveItem(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	itemID, ok2 := utils.ParamID(c, "itemId")
	if !ok || !ok2 {
		badID(c)
		return
	}
	order, err := oc.Svc.RemoveItem(c.Request.Context(), id, itemID)
	if err != nil {
		fail(c, oc.Log, "order_remove_item", err)
		return
	}
	resp.OK(c, order)
}

// PATCH /orders/:id/status
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		badID(c)
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	order, err := oc.Svc.Transition(c.Request.Context(), id, req.Status, req.Reason)
	if err != nil {
		fail(c, oc.Log, "order_status", err)
		return
	}
	resp.OK(c, order)
}
