package controllers

import (
	"github.com/rajeshhitechvalley/Cfapp-sub001/pkg/logger"
	"github.com/rajeshhitechvalley/Cfapp-sub001/pkg/resp"
	"github.com/rajeshhitechvalley/Cfapp-sub001/services"
	"github.com/rajeshhitechvalley/Cfapp-sub001/utils"

	"github.com/gin-gonic/gin"
)

type CustomerController struct {
	Svc *services.CustomerService
	Log *logger.Logger
}

func NewCustomerController(svc *services.CustomerService, log *logger.Logger) *CustomerController {
	return &CustomerController{Svc: svc, Log: log}
}

// GET /customers?q=&page=&limit=
func (cc *CustomerController) List(c *gin.Context) {
	page, limit := pageParams(c)
	list, total, err := cc.Svc.List(c.Request.Context(), c.Query("q"), page, limit)
	if err != nil {
		fail(c, cc.Log, "list_customers", err)
		return
	}
	resp.Page(c, list, total, page, limit)
}

// GET /customers/lookup?phone=
func (cc *CustomerController) Lookup(c *gin.Context) {
	phone := c.Query("phone")
	if phone == "" {
		resp.BadRequest(c, "phone is required")
		return
	}
	cust, err := cc.Svc.FindByPhone(c.Request.Context(), phone)
	if err != nil {
		fail(c, cc.Log, "lookup_customer", err)
		return
	}
	resp.OK(c, cust)
}

// GET /customers/:id
func (cc *CustomerController) Get(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		badID(c)
		return
	}
	cust, err := cc.Svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, cc.Log, "get_customer", err)
		return
	}
	resp.OK(c, cust)
}

// POST /customers
func (cc *CustomerController) Create(c *gin.Context) {
	var in services.CustomerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	cust, err := cc.Svc.Create(c.Request.Context(), in)
	if err != nil {
		fail(c, cc.Log, "create_customer", err)
		return
	}
	resp.Created(c, cust)
}

// PATCH /customers/:id
func (cc *CustomerController) Update(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		badID(c)
		return
	}
	var in services.CustomerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	cust, err := cc.Svc.Update(c.Request.Context(), id, in)
	if err != nil {
		fail(c, cc.Log, "update_customer", err)
		return
	}
	resp.OK(c, cust)
}

// GET /customers/:id/loyalty
func (cc *CustomerController) Loyalty(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		badID(c)
		return
	}
	out, err := cc.Svc.LoyaltyInfo(c.Request.Context(), id)
	if err != nil {
		fail(c, cc.Log, "customer_loyalty", err)
		return
	}
	resp.OK(c, out)
}

// POST /customers/:id/loyalty/adjust
func (cc *CustomerController) Adjust(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		badID(c)
		return
	}
	var in services.AdjustPointsInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	cust, err := cc.Svc.Adjust(c.Request.Context(), id, in)
	if err != nil {
		fail(c, cc.Log, "loyalty_adjust", err)
		return
	}
	resp.OK(c, cust)
}
