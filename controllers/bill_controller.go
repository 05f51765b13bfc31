package controllers

import (
	"net/http"

	"github.com/rajeshhitechvalley/Cfapp-sub001/pkg/logger"
	"github.com/rajeshhitechvalley/Cfapp-sub001/pkg/resp"
	"github.com/rajeshhitechvalley/Cfapp-sub001/repository"
	"github.com/rajeshhitechvalley/Cfapp-sub001/services"
	"github.com/rajeshhitechvalley/Cfapp-sub001/utils"

	"github.com/gin-gonic/gin"
)

type BillController struct {
	Svc *services.BillService
	Log *logger.Logger
}

func NewBillController(svc *services.BillService, log *logger.Logger) *BillController {
	return &BillController{Svc: svc, Log: log}
}

// POST /orders/:id/bill
func (b *BillController) Generate(c *gin.Context) {
	orderID, ok := utils.ParamID(c, "id")
	if !ok {
		badID(c)
		return
	}
	var in services.GenerateBillInput
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&in); err != nil {
			resp.BadRequest(c, err.Error())
			return
		}
	}
	bill, err := b.Svc.Generate(c.Request.Context(), orderID, utils.CurrentUserID(c), in)
	if err != nil {
		fail(c, b.Log, "bill_generate", err)
		return
	}
	resp.Created(c, bill)
}

// GET /bills?status=&from=&to=&page=&limit=
func (b *BillController) List(c *gin.Context) {
	from, to, ok := dateRange(c)
	if !ok {
		return
	}
	page, limit := pageParams(c)
	f := repository.BillFilter{
		Status: c.Query("status"),
		From:   from,
		To:     to,
		Page:   page,
		Limit:  limit,
	}
	bills, total, err := b.Svc.List(c.Request.Context(), f)
	if err != nil {
		fail(c, b.Log, "bill_list", err)
		return
	}
	resp.Page(c, bills, total, f.Page, f.Limit)
}

// GET /bills/:id
func (b *BillController) Get(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		badID(c)
		return
	}
	bill, err := b.Svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, b.Log, "bill_get", err)
		return
	}
	resp.OK(c, bill)
}

// POST /bills/:id/pay
func (b *BillController) Pay(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		badID(c)
		return
	}
	var in services.PayBillInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	bill, err := b.Svc.Pay(c.Request.Context(), id, utils.CurrentUserID(c), in)
	if err != nil {
		fail(c, b.Log, "bill_pay", err)
		return
	}
	resp.OK(c, bill)
}

// POST /bills/:id/void
func (b *BillController) Void(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		badID(c)
		return
	}
	bill, err := b.Svc.Void(c.Request.Context(), id)
	if err != nil {
		fail(c, b.Log, "bill_void", err)
		return
	}
	resp.OK(c, bill)
}

// GET /bills/:id/receipt  (text/plain)
func (b *BillController) Receipt(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		badID(c)
		return
	}
	text, err := b.Svc.Receipt(c.Request.Context(), id)
	if err != nil {
		fail(c, b.Log, "bill_receipt", err)
		return
	}
	c.String(http.StatusOK, text)
}
