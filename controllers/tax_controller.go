package controllers

import (
	"github.com/rajeshhitechvalley/Cfapp-sub001/pkg/logger"
	"github.com/rajeshhitechvalley/Cfapp-sub001/pkg/resp"
	"github.com/rajeshhitechvalley/Cfapp-sub001/services"
	"github.com/rajeshhitechvalley/Cfapp-sub001/utils"

	"github.com/gin-gonic/gin"
)

type TaxController struct {
	Svc *services.TaxService
	Log *logger.Logger
}

func NewTaxController(svc *services.TaxService, log *logger.Logger) *TaxController {
	return &TaxController{Svc: svc, Log: log}
}

// GET /tax-settings
func (t *TaxController) List(c *gin.Context) {
	list, err := t.Svc.List(c.Request.Context())
	if err != nil {
		fail(c, t.Log, "list_tax", err)
		return
	}
	resp.OK(c, list)
}

// GET /tax-settings/active  (data is null when no tax applies)
func (t *TaxController) Active(c *gin.Context) {
	tax, err := t.Svc.Active(c.Request.Context())
	if err != nil {
		fail(c, t.Log, "active_tax", err)
		return
	}
	resp.OK(c, tax)
}

// POST /tax-settings
func (t *TaxController) Create(c *gin.Context) {
	var in services.TaxInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	tax, err := t.Svc.Create(c.Request.Context(), in)
	if err != nil {
		fail(c, t.Log, "create_tax", err)
		return
	}
	resp.Created(c, tax)
}

// PATCH /tax-settings/:id
func (t *TaxController) Update(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		badID(c)
		return
	}
	var in services.TaxInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	tax, err := t.Svc.Update(c.Request.Context(), id, in)
	if err != nil {
		fail(c, t.Log, "update_tax", err)
		return
	}
	resp.OK(c, tax)
}

// POST /tax-settings/:id/activate
func (t *TaxController) Activate(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		badID(c)
		return
	}
	tax, err := t.Svc.Activate(c.Request.Context(), id)
	if err != nil {
		fail(c, t.Log, "activate_tax", err)
		return
	}
	resp.OK(c, tax)
}

// POST /tax-settings/:id/deactivate
func (t *TaxController) Deactivate(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		badID(c)
		return
	}
	tax, err := t.Svc.Deactivate(c.Request.Context(), id)
	if err != nil {
		fail(c, t.Log, "deactivate_tax", err)
		return
	}
	resp.OK(c, tax)
}

// DELETE /tax-settings/:id
func (t *TaxController) Delete(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		badID(c)
		return
	}
	if err := t.Svc.Delete(c.Request.Context(), id); err != nil {
		fail(c, t.Log, "delete_tax", err)
		return
	}
	resp.OK(c, gin.H{"id": id})
}
