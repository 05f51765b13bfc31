package controllers

import (
	"github.com/rajeshhitechvalley/Cfapp-sub001/pkg/logger"
	"github.com/rajeshhitechvalley/Cfapp-sub001/pkg/resp"
	"github.com/rajeshhitechvalley/Cfapp-sub001/services"
	"github.com/rajeshhitechvalley/Cfapp-sub001/utils"

	"github.com/gin-gonic/gin"
)

type TableController struct {
	Svc *services.TableService
	Log *logger.Logger
}

func NewTableController(svc *services.TableService, log *logger.Logger) *TableController {
	return &TableController{Svc: svc, Log: log}
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

// GET /tables?status=
func (t *TableController) List(c *gin.Context) {
	tables, err := t.Svc.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		fail(c, t.Log, "list_tables", err)
		return
	}
	resp.OK(c, tables)
}

// GET /tables/:id
func (t *TableController) Get(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		badID(c)
		return
	}
	table, err := t.Svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, t.Log, "get_table", err)
		return
	}
	resp.OK(c, table)
}

// POST /tables
func (t *TableController) Create(c *gin.Context) {
	var in services.TableInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	table, err := t.Svc.Create(c.Request.Context(), in)
	if err != nil {
		fail(c, t.Log, "create_table", err)
		return
	}
	resp.Created(c, table)
}

// PATCH /tables/:id
func (t *TableController) Update(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		badID(c)
		return
	}
	var in services.TableInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	table, err := t.Svc.Update(c.Request.Context(), id, in)
	if err != nil {
		fail(c, t.Log, "update_table", err)
		return
	}
	resp.OK(c, table)
}

// PATCH /tables/:id/status
func (t *TableController) SetStatus(c *gin.Context) {
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
	table, err := t.Svc.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		fail(c, t.Log, "table_status", err)
		return
	}
	resp.OK(c, table)
}

// DELETE /tables/:id
func (t *TableController) Delete(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		badID(c)
		return
	}
	if err := t.Svc.Delete(c.Request.Context(), id); err != nil {
		fail(c, t.Log, "delete_table", err)
		return
	}
	resp.OK(c, gin.H{"id": id})
}
