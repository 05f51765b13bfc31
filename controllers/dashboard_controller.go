package controllers

import (
	"github.com/rajeshhitechvalley/Cfapp-sub001/pkg/logger"
	"github.com/rajeshhitechvalley/Cfapp-sub001/pkg/resp"
	"github.com/rajeshhitechvalley/Cfapp-sub001/services"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	Svc *services.DashboardService
	Log *logger.Logger
}

func NewDashboardController(svc *services.DashboardService, log *logger.Logger) *DashboardController {
	return &DashboardController{Svc: svc, Log: log}
}

// GET /dashboard/kitchen
func (d *DashboardController) Kitchen(c *gin.Context) {
	out, err := d.Svc.Kitchen(c.Request.Context())
	if err != nil {
		fail(c, d.Log, "dashboard_kitchen", err)
		return
	}
	resp.OK(c, out)
}

// GET /dashboard/reception
func (d *DashboardController) Reception(c *gin.Context) {
	out, err := d.Svc.Reception(c.Request.Context())
	if err != nil {
		fail(c, d.Log, "dashboard_reception", err)
		return
	}
	resp.OK(c, out)
}

// GET /dashboard/sales?from=&to=
func (d *DashboardController) Sales(c *gin.Context) {
	from, to, ok := dateRange(c)
	if !ok {
		return
	}
	out, err := d.Svc.Sales(c.Request.Context(), from, to)
	if err != nil {
		fail(c, d.Log, "dashboard_sales", err)
		return
	}
	resp.OK(c, out)
}
