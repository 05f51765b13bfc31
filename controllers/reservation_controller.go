package controllers

import (
	"time"

	"github.com/rajeshhitechvalley/Cfapp-sub001/pkg/logger"
	"github.com/rajeshhitechvalley/Cfapp-sub001/pkg/resp"
	"github.com/rajeshhitechvalley/Cfapp-sub001/services"
	"github.com/rajeshhitechvalley/Cfapp-sub001/utils"

	"github.com/gin-gonic/gin"
)

type ReservationController struct {
	Svc *services.ReservationService
	Log *logger.Logger
}

func NewReservationController(svc *services.ReservationService, log *logger.Logger) *ReservationController {
	return &ReservationController{Svc: svc, Log: log}
}

// GET /reservations?date=YYYY-MM-DD&status=
func (r *ReservationController) List(c *gin.Context) {
	var day time.Time
	if s := c.Query("date"); s != "" {
		d, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			resp.BadRequest(c, "invalid date")
			return
		}
		day = d
	}
	list, err := r.Svc.List(c.Request.Context(), day, c.Query("status"))
	if err != nil {
		fail(c, r.Log, "list_reservations", err)
		return
	}
	resp.OK(c, list)
}

// GET /reservations/:id
func (r *ReservationController) Get(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		badID(c)
		return
	}
	res, err := r.Svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, r.Log, "get_reservation", err)
		return
	}
	resp.OK(c, res)
}

// POST /reservations
func (r *ReservationController) Create(c *gin.Context) {
	var in services.CreateReservationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	res, err := r.Svc.Create(c.Request.Context(), in)
	if err != nil {
		fail(c, r.Log, "create_reservation", err)
		return
	}
	resp.Created(c, res)
}

// PATCH /reservations/:id/status
func (r *ReservationController) UpdateStatus(c *gin.Context) {
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
	res, err := r.Svc.Transition(c.Request.Context(), id, req.Status)
	if err != nil {
		fail(c, r.Log, "reservation_status", err)
		return
	}
	resp.OK(c, res)
}
