package controllers

import (
	"errors"
	"time"

	"github.com/rajeshhitechvalley/Cfapp-sub001/pkg/logger"
	"github.com/rajeshhitechvalley/Cfapp-sub001/pkg/resp"
	"github.com/rajeshhitechvalley/Cfapp-sub001/services"
	"github.com/rajeshhitechvalley/Cfapp-sub001/utils"

	"github.com/gin-gonic/gin"
)

// fail maps a service error onto the response envelope. Unknown errors are
// logged and answered with a generic 500.
func fail(c *gin.Context, log *logger.Logger, action string, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		resp.NotFound(c, err.Error())
	case errors.Is(err, services.ErrValidation):
		resp.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrConflict), errors.Is(err, services.ErrInvalidTransition):
		resp.Conflict(c, err.Error())
	case errors.Is(err, services.ErrForbidden):
		resp.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		resp.Unauthorized(c, err.Error())
	default:
		log.Error(c.Request.Context(), action, "request failed", err)
		resp.ServerError(c)
	}
}

func badID(c *gin.Context) {
	resp.BadRequest(c, "invalid id")
}

// parseDate accepts YYYY-MM-DD (local midnight) or RFC3339.
func parseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// dateRange reads ?from=&to=. A bare date for `to` includes that whole day.
func dateRange(c *gin.Context) (time.Time, time.Time, bool) {
	var from, to time.Time
	var err error
	if s := c.Query("from"); s != "" {
		if from, err = parseDate(s); err != nil {
			resp.BadRequest(c, "invalid from date")
			return from, to, false
		}
	}
	if s := c.Query("to"); s != "" {
		if to, err = parseDate(s); err != nil {
			resp.BadRequest(c, "invalid to date")
			return from, to, false
		}
		if len(s) == len("2006-01-02") {
			to = to.AddDate(0, 0, 1)
		}
	}
	return from, to, true
}

// pageParams reads ?page=&limit= with the same bounds the repositories apply.
func pageParams(c *gin.Context) (int, int) {
	page := utils.QueryInt(c, "page", 1)
	limit := utils.QueryInt(c, "limit", 20)
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	return page, limit
}
