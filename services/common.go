package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/rajeshhitechvalley/Cfapp-sub001/entity"
	"github.com/rajeshhitechvalley/Cfapp-sub001/pkg/events"
	"github.com/rajeshhitechvalley/Cfapp-sub001/pkg/logger"
	"github.com/rajeshhitechvalley/Cfapp-sub001/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var hundred = decimal.NewFromInt(100)

// numberAttempts bounds retries when two writers grab the same daily number.
const numberAttempts = 5

type notifier struct {
	pub events.Publisher
	log *logger.Logger
}

// publish never fails the caller; broker trouble is only logged.
func (n notifier) publish(ctx context.Context, evs ...events.Event) {
	if n.pub == nil {
		return
	}
	for _, ev := range evs {
		if ev.At.IsZero() {
			ev.At = time.Now()
		}
		if err := n.pub.Publish(ctx, ev); err != nil {
			n.log.Error(ctx, "publish_event", "event publish failed", err,
				slog.String("type", ev.Type), slog.Uint64("order_id", uint64(ev.OrderID)))
		}
	}
}

func orderEvent(kind string, o *entity.Order) events.Event {
	return events.Event{
		Type:        kind,
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		Status:      o.Status,
		TableID:     o.TableID,
	}
}

func tableEvent(tableID uint, status string) events.Event {
	id := tableID
	return events.Event{Type: events.TableStatusChanged, TableID: &id, Status: status}
}

// releaseTable frees a table once no active order is left on it.
func releaseTable(ctx context.Context, tables *repository.TableRepository, tableID *uint, orderID uint) (bool, error) {
	if tableID == nil {
		return false, nil
	}
	n, err := tables.CountActiveOrders(ctx, *tableID, orderID)
	if err != nil || n > 0 {
		return false, err
	}
	return true, tables.SetStatus(ctx, *tableID, entity.TableAvailable)
}

func isDuplicate(err error) bool {
	return err != nil && errors.Is(err, gorm.ErrDuplicatedKey)
}

func percentOf(amount, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct).Div(hundred).Round(2)
}

// dayBounds returns the local calendar day of t as a UTC [start, end) range.
func dayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start.UTC(), start.AddDate(0, 0, 1).UTC()
}
