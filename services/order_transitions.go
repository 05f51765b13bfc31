package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/rajeshhitechvalley/Cfapp-sub001/entity"
	"github.com/rajeshhitechvalley/Cfapp-sub001/pkg/events"
	"github.com/rajeshhitechvalley/Cfapp-sub001/repository"

	"gorm.io/gorm"
)

// Transition moves an order one step along its lifecycle. Completion is
// reserved for bill payment.
func (s *OrderService) Transition(ctx context.Context, orderID uint, to, reason string) (*entity.Order, error) {
	if !entity.ValidOrderStatus(to) {
		return nil, invalid("unknown order status %q", to)
	}
	if to == entity.OrderCompleted {
		return nil, invalid("orders are completed by paying their bill")
	}
	reason = strings.TrimSpace(reason)
	if to == entity.OrderCancelled && reason == "" {
		return nil, invalid("a cancel reason is required")
	}

	var order *entity.Order
	var freed bool
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		order, freed, err = moveOrder(ctx, s.Repo.WithTx(tx), s.Tables.WithTx(tx), orderID, to, reason, s.Now())
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "order_status", "order status changed",
		slog.Uint64("order_id", uint64(orderID)), slog.String("status", to))
	evs := []events.Event{orderEvent(events.OrderStatusChanged, order)}
	if freed {
		evs = append(evs, tableEvent(*order.TableID, entity.TableAvailable))
	}
	s.publish(ctx, evs...)
	return s.Get(ctx, orderID)
}

// Shortcuts used by the kitchen and floor staff.
func (s *OrderService) StartPreparing(ctx context.Context, id uint) (*entity.Order, error) {
	return s.Transition(ctx, id, entity.OrderPreparing, "")
}
func (s *OrderService) MarkReady(ctx context.Context, id uint) (*entity.Order, error) {
	return s.Transition(ctx, id, entity.OrderReady, "")
}
func (s *OrderService) MarkServed(ctx context.Context, id uint) (*entity.Order, error) {
	return s.Transition(ctx, id, entity.OrderServed, "")
}
func (s *OrderService) Cancel(ctx context.Context, id uint, reason string) (*entity.Order, error) {
	return s.Transition(ctx, id, entity.OrderCancelled, reason)
}

// moveOrder runs one guarded transition inside tx and releases the table when
// the order leaves the active set. It reports whether the table was freed.
func moveOrder(ctx context.Context, repo *repository.OrderRepository, tables *repository.TableRepository,
	orderID uint, to, reason string, now time.Time) (*entity.Order, bool, error) {
	o, err := repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, false, dbErr(err, "order")
	}
	if !entity.CanTransitionOrder(o.Status, to) {
		return nil, false, fmtTransition(o.Status, to)
	}

	at := now.UTC()
	extra := map[string]any{entity.StatusTimestampColumn(to): at}
	if to == entity.OrderCancelled {
		extra["cancel_reason"] = reason
	}
	affected, err := repo.UpdateStatusGuard(ctx, o.ID, o.Status, to, extra)
	if err != nil {
		return nil, false, err
	}
	if affected == 0 {
		return nil, false, conflict("order %s changed concurrently", o.OrderNumber)
	}
	o.Status = to

	if entity.IsActiveOrderStatus(to) {
		return o, false, nil
	}
	freed, err := releaseTable(ctx, tables, o.TableID, o.ID)
	return o, freed, err
}
