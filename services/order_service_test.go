package services

import (
	"testing"
	"time"

	"github.com/rajeshhitechvalley/Cfapp-sub001/entity"
	"github.com/rajeshhitechvalley/Cfapp-sub001/pkg/events"
	"github.com/rajeshhitechvalley/Cfapp-sub001/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDineInOrder(t *testing.T) {
	f := newFixture(t)

	o := f.dineIn(t)
	prefix := repository.DailyPrefix("ORD", time.Now())
	assert.Equal(t, prefix+"0001", o.OrderNumber)
	assert.Equal(t, entity.OrderPending, o.Status)
	require.Len(t, o.Items, 2)
	assert.Equal(t, "Burger", o.Items[0].Name)
	assert.Equal(t, "200.00", o.Items[0].Total.StringFixed(2))
	assert.Equal(t, "250.00", o.Subtotal.StringFixed(2))
	assert.Equal(t, "12.50", o.TaxAmount.StringFixed(2))
	assert.Equal(t, "262.50", o.Total.StringFixed(2))
	assert.Equal(t, "GST 5%", o.TaxName)
	assert.Equal(t, entity.TableOccupied, f.tableStatus(t, f.table.ID))
	assert.Equal(t, []string{events.OrderCreated, events.TableStatusChanged}, f.pub.types())

	f.pub.reset()
	second := f.dineIn(t)
	assert.Equal(t, prefix+"0002", second.OrderNumber)
	assert.Equal(t, []string{events.OrderCreated}, f.pub.types(), "table was already occupied")
}

func TestCreateOrderSnapshotsMenuPrice(t *testing.T) {
	f := newFixture(t)
	o := f.dineIn(t)

	require.NoError(t, f.db.Model(&f.burger).Update("price", dec("999")).Error)

	got, err := f.orders.Get(f.ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "100.00", got.Items[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "262.50", got.Total.StringFixed(2))
}

func TestCreateTakeawayOrder(t *testing.T) {
	f := newFixture(t)

	o, err := f.orders.Create(f.ctx, 1, CreateOrderInput{
		OrderType: entity.OrderTakeaway,
		TableID:   &f.table.ID,
		Items:     []OrderItemInput{{MenuItemID: f.fries.ID, Quantity: 3, Notes: "  extra salt "}},
	})
	require.NoError(t, err)
	assert.Nil(t, o.TableID)
	assert.Equal(t, "extra salt", o.Items[0].Notes)
	assert.Equal(t, "157.50", o.Total.StringFixed(2))
	assert.Equal(t, entity.TableAvailable, f.tableStatus(t, f.table.ID))
}

func TestCreateOrderValidation(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.db.Model(&f.patio).Update("status", entity.TableCleaning).Error)
	missing := uint(9999)

	cases := []struct {
		name string
		in   CreateOrderInput
		want error
	}{
		{"no items", CreateOrderInput{TableID: &f.table.ID}, ErrValidation},
		{"dine in without table", CreateOrderInput{Items: []OrderItemInput{{MenuItemID: f.burger.ID, Quantity: 1}}}, ErrValidation},
		{"bad type", CreateOrderInput{OrderType: "delivery", Items: []OrderItemInput{{MenuItemID: f.burger.ID, Quantity: 1}}}, ErrValidation},
		{"zero quantity", CreateOrderInput{TableID: &f.table.ID, Items: []OrderItemInput{{MenuItemID: f.burger.ID}}}, ErrValidation},
		{"unavailable item", CreateOrderInput{TableID: &f.table.ID, Items: []OrderItemInput{{MenuItemID: f.special.ID, Quantity: 1}}}, ErrValidation},
		{"unknown item", CreateOrderInput{TableID: &f.table.ID, Items: []OrderItemInput{{MenuItemID: missing, Quantity: 1}}}, ErrNotFound},
		{"unknown table", CreateOrderInput{TableID: &missing, Items: []OrderItemInput{{MenuItemID: f.burger.ID, Quantity: 1}}}, ErrNotFound},
		{"table being cleaned", CreateOrderInput{TableID: &f.patio.ID, Items: []OrderItemInput{{MenuItemID: f.burger.ID, Quantity: 1}}}, ErrConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.orders.Create(f.ctx, 1, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	var n int64
	f.db.Model(&entity.Order{}).Count(&n)
	assert.Zero(t, n)
	assert.Equal(t, entity.TableAvailable, f.tableStatus(t, f.table.ID), "failed create leaves the table alone")
}

func TestOrderLifecycle(t *testing.T) {
	f := newFixture(t)
	o := f.dineIn(t)

	_, err := f.orders.Transition(f.ctx, o.ID, entity.OrderReady, "")
	assert.ErrorIs(t, err, ErrInvalidTransition, "cannot skip preparing")

	_, err = f.orders.Transition(f.ctx, o.ID, entity.OrderCompleted, "")
	assert.ErrorIs(t, err, ErrValidation, "completion only via payment")

	_, err = f.orders.Transition(f.ctx, o.ID, "eaten", "")
	assert.ErrorIs(t, err, ErrValidation)

	f.serve(t, o.ID)
	got, err := f.orders.Get(f.ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderServed, got.Status)
	assert.NotNil(t, got.PreparingAt)
	assert.NotNil(t, got.ReadyAt)
	assert.NotNil(t, got.ServedAt)
	assert.Nil(t, got.CompletedAt)
	assert.Equal(t, entity.TableOccupied, f.tableStatus(t, f.table.ID), "served orders still hold the table")

	_, err = f.orders.Cancel(f.ctx, o.ID, "changed mind")
	assert.ErrorIs(t, err, ErrInvalidTransition, "served orders cannot be cancelled")
}

func TestCancelReleasesTable(t *testing.T) {
	f := newFixture(t)
	first := f.dineIn(t)
	second := f.dineIn(t)

	_, err := f.orders.Cancel(f.ctx, first.ID, "   ")
	assert.ErrorIs(t, err, ErrValidation, "reason required")

	got, err := f.orders.Cancel(f.ctx, first.ID, "guest left")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCancelled, got.Status)
	assert.Equal(t, "guest left", got.CancelReason)
	assert.NotNil(t, got.CancelledAt)
	assert.Equal(t, entity.TableOccupied, f.tableStatus(t, f.table.ID), "second order keeps the table")

	f.pub.reset()
	_, err = f.orders.StartPreparing(f.ctx, second.ID)
	require.NoError(t, err)
	_, err = f.orders.Cancel(f.ctx, second.ID, "kitchen closed")
	require.NoError(t, err)
	assert.Equal(t, entity.TableAvailable, f.tableStatus(t, f.table.ID))
	assert.Equal(t, []string{events.OrderStatusChanged, events.OrderStatusChanged, events.TableStatusChanged}, f.pub.types())
}

func TestOrderItemEdits(t *testing.T) {
	f := newFixture(t)
	o := f.dineIn(t)

	got, err := f.orders.AddItem(f.ctx, o.ID, OrderItemInput{MenuItemID: f.fries.ID, Quantity: 1})
	require.NoError(t, err)
	require.Len(t, got.Items, 3)
	assert.Equal(t, "300.00", got.Subtotal.StringFixed(2))
	assert.Equal(t, "315.00", got.Total.StringFixed(2))

	burgerLine := got.Items[0].ID
	got, err = f.orders.UpdateItem(f.ctx, o.ID, burgerLine, UpdateOrderItemInput{Quantity: ptr(1), Notes: ptr("no onion")})
	require.NoError(t, err)
	assert.Equal(t, 1, got.Items[0].Quantity)
	assert.Equal(t, "no onion", got.Items[0].Notes)
	assert.Equal(t, "200.00", got.Subtotal.StringFixed(2))
	assert.Equal(t, "210.00", got.Total.StringFixed(2))

	_, err = f.orders.UpdateItem(f.ctx, o.ID, burgerLine, UpdateOrderItemInput{})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = f.orders.UpdateItem(f.ctx, o.ID, 9999, UpdateOrderItemInput{Quantity: ptr(2)})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.orders.AddItem(f.ctx, o.ID, OrderItemInput{MenuItemID: f.special.ID, Quantity: 1})
	assert.ErrorIs(t, err, ErrValidation)

	got, err = f.orders.RemoveItem(f.ctx, o.ID, got.Items[2].ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	got, err = f.orders.RemoveItem(f.ctx, o.ID, got.Items[1].ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "105.00", got.Total.StringFixed(2))

	_, err = f.orders.RemoveItem(f.ctx, o.ID, got.Items[0].ID)
	assert.ErrorIs(t, err, ErrConflict, "an order keeps at least one item")

	_, err = f.orders.StartPreparing(f.ctx, o.ID)
	require.NoError(t, err)
	_, err = f.orders.AddItem(f.ctx, o.ID, OrderItemInput{MenuItemID: f.fries.ID, Quantity: 1})
	assert.NoError(t, err, "kitchen can still take additions")
	_, err = f.orders.UpdateItem(f.ctx, o.ID, burgerLine, UpdateOrderItemInput{Quantity: ptr(3)})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = f.orders.MarkReady(f.ctx, o.ID)
	require.NoError(t, err)
	_, err = f.orders.AddItem(f.ctx, o.ID, OrderItemInput{MenuItemID: f.fries.ID, Quantity: 1})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestListOrders(t *testing.T) {
	f := newFixture(t)
	first := f.dineIn(t)
	f.dineIn(t)
	_, err := f.orders.StartPreparing(f.ctx, first.ID)
	require.NoError(t, err)

	all, total, err := f.orders.List(f.ctx, repository.OrderFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, all, 2)
	assert.Greater(t, all[0].ID, all[1].ID, "newest first")

	preparing, total, err := f.orders.List(f.ctx, repository.OrderFilter{Status: entity.OrderPreparing})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, first.ID, preparing[0].ID)

	_, _, err = f.orders.List(f.ctx, repository.OrderFilter{Status: "lost"})
	assert.ErrorIs(t, err, ErrValidation)
}
