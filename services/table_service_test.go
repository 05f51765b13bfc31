package services

import (
	"testing"

	"github.com/rajeshhitechvalley/Cfapp-sub001/entity"
	"github.com/rajeshhitechvalley/Cfapp-sub001/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableCRUD(t *testing.T) {
	f := newFixture(t)

	tbl, err := f.tables.Create(f.ctx, TableInput{Number: ptr(" T9 "), Capacity: ptr(6), Location: ptr("window")})
	require.NoError(t, err)
	assert.Equal(t, "T9", tbl.Number)
	assert.Equal(t, entity.TableAvailable, tbl.Status)

	_, err = f.tables.Create(f.ctx, TableInput{Number: ptr("T9"), Capacity: ptr(2)})
	assert.ErrorIs(t, err, ErrConflict)
	_, err = f.tables.Create(f.ctx, TableInput{Number: ptr("T10"), Capacity: ptr(0)})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = f.tables.Create(f.ctx, TableInput{Number: ptr("T10"), Capacity: ptr(2), Status: ptr("broken")})
	assert.ErrorIs(t, err, ErrValidation)

	tbl, err = f.tables.Update(f.ctx, tbl.ID, TableInput{Capacity: ptr(8), Status: ptr(entity.TableReserved)})
	require.NoError(t, err)
	assert.Equal(t, 8, tbl.Capacity)
	assert.Equal(t, entity.TableReserved, tbl.Status)

	reserved, err := f.tables.List(f.ctx, entity.TableReserved)
	require.NoError(t, err)
	require.Len(t, reserved, 1)
	assert.Equal(t, tbl.ID, reserved[0].ID)

	require.NoError(t, f.tables.Delete(f.ctx, tbl.ID))
	_, err = f.tables.Get(f.ctx, tbl.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	again, err := f.tables.Create(f.ctx, TableInput{Number: ptr("T9"), Capacity: ptr(4)})
	require.NoError(t, err, "a deleted table frees its number")
	assert.NotEqual(t, tbl.ID, again.ID)
	_, err = f.tables.Create(f.ctx, TableInput{Number: ptr("T9"), Capacity: ptr(4)})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestTableStatusGuardsActiveOrders(t *testing.T) {
	f := newFixture(t)
	o := f.dineIn(t)

	_, err := f.tables.SetStatus(f.ctx, f.table.ID, entity.TableAvailable)
	assert.ErrorIs(t, err, ErrConflict)
	assert.ErrorIs(t, f.tables.Delete(f.ctx, f.table.ID), ErrConflict)

	_, err = f.orders.Cancel(f.ctx, o.ID, "no show")
	require.NoError(t, err)

	f.pub.reset()
	tbl, err := f.tables.SetStatus(f.ctx, f.table.ID, entity.TableCleaning)
	require.NoError(t, err)
	assert.Equal(t, entity.TableCleaning, tbl.Status)
	assert.Equal(t, []string{events.TableStatusChanged}, f.pub.types())

	f.pub.reset()
	_, err = f.tables.SetStatus(f.ctx, f.table.ID, entity.TableCleaning)
	require.NoError(t, err)
	assert.Empty(t, f.pub.types(), "no event when nothing changed")

	_, err = f.tables.SetStatus(f.ctx, f.table.ID, "gone")
	assert.ErrorIs(t, err, ErrValidation)
}
