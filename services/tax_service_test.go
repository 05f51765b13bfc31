package services

import (
	"testing"

	"github.com/rajeshhitechvalley/Cfapp-sub001/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaxSingleActive(t *testing.T) {
	f := newFixture(t)
	svc := NewTaxService(f.db, nil)

	vat, err := svc.Create(f.ctx, TaxInput{Name: ptr("VAT 12%"), Type: ptr(entity.TaxPercentage), Rate: ptr(dec("12")), IsActive: ptr(true)})
	require.NoError(t, err)

	active, err := svc.Active(f.ctx)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, vat.ID, active.ID)

	old, err := svc.Get(f.ctx, f.tax.ID)
	require.NoError(t, err)
	assert.False(t, old.IsActive, "creating an active tax deactivates the previous one")

	_, err = svc.Activate(f.ctx, f.tax.ID)
	require.NoError(t, err)
	active, err = svc.Active(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, f.tax.ID, active.ID)

	_, err = svc.Deactivate(f.ctx, f.tax.ID)
	require.NoError(t, err)
	active, err = svc.Active(f.ctx)
	require.NoError(t, err)
	assert.Nil(t, active)

	o, err := f.orders.Create(f.ctx, 1, CreateOrderInput{
		OrderType: entity.OrderTakeaway,
		Items:     []OrderItemInput{{MenuItemID: f.burger.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.True(t, o.TaxAmount.IsZero(), "no active tax means no tax")
	assert.Equal(t, "100.00", o.Total.StringFixed(2))
}

func TestTaxValidation(t *testing.T) {
	f := newFixture(t)
	svc := NewTaxService(f.db, nil)

	_, err := svc.Create(f.ctx, TaxInput{Name: ptr("x"), Type: ptr("flat")})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.Create(f.ctx, TaxInput{Name: ptr("x"), Type: ptr(entity.TaxPercentage)})
	assert.ErrorIs(t, err, ErrValidation, "percentage needs a rate")
	_, err = svc.Create(f.ctx, TaxInput{Name: ptr("x"), Type: ptr(entity.TaxPercentage), Rate: ptr(dec("120"))})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.Update(f.ctx, f.tax.ID, TaxInput{Rate: ptr(dec("-1"))})
	assert.ErrorIs(t, err, ErrValidation)

	free, err := svc.Create(f.ctx, TaxInput{Name: ptr("Exempt"), Type: ptr(entity.TaxFree)})
	require.NoError(t, err)
	assert.False(t, free.IsActive)

	require.NoError(t, svc.Delete(f.ctx, free.ID))
	assert.ErrorIs(t, svc.Delete(f.ctx, free.ID), ErrNotFound)
}
