package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCanTransitionOrder(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{OrderPending, OrderPreparing, true},
		{OrderPending, OrderCancelled, true},
		{OrderPreparing, OrderReady, true},
		{OrderPreparing, OrderCancelled, true},
		{OrderReady, OrderServed, true},
		{OrderServed, OrderCompleted, true},
		{OrderPending, OrderReady, false},
		{OrderReady, OrderCancelled, false},
		{OrderServed, OrderCancelled, false},
		{OrderCompleted, OrderPending, false},
		{OrderCancelled, OrderPreparing, false},
	}
	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransitionOrder(tt.from, tt.to))
		})
	}
}

func TestLoyaltyTier(t *testing.T) {
	tests := []struct {
		points int64
		want   string
	}{
		{0, TierStandard},
		{99, TierStandard},
		{100, TierBronze},
		{499, TierBronze},
		{500, TierSilver},
		{999, TierSilver},
		{1000, TierGold},
		{25000, TierGold},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LoyaltyTier(tt.points), "points=%d", tt.points)
	}
}

func TestTaxSettingCompute(t *testing.T) {
	subtotal := decimal.RequireFromString("333.33")

	pct := &TaxSetting{Name: "GST", Type: TaxPercentage, Rate: decimal.NewFromInt(5)}
	assert.Equal(t, "16.67", pct.Compute(subtotal).StringFixed(2))
	assert.Equal(t, "5", pct.EffectiveRate().String())

	free := &TaxSetting{Name: "Exempt", Type: TaxFree, Rate: decimal.NewFromInt(18)}
	assert.True(t, free.Compute(subtotal).IsZero())
	assert.True(t, free.EffectiveRate().IsZero())

	var none *TaxSetting
	assert.True(t, none.Compute(subtotal).IsZero())
}

func TestOrderRecalculate(t *testing.T) {
	o := &Order{Items: []OrderItem{
		{UnitPrice: decimal.RequireFromString("120.50"), Quantity: 2},
		{UnitPrice: decimal.RequireFromString("45"), Quantity: 1},
	}}
	o.Recalculate(&TaxSetting{Name: "GST", Type: TaxPercentage, Rate: decimal.NewFromInt(10)})

	assert.Equal(t, "241.00", o.Items[0].Total.StringFixed(2))
	assert.Equal(t, "286.00", o.Subtotal.StringFixed(2))
	assert.Equal(t, "28.60", o.TaxAmount.StringFixed(2))
	assert.Equal(t, "314.60", o.Total.StringFixed(2))
	assert.Equal(t, "GST", o.TaxName)

	o.Recalculate(nil)
	assert.Equal(t, "286.00", o.Total.StringFixed(2))
	assert.Equal(t, "", o.TaxName)
}

func TestReservationWindow(t *testing.T) {
	at := time.Date(2026, 10, 19, 19, 0, 0, 0, time.UTC)
	r := Reservation{ReservedAt: at}

	assert.Equal(t, at.Add(90*time.Minute), r.EndsAt())
	assert.True(t, r.Overlaps(at.Add(89*time.Minute), at.Add(3*time.Hour)))
	assert.False(t, r.Overlaps(at.Add(90*time.Minute), at.Add(3*time.Hour)))
	assert.False(t, r.Overlaps(at.Add(-time.Hour), at))
}

func TestCanTransitionReservation(t *testing.T) {
	assert.True(t, CanTransitionReservation(ReservationPending, ReservationConfirmed))
	assert.True(t, CanTransitionReservation(ReservationConfirmed, ReservationSeated))
	assert.True(t, CanTransitionReservation(ReservationSeated, ReservationCompleted))
	assert.False(t, CanTransitionReservation(ReservationSeated, ReservationCancelled))
	assert.False(t, CanTransitionReservation(ReservationCompleted, ReservationSeated))
}

func TestValidators(t *testing.T) {
	assert.True(t, ValidRole(RoleKitchen))
	assert.False(t, ValidRole("customer"))
	assert.True(t, ValidTableStatus(TableCleaning))
	assert.False(t, ValidTableStatus("broken"))
	assert.True(t, ValidPaymentMethod(PayMobile))
	assert.False(t, ValidPaymentMethod("cheque"))
	assert.True(t, IsActiveOrderStatus(OrderServed))
	assert.False(t, IsActiveOrderStatus(OrderCompleted))
}
