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

func TestGenerateBill(t *testing.T) {
	f := newFixture(t)
	o := f.dineIn(t)

	_, err := f.bills.Generate(f.ctx, o.ID, 2, GenerateBillInput{})
	assert.ErrorIs(t, err, ErrConflict, "order not served yet")

	f.serve(t, o.ID)
	b, err := f.bills.Generate(f.ctx, o.ID, 2, GenerateBillInput{})
	require.NoError(t, err)
	assert.Equal(t, repository.DailyPrefix("BILL", time.Now())+"0001", b.BillNumber)
	assert.Equal(t, entity.BillUnpaid, b.Status)
	assert.Equal(t, "250.00", b.Subtotal.StringFixed(2))
	assert.Equal(t, "12.50", b.TaxAmount.StringFixed(2))
	assert.Equal(t, "262.50", b.Total.StringFixed(2))
	require.NotNil(t, b.Order)
	assert.Len(t, b.Order.Items, 2)

	again, err := f.bills.Generate(f.ctx, o.ID, 2, GenerateBillInput{DiscountPercent: ptr(dec("10"))})
	require.NoError(t, err)
	assert.Equal(t, b.ID, again.ID, "unpaid bill is recomputed in place")
	assert.Equal(t, b.BillNumber, again.BillNumber)
	assert.Equal(t, "25.00", again.DiscountAmount.StringFixed(2))
	assert.Equal(t, "237.50", again.Total.StringFixed(2))

	withService, err := f.bills.Generate(f.ctx, o.ID, 2, GenerateBillInput{ServiceChargePercent: ptr(dec("10"))})
	require.NoError(t, err)
	assert.Equal(t, "25.00", withService.ServiceCharge.StringFixed(2))
	assert.Equal(t, "287.50", withService.Total.StringFixed(2))
	assert.True(t, withService.DiscountAmount.IsZero())
}

func TestGenerateBillValidation(t *testing.T) {
	f := newFixture(t)
	o := f.dineIn(t)
	f.serve(t, o.ID)
	c := f.newCustomer(t, "555-0100", 50)

	cases := []struct {
		name string
		in   GenerateBillInput
	}{
		{"both discounts", GenerateBillInput{DiscountAmount: ptr(dec("5")), DiscountPercent: ptr(dec("5"))}},
		{"discount above subtotal", GenerateBillInput{DiscountAmount: ptr(dec("250.01"))}},
		{"negative discount", GenerateBillInput{DiscountAmount: ptr(dec("-1"))}},
		{"percent above 100", GenerateBillInput{DiscountPercent: ptr(dec("101"))}},
		{"service charge above 100", GenerateBillInput{ServiceChargePercent: ptr(dec("150"))}},
		{"redeem without customer", GenerateBillInput{RedeemPoints: 10}},
		{"redeem above balance", GenerateBillInput{CustomerID: &c.ID, RedeemPoints: 51}},
		{"negative redeem", GenerateBillInput{CustomerID: &c.ID, RedeemPoints: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.bills.Generate(f.ctx, o.ID, 2, tc.in)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	var n int64
	f.db.Model(&entity.Bill{}).Count(&n)
	assert.Zero(t, n)
}

func TestPayBillCash(t *testing.T) {
	f := newFixture(t)
	o := f.dineIn(t)
	f.serve(t, o.ID)
	b, err := f.bills.Generate(f.ctx, o.ID, 2, GenerateBillInput{})
	require.NoError(t, err)

	_, err = f.bills.Pay(f.ctx, b.ID, 2, PayBillInput{PaymentMethod: "cheque"})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = f.bills.Pay(f.ctx, b.ID, 2, PayBillInput{PaymentMethod: entity.PayCash})
	assert.ErrorIs(t, err, ErrValidation, "cash needs an amount tendered")
	_, err = f.bills.Pay(f.ctx, b.ID, 2, PayBillInput{PaymentMethod: entity.PayCash, AmountTendered: ptr(dec("200"))})
	assert.ErrorIs(t, err, ErrValidation)

	f.pub.reset()
	paid, err := f.bills.Pay(f.ctx, b.ID, 2, PayBillInput{PaymentMethod: entity.PayCash, AmountTendered: ptr(dec("300"))})
	require.NoError(t, err)
	assert.Equal(t, entity.BillPaid, paid.Status)
	assert.Equal(t, "300.00", paid.AmountTendered.StringFixed(2))
	assert.Equal(t, "37.50", paid.ChangeDue.StringFixed(2))
	assert.NotNil(t, paid.PaidAt)
	assert.Zero(t, paid.PointsEarned, "no customer, no points")

	order, err := f.orders.Get(f.ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCompleted, order.Status)
	assert.NotNil(t, order.CompletedAt)
	assert.Equal(t, entity.TableAvailable, f.tableStatus(t, f.table.ID))
	assert.Equal(t, []string{events.BillPaid, events.OrderStatusChanged, events.TableStatusChanged}, f.pub.types())

	_, err = f.bills.Pay(f.ctx, b.ID, 2, PayBillInput{PaymentMethod: entity.PayCard})
	assert.ErrorIs(t, err, ErrConflict)
	_, err = f.bills.Void(f.ctx, b.ID)
	assert.ErrorIs(t, err, ErrConflict)
	_, err = f.bills.Generate(f.ctx, o.ID, 2, GenerateBillInput{})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestPayBillWithLoyalty(t *testing.T) {
	f := newFixture(t)
	c := f.newCustomer(t, "555-0101", 200)
	assert.Equal(t, entity.TierBronze, c.Tier)

	o := f.dineIn(t)
	f.serve(t, o.ID)
	b, err := f.bills.Generate(f.ctx, o.ID, 2, GenerateBillInput{CustomerID: &c.ID, RedeemPoints: 100})
	require.NoError(t, err)
	assert.Equal(t, "10.00", b.LoyaltyDiscount.StringFixed(2))
	assert.Equal(t, "252.50", b.Total.StringFixed(2))
	require.NotNil(t, b.Order.CustomerID)
	assert.Equal(t, c.ID, *b.Order.CustomerID, "customer is linked to the order")

	after, err := f.customers.Get(f.ctx, c.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 200, after.PointsBalance, "points move only on payment")

	paid, err := f.bills.Pay(f.ctx, b.ID, 2, PayBillInput{PaymentMethod: entity.PayCard})
	require.NoError(t, err)
	assert.EqualValues(t, 25, paid.PointsEarned)
	assert.Equal(t, "252.50", paid.AmountTendered.StringFixed(2))

	after, err = f.customers.Get(f.ctx, c.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 125, after.PointsBalance)
	assert.EqualValues(t, 25, after.LifetimePoints, "manual adjustments do not count toward lifetime")
	assert.Equal(t, "252.50", after.TotalSpent.StringFixed(2))
	assert.Equal(t, 1, after.Visits)

	info, err := f.customers.LoyaltyInfo(f.ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, info.Transactions, 3)
	assert.Equal(t, entity.LoyaltyEarn, info.Transactions[0].Type)
	assert.EqualValues(t, 125, info.Transactions[0].BalanceAfter)
	assert.Equal(t, entity.LoyaltyRedeem, info.Transactions[1].Type)
	assert.EqualValues(t, -100, info.Transactions[1].Points)
	assert.Equal(t, entity.LoyaltyAdjust, info.Transactions[2].Type)
	assert.Equal(t, "12.50", info.RedeemValue)
	assert.Equal(t, entity.TierSilver, info.NextTier)
	assert.EqualValues(t, 375, info.PointsToNext)
}

func TestRedemptionCappedBeforeDiscount(t *testing.T) {
	f := newFixture(t)
	c := f.newCustomer(t, "555-0103", 3000)
	o := f.dineIn(t)
	f.serve(t, o.ID)

	// 300.00 worth of points is more than 262.50 before any discount
	_, err := f.bills.Generate(f.ctx, o.ID, 2, GenerateBillInput{
		CustomerID: &c.ID, RedeemPoints: 3000, DiscountAmount: ptr(dec("200")),
	})
	assert.ErrorIs(t, err, ErrValidation)

	// 100.00 fits under 262.50 even though only 62.50 is left after the discount
	b, err := f.bills.Generate(f.ctx, o.ID, 2, GenerateBillInput{
		CustomerID: &c.ID, RedeemPoints: 1000, DiscountAmount: ptr(dec("200")),
	})
	require.NoError(t, err)
	assert.Equal(t, "200.00", b.DiscountAmount.StringFixed(2))
	assert.Equal(t, "100.00", b.LoyaltyDiscount.StringFixed(2))
	assert.Equal(t, "0.00", b.Total.StringFixed(2), "total is floored at zero")

	paid, err := f.bills.Pay(f.ctx, b.ID, 2, PayBillInput{PaymentMethod: entity.PayCard})
	require.NoError(t, err)
	assert.Zero(t, paid.PointsEarned)

	after, err := f.customers.Get(f.ctx, c.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2000, after.PointsBalance)
}

func TestPayBillFailsWhenPointsWereSpentMeanwhile(t *testing.T) {
	f := newFixture(t)
	c := f.newCustomer(t, "555-0102", 200)
	o := f.dineIn(t)
	f.serve(t, o.ID)

	b, err := f.bills.Generate(f.ctx, o.ID, 2, GenerateBillInput{CustomerID: &c.ID, RedeemPoints: 150})
	require.NoError(t, err)
	_, err = f.customers.Adjust(f.ctx, c.ID, AdjustPointsInput{Points: -100, Note: "correction"})
	require.NoError(t, err)

	_, err = f.bills.Pay(f.ctx, b.ID, 2, PayBillInput{PaymentMethod: entity.PayCard})
	assert.ErrorIs(t, err, ErrConflict)

	got, err := f.bills.Get(f.ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BillUnpaid, got.Status, "payment rolled back")
	assert.Equal(t, entity.OrderServed, got.Order.Status)
	assert.Equal(t, entity.TableOccupied, f.tableStatus(t, f.table.ID))
}

func TestVoidBill(t *testing.T) {
	f := newFixture(t)
	o := f.dineIn(t)
	f.serve(t, o.ID)

	b, err := f.bills.Generate(f.ctx, o.ID, 2, GenerateBillInput{})
	require.NoError(t, err)
	voided, err := f.bills.Void(f.ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BillVoid, voided.Status)

	_, err = f.bills.Pay(f.ctx, b.ID, 2, PayBillInput{PaymentMethod: entity.PayCard})
	assert.ErrorIs(t, err, ErrConflict)

	next, err := f.bills.Generate(f.ctx, o.ID, 2, GenerateBillInput{})
	require.NoError(t, err)
	assert.NotEqual(t, b.ID, next.ID, "a voided bill is not reused")
	assert.Equal(t, repository.DailyPrefix("BILL", time.Now())+"0002", next.BillNumber)

	unpaid, total, err := f.bills.List(f.ctx, repository.BillFilter{Status: entity.BillUnpaid})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, next.ID, unpaid[0].ID)

	_, _, err = f.bills.List(f.ctx, repository.BillFilter{Status: "lost"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestBillReceipt(t *testing.T) {
	f := newFixture(t)
	o := f.dineIn(t)
	f.serve(t, o.ID)
	b, err := f.bills.Generate(f.ctx, o.ID, 2, GenerateBillInput{DiscountAmount: ptr(dec("12.50"))})
	require.NoError(t, err)

	text, err := f.bills.Receipt(f.ctx, b.ID)
	require.NoError(t, err)
	assert.Contains(t, text, "Bill: "+b.BillNumber)
	assert.Contains(t, text, "Table: T1")
	assert.Contains(t, text, "2 x Burger")
	assert.Contains(t, text, "GST 5%")
	assert.Contains(t, text, "INR -12.50")
	assert.Contains(t, text, "INR 250.00")
	assert.Contains(t, text, "UNPAID")

	_, err = f.bills.Pay(f.ctx, b.ID, 2, PayBillInput{PaymentMethod: entity.PayCash, AmountTendered: ptr(dec("300"))})
	require.NoError(t, err)
	text, err = f.bills.Receipt(f.ctx, b.ID)
	require.NoError(t, err)
	assert.Contains(t, text, "Paid by cash")
	assert.Contains(t, text, "INR 50.00")
}
