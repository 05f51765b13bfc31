package services

import (
	"fmt"
	"strings"

	"github.com/rajeshhitechvalley/Cfapp-sub001/entity"

	"github.com/shopspring/decimal"
)

const receiptWidth = 40

// RenderReceipt lays a bill out as fixed-width text.
func RenderReceipt(b *entity.Bill, currency string) string {
	var sb strings.Builder
	rule := strings.Repeat("-", receiptWidth) + "\n"

	line := func(label string, amount decimal.Decimal) {
		v := currency + " " + amount.StringFixed(2)
		fmt.Fprintf(&sb, "%-*s%s\n", receiptWidth-len(v), label, v)
	}

	fmt.Fprintf(&sb, "Bill: %s\n", b.BillNumber)
	if b.Order != nil {
		fmt.Fprintf(&sb, "Order: %s (%s)\n", b.Order.OrderNumber, b.Order.OrderType)
		if b.Order.Table != nil {
			fmt.Fprintf(&sb, "Table: %s\n", b.Order.Table.Number)
		}
		if b.Order.Customer != nil {
			fmt.Fprintf(&sb, "Customer: %s\n", b.Order.Customer.Name)
		}
	}
	fmt.Fprintf(&sb, "Date: %s\n", b.CreatedAt.Format("2006-01-02 15:04"))
	sb.WriteString(rule)

	if b.Order != nil {
		for _, it := range b.Order.Items {
			line(fmt.Sprintf("%d x %s", it.Quantity, truncate(it.Name, 22)), it.Total)
		}
		sb.WriteString(rule)
	}

	line("Subtotal", b.Subtotal)
	if b.TaxAmount.IsPositive() {
		label := "Tax"
		if b.Order != nil && b.Order.TaxName != "" {
			label = b.Order.TaxName
		}
		line(label, b.TaxAmount)
	}
	if b.ServiceCharge.IsPositive() {
		line("Service charge ("+b.ServiceChargePercent.String()+"%)", b.ServiceCharge)
	}
	if b.DiscountAmount.IsPositive() {
		line("Discount", b.DiscountAmount.Neg())
	}
	if b.LoyaltyDiscount.IsPositive() {
		line(fmt.Sprintf("Points redeemed (%d)", b.PointsRedeemed), b.LoyaltyDiscount.Neg())
	}
	sb.WriteString(rule)
	line("TOTAL", b.Total)

	switch b.Status {
	case entity.BillPaid:
		fmt.Fprintf(&sb, "Paid by %s\n", b.PaymentMethod)
		if b.PaymentMethod == entity.PayCash {
			line("Tendered", b.AmountTendered)
			line("Change", b.ChangeDue)
		}
		if b.PointsEarned > 0 {
			fmt.Fprintf(&sb, "Points earned: %d\n", b.PointsEarned)
		}
	case entity.BillVoid:
		sb.WriteString("*** VOID ***\n")
	default:
		sb.WriteString("UNPAID\n")
	}
	return sb.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}
