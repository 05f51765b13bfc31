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

type BillSettings struct {
	ServiceChargePercent decimal.Decimal
	Currency             string
	Loyalty              Loyalty
}

type BillService struct {
	DB        *gorm.DB
	Repo      *repository.BillRepository
	Orders    *repository.OrderRepository
	Tables    *repository.TableRepository
	Customers *repository.CustomerRepository
	Settings  BillSettings
	Now       func() time.Time
	notifier
}

func NewBillService(db *gorm.DB, settings BillSettings, pub events.Publisher, log *logger.Logger) *BillService {
	if log == nil {
		log = logger.Nop()
	}
	if settings.Currency == "" {
		settings.Currency = "INR"
	}
	return &BillService{
		DB:        db,
		Repo:      repository.NewBillRepository(db),
		Orders:    repository.NewOrderRepository(db),
		Tables:    repository.NewTableRepository(db),
		Customers: repository.NewCustomerRepository(db),
		Settings:  settings,
		Now:       time.Now,
		notifier:  notifier{pub: pub, log: log},
	}
}

type GenerateBillInput struct {
	DiscountAmount       *decimal.Decimal `json:"discountAmount"`
	DiscountPercent      *decimal.Decimal `json:"discountPercent"`
	ServiceChargePercent *decimal.Decimal `json:"serviceChargePercent"`
	CustomerID           *uint            `json:"customerId"`
	RedeemPoints         int64            `json:"redeemPoints"`
}

type PayBillInput struct {
	PaymentMethod  string           `json:"paymentMethod"`
	AmountTendered *decimal.Decimal `json:"amountTendered"`
}

// ----- Generate -----

// Generate bills a served order. An unpaid bill for the order is recomputed in place.
func (s *BillService) Generate(ctx context.Context, orderID, cashierID uint, in GenerateBillInput) (*entity.Bill, error) {
	if in.DiscountAmount != nil && in.DiscountPercent != nil {
		return nil, invalid("give discountAmount or discountPercent, not both")
	}
	if in.RedeemPoints < 0 {
		return nil, invalid("redeemPoints cannot be negative")
	}

	var bill *entity.Bill
	var err error
	for attempt := 0; attempt < numberAttempts; attempt++ {
		bill, err = s.generate(ctx, orderID, cashierID, in)
		if !isDuplicate(err) {
			break
		}
	}
	if err != nil {
		return nil, dbErr(err, "bill")
	}

	s.log.Info(ctx, "bill_generate", "bill generated",
		slog.Uint64("bill_id", uint64(bill.ID)), slog.String("bill_number", bill.BillNumber),
		slog.String("total", bill.Total.StringFixed(2)))
	return s.Get(ctx, bill.ID)
}

func (s *BillService) generate(ctx context.Context, orderID, cashierID uint, in GenerateBillInput) (*entity.Bill, error) {
	var bill *entity.Bill
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.Repo.WithTx(tx)
		orders := s.Orders.WithTx(tx)

		order, err := orders.FindByID(ctx, orderID)
		if err != nil {
			return dbErr(err, "order")
		}
		if order.Status != entity.OrderServed {
			return conflict("order %s is %s; only served orders can be billed", order.OrderNumber, order.Status)
		}

		existing, err := repo.OpenForOrder(ctx, order.ID)
		if err != nil {
			return err
		}
		if existing != nil && existing.Status == entity.BillPaid {
			return conflict("order %s is already paid", order.OrderNumber)
		}

		customerID := order.CustomerID
		if in.CustomerID != nil {
			customerID = in.CustomerID
		}
		var customer *entity.Customer
		if customerID != nil {
			customer, err = s.Customers.WithTx(tx).FindByID(ctx, *customerID)
			if err != nil {
				return dbErr(err, "customer")
			}
			if order.CustomerID == nil || *order.CustomerID != customer.ID {
				if err := orders.Update(ctx, order.ID, map[string]any{"customer_id": customer.ID}); err != nil {
					return err
				}
			}
		}

		b := existing
		if b == nil {
			number, err := repo.NextNumber(ctx, s.Now())
			if err != nil {
				return err
			}
			b = &entity.Bill{BillNumber: number, Status: entity.BillUnpaid, OrderID: order.ID}
		}
		b.CashierID = cashierID
		b.CustomerID = customerID
		if err := s.price(b, order, customer, in); err != nil {
			return err
		}

		if b.ID == 0 {
			err = repo.Create(ctx, b)
		} else {
			err = repo.Save(ctx, b)
		}
		bill = b
		return err
	})
	return bill, err
}

// price fills the money fields of b from the order and the requested adjustments.
func (s *BillService) price(b *entity.Bill, order *entity.Order, customer *entity.Customer, in GenerateBillInput) error {
	subtotal := order.Subtotal

	discount := decimal.Zero
	switch {
	case in.DiscountPercent != nil:
		if in.DiscountPercent.IsNegative() || in.DiscountPercent.GreaterThan(hundred) {
			return invalid("discountPercent must be between 0 and 100")
		}
		discount = percentOf(subtotal, *in.DiscountPercent)
	case in.DiscountAmount != nil:
		if in.DiscountAmount.IsNegative() {
			return invalid("discountAmount cannot be negative")
		}
		discount = in.DiscountAmount.Round(2)
	}
	if discount.GreaterThan(subtotal) {
		return invalid("discount cannot exceed the subtotal")
	}

	servicePct := s.Settings.ServiceChargePercent
	if in.ServiceChargePercent != nil {
		servicePct = *in.ServiceChargePercent
	}
	if servicePct.IsNegative() || servicePct.GreaterThan(hundred) {
		return invalid("serviceChargePercent must be between 0 and 100")
	}
	service := percentOf(subtotal, servicePct)

	gross := subtotal.Add(order.TaxAmount).Add(service)

	loyaltyDiscount := decimal.Zero
	if in.RedeemPoints > 0 {
		if customer == nil {
			return invalid("redeeming points needs a customer")
		}
		if in.RedeemPoints > customer.PointsBalance {
			return invalid("customer has only %d points", customer.PointsBalance)
		}
		loyaltyDiscount = s.Settings.Loyalty.Value(in.RedeemPoints)
		if loyaltyDiscount.GreaterThan(gross) {
			return invalid("redeemed points exceed the amount payable")
		}
	}

	total := gross.Sub(discount).Sub(loyaltyDiscount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	b.Subtotal = subtotal
	b.TaxAmount = order.TaxAmount
	b.DiscountAmount = discount
	b.ServiceChargePercent = servicePct.Round(2)
	b.ServiceCharge = service
	b.PointsRedeemed = in.RedeemPoints
	b.LoyaltyDiscount = loyaltyDiscount
	b.Total = total.Round(2)
	return nil
}

// ----- Pay -----

// Pay settles an unpaid bill. The order completes, the table is released and
// the customer's points and spend are updated in the same transaction.
func (s *BillService) Pay(ctx context.Context, billID, cashierID uint, in PayBillInput) (*entity.Bill, error) {
	if !entity.ValidPaymentMethod(in.PaymentMethod) {
		return nil, invalid("paymentMethod must be cash, card or mobile")
	}

	var bill *entity.Bill
	var order *entity.Order
	var freed bool
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.Repo.WithTx(tx)
		b, err := repo.FindByID(ctx, billID)
		if err != nil {
			return dbErr(err, "bill")
		}
		if b.Status != entity.BillUnpaid {
			return conflict("bill %s is %s", b.BillNumber, b.Status)
		}

		tendered := b.Total
		change := decimal.Zero
		if in.PaymentMethod == entity.PayCash {
			if in.AmountTendered == nil {
				return invalid("amountTendered is required for cash")
			}
			if in.AmountTendered.LessThan(b.Total) {
				return invalid("amountTendered %s is less than the total %s",
					in.AmountTendered.StringFixed(2), b.Total.StringFixed(2))
			}
			tendered = in.AmountTendered.Round(2)
			change = tendered.Sub(b.Total)
		}

		var earned int64
		if b.CustomerID != nil {
			earned = s.Settings.Loyalty.PointsFor(b.Total)
		}

		now := s.Now().UTC()
		affected, err := repo.MarkPaidGuard(ctx, b.ID, map[string]any{
			"payment_method":  in.PaymentMethod,
			"amount_tendered": tendered,
			"change_due":      change,
			"paid_at":         now,
			"points_earned":   earned,
			"cashier_id":      cashierID,
		})
		if err != nil {
			return err
		}
		if affected == 0 {
			return conflict("bill %s changed concurrently", b.BillNumber)
		}

		order, freed, err = moveOrder(ctx, s.Orders.WithTx(tx), s.Tables.WithTx(tx), b.OrderID, entity.OrderCompleted, "", now)
		if err != nil {
			return err
		}

		if b.CustomerID != nil {
			if err := s.settleLoyalty(ctx, tx, b, earned); err != nil {
				return err
			}
		}
		bill = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "bill_pay", "bill paid",
		slog.Uint64("bill_id", uint64(bill.ID)), slog.String("method", in.PaymentMethod),
		slog.String("total", bill.Total.StringFixed(2)))
	evs := []events.Event{
		{Type: events.BillPaid, OrderID: order.ID, OrderNumber: order.OrderNumber, Status: entity.BillPaid, TableID: order.TableID, BillID: bill.ID},
		orderEvent(events.OrderStatusChanged, order),
	}
	if freed {
		evs = append(evs, tableEvent(*order.TableID, entity.TableAvailable))
	}
	s.publish(ctx, evs...)
	return s.Get(ctx, billID)
}

func (s *BillService) settleLoyalty(ctx context.Context, tx *gorm.DB, b *entity.Bill, earned int64) error {
	customers := s.Customers.WithTx(tx)
	billID := b.ID

	if b.PointsRedeemed > 0 {
		if _, err := applyPoints(ctx, customers, *b.CustomerID, &billID, entity.LoyaltyRedeem, -b.PointsRedeemed,
			"redeemed on "+b.BillNumber); err != nil {
			if errors.Is(err, ErrValidation) {
				return conflict("customer no longer has %d points", b.PointsRedeemed)
			}
			return err
		}
	}
	if earned > 0 {
		if _, err := applyPoints(ctx, customers, *b.CustomerID, &billID, entity.LoyaltyEarn, earned,
			"earned on "+b.BillNumber); err != nil {
			return err
		}
	}
	return customers.RecordVisit(ctx, *b.CustomerID, b.Total)
}

// ----- Void / read -----

// Void cancels an unpaid bill; the order stays served and can be billed again.
func (s *BillService) Void(ctx context.Context, billID uint) (*entity.Bill, error) {
	b, err := s.Repo.FindByID(ctx, billID)
	if err != nil {
		return nil, dbErr(err, "bill")
	}
	if b.Status != entity.BillUnpaid {
		return nil, conflict("only unpaid bills can be voided; bill %s is %s", b.BillNumber, b.Status)
	}
	affected, err := s.Repo.VoidGuard(ctx, billID)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, conflict("bill %s changed concurrently", b.BillNumber)
	}
	s.log.Info(ctx, "bill_void", "bill voided", slog.Uint64("bill_id", uint64(billID)))
	return s.Get(ctx, billID)
}

func (s *BillService) Get(ctx context.Context, id uint) (*entity.Bill, error) {
	b, err := s.Repo.FindByID(ctx, id)
	return b, dbErr(err, "bill")
}

func (s *BillService) List(ctx context.Context, f repository.BillFilter) ([]entity.Bill, int64, error) {
	if f.Status != "" && f.Status != entity.BillUnpaid && f.Status != entity.BillPaid && f.Status != entity.BillVoid {
		return nil, 0, invalid("unknown bill status %q", f.Status)
	}
	return s.Repo.List(ctx, f)
}

// Receipt renders the bill as plain text for a receipt printer.
func (s *BillService) Receipt(ctx context.Context, id uint) (string, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return RenderReceipt(b, s.Settings.Currency), nil
}
