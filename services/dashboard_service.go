package services

import (
	"context"
	"time"

	"github.com/rajeshhitechvalley/Cfapp-sub001/entity"
	"github.com/rajeshhitechvalley/Cfapp-sub001/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	topItemsLimit  = 5
	upcomingWindow = 2 * time.Hour
)

// DashboardService builds the read models behind the kitchen, reception and
// sales screens.
type DashboardService struct {
	Orders       *repository.OrderRepository
	Tables       *repository.TableRepository
	Reservations *repository.ReservationRepository
	Bills        *repository.BillRepository
	Repo         *repository.DashboardRepository
	Now          func() time.Time
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{
		Orders:       repository.NewOrderRepository(db),
		Tables:       repository.NewTableRepository(db),
		Reservations: repository.NewReservationRepository(db),
		Bills:        repository.NewBillRepository(db),
		Repo:         repository.NewDashboardRepository(db),
		Now:          time.Now,
	}
}

type KitchenTicket struct {
	entity.Order
	WaitingMinutes int `json:"waitingMinutes"`
}

type KitchenDashboard struct {
	Orders []KitchenTicket `json:"orders"`
	Counts map[string]int  `json:"counts"`
}

// Kitchen lists orders still in the kitchen's hands, oldest first.
func (s *DashboardService) Kitchen(ctx context.Context) (*KitchenDashboard, error) {
	statuses := []string{entity.OrderPending, entity.OrderPreparing, entity.OrderReady}
	orders, err := s.Orders.ListActive(ctx, statuses)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	out := &KitchenDashboard{Orders: make([]KitchenTicket, 0, len(orders)), Counts: map[string]int{}}
	for _, st := range statuses {
		out.Counts[st] = 0
	}
	for _, o := range orders {
		wait := int(now.Sub(o.CreatedAt).Minutes())
		if wait < 0 {
			wait = 0
		}
		out.Orders = append(out.Orders, KitchenTicket{Order: o, WaitingMinutes: wait})
		out.Counts[o.Status]++
	}
	return out, nil
}

type ReceptionDashboard struct {
	TableCounts  map[string]int64     `json:"tableCounts"`
	Tables       []entity.DiningTable `json:"tables"`
	Reservations []entity.Reservation `json:"reservations"`
	Upcoming     []entity.Reservation `json:"upcoming"`
}

func (s *DashboardService) Reception(ctx context.Context) (*ReceptionDashboard, error) {
	counts, err := s.Tables.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	tables, err := s.Tables.List(ctx, "")
	if err != nil {
		return nil, err
	}

	now := s.Now()
	from, to := dayBounds(now)
	today, err := s.Reservations.List(ctx, repository.ReservationFilter{
		From: from, To: to,
		ExcludeStatuses: []string{entity.ReservationCancelled},
	})
	if err != nil {
		return nil, err
	}
	upcoming, err := s.Reservations.List(ctx, repository.ReservationFilter{
		From: now.UTC(), To: now.Add(upcomingWindow).UTC(),
		ExcludeStatuses: []string{entity.ReservationCancelled, entity.ReservationNoShow, entity.ReservationCompleted, entity.ReservationSeated},
	})
	if err != nil {
		return nil, err
	}

	out := &ReceptionDashboard{
		TableCounts:  map[string]int64{},
		Tables:       tables,
		Reservations: today,
		Upcoming:     upcoming,
	}
	for _, st := range entity.TableStatuses() {
		out.TableCounts[st] = 0
	}
	for _, c := range counts {
		out.TableCounts[c.Status] = c.Count
	}
	return out, nil
}

type SalesDashboard struct {
	From            time.Time                  `json:"from"`
	To              time.Time                  `json:"to"`
	Revenue         decimal.Decimal            `json:"revenue"`
	BillsPaid       int                        `json:"billsPaid"`
	AverageBill     decimal.Decimal            `json:"averageBill"`
	TaxCollected    decimal.Decimal            `json:"taxCollected"`
	Discounts       decimal.Decimal            `json:"discounts"`
	LoyaltyRedeemed decimal.Decimal            `json:"loyaltyRedeemed"`
	ServiceCharge   decimal.Decimal            `json:"serviceCharge"`
	ByMethod        map[string]decimal.Decimal `json:"byPaymentMethod"`
	TopItems        []repository.TopItem       `json:"topItems"`
	OrdersByStatus  map[string]int64           `json:"ordersByStatus"`
}

// Sales summarises paid bills in [from, to). Zero bounds mean today.
func (s *DashboardService) Sales(ctx context.Context, from, to time.Time) (*SalesDashboard, error) {
	if from.IsZero() || to.IsZero() {
		from, to = dayBounds(s.Now())
	}
	if !to.After(from) {
		return nil, invalid("to must be after from")
	}
	from, to = from.UTC(), to.UTC()

	bills, err := s.Bills.PaidBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	out := &SalesDashboard{
		From:           from,
		To:             to,
		ByMethod:       map[string]decimal.Decimal{},
		OrdersByStatus: map[string]int64{},
	}
	for _, m := range []string{entity.PayCash, entity.PayCard, entity.PayMobile} {
		out.ByMethod[m] = decimal.Zero
	}
	for _, b := range bills {
		out.Revenue = out.Revenue.Add(b.Total)
		out.TaxCollected = out.TaxCollected.Add(b.TaxAmount)
		out.Discounts = out.Discounts.Add(b.DiscountAmount)
		out.LoyaltyRedeemed = out.LoyaltyRedeemed.Add(b.LoyaltyDiscount)
		out.ServiceCharge = out.ServiceCharge.Add(b.ServiceCharge)
		out.ByMethod[b.PaymentMethod] = out.ByMethod[b.PaymentMethod].Add(b.Total)
	}
	out.BillsPaid = len(bills)
	if out.BillsPaid > 0 {
		out.AverageBill = out.Revenue.Div(decimal.NewFromInt(int64(out.BillsPaid))).Round(2)
	}

	out.TopItems, err = s.Repo.TopItems(ctx, from, to, topItemsLimit)
	if err != nil {
		return nil, err
	}

	for _, st := range entity.OrderStatuses() {
		out.OrdersByStatus[st] = 0
	}
	counts, err := s.Orders.CountByStatus(ctx, from, to)
	if err != nil {
		return nil, err
	}
	for _, c := range counts {
		out.OrdersByStatus[c.Status] = c.Count
	}
	return out, nil
}
