package services

import (
	"context"
	"sync"
	"testing"

	"github.com/rajeshhitechvalley/Cfapp-sub001/entity"
	"github.com/rajeshhitechvalley/Cfapp-sub001/pkg/events"
	"github.com/rajeshhitechvalley/Cfapp-sub001/pkg/testdb"
	"github.com/rajeshhitechvalley/Cfapp-sub001/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) Publish(_ context.Context, ev events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Type)
	}
	return out
}

func (r *recorder) reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}

// fixture is a small restaurant: two dishes, one unavailable dish, two tables
// and a 5% tax.
type fixture struct {
	ctx context.Context
	db  *gorm.DB
	pub *recorder

	burger, fries, special entity.MenuItem
	table, patio           entity.DiningTable
	tax                    entity.TaxSetting

	orders       *OrderService
	bills        *BillService
	customers    *CustomerService
	tables       *TableService
	reservations *ReservationService
	dashboard    *DashboardService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testdb.New(t)
	f := &fixture{ctx: context.Background(), db: db, pub: &recorder{}}

	cat := entity.Category{Name: "Mains", IsActive: true}
	require.NoError(t, db.Create(&cat).Error)
	f.burger = entity.MenuItem{Name: "Burger", Price: decimal.NewFromInt(100), IsAvailable: true, CategoryID: cat.ID}
	f.fries = entity.MenuItem{Name: "Fries", Price: decimal.NewFromInt(50), IsAvailable: true, CategoryID: cat.ID}
	f.special = entity.MenuItem{Name: "Special", Price: decimal.NewFromInt(300), IsAvailable: true, CategoryID: cat.ID}
	require.NoError(t, db.Create(&f.burger).Error)
	require.NoError(t, db.Create(&f.fries).Error)
	require.NoError(t, db.Create(&f.special).Error)
	require.NoError(t, db.Model(&f.special).Update("is_available", false).Error)

	f.table = entity.DiningTable{Number: "T1", Capacity: 4, Status: entity.TableAvailable}
	f.patio = entity.DiningTable{Number: "P1", Capacity: 2, Status: entity.TableAvailable}
	require.NoError(t, db.Create(&f.table).Error)
	require.NoError(t, db.Create(&f.patio).Error)

	f.tax = entity.TaxSetting{Name: "GST 5%", Type: entity.TaxPercentage, Rate: decimal.NewFromInt(5), IsActive: true}
	require.NoError(t, db.Create(&f.tax).Error)

	f.orders = NewOrderService(db, f.pub, nil)
	f.bills = NewBillService(db, BillSettings{Currency: "INR", Loyalty: DefaultLoyalty()}, f.pub, nil)
	f.customers = NewCustomerService(db, DefaultLoyalty(), nil)
	f.tables = NewTableService(repository.NewTableRepository(db), f.pub, nil)
	f.reservations = NewReservationService(db, f.pub, nil)
	f.dashboard = NewDashboardService(db)
	return f
}

// dineIn opens an order for 2 burgers and 1 fries on f.table.
func (f *fixture) dineIn(t *testing.T) *entity.Order {
	t.Helper()
	o, err := f.orders.Create(f.ctx, 1, CreateOrderInput{
		OrderType: entity.OrderDineIn,
		TableID:   &f.table.ID,
		Items: []OrderItemInput{
			{MenuItemID: f.burger.ID, Quantity: 2},
			{MenuItemID: f.fries.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)
	return o
}

// serve walks an order from pending to served.
func (f *fixture) serve(t *testing.T, id uint) {
	t.Helper()
	_, err := f.orders.StartPreparing(f.ctx, id)
	require.NoError(t, err)
	_, err = f.orders.MarkReady(f.ctx, id)
	require.NoError(t, err)
	_, err = f.orders.MarkServed(f.ctx, id)
	require.NoError(t, err)
}

func (f *fixture) tableStatus(t *testing.T, id uint) string {
	t.Helper()
	var tbl entity.DiningTable
	require.NoError(t, f.db.First(&tbl, id).Error)
	return tbl.Status
}

func (f *fixture) newCustomer(t *testing.T, phone string, points int64) *entity.Customer {
	t.Helper()
	name := "Asha"
	c, err := f.customers.Create(f.ctx, CustomerInput{Name: &name, Phone: &phone})
	require.NoError(t, err)
	if points != 0 {
		c, err = f.customers.Adjust(f.ctx, c.ID, AdjustPointsInput{Points: points, Note: "opening balance"})
		require.NoError(t, err)
	}
	return c
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ptr[T any](v T) *T { return &v }
