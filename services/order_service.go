package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/rajeshhitechvalley/Cfapp-sub001/entity"
	"github.com/rajeshhitechvalley/Cfapp-sub001/pkg/events"
	"github.com/rajeshhitechvalley/Cfapp-sub001/pkg/logger"
	"github.com/rajeshhitechvalley/Cfapp-sub001/repository"

	"gorm.io/gorm"
)

type OrderService struct {
	DB        *gorm.DB
	Repo      *repository.OrderRepository
	Menu      *repository.MenuRepository
	Tables    *repository.TableRepository
	Customers *repository.CustomerRepository
	Tax       *repository.TaxRepository
	Now       func() time.Time
	notifier
}

func NewOrderService(db *gorm.DB, pub events.Publisher, log *logger.Logger) *OrderService {
	if log == nil {
		log = logger.Nop()
	}
	return &OrderService{
		DB:        db,
		Repo:      repository.NewOrderRepository(db),
		Menu:      repository.NewMenuRepository(db),
		Tables:    repository.NewTableRepository(db),
		Customers: repository.NewCustomerRepository(db),
		Tax:       repository.NewTaxRepository(db),
		Now:       time.Now,
		notifier:  notifier{pub: pub, log: log},
	}
}

// ----- DTOs from Controller -----

type OrderItemInput struct {
	MenuItemID uint   `json:"menuItemId"`
	Quantity   int    `json:"quantity"`
	Notes      string `json:"notes"`
}

type CreateOrderInput struct {
	OrderType  string           `json:"orderType"`
	TableID    *uint            `json:"tableId"`
	CustomerID *uint            `json:"customerId"`
	Notes      string           `json:"notes"`
	Items      []OrderItemInput `json:"items"`
}

type UpdateOrderItemInput struct {
	Quantity *int    `json:"quantity"`
	Notes    *string `json:"notes"`
}

// ----- Create -----

// Create opens a new order. Dine-in orders occupy their table.
func (s *OrderService) Create(ctx context.Context, waiterID uint, in CreateOrderInput) (*entity.Order, error) {
	if in.OrderType == "" {
		in.OrderType = entity.OrderDineIn
	}
	if !entity.ValidOrderType(in.OrderType) {
		return nil, invalid("orderType must be dine_in or takeaway")
	}
	if len(in.Items) == 0 {
		return nil, invalid("items is required")
	}
	for _, it := range in.Items {
		if it.Quantity < 1 {
			return nil, invalid("quantity must be at least 1")
		}
	}
	if in.OrderType == entity.OrderDineIn && in.TableID == nil {
		return nil, invalid("tableId is required for dine-in orders")
	}
	if in.OrderType == entity.OrderTakeaway {
		in.TableID = nil
	}

	var order *entity.Order
	var occupied bool
	var err error
	for attempt := 0; attempt < numberAttempts; attempt++ {
		order, occupied, err = s.create(ctx, waiterID, in)
		if !isDuplicate(err) {
			break
		}
		s.log.Warn(ctx, "order_create", "order number taken, retrying", slog.Int("attempt", attempt+1))
	}
	if err != nil {
		return nil, dbErr(err, "order")
	}

	s.log.Info(ctx, "order_create", "order created",
		slog.Uint64("order_id", uint64(order.ID)), slog.String("order_number", order.OrderNumber))
	evs := []events.Event{orderEvent(events.OrderCreated, order)}
	if occupied {
		evs = append(evs, tableEvent(*order.TableID, entity.TableOccupied))
	}
	s.publish(ctx, evs...)
	return s.Get(ctx, order.ID)
}

func (s *OrderService) create(ctx context.Context, waiterID uint, in CreateOrderInput) (*entity.Order, bool, error) {
	var order *entity.Order
	var occupied bool

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.Repo.WithTx(tx)
		tables := s.Tables.WithTx(tx)

		if in.TableID != nil {
			table, err := tables.FindByID(ctx, *in.TableID)
			if err != nil {
				return dbErr(err, "table")
			}
			if table.Status == entity.TableCleaning {
				return conflict("table %s is being cleaned", table.Number)
			}
			occupied = table.Status != entity.TableOccupied
		}
		if in.CustomerID != nil {
			if _, err := s.Customers.WithTx(tx).FindByID(ctx, *in.CustomerID); err != nil {
				return dbErr(err, "customer")
			}
		}

		items, err := s.buildItems(ctx, s.Menu.WithTx(tx), in.Items)
		if err != nil {
			return err
		}
		tax, err := s.Tax.WithTx(tx).Active(ctx)
		if err != nil {
			return err
		}

		number, err := repo.NextNumber(ctx, s.Now())
		if err != nil {
			return err
		}
		order = &entity.Order{
			OrderNumber: number,
			OrderType:   in.OrderType,
			Status:      entity.OrderPending,
			Notes:       strings.TrimSpace(in.Notes),
			TableID:     in.TableID,
			CustomerID:  in.CustomerID,
			WaiterID:    waiterID,
			Items:       items,
		}
		order.Recalculate(tax)
		if err := repo.Create(ctx, order); err != nil {
			return err
		}

		if occupied {
			return tables.SetStatus(ctx, *in.TableID, entity.TableOccupied)
		}
		return nil
	})
	return order, occupied, err
}

// buildItems snapshots name and price of every requested menu item.
func (s *OrderService) buildItems(ctx context.Context, menu *repository.MenuRepository, in []OrderItemInput) ([]entity.OrderItem, error) {
	ids := make([]uint, 0, len(in))
	for _, it := range in {
		ids = append(ids, it.MenuItemID)
	}
	found, err := menu.FindItems(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]entity.OrderItem, 0, len(in))
	for _, it := range in {
		m, ok := found[it.MenuItemID]
		if !ok {
			return nil, dbErr(gorm.ErrRecordNotFound, "menu item")
		}
		if !m.IsAvailable {
			return nil, invalid("%s is not available", m.Name)
		}
		oi := entity.OrderItem{
			MenuItemID: m.ID,
			Name:       m.Name,
			UnitPrice:  m.Price,
			Quantity:   it.Quantity,
			Notes:      strings.TrimSpace(it.Notes),
		}
		oi.ComputeTotal()
		out = append(out, oi)
	}
	return out, nil
}

// ----- Read -----

func (s *OrderService) Get(ctx context.Context, id uint) (*entity.Order, error) {
	o, err := s.Repo.FindByID(ctx, id)
	return o, dbErr(err, "order")
}

// GetByNumber resolves an ORD-YYYYMMDD-NNNN number, as printed on tickets.
func (s *OrderService) GetByNumber(ctx context.Context, number string) (*entity.Order, error) {
	o, err := s.Repo.FindByNumber(ctx, strings.ToUpper(strings.TrimSpace(number)))
	return o, dbErr(err, "order")
}

func (s *OrderService) List(ctx context.Context, f repository.OrderFilter) ([]entity.Order, int64, error) {
	if f.Status != "" && !entity.ValidOrderStatus(f.Status) {
		return nil, 0, invalid("unknown order status %q", f.Status)
	}
	if f.OrderType != "" && !entity.ValidOrderType(f.OrderType) {
		return nil, 0, invalid("unknown order type %q", f.OrderType)
	}
	return s.Repo.List(ctx, f)
}

// ----- Items -----

// AddItem appends a line while the kitchen can still take it.
func (s *OrderService) AddItem(ctx context.Context, orderID uint, in OrderItemInput) (*entity.Order, error) {
	if in.Quantity < 1 {
		return nil, invalid("quantity must be at least 1")
	}
	return s.editItems(ctx, orderID, []string{entity.OrderPending, entity.OrderPreparing},
		func(tx *gorm.DB, o *entity.Order) error {
			items, err := s.buildItems(ctx, s.Menu.WithTx(tx), []OrderItemInput{in})
			if err != nil {
				return err
			}
			it := items[0]
			it.OrderID = o.ID
			if err := s.Repo.WithTx(tx).CreateItem(ctx, &it); err != nil {
				return err
			}
			o.Items = append(o.Items, it)
			return nil
		})
}

func (s *OrderService) UpdateItem(ctx context.Context, orderID, itemID uint, in UpdateOrderItemInput) (*entity.Order, error) {
	if in.Quantity == nil && in.Notes == nil {
		return nil, invalid("nothing to update")
	}
	if in.Quantity != nil && *in.Quantity < 1 {
		return nil, invalid("quantity must be at least 1")
	}
	return s.editItems(ctx, orderID, []string{entity.OrderPending},
		func(tx *gorm.DB, o *entity.Order) error {
			for i := range o.Items {
				it := &o.Items[i]
				if it.ID != itemID {
					continue
				}
				if in.Quantity != nil {
					it.Quantity = *in.Quantity
				}
				if in.Notes != nil {
					it.Notes = strings.TrimSpace(*in.Notes)
				}
				it.ComputeTotal()
				return s.Repo.WithTx(tx).UpdateItem(ctx, it)
			}
			return dbErr(gorm.ErrRecordNotFound, "order item")
		})
}

// RemoveItem drops a line; an order always keeps at least one.
func (s *OrderService) RemoveItem(ctx context.Context, orderID, itemID uint) (*entity.Order, error) {
	return s.editItems(ctx, orderID, []string{entity.OrderPending},
		func(tx *gorm.DB, o *entity.Order) error {
			idx := -1
			for i := range o.Items {
				if o.Items[i].ID == itemID {
					idx = i
				}
			}
			if idx < 0 {
				return dbErr(gorm.ErrRecordNotFound, "order item")
			}
			if len(o.Items) == 1 {
				return conflict("cannot remove the last item; cancel the order instead")
			}
			if err := s.Repo.WithTx(tx).DeleteItem(ctx, o.ID, itemID); err != nil {
				return err
			}
			o.Items = append(o.Items[:idx], o.Items[idx+1:]...)
			return nil
		})
}

// editItems loads the order, checks its status, applies fn and recalculates totals.
func (s *OrderService) editItems(ctx context.Context, orderID uint, allowed []string, fn func(tx *gorm.DB, o *entity.Order) error) (*entity.Order, error) {
	var order *entity.Order
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.Repo.WithTx(tx)
		o, err := repo.FindByID(ctx, orderID)
		if err != nil {
			return dbErr(err, "order")
		}
		if !statusIn(o.Status, allowed) {
			return conflict("items cannot be changed while the order is %s", o.Status)
		}
		if err := fn(tx, o); err != nil {
			return err
		}

		tax, err := s.Tax.WithTx(tx).Active(ctx)
		if err != nil {
			return err
		}
		o.Recalculate(tax)
		if err := repo.SaveTotals(ctx, o); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, orderEvent(events.OrderUpdated, order))
	return s.Get(ctx, orderID)
}

func statusIn(status string, set []string) bool {
	for _, s := range set {
		if s == status {
			return true
		}
	}
	return false
}
