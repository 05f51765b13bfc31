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

type ReservationService struct {
	DB        *gorm.DB
	Repo      *repository.ReservationRepository
	Tables    *repository.TableRepository
	Customers *repository.CustomerRepository
	Now       func() time.Time
	notifier
}

func NewReservationService(db *gorm.DB, pub events.Publisher, log *logger.Logger) *ReservationService {
	if log == nil {
		log = logger.Nop()
	}
	return &ReservationService{
		DB:        db,
		Repo:      repository.NewReservationRepository(db),
		Tables:    repository.NewTableRepository(db),
		Customers: repository.NewCustomerRepository(db),
		Now:       time.Now,
		notifier:  notifier{pub: pub, log: log},
	}
}

type CreateReservationInput struct {
	CustomerName    string    `json:"customerName"`
	Phone           string    `json:"phone"`
	PartySize       int       `json:"partySize"`
	ReservedAt      time.Time `json:"reservedAt"`
	DurationMinutes int       `json:"durationMinutes"`
	Notes           string    `json:"notes"`
	TableID         *uint     `json:"tableId"`
	CustomerID      *uint     `json:"customerId"`
}

func (s *ReservationService) Create(ctx context.Context, in CreateReservationInput) (*entity.Reservation, error) {
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	if in.CustomerName == "" {
		return nil, invalid("customerName is required")
	}
	if in.PartySize < 1 {
		return nil, invalid("partySize must be at least 1")
	}
	if in.ReservedAt.IsZero() {
		return nil, invalid("reservedAt is required")
	}
	if in.ReservedAt.Before(s.Now()) {
		return nil, invalid("reservedAt is in the past")
	}
	if in.DurationMinutes < 0 {
		return nil, invalid("durationMinutes cannot be negative")
	}
	if in.DurationMinutes == 0 {
		in.DurationMinutes = entity.DefaultReservationMinutes
	}

	res := &entity.Reservation{
		CustomerName:    in.CustomerName,
		Phone:           strings.TrimSpace(in.Phone),
		PartySize:       in.PartySize,
		ReservedAt:      in.ReservedAt.UTC(),
		DurationMinutes: in.DurationMinutes,
		Notes:           strings.TrimSpace(in.Notes),
		Status:          entity.ReservationPending,
		TableID:         in.TableID,
		CustomerID:      in.CustomerID,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if res.CustomerID != nil {
			if _, err := s.Customers.WithTx(tx).FindByID(ctx, *res.CustomerID); err != nil {
				return dbErr(err, "customer")
			}
		}
		if res.TableID != nil {
			if err := s.checkTable(ctx, tx, res); err != nil {
				return err
			}
		}
		return s.Repo.WithTx(tx).Create(ctx, res)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "reservation_create", "reservation created",
		slog.Uint64("reservation_id", uint64(res.ID)), slog.Time("reserved_at", res.ReservedAt))
	s.publish(ctx, events.Event{Type: events.ReservationChanged, TableID: res.TableID, Status: res.Status})
	return s.Get(ctx, res.ID)
}

// checkTable enforces capacity and that no live reservation overlaps.
func (s *ReservationService) checkTable(ctx context.Context, tx *gorm.DB, res *entity.Reservation) error {
	table, err := s.Tables.WithTx(tx).FindByID(ctx, *res.TableID)
	if err != nil {
		return dbErr(err, "table")
	}
	if table.Capacity < res.PartySize {
		return invalid("table %s seats %d, party is %d", table.Number, table.Capacity, res.PartySize)
	}

	others, err := s.Repo.WithTx(tx).LiveForTable(ctx, table.ID, res.EndsAt(), res.ID)
	if err != nil {
		return err
	}
	for _, o := range others {
		if o.Overlaps(res.ReservedAt, res.EndsAt()) {
			return conflict("table %s is already reserved at %s", table.Number, o.ReservedAt.Format("15:04"))
		}
	}
	return nil
}

func (s *ReservationService) Get(ctx context.Context, id uint) (*entity.Reservation, error) {
	r, err := s.Repo.FindByID(ctx, id)
	return r, dbErr(err, "reservation")
}

// List returns the reservations of one day (today when day is zero).
func (s *ReservationService) List(ctx context.Context, day time.Time, status string) ([]entity.Reservation, error) {
	if day.IsZero() {
		day = s.Now()
	}
	from, to := dayBounds(day)
	return s.Repo.List(ctx, repository.ReservationFilter{From: from, To: to, Status: status})
}

// Transition moves a reservation along its lifecycle; seating occupies the
// table and completing frees it.
func (s *ReservationService) Transition(ctx context.Context, id uint, to string) (*entity.Reservation, error) {
	var tableChanged string
	var res *entity.Reservation

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.Repo.WithTx(tx)
		var err error
		res, err = repo.FindByID(ctx, id)
		if err != nil {
			return dbErr(err, "reservation")
		}
		if !entity.CanTransitionReservation(res.Status, to) {
			return fmtTransition(res.Status, to)
		}

		n, err := repo.UpdateStatusGuard(ctx, id, res.Status, to)
		if err != nil {
			return err
		}
		if n == 0 {
			return conflict("reservation changed concurrently")
		}

		if res.TableID == nil {
			return nil
		}
		tables := s.Tables.WithTx(tx)
		switch to {
		case entity.ReservationSeated:
			tableChanged = entity.TableOccupied
			return tables.SetStatus(ctx, *res.TableID, entity.TableOccupied)
		case entity.ReservationCompleted:
			freed, err := releaseTable(ctx, tables, res.TableID, 0)
			if freed {
				tableChanged = entity.TableAvailable
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	res.Status = to
	evs := []events.Event{{Type: events.ReservationChanged, TableID: res.TableID, Status: to}}
	if tableChanged != "" {
		evs = append(evs, tableEvent(*res.TableID, tableChanged))
	}
	s.publish(ctx, evs...)
	return s.Get(ctx, id)
}
