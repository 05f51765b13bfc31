package services

import (
	"context"
	"strings"

	"github.com/rajeshhitechvalley/Cfapp-sub001/entity"
	"github.com/rajeshhitechvalley/Cfapp-sub001/pkg/events"
	"github.com/rajeshhitechvalley/Cfapp-sub001/pkg/logger"
	"github.com/rajeshhitechvalley/Cfapp-sub001/repository"
)

type TableService struct {
	Repo *repository.TableRepository
	notifier
}

func NewTableService(repo *repository.TableRepository, pub events.Publisher, log *logger.Logger) *TableService {
	if log == nil {
		log = logger.Nop()
	}
	return &TableService{Repo: repo, notifier: notifier{pub: pub, log: log}}
}

type TableInput struct {
	Number   *string `json:"number"`
	Capacity *int    `json:"capacity"`
	Location *string `json:"location"`
	Status   *string `json:"status"`
}

func (s *TableService) List(ctx context.Context, status string) ([]entity.DiningTable, error) {
	if status != "" && !entity.ValidTableStatus(status) {
		return nil, invalid("unknown table status %q", status)
	}
	return s.Repo.List(ctx, status)
}

func (s *TableService) Get(ctx context.Context, id uint) (*entity.DiningTable, error) {
	t, err := s.Repo.FindByID(ctx, id)
	return t, dbErr(err, "table")
}

func (s *TableService) Create(ctx context.Context, in TableInput) (*entity.DiningTable, error) {
	if in.Number == nil || strings.TrimSpace(*in.Number) == "" {
		return nil, invalid("number is required")
	}
	if in.Capacity == nil || *in.Capacity < 1 {
		return nil, invalid("capacity must be at least 1")
	}
	t := &entity.DiningTable{
		Number:   strings.TrimSpace(*in.Number),
		Capacity: *in.Capacity,
		Status:   entity.TableAvailable,
	}
	if in.Location != nil {
		t.Location = strings.TrimSpace(*in.Location)
	}
	if in.Status != nil {
		if !entity.ValidTableStatus(*in.Status) {
			return nil, invalid("unknown table status %q", *in.Status)
		}
		t.Status = *in.Status
	}
	if err := s.Repo.Create(ctx, t); err != nil {
		return nil, dbErr(err, "table")
	}
	return t, nil
}

func (s *TableService) Update(ctx context.Context, id uint, in TableInput) (*entity.DiningTable, error) {
	if _, err := s.Repo.FindByID(ctx, id); err != nil {
		return nil, dbErr(err, "table")
	}
	updates := map[string]any{}
	if in.Number != nil {
		n := strings.TrimSpace(*in.Number)
		if n == "" {
			return nil, invalid("number is required")
		}
		updates["number"] = n
	}
	if in.Capacity != nil {
		if *in.Capacity < 1 {
			return nil, invalid("capacity must be at least 1")
		}
		updates["capacity"] = *in.Capacity
	}
	if in.Location != nil {
		updates["location"] = strings.TrimSpace(*in.Location)
	}
	if len(updates) > 0 {
		if err := s.Repo.Update(ctx, id, updates); err != nil {
			return nil, dbErr(err, "table")
		}
	}
	if in.Status != nil {
		return s.SetStatus(ctx, id, *in.Status)
	}
	return s.Get(ctx, id)
}

// Delete refuses while an active order still sits on the table.
func (s *TableService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Repo.FindByID(ctx, id); err != nil {
		return dbErr(err, "table")
	}
	n, err := s.Repo.CountActiveOrders(ctx, id, 0)
	if err != nil {
		return err
	}
	if n > 0 {
		return conflict("table has %d active orders", n)
	}
	return s.Repo.Delete(ctx, id)
}

func (s *TableService) SetStatus(ctx context.Context, id uint, status string) (*entity.DiningTable, error) {
	if !entity.ValidTableStatus(status) {
		return nil, invalid("unknown table status %q", status)
	}
	t, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, dbErr(err, "table")
	}
	if status == entity.TableAvailable {
		n, err := s.Repo.CountActiveOrders(ctx, id, 0)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			return nil, conflict("table has %d active orders", n)
		}
	}
	if t.Status == status {
		return t, nil
	}
	if err := s.Repo.SetStatus(ctx, id, status); err != nil {
		return nil, err
	}
	t.Status = status
	s.publish(ctx, tableEvent(id, status))
	return t, nil
}
