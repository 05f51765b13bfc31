package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/rajeshhitechvalley/Cfapp-sub001/entity"
	"github.com/rajeshhitechvalley/Cfapp-sub001/pkg/logger"
	"github.com/rajeshhitechvalley/Cfapp-sub001/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TaxService keeps at most one TaxSetting active at a time.
type TaxService struct {
	DB   *gorm.DB
	Repo *repository.TaxRepository
	log  *logger.Logger
}

func NewTaxService(db *gorm.DB, log *logger.Logger) *TaxService {
	if log == nil {
		log = logger.Nop()
	}
	return &TaxService{DB: db, Repo: repository.NewTaxRepository(db), log: log}
}

type TaxInput struct {
	Name     *string          `json:"name"`
	Type     *string          `json:"type"`
	Rate     *decimal.Decimal `json:"rate"`
	IsActive *bool            `json:"isActive"`
}

func validRate(rate decimal.Decimal) bool {
	return !rate.IsNegative() && rate.LessThanOrEqual(hundred)
}

func (s *TaxService) List(ctx context.Context) ([]entity.TaxSetting, error) {
	return s.Repo.List(ctx)
}

// Active returns the setting in force, or nil when orders are untaxed.
func (s *TaxService) Active(ctx context.Context) (*entity.TaxSetting, error) {
	return s.Repo.Active(ctx)
}

func (s *TaxService) Get(ctx context.Context, id uint) (*entity.TaxSetting, error) {
	t, err := s.Repo.FindByID(ctx, id)
	return t, dbErr(err, "tax setting")
}

func (s *TaxService) Create(ctx context.Context, in TaxInput) (*entity.TaxSetting, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, invalid("name is required")
	}
	if in.Type == nil || !entity.ValidTaxType(*in.Type) {
		return nil, invalid("type must be percentage or free")
	}
	t := &entity.TaxSetting{Name: strings.TrimSpace(*in.Name), Type: *in.Type}
	if in.Rate != nil {
		t.Rate = in.Rate.Round(2)
	}
	if t.Type == entity.TaxPercentage && in.Rate == nil {
		return nil, invalid("rate is required for percentage tax")
	}
	if !validRate(t.Rate) {
		return nil, invalid("rate must be between 0 and 100")
	}
	if in.IsActive != nil {
		t.IsActive = *in.IsActive
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.Repo.WithTx(tx)
		if err := repo.Create(ctx, t); err != nil {
			return err
		}
		if t.IsActive {
			return repo.DeactivateOthers(ctx, t.ID)
		}
		return nil
	})
	if err != nil {
		return nil, dbErr(err, "tax setting")
	}
	return t, nil
}

func (s *TaxService) Update(ctx context.Context, id uint, in TaxInput) (*entity.TaxSetting, error) {
	cur, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, dbErr(err, "tax setting")
	}

	updates := map[string]any{}
	if in.Name != nil {
		n := strings.TrimSpace(*in.Name)
		if n == "" {
			return nil, invalid("name is required")
		}
		updates["name"] = n
	}
	if in.Type != nil {
		if !entity.ValidTaxType(*in.Type) {
			return nil, invalid("type must be percentage or free")
		}
		updates["type"] = *in.Type
	}
	if in.Rate != nil {
		if !validRate(*in.Rate) {
			return nil, invalid("rate must be between 0 and 100")
		}
		updates["rate"] = in.Rate.Round(2)
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}
	if len(updates) == 0 {
		return cur, nil
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.Repo.WithTx(tx)
		if err := repo.Update(ctx, id, updates); err != nil {
			return err
		}
		if in.IsActive != nil && *in.IsActive {
			return repo.DeactivateOthers(ctx, id)
		}
		return nil
	})
	if err != nil {
		return nil, dbErr(err, "tax setting")
	}
	return s.Get(ctx, id)
}

// Activate makes id the only active setting.
func (s *TaxService) Activate(ctx context.Context, id uint) (*entity.TaxSetting, error) {
	active := true
	t, err := s.Update(ctx, id, TaxInput{IsActive: &active})
	if err == nil {
		s.log.Info(ctx, "tax_activate", "tax setting activated", slog.Uint64("tax_id", uint64(id)))
	}
	return t, err
}

func (s *TaxService) Deactivate(ctx context.Context, id uint) (*entity.TaxSetting, error) {
	active := false
	return s.Update(ctx, id, TaxInput{IsActive: &active})
}

func (s *TaxService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Repo.FindByID(ctx, id); err != nil {
		return dbErr(err, "tax setting")
	}
	return s.Repo.Delete(ctx, id)
}
