package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/rajeshhitechvalley/Cfapp-sub001/entity"
	"github.com/rajeshhitechvalley/Cfapp-sub001/pkg/logger"
	"github.com/rajeshhitechvalley/Cfapp-sub001/repository"

	"gorm.io/gorm"
)

type CustomerService struct {
	DB      *gorm.DB
	Repo    *repository.CustomerRepository
	Loyalty Loyalty
	log     *logger.Logger
}

func NewCustomerService(db *gorm.DB, loyalty Loyalty, log *logger.Logger) *CustomerService {
	if log == nil {
		log = logger.Nop()
	}
	return &CustomerService{DB: db, Repo: repository.NewCustomerRepository(db), Loyalty: loyalty, log: log}
}

type CustomerInput struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Email *string `json:"email"`
}

type AdjustPointsInput struct {
	Points int64  `json:"points"`
	Note   string `json:"note"`
}

// LoyaltySummary is a customer with their recent ledger and what the balance buys.
type LoyaltySummary struct {
	Customer     *entity.Customer            `json:"customer"`
	RedeemValue  string                      `json:"redeemValue"`
	NextTier     string                      `json:"nextTier,omitempty"`
	PointsToNext int64                       `json:"pointsToNext,omitempty"`
	Transactions []entity.LoyaltyTransaction `json:"transactions"`
}

func (s *CustomerService) Create(ctx context.Context, in CustomerInput) (*entity.Customer, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, invalid("name is required")
	}
	if in.Phone == nil || strings.TrimSpace(*in.Phone) == "" {
		return nil, invalid("phone is required")
	}
	c := &entity.Customer{
		Name:  strings.TrimSpace(*in.Name),
		Phone: strings.TrimSpace(*in.Phone),
	}
	if in.Email != nil {
		c.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, dbErr(err, "customer")
	}
	return c, nil
}

func (s *CustomerService) Update(ctx context.Context, id uint, in CustomerInput) (*entity.Customer, error) {
	if _, err := s.Repo.FindByID(ctx, id); err != nil {
		return nil, dbErr(err, "customer")
	}
	updates := map[string]any{}
	if in.Name != nil {
		n := strings.TrimSpace(*in.Name)
		if n == "" {
			return nil, invalid("name is required")
		}
		updates["name"] = n
	}
	if in.Phone != nil {
		p := strings.TrimSpace(*in.Phone)
		if p == "" {
			return nil, invalid("phone is required")
		}
		updates["phone"] = p
	}
	if in.Email != nil {
		updates["email"] = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if len(updates) > 0 {
		if err := s.Repo.Update(ctx, id, updates); err != nil {
			return nil, dbErr(err, "customer")
		}
	}
	return s.Get(ctx, id)
}

func (s *CustomerService) Get(ctx context.Context, id uint) (*entity.Customer, error) {
	c, err := s.Repo.FindByID(ctx, id)
	return c, dbErr(err, "customer")
}

func (s *CustomerService) FindByPhone(ctx context.Context, phone string) (*entity.Customer, error) {
	c, err := s.Repo.FindByPhone(ctx, strings.TrimSpace(phone))
	return c, dbErr(err, "customer")
}

func (s *CustomerService) List(ctx context.Context, search string, page, limit int) ([]entity.Customer, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	return s.Repo.List(ctx, search, page, limit)
}

func (s *CustomerService) LoyaltyInfo(ctx context.Context, id uint) (*LoyaltySummary, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	txs, err := s.Repo.LoyaltyHistory(ctx, id, 50)
	if err != nil {
		return nil, err
	}
	out := &LoyaltySummary{
		Customer:     c,
		RedeemValue:  s.Loyalty.Value(c.PointsBalance).StringFixed(2),
		Transactions: txs,
	}
	out.NextTier, out.PointsToNext = nextTier(c.PointsBalance)
	return out, nil
}

func nextTier(points int64) (string, int64) {
	switch {
	case points < entity.BronzePoints:
		return entity.TierBronze, entity.BronzePoints - points
	case points < entity.SilverPoints:
		return entity.TierSilver, entity.SilverPoints - points
	case points < entity.GoldPoints:
		return entity.TierGold, entity.GoldPoints - points
	}
	return "", 0
}

// Adjust applies a manual signed correction; the balance never goes negative.
func (s *CustomerService) Adjust(ctx context.Context, id uint, in AdjustPointsInput) (*entity.Customer, error) {
	if in.Points == 0 {
		return nil, invalid("points must not be zero")
	}
	note := strings.TrimSpace(in.Note)
	if note == "" {
		return nil, invalid("note is required")
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := applyPoints(ctx, s.Repo.WithTx(tx), id, nil, entity.LoyaltyAdjust, in.Points, note)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.Info(ctx, "loyalty_adjust", "points adjusted",
		slog.Uint64("customer_id", uint64(id)), slog.Int64("points", in.Points))
	return s.Get(ctx, id)
}

// applyPoints moves a balance and writes the matching ledger line.
func applyPoints(ctx context.Context, repo *repository.CustomerRepository, customerID uint, billID *uint, kind string, points int64, note string) (int64, error) {
	if _, err := repo.FindByID(ctx, customerID); err != nil {
		return 0, dbErr(err, "customer")
	}
	var lifetime int64
	if kind == entity.LoyaltyEarn {
		lifetime = points
	}
	ok, err := repo.AddPoints(ctx, customerID, points, lifetime)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, invalid("not enough points: balance cannot go negative")
	}

	c, err := repo.FindByID(ctx, customerID)
	if err != nil {
		return 0, err
	}
	err = repo.CreateLoyaltyTx(ctx, &entity.LoyaltyTransaction{
		CustomerID:   customerID,
		BillID:       billID,
		Type:         kind,
		Points:       points,
		BalanceAfter: c.PointsBalance,
		Note:         note,
	})
	return c.PointsBalance, err
}
