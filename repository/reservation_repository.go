package repository

import (
	"context"
	"time"

	"github.com/rajeshhitechvalley/Cfapp-sub001/entity"

	"gorm.io/gorm"
)

type ReservationRepository struct {
	DB *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{DB: db}
}

func (r *ReservationRepository) WithTx(tx *gorm.DB) *ReservationRepository {
	return &ReservationRepository{DB: tx}
}

func (r *ReservationRepository) Create(ctx context.Context, res *entity.Reservation) error {
	return r.DB.WithContext(ctx).Create(res).Error
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uint) (*entity.Reservation, error) {
	var res entity.Reservation
	if err := r.DB.WithContext(ctx).Preload("Table").Preload("Customer").First(&res, id).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

type ReservationFilter struct {
	From, To time.Time
	Status   string
	// ExcludeStatuses drops e.g. cancelled rows from dashboards.
	ExcludeStatuses []string
}

func (r *ReservationRepository) List(ctx context.Context, f ReservationFilter) ([]entity.Reservation, error) {
	var out []entity.Reservation
	q := r.DB.WithContext(ctx).Preload("Table").Order("reserved_at ASC")
	if !f.From.IsZero() {
		q = q.Where("reserved_at >= ?", f.From.UTC())
	}
	if !f.To.IsZero() {
		q = q.Where("reserved_at < ?", f.To.UTC())
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if len(f.ExcludeStatuses) > 0 {
		q = q.Where("status NOT IN ?", f.ExcludeStatuses)
	}
	err := q.Find(&out).Error
	return out, err
}

// LiveForTable returns live reservations on a table starting before `before`.
// Callers check the exact overlap, since end times depend on each row's duration.
func (r *ReservationRepository) LiveForTable(ctx context.Context, tableID uint, before time.Time, excludeID uint) ([]entity.Reservation, error) {
	var out []entity.Reservation
	q := r.DB.WithContext(ctx).
		Where("table_id = ? AND reserved_at < ? AND status IN ?", tableID, before,
			[]string{entity.ReservationPending, entity.ReservationConfirmed, entity.ReservationSeated})
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Find(&out).Error
	return out, err
}

// UpdateStatusGuard moves a reservation only if it is still in `from`.
func (r *ReservationRepository) UpdateStatusGuard(ctx context.Context, id uint, from, to string) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&entity.Reservation{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

func (r *ReservationRepository) Update(ctx context.Context, id uint, updates map[string]any) error {
	return r.DB.WithContext(ctx).Model(&entity.Reservation{}).Where("id = ?", id).Updates(updates).Error
}
