package entity

import (
	"time"

	"gorm.io/gorm"
)

const (
	ReservationPending   = "pending"
	ReservationConfirmed = "confirmed"
	ReservationSeated    = "seated"
	ReservationCompleted = "completed"
	ReservationCancelled = "cancelled"
	ReservationNoShow    = "no_show"

	DefaultReservationMinutes = 90
)

var reservationTransitions = map[string][]string{
	ReservationPending:   {ReservationConfirmed, ReservationSeated, ReservationCancelled, ReservationNoShow},
	ReservationConfirmed: {ReservationSeated, ReservationCancelled, ReservationNoShow},
	ReservationSeated:    {ReservationCompleted},
}

type Reservation struct {
	gorm.Model
	CustomerName    string    `gorm:"not null" json:"customerName"`
	Phone           string    `json:"phone"`
	PartySize       int       `gorm:"not null" json:"partySize"`
	ReservedAt      time.Time `gorm:"index;not null" json:"reservedAt"`
	DurationMinutes int       `gorm:"not null" json:"durationMinutes"`
	Notes           string    `json:"notes"`
	Status          string    `gorm:"size:20;not null;index" json:"status"`

	CustomerID *uint     `json:"customerId,omitempty"`
	Customer   *Customer `json:"customer,omitempty"`

	TableID *uint        `gorm:"index" json:"tableId,omitempty"`
	Table   *DiningTable `json:"table,omitempty"`
}

func (r Reservation) EndsAt() time.Time {
	d := r.DurationMinutes
	if d <= 0 {
		d = DefaultReservationMinutes
	}
	return r.ReservedAt.Add(time.Duration(d) * time.Minute)
}

// Overlaps reports whether [start, end) intersects the reservation window.
func (r Reservation) Overlaps(start, end time.Time) bool {
	return start.Before(r.EndsAt()) && r.ReservedAt.Before(end)
}

// IsLive means the reservation still holds its table.
func (r Reservation) IsLive() bool {
	return IsLiveReservationStatus(r.Status)
}

func IsLiveReservationStatus(s string) bool {
	return s == ReservationPending || s == ReservationConfirmed || s == ReservationSeated
}

func CanTransitionReservation(from, to string) bool {
	for _, s := range reservationTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
