package domain

import (
	"time"

	"github.com/m04kA/LRS-RoomReservationService/pkg/types"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusActive    ReservationStatus = "active"
	StatusCancelled ReservationStatus = "cancelled"
)

// Reservation represents a committed booking of a room for a half-open
// time interval [StartTime, EndTime) on a single calendar date
type Reservation struct {
	ID        int64
	RoomID    int64
	UserID    int64
	Date      time.Time // Дата бронирования (без времени)
	StartTime types.TimeString
	EndTime   types.TimeString
	Status    ReservationStatus

	CancelledAt *time.Time
	CreatedAt   time.Time
}

// Range returns the reservation's time interval
func (r *Reservation) Range() TimeRange {
	return TimeRange{Start: r.StartTime, End: r.EndTime}
}

// IsActive returns true if the reservation has not been cancelled
func (r *Reservation) IsActive() bool {
	return r.Status == StatusActive
}

// IsCancelled returns true if the reservation has been cancelled
func (r *Reservation) IsCancelled() bool {
	return r.Status == StatusCancelled
}

// EndInstant returns the absolute instant at which the reservation ends
func (r *Reservation) EndInstant() time.Time {
	minutes := r.EndTime.Minutes()
	return time.Date(
		r.Date.Year(), r.Date.Month(), r.Date.Day(),
		minutes/60, minutes%60, 0, 0,
		r.Date.Location(),
	)
}

// IsPast returns true if the reservation's end instant is strictly before now.
// Прошедшие бронирования неизменяемы и хранятся только для истории.
func (r *Reservation) IsPast(now time.Time) bool {
	return r.EndInstant().Before(now)
}

// CanBeCancelled returns true if the reservation is active and not yet past
func (r *Reservation) CanBeCancelled(now time.Time) bool {
	return r.IsActive() && !r.IsPast(now)
}
