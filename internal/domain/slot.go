package domain

import (
	"errors"
	"fmt"
	"sort"

	"github.com/m04kA/LRS-RoomReservationService/pkg/types"
)

// ErrInvalidInterval возвращается, когда интервал некорректен: start >= end,
// неверный формат времени или выход за рабочие часы библиотеки
var ErrInvalidInterval = errors.New("domain: invalid time interval")

// TimeRange is a half-open interval [Start, End) within a single day.
// Вся проверка двойных бронирований опирается на Overlaps, поэтому
// арифметика здесь целочисленная (минуты от полуночи), без плавающей точки.
type TimeRange struct {
	Start types.TimeString
	End   types.TimeString
}

// NewTimeRange parses and validates an interval from its string form
func NewTimeRange(start, end string) (TimeRange, error) {
	s, err := types.NewTimeStringFromString(start)
	if err != nil {
		return TimeRange{}, fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}
	e, err := types.NewTimeStringFromString(end)
	if err != nil {
		return TimeRange{}, fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}

	r := TimeRange{Start: s, End: e}
	if !s.IsBefore(e) {
		return TimeRange{}, fmt.Errorf("%w: start %s must be before end %s", ErrInvalidInterval, s, e)
	}
	return r, nil
}

// Overlaps reports whether two half-open intervals share any instant:
// a.Start < b.End && b.Start < a.End. Интервал, заканчивающийся в 12:00,
// не конфликтует с интервалом, начинающимся в 12:00.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.IsBefore(other.End) && other.Start.IsBefore(r.End)
}

// Contains reports whether other lies entirely inside r
func (r TimeRange) Contains(other TimeRange) bool {
	return !other.Start.IsBefore(r.Start) && !r.End.IsBefore(other.End)
}

// Validate проверяет интервал против рабочих часов hours
func (r TimeRange) Validate(hours TimeRange) error {
	if err := r.Start.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}
	if err := r.End.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}
	if !r.Start.IsBefore(r.End) {
		return fmt.Errorf("%w: start %s must be before end %s", ErrInvalidInterval, r.Start, r.End)
	}
	if !hours.Contains(r) {
		return fmt.Errorf("%w: interval %s-%s is outside operating hours %s-%s",
			ErrInvalidInterval, r.Start, r.End, hours.Start, hours.End)
	}
	return nil
}

// String returns the "HH:MM-HH:MM" form of the interval
func (r TimeRange) String() string {
	return fmt.Sprintf("%s-%s", r.Start, r.End)
}

// SubtractReservations computes the ordered free sub-intervals of hours after
// removing all active reservations. Линейный проход: курсор движется по
// свободному времени, перед каждым бронированием выдается зазор, после
// последнего - хвостовой зазор до закрытия.
func SubtractReservations(hours TimeRange, reservations []*Reservation) []TimeRange {
	active := make([]TimeRange, 0, len(reservations))
	for _, res := range reservations {
		if res.IsActive() {
			active = append(active, res.Range())
		}
	}

	sort.Slice(active, func(i, j int) bool {
		return active[i].Start.IsBefore(active[j].Start)
	})

	free := make([]TimeRange, 0, len(active)+1)
	cursor := hours.Start

	for _, r := range active {
		// Бронирования за пределами рабочих часов свободное время не уменьшают
		if !r.End.IsAfter(cursor) {
			continue
		}
		if r.Start.IsAfter(cursor) {
			gapEnd := r.Start
			if gapEnd.IsAfter(hours.End) {
				gapEnd = hours.End
			}
			if cursor.IsBefore(gapEnd) {
				free = append(free, TimeRange{Start: cursor, End: gapEnd})
			}
		}
		if r.End.IsAfter(cursor) {
			cursor = r.End
		}
		if !cursor.IsBefore(hours.End) {
			return free
		}
	}

	if cursor.IsBefore(hours.End) {
		free = append(free, TimeRange{Start: cursor, End: hours.End})
	}

	return free
}
