package create_reservation

import (
	"fmt"
	"time"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.RoomID <= 0 {
		return fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if req.EndTime.IsZero() {
		return fmt.Errorf("%w: endTime is required", ErrInvalidInput)
	}

	return nil
}

// endInstant абсолютный момент окончания интервала на указанную дату
func endInstant(date time.Time, endMinutes int) time.Time {
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		endMinutes/60, endMinutes%60, 0, 0,
		date.Location(),
	)
}

// isPastSlot проверяет, что интервал уже закончился к моменту now.
// Слот считается прошедшим, если его конец не строго позже текущего момента.
func isPastSlot(date time.Time, endMinutes int, now time.Time) bool {
	return !endInstant(date, endMinutes).After(now)
}
