package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// TimeString represents a wall-clock time of day in "HH:MM" format.
// All arithmetic is integer minute-of-day arithmetic, so comparisons
// are exact and never subject to floating point drift.
type TimeString string

const layout = "15:04"

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("types: invalid time string format, expected HH:MM")

	// ErrOutOfRange возвращается, когда результат операции выходит за пределы суток
	ErrOutOfRange = errors.New("types: time is out of day range")
)

// NewTimeString creates a TimeString from the wall-clock part of t.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(layout))
}

// NewTimeStringFromString parses and validates an "HH:MM" string.
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// NewTimeStringFromMinutes creates a TimeString from minutes since midnight.
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= 24*60 {
		return "", ErrOutOfRange
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// Validate проверяет, что значение соответствует формату HH:MM
func (t TimeString) Validate() error {
	if _, err := time.Parse(layout, string(t)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

// IsZero returns true for the empty value.
func (t TimeString) IsZero() bool {
	return t == ""
}

// Minutes returns the number of minutes since midnight.
// The value must be valid; invalid values return 0.
func (t TimeString) Minutes() int {
	parsed, err := time.Parse(layout, string(t))
	if err != nil {
		return 0
	}
	return parsed.Hour()*60 + parsed.Minute()
}

// AddMinutes возвращает время, сдвинутое на minutes минут вперед
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(t.Minutes() + minutes)
}

// IsBefore returns true if t is strictly earlier than other.
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// IsAfter returns true if t is strictly later than other.
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

// Equal returns true if both values denote the same minute of day.
func (t TimeString) Equal(other TimeString) bool {
	return t.Minutes() == other.Minutes()
}

// String implements fmt.Stringer.
func (t TimeString) String() string {
	return string(t)
}

// Value implements driver.Valuer so the type can be written to TIME columns.
func (t TimeString) Value() (driver.Value, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan implements sql.Scanner. Postgres TIME columns arrive either as
// []byte/string ("10:00:00") or as time.Time depending on the driver path.
func (t *TimeString) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidTimeString, value)
	}
}

func (t *TimeString) scanString(s string) error {
	// Обрезаем секунды, если драйвер вернул HH:MM:SS
	if len(s) > 5 {
		s = s[:5]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
