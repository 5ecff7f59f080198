package domain

import (
	"time"

	"github.com/m04kA/LRS-RoomReservationService/pkg/types"
)

// Library represents a library that owns bookable study rooms
type Library struct {
	ID      int64
	Name    string
	Address string

	// Operating hours; every reservation must fit inside [OpenTime, CloseTime)
	OpenTime  types.TimeString
	CloseTime types.TimeString

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Hours returns the library's operating hours as a time range
func (l *Library) Hours() TimeRange {
	return TimeRange{Start: l.OpenTime, End: l.CloseTime}
}
