package get_available_slots

import (
	"time"

	"github.com/m04kA/LRS-RoomReservationService/internal/domain"
	"github.com/m04kA/LRS-RoomReservationService/pkg/types"
)

// Request модель запроса на получение свободных интервалов
type Request struct {
	RoomID int64     // ID комнаты
	Date   time.Time // Дата (без времени)
}

// Response модель ответа со списком свободных интервалов
type Response struct {
	RoomID int64     // ID комнаты
	Date   time.Time // Дата, на которую запрашивались слоты
	Slots  []Slot    // Свободные интервалы, упорядоченные по времени
}

// Slot свободный полуоткрытый интервал [StartTime, EndTime)
type Slot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}

// fromTimeRanges конвертирует доменные интервалы в модель ответа
func fromTimeRanges(ranges []domain.TimeRange) []Slot {
	slots := make([]Slot, len(ranges))
	for i, r := range ranges {
		slots[i] = Slot{StartTime: r.Start, EndTime: r.End}
	}
	return slots
}
