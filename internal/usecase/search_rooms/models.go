package search_rooms

import (
	"time"

	"github.com/m04kA/LRS-RoomReservationService/internal/domain"
	"github.com/m04kA/LRS-RoomReservationService/pkg/types"
)

// Request модель поискового запроса
type Request struct {
	LibraryID   *int64            // Фильтр по библиотеке (опционально)
	MinCapacity *int              // Минимальная вместимость (опционально)
	Date        time.Time         // Дата (обязательно)
	Slot        *domain.TimeRange // Конкретный интервал (опционально)
}

// Response модель ответа поиска
type Response struct {
	Date    time.Time // Дата, на которую выполнялся поиск
	Results []Result  // Комнаты в порядке каталога
}

// Result комната с её свободными интервалами
type Result struct {
	Room           RoomInfo
	AvailableSlots []Slot
}

// RoomInfo данные комнаты для отображения
type RoomInfo struct {
	ID          int64
	LibraryID   int64
	LibraryName string
	Name        string
	Capacity    int
}

// Slot свободный полуоткрытый интервал [StartTime, EndTime)
type Slot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}
