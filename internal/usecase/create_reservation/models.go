package create_reservation

import (
	"time"

	"github.com/m04kA/LRS-RoomReservationService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID    int64            // ID пользователя (непрозрачный идентификатор)
	RoomID    int64            // ID комнаты
	Date      time.Time        // Дата бронирования (без времени)
	StartTime types.TimeString // Начало интервала, включительно
	EndTime   types.TimeString // Конец интервала, исключительно
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        int64            // ID созданного бронирования
	RoomID    int64            // ID комнаты
	UserID    int64            // ID пользователя
	Date      time.Time        // Дата бронирования
	StartTime types.TimeString // Начало интервала
	EndTime   types.TimeString // Конец интервала
	Status    string           // Статус бронирования

	// Денормализованные данные для отображения
	RoomName    string // Название комнаты
	LibraryName string // Название библиотеки

	CreatedAt time.Time // Время создания
}
