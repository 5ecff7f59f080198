package search_rooms

import (
	"context"
	"time"

	"github.com/m04kA/LRS-RoomReservationService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetActiveByRoomAndDate(ctx context.Context, roomID int64, date time.Time) ([]*domain.Reservation, error)
}

// RoomRepository интерфейс репозитория комнат
type RoomRepository interface {
	List(ctx context.Context, filter domain.RoomFilter) ([]*domain.Room, error)
}

// LibraryRepository интерфейс репозитория библиотек
type LibraryRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Library, error)
	List(ctx context.Context) ([]*domain.Library, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
