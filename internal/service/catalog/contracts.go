package catalog

import (
	"context"
	"time"

	"github.com/m04kA/LRS-RoomReservationService/internal/domain"
)

// LibraryRepository интерфейс репозитория библиотек
type LibraryRepository interface {
	Create(ctx context.Context, library *domain.Library) (*domain.Library, error)
	GetByID(ctx context.Context, id int64) (*domain.Library, error)
	List(ctx context.Context) ([]*domain.Library, error)
	Update(ctx context.Context, library *domain.Library) error
	Delete(ctx context.Context, id int64) error
}

// RoomRepository интерфейс репозитория комнат
type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) (*domain.Room, error)
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	List(ctx context.Context, filter domain.RoomFilter) ([]*domain.Room, error)
	Update(ctx context.Context, room *domain.Room) error
	Delete(ctx context.Context, id int64) error
}

// ReservationRepository интерфейс репозитория бронирований.
// Нужен только для проверки политики удаления.
type ReservationRepository interface {
	CountActiveUpcomingByRoom(ctx context.Context, roomID int64, now time.Time) (int, error)
	CountActiveUpcomingByLibrary(ctx context.Context, libraryID int64, now time.Time) (int, error)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
