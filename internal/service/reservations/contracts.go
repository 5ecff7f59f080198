package reservations

import (
	"context"
	"time"

	"github.com/m04kA/LRS-RoomReservationService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByUserID(ctx context.Context, userID int64) ([]*domain.Reservation, error)
	Cancel(ctx context.Context, id int64) error
}

// RoomRepository интерфейс репозитория комнат
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

// LibraryRepository интерфейс репозитория библиотек
type LibraryRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Library, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реализация TimeProvider на системных часах.
// Время приводится к той же "наивной" UTC-шкале, в которой хранятся даты
// бронирований, иначе граница прошедшего интервала сдвигалась бы на
// смещение таймзоны сервера.
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	now := time.Now()
	return time.Date(
		now.Year(), now.Month(), now.Day(),
		now.Hour(), now.Minute(), now.Second(), now.Nanosecond(),
		time.UTC,
	)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
