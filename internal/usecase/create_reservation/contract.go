package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/LRS-RoomReservationService/internal/domain"
	"github.com/m04kA/LRS-RoomReservationService/internal/notifier"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	GetActiveByRoomAndDate(ctx context.Context, roomID int64, date time.Time) ([]*domain.Reservation, error)
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

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// ConfirmationNotifier интерфейс постановки уведомлений о бронировании
type ConfirmationNotifier interface {
	EnqueueConfirmation(ctx context.Context, payload notifier.ConfirmationPayload) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает серверные стеночные часы в "наивной" UTC-шкале - той же,
// в которой time.Parse раскладывает дату бронирования. Сравнение конца
// интервала с текущим моментом не зависит от таймзоны системных часов.
func (p *RealTimeProvider) Now() time.Time {
	now := time.Now()
	return time.Date(
		now.Year(), now.Month(), now.Day(),
		now.Hour(), now.Minute(), now.Second(), now.Nanosecond(),
		time.UTC,
	)
}
