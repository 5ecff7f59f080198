package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/LRS-RoomReservationService/internal/domain"
	roomRepo "github.com/m04kA/LRS-RoomReservationService/internal/infra/storage/room"
)

// UseCase use case для получения свободных интервалов комнаты на дату
type UseCase struct {
	reservationRepo ReservationRepository
	roomRepo        RoomRepository
	libraryRepo     LibraryRepository
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	roomRepo RoomRepository,
	libraryRepo LibraryRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		roomRepo:        roomRepo,
		libraryRepo:     libraryRepo,
		logger:          logger,
	}
}

// Execute вычисляет свободные интервалы: из рабочих часов библиотеки
// вычитаются активные бронирования комнаты на дату. Результат считается
// заново при каждом вызове, кэша нет.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: room=%d, date=%s",
		req.RoomID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем комнату
	room, err := uc.roomRepo.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			uc.logger.Warn("GetAvailableSlots: room id=%d not found", req.RoomID)
			return nil, ErrRoomNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get room id=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
	}

	// 3. Получаем библиотеку - источник рабочих часов
	library, err := uc.libraryRepo.GetByID(ctx, room.LibraryID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get library id=%d: %v", room.LibraryID, err)
		return nil, fmt.Errorf("%w: failed to get library: %v", ErrInternal, err)
	}

	// 4. Активные бронирования комнаты на дату
	reservations, err := uc.reservationRepo.GetActiveByRoomAndDate(ctx, req.RoomID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// 5. Вычитаем бронирования из рабочих часов
	free := domain.SubtractReservations(library.Hours(), reservations)

	uc.logger.Info("GetAvailableSlots: %d free intervals for room=%d, date=%s",
		len(free), req.RoomID, req.Date.Format(domain.DateFormat))

	return &Response{
		RoomID: req.RoomID,
		Date:   req.Date,
		Slots:  fromTimeRanges(free),
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.RoomID <= 0 {
		return fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}
