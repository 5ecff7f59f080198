package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/LRS-RoomReservationService/internal/domain"
	reservationRepo "github.com/m04kA/LRS-RoomReservationService/internal/infra/storage/reservation"
	roomRepo "github.com/m04kA/LRS-RoomReservationService/internal/infra/storage/room"
	userRepo "github.com/m04kA/LRS-RoomReservationService/internal/infra/storage/user"
	"github.com/m04kA/LRS-RoomReservationService/internal/notifier"
)

// UseCase use case для создания бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	roomRepo        RoomRepository
	libraryRepo     LibraryRepository
	userRepo        UserRepository
	txManager       TransactionManager
	notifierClient  ConfirmationNotifier
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	roomRepo RoomRepository,
	libraryRepo LibraryRepository,
	userRepo UserRepository,
	txManager TransactionManager,
	notifierClient ConfirmationNotifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		roomRepo:        roomRepo,
		libraryRepo:     libraryRepo,
		userRepo:        userRepo,
		txManager:       txManager,
		notifierClient:  notifierClient,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка пересечений и вставка выполняются в сериализуемой транзакции
// с блокировкой бронирований комнаты (FOR UPDATE): два конкурентных
// запроса на пересекающиеся интервалы одной комнаты не могут оба увидеть
// "конфликтов нет" и оба закоммититься. Блокировка не удерживается через
// внешние вызовы - уведомление ставится в очередь после коммита.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%d, room=%d, date=%s, interval=%s-%s",
		req.UserID, req.RoomID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем комнату
	room, err := uc.roomRepo.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			uc.logger.Warn("CreateReservation: room id=%d not found", req.RoomID)
			return nil, ErrRoomNotFound
		}
		uc.logger.Error("CreateReservation: failed to get room id=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
	}

	// 4. Получаем библиотеку - источник рабочих часов
	library, err := uc.libraryRepo.GetByID(ctx, room.LibraryID)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to get library id=%d: %v", room.LibraryID, err)
		return nil, fmt.Errorf("%w: failed to get library: %v", ErrInternal, err)
	}

	// 5. Валидируем интервал против рабочих часов библиотеки
	interval := domain.TimeRange{Start: req.StartTime, End: req.EndTime}
	if err := interval.Validate(library.Hours()); err != nil {
		uc.logger.Warn("CreateReservation: interval validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}

	// 6. Прошедший слот бронировать нельзя
	if isPastSlot(req.Date, req.EndTime.Minutes(), now) {
		uc.logger.Warn("CreateReservation: slot %s %s-%s is in the past",
			req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)
		return nil, ErrPastSlot
	}

	// 7. Получаем пользователя (данные нужны для письма-подтверждения)
	user, err := uc.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("CreateReservation: user id=%d not found", req.UserID)
			return nil, ErrUserNotFound
		}
		uc.logger.Error("CreateReservation: failed to get user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}

	// Переменная для хранения результата
	var result *domain.Reservation

	// 8. Проверка конфликтов и вставка - атомарно, в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Активные бронирования комнаты на дату, с блокировкой FOR UPDATE
		existing, err := uc.reservationRepo.GetActiveByRoomAndDate(txCtx, req.RoomID, req.Date)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get reservations: %v", err)
			// %w для причины: конфликт сериализации (40001) из запроса
			// должен дойти до retry-цикла txManager нетронутым
			return fmt.Errorf("%w: failed to get reservations: %w", ErrInternal, err)
		}

		// 8.2. Линейный проход по активным бронированиям: полуоткрытые
		// интервалы, общая граница пересечением не считается
		for _, res := range existing {
			if interval.Overlaps(res.Range()) {
				uc.logger.Warn("CreateReservation: conflict with reservation id=%d (%s)",
					res.ID, res.Range())
				return ErrSlotConflict
			}
		}

		// 8.3. Сохраняем бронирование
		created, err := uc.reservationRepo.Create(txCtx, &domain.Reservation{
			RoomID:    req.RoomID,
			UserID:    req.UserID,
			Date:      req.Date,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			Status:    domain.StatusActive,
		})
		if err != nil {
			// Exclusion constraint в БД - страховка на случай обхода блокировки
			if errors.Is(err, reservationRepo.ErrReservationOverlap) {
				uc.logger.Warn("CreateReservation: overlap rejected by database constraint")
				return ErrSlotConflict
			}
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d", result.ID)

	// 9. Ставим письмо-подтверждение в очередь. Бронирование уже
	// закоммичено: сбой уведомления его не отменяет, только логируется.
	payload := notifier.ConfirmationPayload{
		ReservationID: result.ID,
		UserName:      user.Name,
		UserEmail:     user.Email,
		RoomName:      room.Name,
		LibraryName:   library.Name,
		Date:          result.Date.Format(domain.DateFormat),
		StartTime:     result.StartTime.String(),
		EndTime:       result.EndTime.String(),
	}
	if err := uc.notifierClient.EnqueueConfirmation(ctx, payload); err != nil {
		uc.logger.Warn("CreateReservation: failed to enqueue confirmation for reservation id=%d: %v",
			result.ID, err)
	}

	return &Response{
		ID:          result.ID,
		RoomID:      result.RoomID,
		UserID:      result.UserID,
		Date:        result.Date,
		StartTime:   result.StartTime,
		EndTime:     result.EndTime,
		Status:      string(result.Status),
		RoomName:    room.Name,
		LibraryName: library.Name,
		CreatedAt:   result.CreatedAt,
	}, nil
}
