package reservations

import (
	"context"
	"errors"
	"fmt"

	reservationRepo "github.com/m04kA/LRS-RoomReservationService/internal/infra/storage/reservation"
	userRepo "github.com/m04kA/LRS-RoomReservationService/internal/infra/storage/user"
	"github.com/m04kA/LRS-RoomReservationService/internal/service/reservations/models"
)

// Service сервис для просмотра и отмены бронирований
type Service struct {
	reservationRepo ReservationRepository
	roomRepo        RoomRepository
	libraryRepo     LibraryRepository
	userRepo        UserRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	roomRepo RoomRepository,
	libraryRepo LibraryRepository,
	userRepo UserRepository,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		roomRepo:        roomRepo,
		libraryRepo:     libraryRepo,
		userRepo:        userRepo,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// ListByUser возвращает историю бронирований пользователя, включая
// отменённые. Сортировка - от новых к старым.
func (s *Service) ListByUser(ctx context.Context, userID int64) (*models.ReservationListResponse, error) {
	s.logger.Info("ListByUser: fetching reservations for user=%d", userID)

	if userID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	// Пользователь должен существовать
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("ListByUser: user id=%d not found", userID)
			return nil, ErrUserNotFound
		}
		s.logger.Error("ListByUser: failed to get user id=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: ListByUser - repository error: %v", ErrInternal, err)
	}

	reservations, err := s.reservationRepo.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("ListByUser: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: ListByUser - repository error: %v", ErrInternal, err)
	}

	// Обогащаем ответы названиями комнат и библиотек.
	// Комнат мало, кэшируем в рамках запроса.
	infoByRoom := make(map[int64]models.RoomInfo)
	responses := make([]*models.ReservationResponse, 0, len(reservations))
	for _, res := range reservations {
		info, ok := infoByRoom[res.RoomID]
		if !ok {
			info, err = s.roomInfo(ctx, res.RoomID)
			if err != nil {
				return nil, err
			}
			infoByRoom[res.RoomID] = info
		}
		responses = append(responses, models.FromDomainReservation(res, info))
	}

	s.logger.Info("ListByUser: successfully fetched %d reservations for user=%d",
		len(responses), userID)

	return &models.ReservationListResponse{Reservations: responses}, nil
}

// Cancel отменяет бронирование. Отменить можно только своё активное
// бронирование, которое ещё не закончилось. Запись не удаляется,
// а помечается отменённой.
func (s *Service) Cancel(ctx context.Context, req *models.CancelReservationRequest) error {
	s.logger.Info("Cancel: cancelling reservation id=%d for user=%d",
		req.ReservationID, req.UserID)

	if req.ReservationID <= 0 || req.UserID <= 0 {
		return fmt.Errorf("%w: reservationID and userID must be positive", ErrInvalidInput)
	}

	reservation, err := s.reservationRepo.GetByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found", req.ReservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v",
			req.ReservationID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if reservation.UserID != req.UserID {
		s.logger.Warn("Cancel: user=%d attempted to cancel reservation id=%d owned by user=%d",
			req.UserID, reservation.ID, reservation.UserID)
		return ErrAccessDenied
	}

	// Повторная отмена неотличима от отмены несуществующего бронирования
	if reservation.IsCancelled() {
		s.logger.Warn("Cancel: reservation id=%d is already cancelled", reservation.ID)
		return ErrReservationNotFound
	}

	if reservation.IsPast(s.timeProvider.Now()) {
		s.logger.Warn("Cancel: reservation id=%d is already in the past", reservation.ID)
		return ErrAlreadyPast
	}

	if err := s.reservationRepo.Cancel(ctx, reservation.ID); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			// Гонка: бронирование отменили между чтением и отменой
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: failed to cancel reservation id=%d: %v", reservation.ID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%d", reservation.ID)
	return nil
}

// roomInfo собирает данные комнаты и её библиотеки для ответа.
// Бронирование может ссылаться на уже удалённую комнату - тогда
// отдаем заглушки вместо названий.
func (s *Service) roomInfo(ctx context.Context, roomID int64) (models.RoomInfo, error) {
	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		s.logger.Warn("roomInfo: failed to get room id=%d: %v", roomID, err)
		return models.RoomInfo{RoomName: "-", LibraryName: "-"}, nil
	}

	library, err := s.libraryRepo.GetByID(ctx, room.LibraryID)
	if err != nil {
		s.logger.Warn("roomInfo: failed to get library id=%d: %v", room.LibraryID, err)
		return models.RoomInfo{
			RoomName:    room.Name,
			LibraryID:   room.LibraryID,
			LibraryName: "-",
		}, nil
	}

	return models.RoomInfo{
		RoomName:    room.Name,
		LibraryID:   library.ID,
		LibraryName: library.Name,
	}, nil
}
