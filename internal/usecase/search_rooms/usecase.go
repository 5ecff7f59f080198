package search_rooms

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/LRS-RoomReservationService/internal/domain"
	libraryRepo "github.com/m04kA/LRS-RoomReservationService/internal/infra/storage/library"
)

// UseCase use case для поиска комнат по фильтрам с доступностью на дату
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

// Execute выполняет поиск: сначала отбирает комнаты по фильтрам каталога,
// затем для каждой вычисляет свободные интервалы на дату. Если задан Slot,
// комната попадает в результат только когда запрошенный интервал целиком
// помещается в один из свободных. Порядок результатов - порядок каталога.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SearchRooms: date=%s", req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SearchRooms: validation failed: %v", err)
		return nil, err
	}

	// 2. Библиотеки - источник рабочих часов и названий
	libraries, err := uc.resolveLibraries(ctx, req.LibraryID)
	if err != nil {
		return nil, err
	}

	// 3. Комнаты по фильтрам каталога
	rooms, err := uc.roomRepo.List(ctx, domain.RoomFilter{
		LibraryID:   req.LibraryID,
		MinCapacity: req.MinCapacity,
	})
	if err != nil {
		uc.logger.Error("SearchRooms: failed to list rooms: %v", err)
		return nil, fmt.Errorf("%w: failed to list rooms: %v", ErrInternal, err)
	}

	// 4. Доступность каждой комнаты на дату
	results := make([]Result, 0, len(rooms))
	for _, room := range rooms {
		library, ok := libraries[room.LibraryID]
		if !ok {
			// Комната ссылается на удаленную библиотеку - пропускаем
			uc.logger.Warn("SearchRooms: room id=%d references unknown library id=%d",
				room.ID, room.LibraryID)
			continue
		}

		reservations, err := uc.reservationRepo.GetActiveByRoomAndDate(ctx, room.ID, req.Date)
		if err != nil {
			uc.logger.Error("SearchRooms: failed to get reservations for room id=%d: %v",
				room.ID, err)
			return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		free := domain.SubtractReservations(library.Hours(), reservations)

		if req.Slot != nil && !slotFits(*req.Slot, free) {
			continue
		}

		results = append(results, Result{
			Room: RoomInfo{
				ID:          room.ID,
				LibraryID:   room.LibraryID,
				LibraryName: library.Name,
				Name:        room.Name,
				Capacity:    room.Capacity,
			},
			AvailableSlots: fromTimeRanges(free),
		})
	}

	uc.logger.Info("SearchRooms: %d rooms matched for date=%s",
		len(results), req.Date.Format(domain.DateFormat))

	return &Response{
		Date:    req.Date,
		Results: results,
	}, nil
}

// resolveLibraries возвращает библиотеки, участвующие в поиске.
// При заданном фильтре по библиотеке проверяет её существование.
func (uc *UseCase) resolveLibraries(ctx context.Context, libraryID *int64) (map[int64]*domain.Library, error) {
	if libraryID != nil {
		library, err := uc.libraryRepo.GetByID(ctx, *libraryID)
		if err != nil {
			if errors.Is(err, libraryRepo.ErrLibraryNotFound) {
				uc.logger.Warn("SearchRooms: library id=%d not found", *libraryID)
				return nil, ErrLibraryNotFound
			}
			uc.logger.Error("SearchRooms: failed to get library id=%d: %v", *libraryID, err)
			return nil, fmt.Errorf("%w: failed to get library: %v", ErrInternal, err)
		}
		return map[int64]*domain.Library{library.ID: library}, nil
	}

	libraries, err := uc.libraryRepo.List(ctx)
	if err != nil {
		uc.logger.Error("SearchRooms: failed to list libraries: %v", err)
		return nil, fmt.Errorf("%w: failed to list libraries: %v", ErrInternal, err)
	}

	byID := make(map[int64]*domain.Library, len(libraries))
	for _, library := range libraries {
		byID[library.ID] = library
	}
	return byID, nil
}

// slotFits проверяет, помещается ли запрошенный интервал целиком
// в один из свободных интервалов
func slotFits(slot domain.TimeRange, free []domain.TimeRange) bool {
	for _, gap := range free {
		if gap.Contains(slot) {
			return true
		}
	}
	return false
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.LibraryID != nil && *req.LibraryID <= 0 {
		return fmt.Errorf("%w: libraryID must be positive", ErrInvalidInput)
	}

	if req.MinCapacity != nil && *req.MinCapacity < domain.MinRoomCapacity {
		return fmt.Errorf("%w: minCapacity must be at least %d", ErrInvalidInput, domain.MinRoomCapacity)
	}

	return nil
}

// fromTimeRanges конвертирует доменные интервалы в модель ответа
func fromTimeRanges(ranges []domain.TimeRange) []Slot {
	slots := make([]Slot, 0, len(ranges))
	for _, r := range ranges {
		slots = append(slots, Slot{
			StartTime: r.Start,
			EndTime:   r.End,
		})
	}
	return slots
}
