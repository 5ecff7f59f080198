package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/LRS-RoomReservationService/internal/domain"
	libraryRepo "github.com/m04kA/LRS-RoomReservationService/internal/infra/storage/library"
	roomRepo "github.com/m04kA/LRS-RoomReservationService/internal/infra/storage/room"
	"github.com/m04kA/LRS-RoomReservationService/internal/service/catalog/models"
	"github.com/m04kA/LRS-RoomReservationService/pkg/types"
)

// Service сервис для администрирования каталога библиотек и комнат
type Service struct {
	libraryRepo     LibraryRepository
	roomRepo        RoomRepository
	reservationRepo ReservationRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(
	libraryRepo LibraryRepository,
	roomRepo RoomRepository,
	reservationRepo ReservationRepository,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		libraryRepo:     libraryRepo,
		roomRepo:        roomRepo,
		reservationRepo: reservationRepo,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Libraries

// CreateLibrary создает библиотеку. Если рабочие часы не указаны,
// используются часы по умолчанию 08:00-20:00.
func (s *Service) CreateLibrary(ctx context.Context, req *models.CreateLibraryRequest) (*models.LibraryResponse, error) {
	s.logger.Info("CreateLibrary: creating library name=%q", req.Name)

	library := &domain.Library{
		Name:      req.Name,
		Address:   req.Address,
		OpenTime:  domain.DefaultOpenTime,
		CloseTime: domain.DefaultCloseTime,
	}

	if req.OpenTime != nil {
		openTime, err := types.NewTimeStringFromString(*req.OpenTime)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid openTime: %v", ErrInvalidInput, err)
		}
		library.OpenTime = openTime
	}
	if req.CloseTime != nil {
		closeTime, err := types.NewTimeStringFromString(*req.CloseTime)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid closeTime: %v", ErrInvalidInput, err)
		}
		library.CloseTime = closeTime
	}

	if err := validateLibrary(library); err != nil {
		s.logger.Warn("CreateLibrary: validation failed: %v", err)
		return nil, err
	}

	created, err := s.libraryRepo.Create(ctx, library)
	if err != nil {
		s.logger.Error("CreateLibrary: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateLibrary - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateLibrary: successfully created library id=%d", created.ID)
	return models.FromDomainLibrary(created), nil
}

// GetLibrary получает библиотеку по ID
func (s *Service) GetLibrary(ctx context.Context, id int64) (*models.LibraryResponse, error) {
	library, err := s.getLibrary(ctx, id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainLibrary(library), nil
}

// ListLibraries возвращает все библиотеки в порядке создания
func (s *Service) ListLibraries(ctx context.Context) (*models.LibraryListResponse, error) {
	libraries, err := s.libraryRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListLibraries: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListLibraries - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainLibraryList(libraries), nil
}

// UpdateLibrary обновляет указанные поля библиотеки.
// Изменение рабочих часов не трогает существующие бронирования.
func (s *Service) UpdateLibrary(ctx context.Context, id int64, req *models.UpdateLibraryRequest) (*models.LibraryResponse, error) {
	s.logger.Info("UpdateLibrary: updating library id=%d", id)

	library, err := s.getLibrary(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		library.Name = *req.Name
	}
	if req.Address != nil {
		library.Address = *req.Address
	}
	if req.OpenTime != nil {
		openTime, err := types.NewTimeStringFromString(*req.OpenTime)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid openTime: %v", ErrInvalidInput, err)
		}
		library.OpenTime = openTime
	}
	if req.CloseTime != nil {
		closeTime, err := types.NewTimeStringFromString(*req.CloseTime)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid closeTime: %v", ErrInvalidInput, err)
		}
		library.CloseTime = closeTime
	}

	if err := validateLibrary(library); err != nil {
		s.logger.Warn("UpdateLibrary: validation failed for library id=%d: %v", id, err)
		return nil, err
	}

	if err := s.libraryRepo.Update(ctx, library); err != nil {
		if errors.Is(err, libraryRepo.ErrLibraryNotFound) {
			return nil, ErrLibraryNotFound
		}
		s.logger.Error("UpdateLibrary: repository error for library id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateLibrary - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateLibrary: successfully updated library id=%d", id)
	return models.FromDomainLibrary(library), nil
}

// DeleteLibrary удаляет библиотеку вместе с её комнатами.
// Удаление запрещено, пока у комнат библиотеки есть активные
// будущие бронирования.
func (s *Service) DeleteLibrary(ctx context.Context, id int64) error {
	s.logger.Info("DeleteLibrary: deleting library id=%d", id)

	if _, err := s.getLibrary(ctx, id); err != nil {
		return err
	}

	count, err := s.reservationRepo.CountActiveUpcomingByLibrary(ctx, id, s.timeProvider.Now())
	if err != nil {
		s.logger.Error("DeleteLibrary: failed to count reservations for library id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteLibrary - repository error: %v", ErrInternal, err)
	}
	if count > 0 {
		s.logger.Warn("DeleteLibrary: library id=%d has %d active upcoming reservations", id, count)
		return fmt.Errorf("%w: library has %d active upcoming reservations", ErrHasActiveReservations, count)
	}

	if err := s.libraryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, libraryRepo.ErrLibraryNotFound) {
			return ErrLibraryNotFound
		}
		s.logger.Error("DeleteLibrary: repository error for library id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteLibrary - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteLibrary: successfully deleted library id=%d", id)
	return nil
}

// Rooms

// CreateRoom создает комнату в библиотеке
func (s *Service) CreateRoom(ctx context.Context, req *models.CreateRoomRequest) (*models.RoomResponse, error) {
	s.logger.Info("CreateRoom: creating room name=%q in library=%d", req.Name, req.LibraryID)

	room := &domain.Room{
		LibraryID: req.LibraryID,
		Name:      req.Name,
		Capacity:  req.Capacity,
	}

	if err := validateRoom(room); err != nil {
		s.logger.Warn("CreateRoom: validation failed: %v", err)
		return nil, err
	}

	created, err := s.roomRepo.Create(ctx, room)
	if err != nil {
		if errors.Is(err, roomRepo.ErrLibraryNotFound) {
			s.logger.Warn("CreateRoom: library id=%d not found", req.LibraryID)
			return nil, ErrLibraryNotFound
		}
		s.logger.Error("CreateRoom: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateRoom - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateRoom: successfully created room id=%d", created.ID)
	return models.FromDomainRoom(created), nil
}

// GetRoom получает комнату по ID
func (s *Service) GetRoom(ctx context.Context, id int64) (*models.RoomResponse, error) {
	room, err := s.getRoom(ctx, id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainRoom(room), nil
}

// ListRooms возвращает комнаты каталога с опциональными фильтрами
func (s *Service) ListRooms(ctx context.Context, req *models.ListRoomsRequest) (*models.RoomListResponse, error) {
	rooms, err := s.roomRepo.List(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("ListRooms: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListRooms - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainRoomList(rooms), nil
}

// UpdateRoom обновляет указанные поля комнаты
func (s *Service) UpdateRoom(ctx context.Context, id int64, req *models.UpdateRoomRequest) (*models.RoomResponse, error) {
	s.logger.Info("UpdateRoom: updating room id=%d", id)

	room, err := s.getRoom(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		room.Name = *req.Name
	}
	if req.Capacity != nil {
		room.Capacity = *req.Capacity
	}

	if err := validateRoom(room); err != nil {
		s.logger.Warn("UpdateRoom: validation failed for room id=%d: %v", id, err)
		return nil, err
	}

	if err := s.roomRepo.Update(ctx, room); err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		s.logger.Error("UpdateRoom: repository error for room id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateRoom - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateRoom: successfully updated room id=%d", id)
	return models.FromDomainRoom(room), nil
}

// DeleteRoom удаляет комнату. Удаление запрещено, пока у комнаты
// есть активные будущие бронирования.
func (s *Service) DeleteRoom(ctx context.Context, id int64) error {
	s.logger.Info("DeleteRoom: deleting room id=%d", id)

	if _, err := s.getRoom(ctx, id); err != nil {
		return err
	}

	count, err := s.reservationRepo.CountActiveUpcomingByRoom(ctx, id, s.timeProvider.Now())
	if err != nil {
		s.logger.Error("DeleteRoom: failed to count reservations for room id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteRoom - repository error: %v", ErrInternal, err)
	}
	if count > 0 {
		s.logger.Warn("DeleteRoom: room id=%d has %d active upcoming reservations", id, count)
		return fmt.Errorf("%w: room has %d active upcoming reservations", ErrHasActiveReservations, count)
	}

	if err := s.roomRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			return ErrRoomNotFound
		}
		s.logger.Error("DeleteRoom: repository error for room id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteRoom - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteRoom: successfully deleted room id=%d", id)
	return nil
}

// helpers

func (s *Service) getLibrary(ctx context.Context, id int64) (*domain.Library, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: libraryID must be positive", ErrInvalidInput)
	}

	library, err := s.libraryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, libraryRepo.ErrLibraryNotFound) {
			s.logger.Warn("getLibrary: library id=%d not found", id)
			return nil, ErrLibraryNotFound
		}
		s.logger.Error("getLibrary: repository error for library id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: getLibrary - repository error: %v", ErrInternal, err)
	}
	return library, nil
}

func (s *Service) getRoom(ctx context.Context, id int64) (*domain.Room, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}

	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			s.logger.Warn("getRoom: room id=%d not found", id)
			return nil, ErrRoomNotFound
		}
		s.logger.Error("getRoom: repository error for room id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: getRoom - repository error: %v", ErrInternal, err)
	}
	return room, nil
}

func validateLibrary(l *domain.Library) error {
	if l.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(l.Name) > domain.MaxLibraryNameLength {
		return fmt.Errorf("%w: name is too long", ErrInvalidInput)
	}
	if l.Address == "" {
		return fmt.Errorf("%w: address is required", ErrInvalidInput)
	}
	if len(l.Address) > domain.MaxLibraryAddressLength {
		return fmt.Errorf("%w: address is too long", ErrInvalidInput)
	}
	if !l.OpenTime.IsBefore(l.CloseTime) {
		return fmt.Errorf("%w: openTime must be before closeTime", ErrInvalidInput)
	}
	return nil
}

func validateRoom(r *domain.Room) error {
	if r.LibraryID <= 0 {
		return fmt.Errorf("%w: libraryID must be positive", ErrInvalidInput)
	}
	if r.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(r.Name) > domain.MaxRoomNameLength {
		return fmt.Errorf("%w: name is too long", ErrInvalidInput)
	}
	if r.Capacity < domain.MinRoomCapacity || r.Capacity > domain.MaxRoomCapacity {
		return fmt.Errorf("%w: capacity must be between %d and %d",
			ErrInvalidInput, domain.MinRoomCapacity, domain.MaxRoomCapacity)
	}
	return nil
}
