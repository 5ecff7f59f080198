package models

import (
	"github.com/m04kA/LRS-RoomReservationService/internal/domain"
)

// Request модели

// CreateLibraryRequest запрос на создание библиотеки
type CreateLibraryRequest struct {
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	OpenTime  *string `json:"openTime,omitempty"`  // "08:00" по умолчанию
	CloseTime *string `json:"closeTime,omitempty"` // "20:00" по умолчанию
}

// UpdateLibraryRequest запрос на обновление библиотеки.
// Указанные поля заменяют текущие, остальные не меняются.
type UpdateLibraryRequest struct {
	Name      *string `json:"name,omitempty"`
	Address   *string `json:"address,omitempty"`
	OpenTime  *string `json:"openTime,omitempty"`
	CloseTime *string `json:"closeTime,omitempty"`
}

// CreateRoomRequest запрос на создание комнаты
type CreateRoomRequest struct {
	LibraryID int64  `json:"libraryId"`
	Name      string `json:"name"`
	Capacity  int    `json:"capacity"`
}

// UpdateRoomRequest запрос на обновление комнаты
type UpdateRoomRequest struct {
	Name     *string `json:"name,omitempty"`
	Capacity *int    `json:"capacity,omitempty"`
}

// ListRoomsRequest фильтры списка комнат
type ListRoomsRequest struct {
	LibraryID   *int64 `json:"libraryId,omitempty"`
	MinCapacity *int   `json:"minCapacity,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListRoomsRequest) ToDomainFilter() domain.RoomFilter {
	return domain.RoomFilter{
		LibraryID:   r.LibraryID,
		MinCapacity: r.MinCapacity,
	}
}

// Response модели

// LibraryResponse ответ с данными библиотеки
type LibraryResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
}

// LibraryListResponse ответ со списком библиотек
type LibraryListResponse struct {
	Libraries []*LibraryResponse `json:"libraries"`
}

// RoomResponse ответ с данными комнаты
type RoomResponse struct {
	ID        int64  `json:"id"`
	LibraryID int64  `json:"libraryId"`
	Name      string `json:"name"`
	Capacity  int    `json:"capacity"`
}

// RoomListResponse ответ со списком комнат
type RoomListResponse struct {
	Rooms []*RoomResponse `json:"rooms"`
}

// FromDomainLibrary конвертирует domain модель в response
func FromDomainLibrary(l *domain.Library) *LibraryResponse {
	return &LibraryResponse{
		ID:        l.ID,
		Name:      l.Name,
		Address:   l.Address,
		OpenTime:  l.OpenTime.String(),
		CloseTime: l.CloseTime.String(),
	}
}

// FromDomainLibraryList конвертирует список domain моделей в response
func FromDomainLibraryList(libraries []*domain.Library) *LibraryListResponse {
	resp := &LibraryListResponse{
		Libraries: make([]*LibraryResponse, 0, len(libraries)),
	}
	for _, l := range libraries {
		resp.Libraries = append(resp.Libraries, FromDomainLibrary(l))
	}
	return resp
}

// FromDomainRoom конвертирует domain модель в response
func FromDomainRoom(r *domain.Room) *RoomResponse {
	return &RoomResponse{
		ID:        r.ID,
		LibraryID: r.LibraryID,
		Name:      r.Name,
		Capacity:  r.Capacity,
	}
}

// FromDomainRoomList конвертирует список domain моделей в response
func FromDomainRoomList(rooms []*domain.Room) *RoomListResponse {
	resp := &RoomListResponse{
		Rooms: make([]*RoomResponse, 0, len(rooms)),
	}
	for _, r := range rooms {
		resp.Rooms = append(resp.Rooms, FromDomainRoom(r))
	}
	return resp
}
