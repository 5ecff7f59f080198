package models

import (
	"time"

	"github.com/m04kA/LRS-RoomReservationService/internal/domain"
)

// Request модели

// CancelReservationRequest запрос на отмену бронирования
type CancelReservationRequest struct {
	ReservationID int64 `json:"reservationId"`
	UserID        int64 `json:"userId"`
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"userId"`
	RoomID      int64   `json:"roomId"`
	RoomName    string  `json:"roomName"`
	LibraryID   int64   `json:"libraryId"`
	LibraryName string  `json:"libraryName"`
	Date        string  `json:"date"`      // "2026-08-31"
	StartTime   string  `json:"startTime"` // "10:00"
	EndTime     string  `json:"endTime"`   // "12:00"
	Status      string  `json:"status"`
	CreatedAt   string  `json:"createdAt"`
	CancelledAt *string `json:"cancelledAt,omitempty"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []*ReservationResponse `json:"reservations"`
}

// RoomInfo данные комнаты для обогащения ответа
type RoomInfo struct {
	RoomName    string
	LibraryID   int64
	LibraryName string
}

// FromDomainReservation конвертирует domain модель в response
func FromDomainReservation(r *domain.Reservation, info RoomInfo) *ReservationResponse {
	resp := &ReservationResponse{
		ID:          r.ID,
		UserID:      r.UserID,
		RoomID:      r.RoomID,
		RoomName:    info.RoomName,
		LibraryID:   info.LibraryID,
		LibraryName: info.LibraryName,
		Date:        r.Date.Format(domain.DateFormat),
		StartTime:   r.StartTime.String(),
		EndTime:     r.EndTime.String(),
		Status:      string(r.Status),
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
	}

	if r.CancelledAt != nil {
		cancelled := r.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelled
	}

	return resp
}
