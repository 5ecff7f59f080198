package create_reservation

import (
	"time"

	"github.com/m04kA/LRS-RoomReservationService/internal/domain"
	createReservation "github.com/m04kA/LRS-RoomReservationService/internal/usecase/create_reservation"
	"github.com/m04kA/LRS-RoomReservationService/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	UserID    int64  `json:"userId"`
	RoomID    int64  `json:"roomId"`
	Date      string `json:"date"`      // "2026-08-31"
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "12:00"
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"userId"`
	RoomID      int64  `json:"roomId"`
	RoomName    string `json:"roomName"`
	LibraryName string `json:"libraryName"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest() (*createReservation.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		UserID:    r.UserID,
		RoomID:    r.RoomID,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:          resp.ID,
		UserID:      resp.UserID,
		RoomID:      resp.RoomID,
		RoomName:    resp.RoomName,
		LibraryName: resp.LibraryName,
		Date:        resp.Date.Format(domain.DateFormat),
		StartTime:   resp.StartTime.String(),
		EndTime:     resp.EndTime.String(),
		Status:      resp.Status,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
	}
}
