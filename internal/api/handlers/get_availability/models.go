package get_availability

import (
	"time"

	"github.com/m04kA/LRS-RoomReservationService/internal/domain"
	getAvailableSlots "github.com/m04kA/LRS-RoomReservationService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP model of a free interval
type SlotResponse struct {
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "12:00"
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	RoomID int64          `json:"roomId"`
	Date   string         `json:"date"`
	Slots  []SlotResponse `json:"slots"`
}

// ToUseCaseRequest конвертирует параметры запроса в модель use case
func ToUseCaseRequest(roomID int64, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		RoomID: roomID,
		Date:   date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailabilityResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime: s.StartTime.String(),
			EndTime:   s.EndTime.String(),
		})
	}

	return &AvailabilityResponse{
		RoomID: resp.RoomID,
		Date:   resp.Date.Format(domain.DateFormat),
		Slots:  slots,
	}
}
