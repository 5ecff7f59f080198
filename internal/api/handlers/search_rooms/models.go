package search_rooms

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/LRS-RoomReservationService/internal/domain"
	searchRooms "github.com/m04kA/LRS-RoomReservationService/internal/usecase/search_rooms"
)

// RoomResponse HTTP model of a matched room
type RoomResponse struct {
	ID          int64  `json:"id"`
	LibraryID   int64  `json:"libraryId"`
	LibraryName string `json:"libraryName"`
	Name        string `json:"name"`
	Capacity    int    `json:"capacity"`
}

// SlotResponse HTTP model of a free interval
type SlotResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// ResultResponse комната с её свободными интервалами
type ResultResponse struct {
	Room           RoomResponse   `json:"room"`
	AvailableSlots []SlotResponse `json:"availableSlots"`
}

// SearchResponse HTTP response model
type SearchResponse struct {
	Date    string           `json:"date"`
	Results []ResultResponse `json:"results"`
}

// ParseSlot парсит слот вида "HH:MM-HH:MM" в доменный интервал
func ParseSlot(s string) (*domain.TimeRange, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("expected HH:MM-HH:MM, got %q", s)
	}

	slot, err := domain.NewTimeRange(parts[0], parts[1])
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

// ParseDate парсит дату вида "YYYY-MM-DD"
func ParseDate(s string) (time.Time, error) {
	return time.Parse(domain.DateFormat, s)
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *searchRooms.Response) *SearchResponse {
	results := make([]ResultResponse, 0, len(resp.Results))
	for _, res := range resp.Results {
		slots := make([]SlotResponse, 0, len(res.AvailableSlots))
		for _, s := range res.AvailableSlots {
			slots = append(slots, SlotResponse{
				StartTime: s.StartTime.String(),
				EndTime:   s.EndTime.String(),
			})
		}
		results = append(results, ResultResponse{
			Room: RoomResponse{
				ID:          res.Room.ID,
				LibraryID:   res.Room.LibraryID,
				LibraryName: res.Room.LibraryName,
				Name:        res.Room.Name,
				Capacity:    res.Room.Capacity,
			},
			AvailableSlots: slots,
		})
	}

	return &SearchResponse{
		Date:    resp.Date.Format(domain.DateFormat),
		Results: results,
	}
}
