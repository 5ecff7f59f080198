package notifier

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// TypeReservationConfirmation тип задачи отправки письма-подтверждения
const TypeReservationConfirmation = "reservation:confirmation"

// ConfirmationPayload данные для письма-подтверждения бронирования.
// Все поля денормализованы в момент постановки задачи: к моменту отправки
// комната или библиотека уже могли быть переименованы.
type ConfirmationPayload struct {
	ReservationID int64  `json:"reservationId"`
	UserName      string `json:"userName"`
	UserEmail     string `json:"userEmail"`
	RoomName      string `json:"roomName"`
	LibraryName   string `json:"libraryName"`
	Date          string `json:"date"`      // YYYY-MM-DD
	StartTime     string `json:"startTime"` // HH:MM
	EndTime       string `json:"endTime"`   // HH:MM
}

// NewConfirmationTask создает asynq-задачу с JSON-полезной нагрузкой
func NewConfirmationTask(payload ConfirmationPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeReservationConfirmation, b), nil
}
