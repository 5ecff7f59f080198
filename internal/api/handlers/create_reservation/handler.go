package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/LRS-RoomReservationService/internal/api/handlers"
	createReservation "github.com/m04kA/LRS-RoomReservationService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgRoomNotFound       = "комната не найдена"
	msgUserNotFound       = "пользователь не найден"
	msgInvalidInterval    = "интервал некорректен или выходит за рабочие часы библиотеки"
	msgPastSlot           = "выбранный слот уже прошел"
	msgSlotConflict       = "выбранный интервал пересекается с существующим бронированием"
	msgInvalidInput       = "некорректные параметры запроса"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrSlotConflict):
			h.logger.Warn("POST /reservations - Slot conflict: user_id=%d, room_id=%d", req.UserID, req.RoomID)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, createReservation.ErrRoomNotFound):
			h.logger.Warn("POST /reservations - Room not found: room_id=%d", req.RoomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, createReservation.ErrUserNotFound):
			h.logger.Warn("POST /reservations - User not found: user_id=%d", req.UserID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, createReservation.ErrInvalidInterval):
			h.logger.Warn("POST /reservations - Invalid interval: user_id=%d, room_id=%d, start=%s, end=%s",
				req.UserID, req.RoomID, req.StartTime, req.EndTime)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, createReservation.ErrPastSlot):
			h.logger.Warn("POST /reservations - Past slot: user_id=%d, room_id=%d, date=%s", req.UserID, req.RoomID, req.Date)
			handlers.RespondBadRequest(w, msgPastSlot)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%d, room_id=%d, error=%v",
				req.UserID, req.RoomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, user_id=%d, room_id=%d",
		result.ID, req.UserID, req.RoomID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
