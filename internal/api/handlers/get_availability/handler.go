package get_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/LRS-RoomReservationService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/LRS-RoomReservationService/internal/usecase/get_available_slots"
)

const (
	msgInvalidRoomID = "некорректный ID комнаты"
	msgMissingDate   = "дата обязательна"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgRoomNotFound  = "комната не найдена"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/rooms/{roomId}/availability
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	roomIDStr := vars["roomId"]

	roomID, err := strconv.ParseInt(roomIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/availability - Invalid room ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /rooms/{id}/availability - Missing date: room_id=%d", roomID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(roomID, dateStr)
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrRoomNotFound):
			h.logger.Warn("GET /rooms/{id}/availability - Room not found: room_id=%d", roomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /rooms/{id}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRoomID)

		default:
			h.logger.Error("GET /rooms/{id}/availability - Failed to get slots: room_id=%d, error=%v",
				roomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /rooms/{id}/availability - Slots retrieved successfully: room_id=%d, date=%s, slots_count=%d",
		roomID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
