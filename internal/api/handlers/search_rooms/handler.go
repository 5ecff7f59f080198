package search_rooms

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/LRS-RoomReservationService/internal/api/handlers"
	searchRooms "github.com/m04kA/LRS-RoomReservationService/internal/usecase/search_rooms"
)

const (
	msgMissingDate        = "дата обязательна"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidLibraryID   = "некорректный ID библиотеки"
	msgInvalidMinCapacity = "некорректная минимальная вместимость"
	msgInvalidSlot        = "некорректный формат слота, ожидается HH:MM-HH:MM"
	msgLibraryNotFound    = "библиотека не найдена"
	msgInvalidInput       = "некорректные параметры запроса"
)

type Handler struct {
	useCase SearchRoomsUseCase
	logger  Logger
}

func NewHandler(useCase SearchRoomsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/search
// Query params: date (required, YYYY-MM-DD), libraryId, minCapacity,
// slot (HH:MM-HH:MM)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /search - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := ParseDate(dateStr)
	if err != nil {
		h.logger.Warn("GET /search - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	useCaseReq := &searchRooms.Request{Date: date}

	if libraryIDStr := query.Get("libraryId"); libraryIDStr != "" {
		libraryID, err := strconv.ParseInt(libraryIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /search - Invalid library ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidLibraryID)
			return
		}
		useCaseReq.LibraryID = &libraryID
	}

	if minCapacityStr := query.Get("minCapacity"); minCapacityStr != "" {
		minCapacity, err := strconv.Atoi(minCapacityStr)
		if err != nil {
			h.logger.Warn("GET /search - Invalid min capacity: %v", err)
			handlers.RespondBadRequest(w, msgInvalidMinCapacity)
			return
		}
		useCaseReq.MinCapacity = &minCapacity
	}

	if slotStr := query.Get("slot"); slotStr != "" {
		slot, err := ParseSlot(slotStr)
		if err != nil {
			h.logger.Warn("GET /search - Invalid slot: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSlot)
			return
		}
		useCaseReq.Slot = slot
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, searchRooms.ErrLibraryNotFound):
			h.logger.Warn("GET /search - Library not found: library_id=%v", useCaseReq.LibraryID)
			handlers.RespondNotFound(w, msgLibraryNotFound)

		case errors.Is(err, searchRooms.ErrInvalidInput):
			h.logger.Warn("GET /search - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /search - Failed to search rooms: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /search - Search completed successfully: date=%s, results_count=%d",
		dateStr, len(result.Results))
	handlers.RespondJSON(w, http.StatusOK, response)
}
