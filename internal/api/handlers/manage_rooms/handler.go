package manage_rooms

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/LRS-RoomReservationService/internal/api/handlers"
	"github.com/m04kA/LRS-RoomReservationService/internal/service/catalog"
	"github.com/m04kA/LRS-RoomReservationService/internal/service/catalog/models"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidRoomID         = "некорректный ID комнаты"
	msgInvalidLibraryID      = "некорректный ID библиотеки"
	msgInvalidMinCapacity    = "некорректная минимальная вместимость"
	msgRoomNotFound          = "комната не найдена"
	msgLibraryNotFound       = "библиотека не найдена"
	msgInvalidInput          = "некорректные параметры комнаты"
	msgHasActiveReservations = "у комнаты есть активные будущие бронирования"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleCreate POST /api/v1/rooms
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRoomRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /rooms - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateRoom(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrLibraryNotFound):
			h.logger.Warn("POST /rooms - Library not found: library_id=%d", req.LibraryID)
			handlers.RespondNotFound(w, msgLibraryNotFound)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("POST /rooms - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /rooms - Failed to create room: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /rooms - Room created successfully: room_id=%d, library_id=%d",
		result.ID, req.LibraryID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleGet GET /api/v1/rooms/{roomId}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	roomID, ok := h.roomID(w, r)
	if !ok {
		return
	}

	result, err := h.service.GetRoom(r.Context(), roomID)
	if err != nil {
		h.respondServiceError(w, "GET /rooms/{id}", roomID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleList GET /api/v1/rooms
// Query params: libraryId, minCapacity
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &models.ListRoomsRequest{}

	if libraryIDStr := query.Get("libraryId"); libraryIDStr != "" {
		libraryID, err := strconv.ParseInt(libraryIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /rooms - Invalid library ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidLibraryID)
			return
		}
		req.LibraryID = &libraryID
	}

	if minCapacityStr := query.Get("minCapacity"); minCapacityStr != "" {
		minCapacity, err := strconv.Atoi(minCapacityStr)
		if err != nil {
			h.logger.Warn("GET /rooms - Invalid min capacity: %v", err)
			handlers.RespondBadRequest(w, msgInvalidMinCapacity)
			return
		}
		req.MinCapacity = &minCapacity
	}

	result, err := h.service.ListRooms(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /rooms - Failed to list rooms: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleUpdate PUT /api/v1/rooms/{roomId}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	roomID, ok := h.roomID(w, r)
	if !ok {
		return
	}

	var req models.UpdateRoomRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /rooms/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateRoom(r.Context(), roomID, &req)
	if err != nil {
		h.respondServiceError(w, "PUT /rooms/{id}", roomID, err)
		return
	}

	h.logger.Info("PUT /rooms/{id} - Room updated successfully: room_id=%d", roomID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDelete DELETE /api/v1/rooms/{roomId}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	roomID, ok := h.roomID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteRoom(r.Context(), roomID); err != nil {
		if errors.Is(err, catalog.ErrHasActiveReservations) {
			h.logger.Warn("DELETE /rooms/{id} - Has active reservations: room_id=%d", roomID)
			handlers.RespondError(w, http.StatusConflict, msgHasActiveReservations)
			return
		}
		h.respondServiceError(w, "DELETE /rooms/{id}", roomID, err)
		return
	}

	h.logger.Info("DELETE /rooms/{id} - Room deleted successfully: room_id=%d", roomID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

// roomID извлекает и валидирует roomId из URL
func (h *Handler) roomID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	vars := mux.Vars(r)
	roomID, err := strconv.ParseInt(vars["roomId"], 10, 64)
	if err != nil {
		h.logger.Warn("%s %s - Invalid room ID: %v", r.Method, r.URL.Path, err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return 0, false
	}
	return roomID, true
}

// respondServiceError переводит общие ошибки сервиса каталога в HTTP ответ
func (h *Handler) respondServiceError(w http.ResponseWriter, route string, roomID int64, err error) {
	switch {
	case errors.Is(err, catalog.ErrRoomNotFound):
		h.logger.Warn("%s - Room not found: room_id=%d", route, roomID)
		handlers.RespondNotFound(w, msgRoomNotFound)

	case errors.Is(err, catalog.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: room_id=%d, error=%v", route, roomID, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Internal error: room_id=%d, error=%v", route, roomID, err)
		handlers.RespondInternalError(w)
	}
}
