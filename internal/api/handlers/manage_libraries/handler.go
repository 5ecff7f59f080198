package manage_libraries

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
	msgInvalidLibraryID      = "некорректный ID библиотеки"
	msgLibraryNotFound       = "библиотека не найдена"
	msgInvalidInput          = "некорректные параметры библиотеки"
	msgHasActiveReservations = "у библиотеки есть активные будущие бронирования"
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

// HandleCreate POST /api/v1/libraries
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateLibraryRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /libraries - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateLibrary(r.Context(), &req)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidInput) {
			h.logger.Warn("POST /libraries - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)
			return
		}
		h.logger.Error("POST /libraries - Failed to create library: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /libraries - Library created successfully: library_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleGet GET /api/v1/libraries/{libraryId}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	libraryID, ok := h.libraryID(w, r)
	if !ok {
		return
	}

	result, err := h.service.GetLibrary(r.Context(), libraryID)
	if err != nil {
		h.respondServiceError(w, "GET /libraries/{id}", libraryID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleList GET /api/v1/libraries
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListLibraries(r.Context())
	if err != nil {
		h.logger.Error("GET /libraries - Failed to list libraries: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleUpdate PUT /api/v1/libraries/{libraryId}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	libraryID, ok := h.libraryID(w, r)
	if !ok {
		return
	}

	var req models.UpdateLibraryRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /libraries/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateLibrary(r.Context(), libraryID, &req)
	if err != nil {
		h.respondServiceError(w, "PUT /libraries/{id}", libraryID, err)
		return
	}

	h.logger.Info("PUT /libraries/{id} - Library updated successfully: library_id=%d", libraryID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDelete DELETE /api/v1/libraries/{libraryId}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	libraryID, ok := h.libraryID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteLibrary(r.Context(), libraryID); err != nil {
		if errors.Is(err, catalog.ErrHasActiveReservations) {
			h.logger.Warn("DELETE /libraries/{id} - Has active reservations: library_id=%d", libraryID)
			handlers.RespondError(w, http.StatusConflict, msgHasActiveReservations)
			return
		}
		h.respondServiceError(w, "DELETE /libraries/{id}", libraryID, err)
		return
	}

	h.logger.Info("DELETE /libraries/{id} - Library deleted successfully: library_id=%d", libraryID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

// libraryID извлекает и валидирует libraryId из URL
func (h *Handler) libraryID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	vars := mux.Vars(r)
	libraryID, err := strconv.ParseInt(vars["libraryId"], 10, 64)
	if err != nil {
		h.logger.Warn("%s %s - Invalid library ID: %v", r.Method, r.URL.Path, err)
		handlers.RespondBadRequest(w, msgInvalidLibraryID)
		return 0, false
	}
	return libraryID, true
}

// respondServiceError переводит общие ошибки сервиса каталога в HTTP ответ
func (h *Handler) respondServiceError(w http.ResponseWriter, route string, libraryID int64, err error) {
	switch {
	case errors.Is(err, catalog.ErrLibraryNotFound):
		h.logger.Warn("%s - Library not found: library_id=%d", route, libraryID)
		handlers.RespondNotFound(w, msgLibraryNotFound)

	case errors.Is(err, catalog.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: library_id=%d, error=%v", route, libraryID, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Internal error: library_id=%d, error=%v", route, libraryID, err)
		handlers.RespondInternalError(w)
	}
}
