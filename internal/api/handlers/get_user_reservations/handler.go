package get_user_reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/LRS-RoomReservationService/internal/api/handlers"
	"github.com/m04kA/LRS-RoomReservationService/internal/service/reservations"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
	msgUserNotFound  = "пользователь не найден"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/{userId}/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userIDStr := vars["userId"]

	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /users/{id}/reservations - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	result, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrUserNotFound):
			h.logger.Warn("GET /users/{id}/reservations - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /users/{id}/reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidUserID)

		default:
			h.logger.Error("GET /users/{id}/reservations - Failed to list reservations: user_id=%d, error=%v",
				userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /users/{id}/reservations - Reservations retrieved successfully: user_id=%d, count=%d",
		userID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
