package cancel_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/LRS-RoomReservationService/internal/api/handlers"
	"github.com/m04kA/LRS-RoomReservationService/internal/service/reservations"
	"github.com/m04kA/LRS-RoomReservationService/internal/service/reservations/models"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgMissingUserID        = "параметр userId обязателен"
	msgInvalidUserID        = "некорректный ID пользователя"
	msgNotFound             = "бронирование не найдено"
	msgForbidden            = "доступ запрещен"
	msgAlreadyPast          = "бронирование уже прошло и не может быть отменено"
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

// Handle DELETE /api/v1/reservations/{reservationId}
// Query params: userId (required)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reservationIDStr := vars["reservationId"]

	reservationID, err := strconv.ParseInt(reservationIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /reservations/{id} - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	userIDStr := r.URL.Query().Get("userId")
	if userIDStr == "" {
		h.logger.Warn("DELETE /reservations/{id} - Missing user ID: reservation_id=%d", reservationID)
		handlers.RespondBadRequest(w, msgMissingUserID)
		return
	}

	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /reservations/{id} - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	err = h.service.Cancel(r.Context(), &models.CancelReservationRequest{
		ReservationID: reservationID,
		UserID:        userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("DELETE /reservations/{id} - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("DELETE /reservations/{id} - Access denied: reservation_id=%d, user_id=%d",
				reservationID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrAlreadyPast):
			h.logger.Warn("DELETE /reservations/{id} - Already past: reservation_id=%d", reservationID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyPast)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("DELETE /reservations/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidReservationID)

		default:
			h.logger.Error("DELETE /reservations/{id} - Failed to cancel reservation: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /reservations/{id} - Reservation cancelled successfully: reservation_id=%d, user_id=%d",
		reservationID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
