package middleware

import (
	"net/http"
	"strconv"

	"github.com/m04kA/LRS-RoomReservationService/internal/api/handlers"
)

// HeaderUserID заголовок с идентификатором пользователя.
// Собственной аутентификации у сервиса нет: идентификатор приходит
// от внешнего шлюза и считается доверенным.
const HeaderUserID = "X-User-ID"

const msgMissingUserID = "требуется заголовок X-User-ID"

// Auth проверяет наличие корректного X-User-ID у защищенных маршрутов
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userIDStr := r.Header.Get(HeaderUserID)
		if userIDStr == "" {
			handlers.RespondError(w, http.StatusUnauthorized, msgMissingUserID)
			return
		}

		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, msgMissingUserID)
			return
		}

		next.ServeHTTP(w, r)
	})
}
