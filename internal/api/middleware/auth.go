package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dormclub/ReservationService/internal/api/handlers"
)

type contextKey string

// userIDKey ключ контекста с ID аутентифицированного участника
const userIDKey contextKey = "userID"

// userIDHeader заголовок с ID участника, проставляется API gateway
const userIDHeader = "X-User-ID"

// Auth извлекает ID участника из заголовка и кладет его в контекст запроса
// Запросы без корректного заголовка отклоняются
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(userIDHeader)
		if raw == "" {
			handlers.RespondUnauthorized(w, "missing "+userIDHeader+" header")
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, "invalid "+userIDHeader+" header")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID возвращает ID участника из контекста запроса
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
