package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/CourtBookingService/internal/api/handlers"
)

const (
	// UserIDHeader заголовок с ID аутентифицированного пользователя
	// Заполняется API-гейтвеем после проверки токена
	UserIDHeader = "X-User-ID"

	msgMissingUserID = "отсутствует заголовок X-User-ID"
	msgInvalidUserID = "некорректный формат X-User-ID"
)

type userIDKey struct{}

// Auth проверяет наличие заголовка X-User-ID и кладет ID пользователя в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawID := r.Header.Get(UserIDHeader)
		if rawID == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		userID, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgInvalidUserID)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey{}, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID извлекает ID пользователя из контекста запроса
// Возвращает 0, если запрос не прошел через Auth middleware
func GetUserID(ctx context.Context) int64 {
	userID, _ := ctx.Value(userIDKey{}).(int64)
	return userID
}
