package middleware

import (
	"context"
	"net/http"

	"github.com/m04kA/SBP-SchedulingService/internal/api/handlers"
)

type contextKey string

const userIDKey contextKey = "userID"

const msgMissingUserID = "требуется заголовок X-User-ID"

// Auth проверяет наличие заголовка X-User-ID и кладет идентификатор
// вызывающего в контекст запроса. Аутентификацию выполняет шлюз платформы,
// сервис доверяет заголовку.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("X-User-ID")
		if userID == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID извлекает идентификатор вызывающего из контекста
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok
}
