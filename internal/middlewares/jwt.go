package middlewares

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Renal37/orderdesk/internal/models"
	"github.com/Renal37/orderdesk/internal/services"
)

type subjectFieldType string

// subjectField ключ контекста с идентификатором администратора из токена.
const subjectField subjectFieldType = "subjectField"

// AuthMiddleware требует заголовок "Authorization: Bearer <token>" с
// действующим токеном. Сервис JWT берется из контекста запроса.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jwtService, ok := GetServiceFromContext[models.JWTService](w, r, JwtServiceKey)
		if !ok {
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			WriteError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || tokenString == "" {
			WriteError(w, http.StatusUnauthorized, "Bearer token is empty")
			return
		}

		token, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			if errors.Is(err, services.ErrTokenIsExpired) {
				WriteError(w, http.StatusUnauthorized, "Token expired")
				return
			}

			WriteError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		subject, err := token.Claims.GetSubject()
		if err != nil || subject == "" {
			WriteError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), subjectField, subject)))
	})
}

// GetSubjectFromContext возвращает администратора, прошедшего AuthMiddleware.
func GetSubjectFromContext(r *http.Request) (string, bool) {
	subject, ok := r.Context().Value(subjectField).(string)
	return subject, ok
}
