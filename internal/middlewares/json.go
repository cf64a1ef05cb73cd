package middlewares

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"

	"go.uber.org/zap"

	"github.com/Renal37/orderdesk/internal/logger"
	"github.com/Renal37/orderdesk/internal/models"
)

// parsedJSONDataFieldType тип ключа для разобранного тела запроса в контексте.
type parsedJSONDataFieldType string

const parsedJSONDataField parsedJSONDataFieldType = "parsedJSONDataField"

// emptyObject тело, которым считается запрос без Content-Type.
var emptyObject = []byte("{}")

// JSONMiddleware разбирает тело запроса в Model и кладет результат в контекст.
// Content-Type должен быть application/json (параметры вроде charset допустимы).
// Запрос без Content-Type разбирается как пустой объект {}, тело игнорируется.
func JSONMiddleware[Model any](next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var parsedData Model
		var buf bytes.Buffer

		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			buf.Write(emptyObject)
		} else {
			mediaType, _, err := mime.ParseMediaType(contentType)
			if err != nil || mediaType != "application/json" {
				WriteError(w, http.StatusUnsupportedMediaType, "Content-Type is not application/json")
				return
			}

			if _, err := buf.ReadFrom(r.Body); err != nil {
				WriteError(w, http.StatusBadRequest, fmt.Sprintf("Error reading request body: %s", err.Error()))
				return
			}
		}

		if err := json.Unmarshal(buf.Bytes(), &parsedData); err != nil {
			WriteError(w, http.StatusBadRequest, fmt.Sprintf("Error parsing JSON: %s", err.Error()))
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), parsedJSONDataField, parsedData)))
	})
}

// GetParsedJSONData достает разобранное тело из контекста. Если его нет,
// отвечает 500 и возвращает false.
func GetParsedJSONData[Model any](w http.ResponseWriter, r *http.Request) (Model, bool) {
	data, ok := r.Context().Value(parsedJSONDataField).(Model)
	if !ok {
		WriteError(w, http.StatusInternalServerError, "Could not retrieve data from context")
	}

	return data, ok
}

// WriteJSON кодирует data и отправляет его с кодом status.
func WriteJSON[Model any](w http.ResponseWriter, status int, data Model) {
	resp, err := json.Marshal(data)
	if err != nil {
		http.Error(w, fmt.Sprintf("Error encoding JSON response: %s", err.Error()), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if _, err := w.Write(resp); err != nil {
		logger.Log.Warn("Не удалось отправить ответ", zap.Error(err))
	}
}

// WriteError отвечает телом {"error": message}.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, models.ErrorResponse{Error: message})
}
