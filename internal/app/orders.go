package router

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Renal37/orderdesk/internal/logger"
	"github.com/Renal37/orderdesk/internal/middlewares"
	"github.com/Renal37/orderdesk/internal/models"
	"github.com/Renal37/orderdesk/internal/services"
)

// recordID извлекает {id} из пути в раскодированном виде. chi маршрутизирует
// по RawPath, если он задан, иначе по уже раскодированному Path.
func recordID(r *http.Request) string {
	id := chi.URLParam(r, "id")
	if r.URL.RawPath == "" {
		return id
	}
	if unescaped, err := url.PathUnescape(id); err == nil {
		return unescaped
	}
	return id
}

// adminField поле лога с администратором из токена, если маршрут защищен.
func adminField(r *http.Request) zap.Field {
	subject, _ := middlewares.GetSubjectFromContext(r)
	return zap.String("admin", subject)
}

// ListRecords отдает все записи, самые новые первыми.
func ListRecords(w http.ResponseWriter, r *http.Request) {
	recordService, ok := middlewares.GetServiceFromContext[models.RecordService](w, r, middlewares.RecordServiceKey)
	if !ok {
		return
	}

	records := recordService.List(r.Context())
	if records == nil {
		records = []models.Record{}
	}

	middlewares.WriteJSON(w, http.StatusOK, records)
}

// GetStats отдает счетчики для панели администратора.
func GetStats(w http.ResponseWriter, r *http.Request) {
	recordService, ok := middlewares.GetServiceFromContext[models.RecordService](w, r, middlewares.RecordServiceKey)
	if !ok {
		return
	}

	middlewares.WriteJSON(w, http.StatusOK, recordService.Stats(r.Context()))
}

// CreateRecord сохраняет заказ или обращение с формы сайта. Поля не
// проверяются: id, date и status проставляет сервис.
func CreateRecord(w http.ResponseWriter, r *http.Request) {
	fields, ok := middlewares.GetParsedJSONData[models.Record](w, r)
	if !ok {
		return
	}

	recordService, ok := middlewares.GetServiceFromContext[models.RecordService](w, r, middlewares.RecordServiceKey)
	if !ok {
		return
	}

	record := recordService.Create(r.Context(), fields)

	middlewares.WriteJSON(w, http.StatusOK, models.CreateRecordResponse{Success: true, Order: record})
}

// UpdateRecordStatus меняет статус записи по id или, для старой админки,
// по позиции в списке. Тело без status отклоняется с 400, хотя старый
// сервер в этом случае молча удалял поле status у записи.
func UpdateRecordStatus(w http.ResponseWriter, r *http.Request) {
	data, ok := middlewares.GetParsedJSONData[models.StatusUpdate](w, r)
	if !ok {
		return
	}

	if data.Status == nil {
		middlewares.WriteError(w, http.StatusBadRequest, "Status required")
		return
	}

	recordService, ok := middlewares.GetServiceFromContext[models.RecordService](w, r, middlewares.RecordServiceKey)
	if !ok {
		return
	}

	if err := recordService.UpdateStatus(r.Context(), recordID(r), *data.Status); err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			middlewares.WriteError(w, http.StatusNotFound, "Order not found")
			return
		}

		middlewares.WriteError(w, http.StatusInternalServerError, "Error updating order")
		return
	}

	logger.Log.Info("Статус записи изменен",
		zap.String("id", recordID(r)),
		zap.String("status", *data.Status),
		adminField(r),
	)

	middlewares.WriteJSON(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// DeleteRecord удаляет запись. Отсутствующая запись тоже дает success.
func DeleteRecord(w http.ResponseWriter, r *http.Request) {
	recordService, ok := middlewares.GetServiceFromContext[models.RecordService](w, r, middlewares.RecordServiceKey)
	if !ok {
		return
	}

	id := recordID(r)
	recordService.Delete(r.Context(), id)
	logger.Log.Info("Запись удалена", zap.String("id", id), adminField(r))

	middlewares.WriteJSON(w, http.StatusOK, models.SuccessResponse{Success: true})
}
