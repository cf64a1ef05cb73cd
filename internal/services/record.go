package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Renal37/orderdesk/internal/logger"
	"github.com/Renal37/orderdesk/internal/models"
)

var ErrRecordNotFound = errors.New("запись не найдена")

// DateLayout формат даты создания записи, например "Oct 17, 2026".
const DateLayout = "Jan 2, 2006"

type recordStorage interface {
	Load(ctx context.Context) ([]models.Record, error)
	Save(ctx context.Context, records []models.Record) error
}

// RecordService реализует список, создание, смену статуса и удаление записей.
//
// Ошибки хранилища логируются и не возвращаются вызывающему: чтение с ошибкой
// дает пустую коллекцию, неудачная запись молча ничего не меняет.
type RecordService struct {
	storage recordStorage
	writer  *WriteQueue
	now     func() time.Time
}

// NewRecordService создает сервис. writer может быть nil, тогда изменения
// выполняются прямо в вызывающей горутине.
func NewRecordService(storage recordStorage, writer *WriteQueue) *RecordService {
	return &RecordService{
		storage: storage,
		writer:  writer,
		now:     time.Now,
	}
}

// RecordID строит идентификатор из последних шести цифр времени в миллисекундах.
func RecordID(t time.Time) string {
	return fmt.Sprintf("ORD-%06d", t.UnixMilli()%1_000_000)
}

func (s *RecordService) load(ctx context.Context) []models.Record {
	records, err := s.storage.Load(ctx)
	if err != nil {
		logger.Log.Error("Ошибка чтения записей", zap.Error(err))
		return []models.Record{}
	}
	return records
}

// mutate загружает коллекцию, применяет change и сохраняет результат.
// Ошибка change прерывает изменение и возвращается как есть, ошибки
// хранилища и очереди только логируются.
func (s *RecordService) mutate(ctx context.Context, change func([]models.Record) ([]models.Record, error)) error {
	job := func(ctx context.Context) error {
		updated, err := change(s.load(ctx))
		if err != nil {
			return err
		}

		if err := s.storage.Save(ctx, updated); err != nil {
			logger.Log.Error("Ошибка сохранения записей", zap.Error(err))
		}
		return nil
	}

	if s.writer == nil {
		return job(ctx)
	}

	err := s.writer.Do(ctx, job)
	if errors.Is(err, ErrWriteQueueIsFull) || errors.Is(err, ErrWriteQueueClosed) {
		logger.Log.Error("Изменение записей не выполнено", zap.Error(err))
		return nil
	}

	return err
}

// List возвращает все записи, самые новые первыми.
func (s *RecordService) List(ctx context.Context) []models.Record {
	return s.load(ctx)
}

// Create проставляет id, date и status="New" поверх полей вызывающего
// и добавляет запись в начало коллекции.
func (s *RecordService) Create(ctx context.Context, fields models.Record) models.Record {
	record := fields.Clone()

	now := s.now()
	record.SetString(models.FieldID, RecordID(now))
	record.SetString(models.FieldDate, now.Format(DateLayout))
	record.SetString(models.FieldStatus, string(models.StatusNew))

	if err := s.mutate(ctx, func(records []models.Record) ([]models.Record, error) {
		return append([]models.Record{record}, records...), nil
	}); err != nil {
		logger.Log.Error("Запись не создана", zap.String("id", record.ID()), zap.Error(err))
	}

	return record
}

// UpdateStatus меняет статус первой записи с точно таким id. Если такой нет,
// id трактуется как позиция в коллекции: так адресовала записи старая
// админка. Неоднозначно, но оставлено для совместимости.
func (s *RecordService) UpdateStatus(ctx context.Context, id, status string) error {
	return s.mutate(ctx, func(records []models.Record) ([]models.Record, error) {
		index := findRecord(records, id)
		if index == -1 {
			index = positionalIndex(id, len(records))
		}
		if index == -1 {
			return nil, ErrRecordNotFound
		}

		records[index].SetString(models.FieldStatus, status)
		return records, nil
	})
}

// Delete удаляет все записи с точно таким id. Если ничего не удалено и id
// является числом, удаляется элемент на этой позиции (совместимость со
// старой админкой). Отсутствующая запись ошибкой не считается.
func (s *RecordService) Delete(ctx context.Context, id string) {
	err := s.mutate(ctx, func(records []models.Record) ([]models.Record, error) {
		kept := make([]models.Record, 0, len(records))
		for _, record := range records {
			if recordID, ok := record.String(models.FieldID); ok && recordID == id {
				continue
			}
			kept = append(kept, record)
		}

		if len(kept) == len(records) {
			if index, ok := spliceIndex(id, len(kept)); ok {
				kept = append(kept[:index], kept[index+1:]...)
			}
		}

		return kept, nil
	})
	if err != nil {
		logger.Log.Error("Запись не удалена", zap.String("id", id), zap.Error(err))
	}
}

// Stats считает все записи и незакрытые обращения.
func (s *RecordService) Stats(ctx context.Context) models.Stats {
	records := s.load(ctx)

	stats := models.Stats{Total: len(records)}
	for _, record := range records {
		if record.Type() == models.TypeInquiry && record.Status() != models.StatusCompleted {
			stats.PendingInquiries++
		}
	}

	return stats
}

func findRecord(records []models.Record, id string) int {
	for i, record := range records {
		if recordID, ok := record.String(models.FieldID); ok && recordID == id {
			return i
		}
	}
	return -1
}

// positionalIndex принимает только каноническую запись неотрицательного
// целого ("2", но не "02" или "2.0"), как индексирование массива по ключу.
func positionalIndex(id string, length int) int {
	index, err := strconv.Atoi(id)
	if err != nil || index < 0 || index >= length || strconv.Itoa(index) != id {
		return -1
	}
	return index
}

// spliceIndex переводит числовой id в позицию удаления: дробная часть
// отбрасывается, отрицательное значение отсчитывается с конца (и прижимается
// к 0), пустая строка означает 0. За концом коллекции удалять нечего.
func spliceIndex(id string, length int) (int, bool) {
	if length == 0 {
		return 0, false
	}

	trimmed := strings.TrimSpace(id)

	number := 0.0
	if trimmed != "" {
		var err error
		number, err = strconv.ParseFloat(trimmed, 64)
		if err != nil || math.IsNaN(number) {
			return 0, false
		}
	}

	if number >= float64(length) {
		return 0, false
	}

	index := 0
	if number > -float64(length) {
		index = int(math.Trunc(number))
		if index < 0 {
			index += length
		}
	}

	return index, true
}
