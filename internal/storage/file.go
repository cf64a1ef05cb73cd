package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/multierr"

	"github.com/Renal37/orderdesk/internal/models"
)

// DefaultDataFile путь к файлу записей относительно рабочего каталога.
const DefaultDataFile = "data/orders.json"

const filePerm = 0o644

// FileStorage хранит всю коллекцию записей одним JSON-массивом в файле.
// Каждое чтение загружает файл целиком, каждая запись перезаписывает его целиком.
type FileStorage struct {
	path string
}

func NewFileStorage(path string) *FileStorage {
	if path == "" {
		path = DefaultDataFile
	}
	return &FileStorage{path: path}
}

func (f *FileStorage) Path() string {
	return f.path
}

// ensureDataDir создает каталог файла данных, если его нет.
func (f *FileStorage) ensureDataDir() error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("не удалось создать каталог данных: %w", err)
	}
	return nil
}

// Load читает все записи. Отсутствующий файл создается с содержимым [].
func (f *FileStorage) Load(_ context.Context) ([]models.Record, error) {
	if err := f.ensureDataDir(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := os.WriteFile(f.path, []byte("[]"), filePerm); err != nil {
			return nil, fmt.Errorf("не удалось создать файл данных: %w", err)
		}
		return []models.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла данных: %w", err)
	}

	var records []models.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("ошибка разбора файла данных: %w", err)
	}
	if records == nil {
		records = []models.Record{}
	}

	return records, nil
}

// Save перезаписывает файл всей коллекцией с отступом в два пробела.
func (f *FileStorage) Save(_ context.Context, records []models.Record) (err error) {
	if err := f.ensureDataDir(); err != nil {
		return err
	}

	if records == nil {
		records = []models.Record{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("ошибка кодирования записей: %w", err)
	}

	file, err := os.OpenFile(f.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm)
	if err != nil {
		return fmt.Errorf("не удалось открыть файл данных: %w", err)
	}
	defer func() {
		err = multierr.Append(err, file.Close())
	}()

	if _, err := file.Write(data); err != nil {
		return fmt.Errorf("ошибка записи файла данных: %w", err)
	}

	return nil
}
