package storage

import (
	"context"

	"github.com/Renal37/orderdesk/internal/models"
)

// Backend загружает и сохраняет коллекцию записей целиком.
type Backend interface {
	Load(ctx context.Context) ([]models.Record, error)
	Save(ctx context.Context, records []models.Record) error
}

// Open выбирает хранилище: PostgreSQL, если задан dsn, иначе JSON-файл по path.
// Возвращаемая функция освобождает ресурсы хранилища.
func Open(ctx context.Context, dsn, path string) (Backend, func(), error) {
	if dsn == "" {
		return NewFileStorage(path), func() {}, nil
	}

	db, err := NewPostgres(ctx, dsn)
	if err != nil {
		return nil, nil, err
	}

	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, nil, err
	}

	return db, db.Close, nil
}
