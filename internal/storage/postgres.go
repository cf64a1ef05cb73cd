package storage

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Renal37/orderdesk/internal/logger"
	"github.com/Renal37/orderdesk/internal/models"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	SelectRecordsQuery = `
		SELECT
			body
		FROM
			records
		ORDER BY
			position
	`
	DeleteRecordsQuery = `DELETE FROM records`
)

// Postgres хранит коллекцию в таблице records: одна строка на запись,
// position задает порядок (0 означает самую новую). Как и файл, коллекция
// перезаписывается целиком, но в одной транзакции.
type Postgres struct {
	pool *pgxpool.Pool
	dsn  string
}

func checkConnection(ctx context.Context, pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("не удалось подключиться к базе данных: %w", err)
	}

	return nil
}

// NewPostgres создает пул подключений и проверяет доступность базы.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("ошибка при создании пула подключений: %w", err)
	}

	if err := checkConnection(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	return &Postgres{pool: pool, dsn: dsn}, nil
}

// RunMigrations применяет встроенные миграции.
func (p *Postgres) RunMigrations() error {
	driver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("не удалось создать источник миграций: %w", err)
	}

	migrations, err := migrate.NewWithSourceInstance("iofs", driver, p.dsn)
	if err != nil {
		return fmt.Errorf("не удалось инициализировать миграции: %w", err)
	}
	defer migrations.Close()

	if err := migrations.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Log.Info("Новых миграций не найдено")
			return nil
		}
		return fmt.Errorf("ошибка при выполнении миграций: %w", err)
	}

	logger.Log.Info("Миграции успешно применены")
	return nil
}

func (p *Postgres) Load(ctx context.Context) ([]models.Record, error) {
	rows, err := p.pool.Query(ctx, SelectRecordsQuery)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения записей: %w", err)
	}
	defer rows.Close()

	records := []models.Record{}
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("ошибка обработки строки: %w", err)
		}

		var record models.Record
		if err := json.Unmarshal(body, &record); err != nil {
			return nil, fmt.Errorf("ошибка разбора записи: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка итерации по строкам: %w", err)
	}

	return records, nil
}

func (p *Postgres) Save(ctx context.Context, records []models.Record) error {
	bodies := make([]json.RawMessage, len(records))
	for i, record := range records {
		body, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("ошибка кодирования записи %d: %w", i, err)
		}
		bodies[i] = body
	}

	err := pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, DeleteRecordsQuery); err != nil {
			return err
		}

		copied, err := tx.CopyFrom(ctx,
			pgx.Identifier{"records"},
			[]string{"position", "body"},
			pgx.CopyFromSlice(len(bodies), func(i int) ([]any, error) {
				return []any{i, bodies[i]}, nil
			}),
		)
		if err != nil {
			return err
		}

		logger.Log.Debug("Записи сохранены", zap.Int64("rows", copied))
		return nil
	})
	if err != nil {
		return fmt.Errorf("ошибка сохранения записей: %w", err)
	}

	return nil
}

// Close закрывает пул подключений.
func (p *Postgres) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}
