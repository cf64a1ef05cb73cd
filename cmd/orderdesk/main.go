package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	router "github.com/Renal37/orderdesk/internal/app"
	"github.com/Renal37/orderdesk/internal/config"
	"github.com/Renal37/orderdesk/internal/logger"
	"github.com/Renal37/orderdesk/internal/services"
	"github.com/Renal37/orderdesk/internal/storage"
	"github.com/Renal37/orderdesk/internal/utils"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("Config wasn't loaded due to %s", err)
	}

	if err := logger.Initialize(cfg.LogLevel, cfg.Env); err != nil {
		log.Fatalf("Logger wasn't initialized due to %s", err)
	}
	defer logger.Sync()

	if cfg.SecretGenerated() {
		logger.Log.Warn("AUTH_SECRET_KEY has to be defined for production environment")
	}

	ctx, stop := utils.TerminationContext(context.Background())
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Log.Fatal("Сервер остановлен с ошибкой", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config) error {
	backend, closeStorage, err := storage.Open(ctx, cfg.DSN, cfg.DataFile)
	if err != nil {
		return err
	}
	defer closeStorage()

	// Очередь живет дольше контекста сигналов: поставленные записи
	// должны успеть выполниться при остановке.
	writeQueue := services.NewWriteQueue(context.Background(), cfg.WriteQueueCapacity)

	server := router.New(
		router.Config{
			Endpoint:    cfg.Endpoint,
			StaticDir:   cfg.StaticDir,
			RequireAuth: cfg.RequireAuth,
		},
		services.NewRecordService(backend, writeQueue),
		services.NewOTPService(cfg.AdminPhone),
		services.NewJWTService(cfg.AuthSecretKey),
	).Server()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Log.Info("Сервер запущен", zap.String("address", cfg.Endpoint))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		err := server.Shutdown(shutdownCtx)
		writeQueue.Shutdown()
		logger.Log.Info("Сервер остановлен")

		return err
	})

	return g.Wait()
}
