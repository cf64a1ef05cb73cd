package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Renal37/orderdesk/internal/logger"
	"github.com/Renal37/orderdesk/internal/middlewares"
	"github.com/Renal37/orderdesk/internal/models"
)

type Config struct {
	// Endpoint адрес и порт, на которых сервер слушает запросы.
	Endpoint string
	// StaticDir каталог с файлами сайта. Если пусто, статика не раздается.
	StaticDir string
	// RequireAuth закрывает просмотр и изменение записей токеном администратора.
	RequireAuth bool
}

type Router struct {
	config        Config
	recordService models.RecordService
	otpService    models.OTPService
	jwtService    models.JWTService
}

// New создает Router с заданными зависимостями.
func New(
	config Config,
	recordService models.RecordService,
	otpService models.OTPService,
	jwtService models.JWTService,
) *Router {
	return &Router{
		config:        config,
		recordService: recordService,
		otpService:    otpService,
		jwtService:    jwtService,
	}
}

func (router *Router) get() chi.Router {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		logger.RequestLogger,
		middleware.Recoverer,
		cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		}),
		middlewares.ServiceInjectorMiddleware(
			router.recordService,
			router.otpService,
			router.jwtService,
		),
	)

	r.Route("/api/auth", func(r chi.Router) {
		r.With(middlewares.JSONMiddleware[models.SendOTPRequest]).Post("/send-otp", SendOTP)
		r.With(middlewares.JSONMiddleware[models.VerifyOTPRequest]).Post("/verify", VerifyOTP)
		r.With(middlewares.JSONMiddleware[models.Credentials]).Post("/login", Login)
	})

	r.Route("/api/orders", func(r chi.Router) {
		// Формы сайта отправляют заказы и обращения без входа.
		r.With(middlewares.JSONMiddleware[models.Record]).Post("/", CreateRecord)

		r.Group(func(r chi.Router) {
			if router.config.RequireAuth {
				r.Use(middlewares.AuthMiddleware)
			}

			r.Get("/", ListRecords)
			r.Get("/stats", GetStats)

			r.With(middlewares.JSONMiddleware[models.StatusUpdate]).Put("/{id}", UpdateRecordStatus)
			r.With(middlewares.JSONMiddleware[models.StatusUpdate]).Post("/{id}", UpdateRecordStatus)
			r.With(middlewares.JSONMiddleware[models.StatusUpdate]).Put("/{id}/status", UpdateRecordStatus)
			r.With(middlewares.JSONMiddleware[models.StatusUpdate]).Post("/{id}/status", UpdateRecordStatus)

			r.Delete("/{id}", DeleteRecord)
		})
	})

	if router.config.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(router.config.StaticDir)))
	}

	return r
}

// Server возвращает HTTP-сервер, готовый к запуску.
func (router *Router) Server() *http.Server {
	return &http.Server{
		Addr:              router.config.Endpoint,
		Handler:           router.get(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}
