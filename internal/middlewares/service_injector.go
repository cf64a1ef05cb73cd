package middlewares

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Renal37/orderdesk/internal/models"
)

type key int

const (
	RecordServiceKey key = iota
	OTPServiceKey
	JwtServiceKey
)

func ServiceInjectorMiddleware(
	recordService models.RecordService,
	otpService models.OTPService,
	jwtService models.JWTService,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), RecordServiceKey, recordService)
			ctx = context.WithValue(ctx, OTPServiceKey, otpService)
			ctx = context.WithValue(ctx, JwtServiceKey, jwtService)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetServiceFromContext[Service any](w http.ResponseWriter, r *http.Request, serviceKey key) (Service, bool) {
	foundService, ok := r.Context().Value(serviceKey).(Service)
	if !ok {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Service wasn't found in context by key %v", serviceKey))
	}

	return foundService, ok
}
