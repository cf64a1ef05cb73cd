package models

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
)

//go:generate mockgen -destination=mocks/mock_record.go . RecordService
type RecordService interface {
	List(ctx context.Context) []Record

	Create(ctx context.Context, fields Record) Record

	UpdateStatus(ctx context.Context, id, status string) error

	Delete(ctx context.Context, id string)

	Stats(ctx context.Context) Stats
}

//go:generate mockgen -destination=mocks/mock_otp.go . OTPService
type OTPService interface {
	SendOTP(phone string) (string, error)

	Verify(otp string) bool
}

//go:generate mockgen -destination=mocks/mock_jwt.go . JWTService
type JWTService interface {
	GenerateJWT(subject string) (string, error)

	ValidateToken(token string) (*jwt.Token, error)
}
