package services

import (
	"errors"
	"math/rand/v2"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/Renal37/orderdesk/internal/logger"
)

// DefaultAdminPhone единственный номер, которому разрешен вход в админку.
const DefaultAdminPhone = "8432464520"

var ErrPhoneIsNotAuthorized = errors.New("номер не допущен к админке")

// OTPService выдает и проверяет одноразовые коды для входа администратора.
// Код не отправляется по SMS: он возвращается клиенту для отладки.
type OTPService struct {
	adminPhone string
	generate   func() string

	mu      sync.Mutex
	lastOTP string
}

func NewOTPService(adminPhone string) *OTPService {
	if adminPhone == "" {
		adminPhone = DefaultAdminPhone
	}
	return &OTPService{
		adminPhone: adminPhone,
		generate:   generateOTP,
	}
}

// generateOTP возвращает четырехзначный код от 1000 до 9999.
func generateOTP() string {
	return strconv.Itoa(1000 + rand.IntN(9000))
}

// SendOTP запоминает новый код для номера администратора и возвращает его.
// Каждый вызов заменяет предыдущий код.
func (o *OTPService) SendOTP(phone string) (string, error) {
	if phone != o.adminPhone {
		return "", ErrPhoneIsNotAuthorized
	}

	otp := o.generate()

	o.mu.Lock()
	o.lastOTP = otp
	o.mu.Unlock()

	logger.Log.Info("Выдан OTP", zap.String("phone", phone), zap.String("otp", otp))

	return otp, nil
}

// Verify сверяет код с последним выданным. Пока код не выдавался, проверка
// не проходит ни для какого значения.
func (o *OTPService) Verify(otp string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.lastOTP != "" && otp == o.lastOTP
}
