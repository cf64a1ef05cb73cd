package router

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Renal37/orderdesk/internal/logger"
	"github.com/Renal37/orderdesk/internal/middlewares"
	"github.com/Renal37/orderdesk/internal/models"
	"github.com/Renal37/orderdesk/internal/services"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// SendOTP выдает одноразовый код, если номер принадлежит администратору.
// Чужой номер дает success:false с кодом 200, а не ошибка.
func SendOTP(w http.ResponseWriter, r *http.Request) {
	data, ok := middlewares.GetParsedJSONData[models.SendOTPRequest](w, r)
	if !ok {
		return
	}

	if err := validate.Struct(data); err != nil {
		middlewares.WriteError(w, http.StatusBadRequest, "Phone required")
		return
	}

	otpService, ok := middlewares.GetServiceFromContext[models.OTPService](w, r, middlewares.OTPServiceKey)
	if !ok {
		return
	}

	otp, err := otpService.SendOTP(data.Phone)
	if err != nil {
		if errors.Is(err, services.ErrPhoneIsNotAuthorized) {
			middlewares.WriteJSON(w, http.StatusOK, models.SendOTPResponse{
				Success: false,
				Message: "Access Denied: Number not authorized for Admin.",
			})
			return
		}

		middlewares.WriteError(w, http.StatusInternalServerError, "Error sending OTP")
		return
	}

	middlewares.WriteJSON(w, http.StatusOK, models.SendOTPResponse{
		Success:  true,
		Message:  "OTP Sent to Admin Mobile",
		DebugOTP: otp,
	})
}

// adminSubject владелец токена, выданного после входа по одноразовому коду.
const adminSubject = "admin"

// VerifyOTP проверяет код и выдает токен сессии администратора.
func VerifyOTP(w http.ResponseWriter, r *http.Request) {
	data, ok := middlewares.GetParsedJSONData[models.VerifyOTPRequest](w, r)
	if !ok {
		return
	}

	otpService, ok := middlewares.GetServiceFromContext[models.OTPService](w, r, middlewares.OTPServiceKey)
	if !ok {
		return
	}

	if !otpService.Verify(data.OTP) {
		middlewares.WriteError(w, http.StatusUnauthorized, "Invalid OTP")
		return
	}

	writeToken(w, r, adminSubject)
}

// Login принимает любые непустые id и pass и выдает токен сессии.
func Login(w http.ResponseWriter, r *http.Request) {
	data, ok := middlewares.GetParsedJSONData[models.Credentials](w, r)
	if !ok {
		return
	}

	if err := validate.Struct(data); err != nil {
		middlewares.WriteError(w, http.StatusUnauthorized, "Invalid Credentials")
		return
	}

	writeToken(w, r, data.ID)
}

// writeToken отвечает {success, token} с токеном для subject.
func writeToken(w http.ResponseWriter, r *http.Request, subject string) {
	jwtService, ok := middlewares.GetServiceFromContext[models.JWTService](w, r, middlewares.JwtServiceKey)
	if !ok {
		return
	}

	token, err := jwtService.GenerateJWT(subject)
	if err != nil {
		logger.Log.Error("Ошибка генерации токена", zap.Error(err))
		middlewares.WriteError(w, http.StatusInternalServerError, "Error generating token")
		return
	}

	middlewares.WriteJSON(w, http.StatusOK, models.LoginResponse{Success: true, Token: token})
}
