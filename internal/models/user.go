package models

type SendOTPRequest struct {
	Phone string `json:"phone" validate:"required"`
}

type SendOTPResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	DebugOTP string `json:"debug_otp,omitempty"`
}

type VerifyOTPRequest struct {
	OTP string `json:"otp"`
}

// Credentials данные формы входа администратора.
type Credentials struct {
	ID   string `json:"id" validate:"required"`
	Pass string `json:"pass" validate:"required"`
}

type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
