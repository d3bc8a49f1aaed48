package dto

// OtpEmailEvent is published to the mail topic whenever an OTP is issued.
// Purpose distinguishes the registration flow from password reset.
type OtpEmailEvent struct {
	Email   string `json:"email"`
	Purpose string `json:"purpose"`
	Otp     string `json:"otp"`
}

const (
	OtpPurposeRegistration  = "registration"
	OtpPurposePasswordReset = "password_reset"
)
