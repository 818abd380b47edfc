package api

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type VerifyResetCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type VerifyResetCodeResponse struct {
	Success    bool   `json:"success"`
	ResetToken string `json:"resetToken"`
}

type ResetPasswordRequest struct {
	ResetToken  string `json:"resetToken"`
	NewPassword string `json:"newPassword"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

// ErrorResponse is the uniform error payload: a short human-readable message,
// never internal detail.
type ErrorResponse struct {
	Message string `json:"message"`
}
