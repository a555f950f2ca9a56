package dto

import authdomain "cryptnote-backend/internal/auth/domain"

type CreateUserRequest struct {
	Name     string `json:"name" validate:"min=3" msg:"Enter Valid Name"`
	Email    string `json:"email" validate:"required,email" msg:"Enter Valid Email"`
	Password string `json:"password" validate:"min=5" msg:"Password Must be 5 Characters"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" msg:"Enter Valid Email"`
	Password string `json:"password" validate:"required" msg:"Password Cannot be blank"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitnil,min=3" msg:"Enter Valid Name"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=5" msg:"Password Must be 5 Characters"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email" msg:"Enter Valid Email"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" validate:"min=5" msg:"Password Must be 5 Characters"`
}

type SendOtpRequest struct {
	Email string `json:"email" validate:"required,email" msg:"Enter a valid email"`
}

type VerifyOtpRequest struct {
	Email string `json:"email" validate:"required,email" msg:"Enter a valid email"`
	Otp   string `json:"otp" validate:"len=6,numeric" msg:"OTP must be a 6-digit code"`
}

type CheckEmailRequest struct {
	Email string `json:"email"`
}

type AuthTokenResponse struct {
	Success   bool   `json:"success"`
	AuthToken string `json:"authToken"`
}

type UpdateUserResponse struct {
	Success     bool             `json:"success"`
	UpdatedUser *authdomain.User `json:"updatedUser"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type CheckEmailResponse struct {
	Exists bool `json:"exists"`
}
