package delivery

import (
	"net/http"

	authdto "cryptnote-backend/internal/auth/dto"
	"cryptnote-backend/internal/auth/usecase"
	"cryptnote-backend/pkg/apperror"
	"cryptnote-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

const component = "AuthHandler"

// AuthHandler serves /api/auth.
type AuthHandler struct {
	authUsecase usecase.AuthUsecase
}

func NewAuthHandler(authUsecase usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase}
}

// CreateUser registers an account
// POST /api/auth/createuser
func (h *AuthHandler) CreateUser(c *gin.Context) {
	var req authdto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c)
		return
	}

	token, err := h.authUsecase.CreateUser(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, component, err)
		return
	}
	c.JSON(http.StatusOK, authdto.AuthTokenResponse{Success: true, AuthToken: token})
}

// Login
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req authdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c)
		return
	}

	token, err := h.authUsecase.Login(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, component, err)
		return
	}
	c.JSON(http.StatusOK, authdto.AuthTokenResponse{Success: true, AuthToken: token})
}

// GetUser returns the caller's profile
// POST /api/auth/getuser
func (h *AuthHandler) GetUser(c *gin.Context) {
	user, err := h.authUsecase.GetUser(c.Request.Context(), c.GetString(UserIDKey))
	if err != nil {
		response.Error(c, component, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateUser
// PUT /api/auth/updateuser
func (h *AuthHandler) UpdateUser(c *gin.Context) {
	var req authdto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c)
		return
	}

	user, err := h.authUsecase.UpdateUser(c.Request.Context(), c.GetString(UserIDKey), &req)
	if err != nil {
		response.Error(c, component, err)
		return
	}
	c.JSON(http.StatusOK, authdto.UpdateUserResponse{Success: true, UpdatedUser: user})
}

// DeleteUser
// DELETE /api/auth/deleteuser
func (h *AuthHandler) DeleteUser(c *gin.Context) {
	if err := h.authUsecase.DeleteUser(c.Request.Context(), c.GetString(UserIDKey)); err != nil {
		response.Error(c, component, err)
		return
	}
	c.JSON(http.StatusOK, authdto.MessageResponse{Success: true, Message: "User account deleted successfully"})
}

// ForgotPassword emails a reset link
// POST /api/auth/forgotpassword
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req authdto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c)
		return
	}

	if err := h.authUsecase.RequestPasswordReset(c.Request.Context(), &req); err != nil {
		h.writeBadRequestOnNotFound(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reset password link sent to your email."})
}

// ResetPassword
// POST /api/auth/resetpassword/:token
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req authdto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c)
		return
	}

	if err := h.authUsecase.ResetPassword(c.Request.Context(), c.Param("token"), &req); err != nil {
		h.writeBadRequestOnNotFound(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password has been reset successfully."})
}

// SendOtp
// POST /api/auth/sendotp
func (h *AuthHandler) SendOtp(c *gin.Context) {
	var req authdto.SendOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c)
		return
	}

	if err := h.authUsecase.SendSignupOtp(c.Request.Context(), &req); err != nil {
		response.Error(c, component, err)
		return
	}
	c.JSON(http.StatusOK, authdto.MessageResponse{Success: true, Message: "OTP sent successfully"})
}

// VerifyOtp
// POST /api/auth/verifyotp
func (h *AuthHandler) VerifyOtp(c *gin.Context) {
	var req authdto.VerifyOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c)
		return
	}

	if err := h.authUsecase.VerifyOtp(c.Request.Context(), &req); err != nil {
		response.Error(c, component, err)
		return
	}
	c.JSON(http.StatusOK, authdto.MessageResponse{Success: true, Message: "OTP verified successfully."})
}

// CheckEmail
// POST /api/auth/checkemail
func (h *AuthHandler) CheckEmail(c *gin.Context) {
	var req authdto.CheckEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c)
		return
	}

	exists, err := h.authUsecase.CheckEmail(c.Request.Context(), req.Email)
	if err != nil {
		response.Error(c, component, err)
		return
	}
	c.JSON(http.StatusOK, authdto.CheckEmailResponse{Exists: exists})
}

// The reset routes answer a missing user with 400 rather than 404.
func (h *AuthHandler) writeBadRequestOnNotFound(c *gin.Context, err error) {
	if apperror.IsKind(err, apperror.KindNotFound) {
		response.ErrorWithStatus(c, component, err, http.StatusBadRequest)
		return
	}
	response.Error(c, component, err)
}
