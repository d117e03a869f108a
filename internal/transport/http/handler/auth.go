package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ErlanBelekov/storefront-api/internal/domain"
	"github.com/ErlanBelekov/storefront-api/internal/metrics"
	"github.com/gin-gonic/gin"
)

// authUsecaser is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type authUsecaser interface {
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Logout(ctx context.Context, token string) error
	ChangePassword(ctx context.Context, userID, password, confirm string) error
	RequestOTP(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, code, password, confirm string) error
}

type AuthHandler struct {
	authUsecase authUsecaser
	logger      *slog.Logger
}

func NewAuthHandler(authUsecase authUsecaser, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		logger:      logger.With("component", "auth_handler"),
	}
}

type loginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /users/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	token, user, err := h.authUsecase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		respondError(c, h.logger, err)
		return
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	respond(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"user":  toUserResponse(user),
	})
}

// POST /users/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		respond(c, http.StatusUnauthorized, errUnauthorized, nil)
		return
	}

	if err := h.authUsecase.Logout(c.Request.Context(), token); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "Logout successful", nil)
}

type changePasswordRequest struct {
	Password        string `json:"password"         binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// PATCH /users/:id/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	if err := h.authUsecase.ChangePassword(c.Request.Context(), c.Param("id"), req.Password, req.ConfirmPassword); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "Password updated", nil)
}

type otpRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// POST /users/otp
func (h *AuthHandler) RequestOTP(c *gin.Context) {
	var req otpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	if err := h.authUsecase.RequestOTP(c.Request.Context(), req.Email); err != nil {
		metrics.OTPRequestsTotal.WithLabelValues("failure").Inc()
		respondError(c, h.logger, err)
		return
	}

	metrics.OTPRequestsTotal.WithLabelValues("success").Inc()
	respond(c, http.StatusOK, "Verification code sent", nil)
}

type resetPasswordRequest struct {
	Code            string `json:"code"             binding:"required"`
	Password        string `json:"password"         binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// POST /users/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	if err := h.authUsecase.ResetPassword(c.Request.Context(), req.Code, req.Password, req.ConfirmPassword); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "Password reset", nil)
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}
