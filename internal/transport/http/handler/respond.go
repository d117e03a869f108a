package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/storefront-api/internal/domain"
	"github.com/gin-gonic/gin"
)

// respond writes the uniform success envelope.
func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, gin.H{"message": message, "data": data})
}

// respondError maps domain sentinels onto status codes. Anything unmapped
// is logged and reported as a generic 500 so internals never leak.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	status, message := http.StatusInternalServerError, errInternalServer

	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		status, message = http.StatusNotFound, errUserNotFound
	case errors.Is(err, domain.ErrInventoryNotFound):
		status, message = http.StatusNotFound, errInventoryNotFound
	case errors.Is(err, domain.ErrInvalidCredentials):
		status, message = http.StatusUnauthorized, errInvalidCredentials
	case errors.Is(err, domain.ErrSessionInvalid):
		status, message = http.StatusUnauthorized, errUnauthorized
	case errors.Is(err, domain.ErrEmailTaken):
		status, message = http.StatusBadRequest, errEmailTaken
	case errors.Is(err, domain.ErrPasswordMismatch):
		status, message = http.StatusBadRequest, errPasswordMismatch
	case errors.Is(err, domain.ErrImageRequired):
		status, message = http.StatusBadRequest, errImageRequired
	case errors.Is(err, domain.ErrCodeInvalid):
		status, message = http.StatusBadRequest, errCodeInvalid
	case errors.Is(err, domain.ErrCodeExpired):
		status, message = http.StatusGone, errCodeExpired
	case errors.Is(err, domain.ErrOTPRateLimited):
		status, message = http.StatusTooManyRequests, errOTPRateLimited
	default:
		logger.ErrorContext(c.Request.Context(), "request failed", "error", err)
	}

	c.JSON(status, gin.H{"message": message, "data": nil})
}
