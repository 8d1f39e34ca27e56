package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"legacyestates/internal/services"
	apperrors "legacyestates/pkg/errors"
)

// respondServiceError maps service failures onto HTTP status codes. The
// body carries a stable machine-readable code alongside the message so
// clients do not have to parse message text.
func respondServiceError(c *gin.Context, err error) {
	var se *services.ServiceError
	if !errors.As(err, &se) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "internal server error",
			"code":  apperrors.ErrCodeInternalError,
		})
		return
	}

	status := http.StatusInternalServerError
	code := apperrors.ErrCodeInternalError
	switch se.Type {
	case services.ErrTypeBadRequest:
		status, code = http.StatusBadRequest, apperrors.ErrCodeBadRequest
	case services.ErrTypeUnauthorized:
		status, code = http.StatusUnauthorized, apperrors.ErrCodeUnauthorized
	case services.ErrTypeForbidden:
		status, code = http.StatusForbidden, apperrors.ErrCodeForbidden
	case services.ErrTypeNotFound:
		status, code = http.StatusNotFound, apperrors.ErrCodeNotFound
	case services.ErrTypeRateLimited:
		status, code = http.StatusTooManyRequests, apperrors.ErrCodeRateLimited
	}

	c.JSON(status, gin.H{"error": se.Message, "code": code})
}
