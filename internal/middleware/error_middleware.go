package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HenryFerreira/bedelias-backend/internal/app/models/dto"
	"github.com/HenryFerreira/bedelias-backend/internal/pkg/apperrors"
)

// HandleAPIError maps service errors to HTTP responses with the
// standard error envelope. Unknown errors become a 500 without leaking
// the internal message.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrBadRequest) || errors.Is(err, apperrors.ErrValidationFailed):
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, messageOrDefault(err, "Validation failed"))
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		detail := dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials")
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))

	case errors.Is(err, apperrors.ErrTokenExpired):
		detail := dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))

	case errors.Is(err, apperrors.ErrTokenInvalid) || errors.Is(err, apperrors.ErrTokenRevoked):
		detail := dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))

	case errors.Is(err, apperrors.ErrTokenNotFound):
		detail := dto.NewErrorDetail(dto.ErrorCodeTokenNotFound, "Token not found")
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))

	case errors.Is(err, apperrors.ErrAccountDisabled):
		detail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Account disabled")
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(detail))

	case errors.Is(err, apperrors.ErrPermissionDenied):
		detail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied")
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(detail))

	case errors.Is(err, apperrors.ErrMateriaNotFound):
		detail := dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Materia not found")
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(detail))

	case errors.Is(err, apperrors.ErrUserNotFound):
		detail := dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "User not found")
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(detail))

	case errors.Is(err, apperrors.ErrHistorialNotFound) || errors.Is(err, apperrors.ErrResourceNotFound):
		detail := dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Resource not found")
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(detail))

	case errors.Is(err, apperrors.ErrMateriaAlreadyExists):
		detail := dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Materia code already exists")
		c.JSON(http.StatusConflict, dto.NewErrorResponse(detail))

	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		detail := dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Email already exists")
		c.JSON(http.StatusConflict, dto.NewErrorResponse(detail))

	case errors.Is(err, apperrors.ErrMateriaHasRelations):
		detail := dto.NewErrorDetail(dto.ErrorCodeResourceInUse, "Materia is referenced by other records")
		c.JSON(http.StatusConflict, dto.NewErrorResponse(detail))

	case errors.Is(err, apperrors.ErrConflict) || errors.Is(err, apperrors.ErrResourceAlreadyExists):
		detail := dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, messageOrDefault(err, "Resource already exists"))
		c.JSON(http.StatusConflict, dto.NewErrorResponse(detail))

	default:
		detail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(detail))
	}
}

// messageOrDefault prefers the wrapped CustomError message when one is
// present, so bad-request responses carry the validation reason.
func messageOrDefault(err error, fallback string) string {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}
	return fallback
}
