package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kittipos/equiptrack/internal/app/models/dto"
	"github.com/kittipos/equiptrack/internal/pkg/apperrors"
	"github.com/kittipos/equiptrack/internal/pkg/logger"
)

// errorMapping binds one sentinel to its HTTP status and machine code
type errorMapping struct {
	sentinel error
	status   int
	code     dto.ErrorCode
	message  string
}

// errorMappings is checked in order; the first errors.Is match wins. More
// specific sentinels come before the generic ones they may wrap.
var errorMappings = []errorMapping{
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials"},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired"},
	{apperrors.ErrTokenRevoked, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Token revoked"},
	{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"},
	{apperrors.ErrTokenNotFound, http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, "Token not found"},

	{apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied"},

	{apperrors.ErrUserNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "User not found"},
	{apperrors.ErrEquipmentNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Equipment not found"},
	{apperrors.ErrStatusNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Status not found"},
	{apperrors.ErrTicketNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Ticket not found"},
	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"},

	{apperrors.ErrUsernameExists, http.StatusConflict, dto.ErrorCodeConflict, "Username already exists"},
	{apperrors.ErrEquipmentCodeExists, http.StatusConflict, dto.ErrorCodeCodeExists, "Equipment code already exists"},
	{apperrors.ErrHasOpenTickets, http.StatusConflict, dto.ErrorCodeHasOpenTickets, "Equipment has open tickets"},
	{apperrors.ErrHasReferencingTickets, http.StatusConflict, dto.ErrorCodeHasReferencingTickets, "Equipment is referenced by tickets"},
	{apperrors.ErrStatusLocked, http.StatusConflict, dto.ErrorCodeStatusLocked, "This status is locked and cannot be modified"},
	{apperrors.ErrStatusInUse, http.StatusConflict, dto.ErrorCodeStatusInUse, "Status is still referenced by tickets"},
	{apperrors.ErrAlreadyAssigned, http.StatusConflict, dto.ErrorCodeAlreadyAssigned, "Ticket is already assigned"},
	{apperrors.ErrConflict, http.StatusConflict, dto.ErrorCodeConflict, "Conflict"},

	{apperrors.ErrInvalidTransition, http.StatusUnprocessableEntity, dto.ErrorCodeInvalidTransition, "Status transition not allowed"},
	{apperrors.ErrConfirmationNeeded, http.StatusUnprocessableEntity, dto.ErrorCodeInvalidTransition, "This transition requires explicit confirmation"},
	{apperrors.ErrCommentRequired, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "A reason comment is required for this transition"},

	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
	{apperrors.ErrBadRequest, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Bad request"},
}

// HandleAPIError translates service errors into HTTP responses. A
// CustomError's message and details override the mapping's default message;
// anything unmapped is a 500 without internals leaking to the client.
func HandleAPIError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.sentinel) {
			detail := dto.NewErrorDetail(m.code, m.message)

			var custom *apperrors.CustomError
			if errors.As(err, &custom) {
				if custom.Message != "" {
					detail.Message = custom.Message
				}
				if custom.Details != nil {
					detail = detail.WithDetails(custom.Details)
				}
			}

			c.JSON(m.status, dto.NewErrorResponse(detail))
			return
		}
	}

	logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled error")
	c.JSON(http.StatusInternalServerError,
		dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
}
