package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittipos/equiptrack/internal/app/models/dto"
	"github.com/kittipos/equiptrack/internal/pkg/apperrors"
)

func handle(t *testing.T, err error) (int, *dto.ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	HandleAPIError(c, err)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, &body
}

func TestHandleAPIErrorMapsSentinels(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   dto.ErrorCode
	}{
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
		{"expired token", apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken},
		{"permission denied", apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden},
		{"ticket not found", apperrors.ErrTicketNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"already assigned", apperrors.ErrAlreadyAssigned, http.StatusConflict, dto.ErrorCodeAlreadyAssigned},
		{"status locked", apperrors.ErrStatusLocked, http.StatusConflict, dto.ErrorCodeStatusLocked},
		{"invalid transition", apperrors.ErrInvalidTransition, http.StatusUnprocessableEntity, dto.ErrorCodeInvalidTransition},
		{"confirmation needed", apperrors.ErrConfirmationNeeded, http.StatusUnprocessableEntity, dto.ErrorCodeInvalidTransition},
		{"comment required", apperrors.ErrCommentRequired, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"equipment code exists", apperrors.ErrEquipmentCodeExists, http.StatusConflict, dto.ErrorCodeCodeExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := handle(t, tt.err)
			assert.Equal(t, tt.status, status)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
			assert.False(t, body.Success)
		})
	}
}

func TestHandleAPIErrorCustomMessageOverrides(t *testing.T) {
	err := apperrors.NewCustomError(apperrors.ErrInvalidTransition, "cannot move a pending ticket to resolved").
		WithDetails(map[string]interface{}{"ticketId": int64(7)})

	status, body := handle(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	require.NotNil(t, body.Error)
	assert.Equal(t, dto.ErrorCodeInvalidTransition, body.Error.Code)
	assert.Equal(t, "cannot move a pending ticket to resolved", body.Error.Message)
	assert.NotNil(t, body.Error.Details)
}

func TestHandleAPIErrorWrappedSentinel(t *testing.T) {
	// errors.Is must see through ordinary wrapping too
	status, body := handle(t, errors.Join(errors.New("context"), apperrors.ErrUserNotFound))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, dto.ErrorCodeResourceNotFound, body.Error.Code)
}

func TestHandleAPIErrorUnknownIs500(t *testing.T) {
	status, body := handle(t, errors.New("pgx: connection reset"))
	assert.Equal(t, http.StatusInternalServerError, status)
	require.NotNil(t, body.Error)
	assert.Equal(t, dto.ErrorCodeInternalServer, body.Error.Code)
	// Internals must not leak to the client
	assert.Equal(t, "Internal server error", body.Error.Message)
}
