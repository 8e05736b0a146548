package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func unauthenticatedContext(t *testing.T, method, target string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(method, target, nil)
	return ctx, w
}

func TestLogoutAllRejectsUnauthenticatedCaller(t *testing.T) {
	ctx, w := unauthenticatedContext(t, http.MethodPost, "/api/v1/auth/logout-all")

	NewAuthController(nil).LogoutAll(ctx)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMeRejectsUnauthenticatedCaller(t *testing.T) {
	ctx, w := unauthenticatedContext(t, http.MethodGet, "/api/v1/auth/me")

	NewAuthController(nil).Me(ctx)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
